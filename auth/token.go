// Package auth issues and validates the bearer tokens protecting the HTTP
// API. Tokens are signed with the key configured under auth.signing_key_path
// and verified against its public half.
package auth

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kvistad/hostmon/config"
	"github.com/kvistad/hostmon/utils"
)

const defaultTokenExpiry = 720 * time.Hour

// LoadSigningKey reads and parses the PEM encoded private key API tokens
// are signed with.
func LoadSigningKey(cfg *config.Config) (crypto.Signer, error) {
	if cfg.Auth == nil || cfg.Auth.SigningKeyPath == "" {
		return nil, fmt.Errorf("no signing key configured")
	}

	keyBytes, err := os.ReadFile(cfg.Auth.SigningKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read signing key: %w", err)
	}

	block, _ := pem.Decode(keyBytes)
	if block == nil {
		return nil, fmt.Errorf("failed to decode signing key PEM")
	}

	var key interface{}
	switch block.Type {
	case "PRIVATE KEY":
		key, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	case "EC PRIVATE KEY":
		key, err = x509.ParseECPrivateKey(block.Bytes)
	case "RSA PRIVATE KEY":
		key, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	default:
		return nil, fmt.Errorf("unknown key type: %s", block.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	signer, ok := key.(crypto.Signer)
	if !ok {
		return nil, fmt.Errorf("key type %T cannot sign tokens", key)
	}

	return signer, nil
}

// GenerateAPIToken mints a bearer token for the given subject. A zero or
// negative expiry falls back to the default.
func GenerateAPIToken(cfg *config.Config, subject string, expiry time.Duration) (string, error) {
	key, err := LoadSigningKey(cfg)
	if err != nil {
		return "", err
	}

	if expiry <= 0 {
		expiry = defaultTokenExpiry
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iss": cfg.Auth.Issuer,
		"exp": now.Add(expiry).Unix(),
		"iat": now.Unix(),
		"jti": uuid.NewString(),
	}

	signingMethod := utils.GetSigningMethodFromKey(key)
	token := jwt.NewWithClaims(signingMethod, claims)
	token.Header["kid"] = utils.GenerateKeyID(key.Public())

	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateAPIToken checks the token signature, expiry and issuer, and
// returns the subject it was minted for.
func ValidateAPIToken(cfg *config.Config, tokenString string) (string, error) {
	key, err := LoadSigningKey(cfg)
	if err != nil {
		return "", err
	}

	verifyKey := key.Public()

	token, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		expected := utils.GetSigningMethodFromKey(verifyKey)
		if token.Method != expected {
			return nil, fmt.Errorf("invalid signing method: expected %v, got %v", expected.Alg(), token.Method.Alg())
		}
		return verifyKey, nil
	}, jwt.WithIssuer(cfg.Auth.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("invalid token subject claim")
	}

	return subject, nil
}
