package utils

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"

	"github.com/golang-jwt/jwt/v5"
)

// GetSigningMethodFromKey picks the JWT signing method matching the key
// type. Both halves of a key pair map to the same method.
func GetSigningMethodFromKey(key interface{}) jwt.SigningMethod {
	switch key.(type) {
	case *rsa.PrivateKey, *rsa.PublicKey:
		return jwt.SigningMethodRS256
	case *ecdsa.PrivateKey, *ecdsa.PublicKey:
		return jwt.SigningMethodES256
	case ed25519.PrivateKey, ed25519.PublicKey:
		return jwt.SigningMethodEdDSA
	default:
		return jwt.SigningMethodES256
	}
}

// GenerateKeyID derives a stable identifier from the public key.
func GenerateKeyID(pubKey interface{}) string {
	pubKeyBytes, _ := x509.MarshalPKIXPublicKey(pubKey)
	hash := sha256.Sum256(pubKeyBytes)
	return hex.EncodeToString(hash[:])[:16]
}

// GetAlgorithmFromKey reports the JOSE algorithm name for the key.
func GetAlgorithmFromKey(key interface{}) string {
	switch key.(type) {
	case *rsa.PublicKey:
		return "RS256"
	case *ecdsa.PublicKey:
		return "ES256"
	case ed25519.PublicKey:
		return "EdDSA"
	default:
		return "RS256"
	}
}
