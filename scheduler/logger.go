package scheduler

import "log/slog"

// cronLogAdapter bridges the cron logging interface onto slog. Routine
// runner chatter is demoted to debug.
type cronLogAdapter struct {
	logger *slog.Logger
}

func (l *cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]interface{}{"error", err}, keysAndValues...)
	l.logger.Error(msg, args...)
}
