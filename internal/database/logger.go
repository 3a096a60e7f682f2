package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

// Logger routes gorm's log output through zerolog.
// Statements are traced at debug level; failed statements at warn level,
// since the caller decides whether the failure is fatal.
type Logger struct {
	log   zerolog.Logger
	level gormlogger.LogLevel
}

// NewLogger wraps log for use as a gorm logger.
func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log.With().Str("component", "gorm").Logger(), level: gormlogger.Warn}
}

// LogMode returns a copy of the logger at the given level.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *Logger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.Info().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.Warn().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.Error().Msg(fmt.Sprintf(msg, args...))
	}
}

// Trace logs one executed statement.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	sql, rows := fc()
	elapsed := time.Since(begin)
	if err != nil && l.level >= gormlogger.Error {
		l.log.Warn().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", truncate(sql, 200)).Msg("statement failed")
		return
	}
	l.log.Debug().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", truncate(sql, 200)).Msg("statement")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
