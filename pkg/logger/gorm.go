package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger implements gorm's logger.Interface on top of zap, with a slow
// query threshold and optional suppression of record-not-found errors.
type GormLogger struct {
	log                       *zap.Logger
	LogLevel                  gormlogger.LogLevel
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
}

// NewGormLogger creates a gorm logger adapter backed by the given zap logger.
func NewGormLogger(log *zap.Logger, level gormlogger.LogLevel, slowThreshold time.Duration, ignoreRecordNotFoundError bool) *GormLogger {
	return &GormLogger{
		log:                       log,
		LogLevel:                  level,
		SlowThreshold:             slowThreshold,
		IgnoreRecordNotFoundError: ignoreRecordNotFoundError,
	}
}

// LogMode returns a copy of the logger with the given level.
func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *g
	newLogger.LogLevel = level
	return &newLogger
}

func (g *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if g.LogLevel < gormlogger.Info {
		return
	}
	g.log.Sugar().Infof(msg, data...)
}

func (g *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if g.LogLevel < gormlogger.Warn {
		return
	}
	g.log.Sugar().Warnf(msg, data...)
}

func (g *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if g.LogLevel < gormlogger.Error {
		return
	}
	g.log.Sugar().Errorf(msg, data...)
}

// Trace logs query duration, SQL and affected rows, flagging slow queries.
func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && g.LogLevel >= gormlogger.Error &&
		!(g.IgnoreRecordNotFoundError && errors.Is(err, gorm.ErrRecordNotFound)):
		g.log.Error("gorm query failed",
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql))
	case g.SlowThreshold > 0 && elapsed > g.SlowThreshold && g.LogLevel >= gormlogger.Warn:
		g.log.Warn("gorm slow query",
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", g.SlowThreshold),
			zap.Int64("rows", rows),
			zap.String("sql", sql))
	case g.LogLevel >= gormlogger.Info:
		g.log.Debug("gorm query",
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql))
	}
}
