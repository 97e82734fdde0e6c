package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/alexisbeaulieu97/calgrid/internal/logger"
)

const slowQueryThreshold = time.Second

// gormLogger sends gorm's output through the application logger so SQL warnings
// honour logging.level and logging.human_readable.
type gormLogger struct {
	log   *logger.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

func newGormLogger(log *logger.Logger, level gormlogger.LogLevel) gormlogger.Interface {
	if log == nil {
		log = logger.Nop()
	}
	return gormLogger{log: log, level: level, slow: slowQueryThreshold}
}

func (g gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	g.level = level
	return g
}

func (g gormLogger) Info(_ context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Info {
		g.log.Debug(fmt.Sprintf(msg, args...))
	}
}

func (g gormLogger) Warn(_ context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Warn {
		g.log.Warn(fmt.Sprintf(msg, args...))
	}
}

func (g gormLogger) Error(_ context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Error {
		g.log.Error(nil, fmt.Sprintf(msg, args...))
	}
}

// Trace reports failed and slow statements. Missing rows are not failures.
func (g gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && g.level >= gormlogger.Error:
		sql, rows := fc()
		g.log.WithFields(map[string]any{"sql": sql, "rows": rows, "elapsed": elapsed.String()}).Error(err, "sql query failed")
	case elapsed > g.slow && g.level >= gormlogger.Warn:
		sql, rows := fc()
		g.log.WithFields(map[string]any{"sql": sql, "rows": rows, "elapsed": elapsed.String()}).Warn("slow sql query")
	case g.level >= gormlogger.Info:
		sql, rows := fc()
		g.log.WithFields(map[string]any{"sql": sql, "rows": rows, "elapsed": elapsed.String()}).Debug("sql query")
	}
}
