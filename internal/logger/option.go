package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// leveledCore overrides the level of the core it wraps.
type leveledCore struct {
	zapcore.Core

	// level is the minimum level this core writes.
	level zapcore.Level
}

// Enabled reports whether l passes the overridden level.
func (c *leveledCore) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l)
}

// Check adds the core to ce when the entry passes the overridden level.
//
//nolint:gocritic // zapcore.Core requires ent by value.
func (c *leveledCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}

	return ce
}

// With keeps the overridden level on the derived core.
//
//nolint:ireturn // zapcore.Core is the contract here.
func (c *leveledCore) With(fields []zapcore.Field) zapcore.Core {
	return &leveledCore{
		Core:  c.Core.With(fields),
		level: c.level,
	}
}

// WithLevel returns an option that makes a derived logger write entries at
// lvl and above regardless of the parent's level. The reducer trace logger
// uses it to run at its own verbosity.
//
//nolint:ireturn // zap.Option is the contract here.
func WithLevel(lvl zapcore.Level) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &leveledCore{
			Core:  core,
			level: lvl,
		}
	})
}
