package logger

import "go.uber.org/zap/zapcore"

// contextCore keeps fields added through With and hands them to the wrapped
// core on every write. The minimal encoder renders only the fields it is
// given at EncodeEntry, so logger-scoped fields such as run_id must travel
// this way.
type contextCore struct {
	zapcore.Core
	fields []zapcore.Field
}

func newContextCore(core zapcore.Core) *contextCore {
	return &contextCore{Core: core}
}

func (c *contextCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &contextCore{Core: c.Core, fields: merged}
}

func (c *contextCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *contextCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if len(c.fields) == 0 {
		return c.Core.Write(ent, fields)
	}
	all := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	all = append(all, c.fields...)
	all = append(all, fields...)
	return c.Core.Write(ent, all)
}
