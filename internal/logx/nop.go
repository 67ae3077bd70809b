package logx

// Nop returns a Logger that discards everything. Used where a component
// requires a logger but the caller has nothing useful to wire in.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

var _ Logger = nopLogger{}

func (nopLogger) Debug(string, ...Field) {}
func (nopLogger) Info(string, ...Field)  {}
func (nopLogger) Warn(string, ...Field)  {}
func (nopLogger) Error(string, ...Field) {}
func (nopLogger) With(...Field) Logger   { return nopLogger{} }
func (nopLogger) Sync() error            { return nil }
