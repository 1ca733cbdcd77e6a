package logx

type nop struct{}

var discard Logger = nop{}

// Nop returns a Logger that drops every entry. Constructors fall back to it
// when no logger is injected.
func Nop() Logger { return discard }

func (nop) Debug(string, ...Field) {}
func (nop) Info(string, ...Field)  {}
func (nop) Warn(string, ...Field)  {}
func (nop) Error(string, ...Field) {}
func (n nop) With(...Field) Logger { return n }
func (nop) Sync() error            { return nil }
