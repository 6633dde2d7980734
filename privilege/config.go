package privilege

// Well-known elevation wrappers.
const (
	WrapperSudo   = "sudo"
	WrapperPkexec = "pkexec"
	WrapperDoas   = "doas"
)

// DefaultTracebackEnv is the diagnostics-verbosity variable relayed to the
// escalated child unless configured otherwise.
const DefaultTracebackEnv = "GOTRACEBACK"

// Config describes how to escalate. It is a plain value: an Escalator keeps
// its own copy, so changing a Config after New has no effect on it.
type Config struct {
	// Wrapper is the name or path of the elevation program.
	Wrapper string
	// TracebackEnv is always relayed to the child, normalized.
	TracebackEnv string
}

// ConfigOption adjusts a Config under construction.
type ConfigOption func(*Config)

// WithWrapper selects the elevation program.
func WithWrapper(wrapper string) ConfigOption {
	return func(c *Config) { c.Wrapper = wrapper }
}

// WithTracebackEnv selects the diagnostics-verbosity variable.
func WithTracebackEnv(name string) ConfigOption {
	return func(c *Config) { c.TracebackEnv = name }
}

// DefaultConfig escalates through sudo.
func DefaultConfig() Config {
	return Config{
		Wrapper:      WrapperSudo,
		TracebackEnv: DefaultTracebackEnv,
	}
}

// NewConfig returns DefaultConfig with opts applied.
func NewConfig(opts ...ConfigOption) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
