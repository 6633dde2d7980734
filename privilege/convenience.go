package privilege

// EscalateIfNeeded restarts the program with sudo when it is not privileged
// enough and claims setuid privileges when they are available.
//
// On the restart path it does not return: the process exits with the status
// of the sudo child.
func EscalateIfNeeded() (State, error) {
	return New(DefaultConfig()).EscalateIfNeeded()
}

// WithEnv is EscalateIfNeeded, also relaying variables whose names start with
// one of prefixes, e.g. WithEnv("APP_", "HTTP_PROXY").
func WithEnv(prefixes ...string) (State, error) {
	return New(DefaultConfig()).WithEnv(prefixes...)
}

// WithEnvWildcards is EscalateIfNeeded, also relaying variables matching one
// of patterns, e.g. WithEnvWildcards("APP_*").
func WithEnvWildcards(patterns ...string) (State, error) {
	return New(DefaultConfig()).WithEnvWildcards(patterns...)
}

// EscalateWithEnv relays the entire environment, like sudo -E. Use with care.
func EscalateWithEnv() (State, error) {
	return WithEnvWildcards("*")
}

// Pkexec is EscalateIfNeeded with pkexec as the wrapper.
func Pkexec() (State, error) {
	return New(NewConfig(WithWrapper(WrapperPkexec))).EscalateIfNeeded()
}

// Doas is EscalateIfNeeded with doas as the wrapper.
func Doas() (State, error) {
	return New(NewConfig(WithWrapper(WrapperDoas))).EscalateIfNeeded()
}
