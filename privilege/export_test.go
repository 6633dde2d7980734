package privilege

// SetLookPath replaces the wrapper lookup for the duration of a test.
func SetLookPath(fn func(string) (string, error)) (restore func()) {
	prev := lookPath
	lookPath = fn
	return func() { lookPath = prev }
}

// SetReportCritical replaces the syslog reporter for the duration of a test.
func SetReportCritical(fn func(string)) (restore func()) {
	prev := reportCritical
	reportCritical = fn
	return func() { reportCritical = prev }
}
