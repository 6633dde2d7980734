//go:build !unix

package privilege

var reportCritical = func(string) {}
