//go:build unix && !netbsd

package safefileio

func isEFTYPE(error) bool { return false }
