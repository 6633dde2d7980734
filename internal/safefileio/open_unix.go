//go:build unix && !linux

package safefileio

import "os"

func openNoSymlinks(absPath string, flag int, perm os.FileMode) (*os.File, error) {
	return openNoFollow(absPath, flag, perm)
}
