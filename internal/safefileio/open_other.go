//go:build !unix

package safefileio

import (
	"fmt"
	"os"
)

func openNoSymlinks(absPath string, flag int, perm os.FileMode) (*os.File, error) {
	if fi, err := os.Lstat(absPath); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("%w: %s", ErrIsSymlink, absPath)
	}
	if flag&os.O_CREATE != 0 {
		if err := verifyPathComponents(absPath); err != nil {
			return nil, err
		}
	}

	// #nosec G304 - absPath is absolute and checked for symlinks
	file, err := os.OpenFile(absPath, flag, perm)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrFileExists
		}
		return nil, err
	}
	if err := verifyPathComponents(absPath); err != nil {
		_ = file.Close()
		return nil, err
	}
	return file, nil
}
