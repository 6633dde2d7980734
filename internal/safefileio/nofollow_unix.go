//go:build unix

package safefileio

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// openNoFollow refuses a symbolic link as the last component with O_NOFOLLOW
// and checks the directories above it once the file is open. A file about
// to be created gets the directory check beforehand as well.
func openNoFollow(absPath string, flag int, perm os.FileMode) (*os.File, error) {
	if flag&os.O_CREATE != 0 {
		if err := verifyPathComponents(absPath); err != nil {
			return nil, err
		}
	}

	// #nosec G304 - absPath is absolute and the open does not follow symlinks
	file, err := os.OpenFile(absPath, flag|unix.O_NOFOLLOW, perm)
	if err != nil {
		switch {
		case os.IsExist(err):
			return nil, ErrFileExists
		case isNoFollowError(err):
			return nil, fmt.Errorf("%w: %s", ErrIsSymlink, absPath)
		default:
			return nil, err
		}
	}

	if err := verifyPathComponents(absPath); err != nil {
		_ = file.Close()
		return nil, err
	}
	return file, nil
}

// isNoFollowError reports whether err is the refusal to open a symlink.
// NetBSD reports EFTYPE instead of ELOOP.
func isNoFollowError(err error) bool {
	var e *os.PathError
	if !errors.As(err, &e) {
		return false
	}
	return errors.Is(e.Err, unix.ELOOP) || errors.Is(e.Err, unix.EMLINK) || isEFTYPE(e.Err)
}
