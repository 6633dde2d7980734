//go:build linux

package safefileio

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// openNoSymlinks resolves absPath with RESOLVE_NO_SYMLINKS so the kernel
// rejects a symbolic link in any component. Kernels without openat2, and
// sandboxes that filter it, get the portable two-step check instead.
func openNoSymlinks(absPath string, flag int, perm os.FileMode) (*os.File, error) {
	how := unix.OpenHow{
		// #nosec G115 - open flags are small non-negative constants
		Flags:   uint64(flag) | unix.O_CLOEXEC,
		Resolve: unix.RESOLVE_NO_SYMLINKS,
	}
	if flag&os.O_CREATE != 0 {
		how.Mode = uint64(perm.Perm())
	}

	fd, err := unix.Openat2(unix.AT_FDCWD, absPath, &how)
	switch {
	case err == nil:
		return os.NewFile(uintptr(fd), absPath), nil
	case errors.Is(err, unix.ENOSYS), errors.Is(err, unix.EPERM):
		return openNoFollow(absPath, flag, perm)
	case errors.Is(err, unix.ELOOP):
		return nil, fmt.Errorf("%w: %s", ErrIsSymlink, absPath)
	case errors.Is(err, unix.EEXIST):
		return nil, ErrFileExists
	default:
		return nil, &os.PathError{Op: "openat2", Path: absPath, Err: err}
	}
}
