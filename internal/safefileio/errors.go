// Package safefileio reads and creates files without following symbolic
// links. It matters once the process holds root privileges and touches
// paths a less privileged user chose.
package safefileio

import "errors"

var (
	// ErrInvalidFilePath indicates that the specified file path is invalid.
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrIsSymlink indicates that the path or one of its directories is a symbolic link.
	ErrIsSymlink = errors.New("path is a symbolic link")

	// ErrFileTooLarge indicates that the file exceeds the read limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrFileExists indicates that the file already exists.
	ErrFileExists = errors.New("file exists")

	// ErrInvalidFilePermissions indicates that other users may modify the file.
	ErrInvalidFilePermissions = errors.New("invalid file permissions")
)
