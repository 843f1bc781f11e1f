package util

import (
	"errors"
	"fmt"
)

var (
	ErrVersionNotFound = errors.New("version not found")
	ErrNetwork         = errors.New("network error")
	ErrHashMismatch    = errors.New("hash mismatch")
	ErrFilesystem      = errors.New("filesystem error")
	ErrParse           = errors.New("parse error")
	ErrLaunch          = errors.New("launch failed")
	ErrProcessWait     = errors.New("failed to wait for process")
	ErrNoProcess       = errors.New("no process")
)

// DownloadError reports a settled download batch: every task ran to
// completion, Failed of them did not succeed. First is the error of the
// earliest failed task in submission order.
type DownloadError struct {
	Failed int
	First  error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("%d downloads failed, first error: %v", e.Failed, e.First)
}

func (e *DownloadError) Unwrap() error {
	return e.First
}
