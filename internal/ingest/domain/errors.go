package domain

import (
	"fmt"
)

// ConnectionError signals a transport or authentication failure while
// establishing the remote session. Fatal: the run is aborted.
type ConnectionError struct {
	Host string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.Host, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// RemoteFileError signals that the session was established but the remote
// log could not be read (missing path, permission denied, empty file).
// Fatal: the run is aborted.
type RemoteFileError struct {
	Path string
	Err  error
}

func (e *RemoteFileError) Error() string {
	return fmt.Sprintf("remote file %s unreadable: %v", e.Path, e.Err)
}

func (e *RemoteFileError) Unwrap() error {
	return e.Err
}

// EmptyDatasetError signals that the fetched file contained zero parseable
// records. Fatal: nothing downstream is meaningful.
type EmptyDatasetError struct {
	Lines   int
	Skipped int
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("no parseable samples in fetched log (%d lines, %d skipped)", e.Lines, e.Skipped)
}
