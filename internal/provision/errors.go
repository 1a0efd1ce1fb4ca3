package provision

import "fmt"

type InvalidDestinationError struct {
	Path   string
	Reason string
}

func (err InvalidDestinationError) Error() string {
	return fmt.Sprintf("invalid destination %q: %s", err.Path, err.Reason)
}

type FileExistsError struct {
	Path string
}

func (err FileExistsError) Error() string {
	return fmt.Sprintf("file already exists, use --force to overwrite: %q", err.Path)
}

type CollaboratorError struct {
	Op  string
	Err error
}

func (err CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", err.Op, err.Err)
}

func (err CollaboratorError) Unwrap() error {
	return err.Err
}

// PersistError reports a failed key file write. Path names the file that may
// have been left in an inconsistent state; there is no rollback of files
// written earlier in the same run.
type PersistError struct {
	Path string
	Err  error
}

func (err PersistError) Error() string {
	return fmt.Sprintf("failed to write key file %q, it may be missing or incomplete: %v", err.Path, err.Err)
}

func (err PersistError) Unwrap() error {
	return err.Err
}
