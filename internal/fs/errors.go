package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
)

var (
	ErrPathNotFound   = errors.New("path not found")
	ErrAccessDenied   = errors.New("access denied")
	ErrInvalidPattern = errors.New("invalid selection pattern")
)

// Classify maps a raw filesystem error for path onto the picker's error taxonomy.
// Errors that fit none of the categories are wrapped unchanged.
func Classify(path string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrPathNotFound), errors.Is(err, ErrAccessDenied), errors.Is(err, ErrInvalidPattern):
		return err
	case errors.Is(err, iofs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	case errors.Is(err, iofs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrAccessDenied, path)
	default:
		return fmt.Errorf("cannot read directory %s: %w", path, err)
	}
}
