package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrStorage    = errors.New("storage error")
)

// KindOf names the error kind of err, "ok" for nil and "internal" for
// errors outside the taxonomy.
func KindOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrStorage):
		return "storage"
	default:
		return "internal"
	}
}

// StorageError marks err as a backing store failure unless it already
// carries a domain kind.
func StorageError(err error) error {
	if err == nil || KindOf(err) != "internal" {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
