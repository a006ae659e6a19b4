package supabase

import (
	"errors"
	"fmt"
)

// Error is a non-2xx PostgREST response, surfaced with the raw body so the
// route boundary can decide whether to no-op or fail.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("supabase: status %d: %s", e.Status, e.Body)
}

// IsError reports whether err wraps a Supabase REST error.
func IsError(err error) (*Error, bool) {
	var sErr *Error
	if errors.As(err, &sErr) {
		return sErr, true
	}
	return nil, false
}
