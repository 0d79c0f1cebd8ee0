package reducers

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey marks an action whose identifier is empty or malformed.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidPayload marks an action whose payload is otherwise unusable.
	ErrInvalidPayload = errors.New("invalid payload")
)

func invalidKey(slice, field string, key any) error {
	return fmt.Errorf("%s: %w: %s %q", slice, ErrInvalidKey, field, fmt.Sprint(key))
}

func invalidPayload(slice, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", slice, ErrInvalidPayload, fmt.Sprintf(format, args...))
}
