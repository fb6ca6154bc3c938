package manifest

import (
	"errors"
	"fmt"
)

// ErrDecode is the sentinel wrapped by every DecodeError.
var ErrDecode = errors.New("malformed recipe manifest")

// DecodeError reports a manifest that failed HCL parsing, decoding, or
// translation into the recipe model.
type DecodeError struct {
	Path   string
	Detail string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Detail)
}

func (e *DecodeError) Unwrap() error { return ErrDecode }
