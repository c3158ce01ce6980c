package services

import (
	"fmt"

	"github.com/samber/oops"
)

// InternalCode returns the oops code attached to err, such as
// CodeTokenSignFailed, together with its context values. ok is false when err
// carries no code.
func InternalCode(err error) (code string, details map[string]any, ok bool) {
	oopsErr, isOops := oops.AsOops(err)
	if !isOops {
		return "", nil, false
	}

	code = fmt.Sprint(oopsErr.Code())
	if code == "" || code == "<nil>" {
		return "", nil, false
	}
	return code, oopsErr.Context(), true
}
