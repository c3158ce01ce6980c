package client

import (
	"errors"

	"github.com/dmitrijs2005/thingful/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// RemoteError is a failure reported by the server.
type RemoteError struct {
	Code    codes.Code
	Reason  string
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match authentication failures.
func (e *RemoteError) Unwrap() error {
	if e.Code == codes.Unauthenticated || e.Code == codes.PermissionDenied {
		return ErrUnauthorized
	}
	return nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	}

	re := &RemoteError{Code: st.Code(), Message: st.Message()}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == common.ErrorDomain {
			re.Reason = info.GetReason()
		}
	}
	return re
}
