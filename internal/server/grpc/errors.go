package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/thingful/internal/common"
	"github.com/dmitrijs2005/thingful/internal/server/services"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ReasonInvalidToken = "INVALID_TOKEN"
	ReasonTokenExpired = "TOKEN_EXPIRED"
	ReasonStore        = "STORE_ERROR"
	ReasonInternal     = "INTERNAL"
)

func rejectionCode(kind common.Kind) codes.Code {
	switch kind {
	case common.KindConflict:
		return codes.AlreadyExists
	case common.KindAuthentication:
		return codes.Unauthenticated
	default:
		return codes.InvalidArgument
	}
}

// toStatus converts a service error into a gRPC status. Rejections keep their
// message verbatim; store and internal failures are logged and hidden behind
// a generic message. Every status carries an ErrorInfo with the reason code;
// internal failures report their oops code when they have one.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	if r, ok := common.AsRejection(err); ok {
		var md map[string]string
		if r.Field != "" {
			md = map[string]string{"field": r.Field}
		}
		return statusWithReason(rejectionCode(r.Kind), r.Message, r.Code, md)
	}

	switch {
	case errors.Is(err, common.ErrTokenExpired):
		return statusWithReason(codes.Unauthenticated, common.ErrTokenExpired.Error(), ReasonTokenExpired, nil)
	case errors.Is(err, common.ErrInvalidToken):
		return statusWithReason(codes.Unauthenticated, common.ErrInvalidToken.Error(), ReasonInvalidToken, nil)
	case errors.Is(err, common.ErrStore):
		s.logger.Error(ctx, "store failure", "error", err)
		return statusWithReason(codes.Internal, "Internal server error", ReasonStore, nil)
	default:
		reason := ReasonInternal
		if code, _, ok := services.InternalCode(err); ok {
			reason = code
		}
		s.logger.Error(ctx, "internal failure", "reason", reason, "error", err)
		return statusWithReason(codes.Internal, "Internal server error", reason, nil)
	}
}

func statusWithReason(code codes.Code, msg, reason string, md map[string]string) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   common.ErrorDomain,
		Metadata: md,
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// ReasonFromError extracts the ErrorInfo reason attached by toStatus.
func ReasonFromError(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == common.ErrorDomain {
			return info.GetReason()
		}
	}
	return ""
}
