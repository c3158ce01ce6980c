package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/thingful/internal/common"
	pb "github.com/dmitrijs2005/thingful/internal/proto"
	"github.com/dmitrijs2005/thingful/internal/server/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// protectedMethods require a valid access token.
var protectedMethods = map[string]bool{
	pb.AuthService_WhoAmI_FullMethodName: true,
}

func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if protectedMethods[info.FullMethod] {

		var accessToken string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.AccessTokenHeaderName)
			if len(values) > 0 {
				accessToken = values[0]
			}
		}
		if len(accessToken) == 0 {
			return nil, statusWithReason(codes.Unauthenticated, "missing token", ReasonInvalidToken, nil)
		}

		claims, err := s.tokens.Parse(accessToken)
		if err != nil {
			return nil, s.toStatus(ctx, err)
		}

		ctx = context.WithValue(ctx, userIDKey, claims.UserID)

	}

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	code := status.Code(err)
	elapsed := time.Since(start)
	metrics.ObserveRequest("grpc", info.FullMethod, code.String(), elapsed)
	s.logger.Info(ctx, "grpc request", "method", info.FullMethod, "code", code.String(), "duration", elapsed)

	return resp, err
}
