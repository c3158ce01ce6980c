// Package grpc exposes the account services over gRPC as
// thingful.auth.AuthService.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/thingful/internal/logging"
	pb "github.com/dmitrijs2005/thingful/internal/proto"
	"github.com/dmitrijs2005/thingful/internal/server/auth"
	"github.com/dmitrijs2005/thingful/internal/server/models"
	"github.com/dmitrijs2005/thingful/internal/server/services"
	"google.golang.org/grpc"
)

type userSvc interface {
	Register(ctx context.Context, req services.RegisterRequest) (*models.UserView, error)
	Login(ctx context.Context, req services.LoginRequest) (string, error)
	GetUser(ctx context.Context, id string) (*models.UserView, error)
}

type tokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type GRPCServer struct {
	address string
	users   userSvc
	tokens  tokenParser
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us userSvc, tokens tokenParser) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		tokens:  tokens,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterAuthServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			srv.GracefulStop()
		case <-stopped:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
