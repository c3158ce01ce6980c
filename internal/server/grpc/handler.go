package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/thingful/internal/common"
	pb "github.com/dmitrijs2005/thingful/internal/proto"
	"github.com/dmitrijs2005/thingful/internal/server/models"
	"github.com/dmitrijs2005/thingful/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	view, err := s.users.Register(ctx, services.RegisterRequest{
		UserName: pb.String(req, pb.FieldUserName),
		Password: pb.String(req, pb.FieldPassword),
		FullName: pb.String(req, pb.FieldFullName),
		Nickname: pb.OptionalString(req, pb.FieldNickname),
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return userViewStruct(view)
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	token, err := s.users.Login(ctx, services.LoginRequest{
		UserName: pb.String(req, pb.FieldUserName),
		Password: pb.String(req, pb.FieldPassword),
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return structpb.NewStruct(map[string]any{pb.FieldAuthToken: token})
}

// WhoAmI reports the user the access token was issued to.
func (s *GRPCServer) WhoAmI(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {

	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, s.toStatus(ctx, common.ErrInvalidToken)
	}

	view, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, s.toStatus(ctx, common.ErrInvalidToken)
		}
		return nil, s.toStatus(ctx, err)
	}

	return structpb.NewStruct(map[string]any{
		pb.FieldUserID:   view.ID,
		pb.FieldUserName: view.UserName,
	})
}

func userViewStruct(v *models.UserView) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(map[string]any{
		pb.FieldID:          v.ID,
		pb.FieldUserName:    v.UserName,
		pb.FieldFullName:    v.FullName,
		pb.FieldNickname:    v.Nickname,
		pb.FieldDateCreated: v.DateCreated.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return st, nil
}
