package client

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/thingful/internal/common"
	pb "github.com/dmitrijs2005/thingful/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

// RegisterInput describes a new account. Nickname may be empty.
type RegisterInput struct {
	UserName string
	FullName string
	Nickname string
	Password []byte
}

// UserInfo is the account as reported by the server.
type UserInfo struct {
	ID          string
	UserName    string
	FullName    string
	Nickname    string
	DateCreated time.Time
}

// Identity is the owner of the current access token.
type Identity struct {
	UserID   string
	UserName string
}

type Client interface {
	Close() error
	Register(ctx context.Context, in RegisterInput) (*UserInfo, error)
	Login(ctx context.Context, userName string, password []byte) error
	WhoAmI(ctx context.Context) (*Identity, error)
	LoggedIn() bool
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.AuthServiceClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewThingfulClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewAuthServiceClient(conn)
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, in RegisterInput) (*UserInfo, error) {

	fields := map[string]any{
		pb.FieldUserName: in.UserName,
		pb.FieldFullName: in.FullName,
		pb.FieldPassword: string(in.Password),
	}
	if in.Nickname != "" {
		fields[pb.FieldNickname] = in.Nickname
	}

	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}

	info := &UserInfo{
		ID:       pb.String(resp, pb.FieldID),
		UserName: pb.String(resp, pb.FieldUserName),
		FullName: pb.String(resp, pb.FieldFullName),
		Nickname: pb.String(resp, pb.FieldNickname),
	}
	if created, err := pb.Time(resp, pb.FieldDateCreated); err == nil {
		info.DateCreated = created
	}

	return info, nil
}

// Login authenticates and keeps the returned access token for later calls.
func (s *GRPCClient) Login(ctx context.Context, userName string, password []byte) error {

	req, err := structpb.NewStruct(map[string]any{
		pb.FieldUserName: userName,
		pb.FieldPassword: string(password),
	})
	if err != nil {
		return err
	}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return mapError(err)
	}

	s.mu.Lock()
	s.accessToken = pb.String(resp, pb.FieldAuthToken)
	s.mu.Unlock()

	return nil
}

func (s *GRPCClient) WhoAmI(ctx context.Context) (*Identity, error) {

	resp, err := s.client.WhoAmI(ctx, &structpb.Struct{})
	if err != nil {
		return nil, mapError(err)
	}

	return &Identity{
		UserID:   pb.String(resp, pb.FieldUserID),
		UserName: pb.String(resp, pb.FieldUserName),
	}, nil
}

func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

// Logout forgets the access token.
func (s *GRPCClient) Logout() {
	s.mu.Lock()
	s.accessToken = ""
	s.mu.Unlock()
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}
