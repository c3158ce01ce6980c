package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/thingful/internal/client/client"
	"github.com/dmitrijs2005/thingful/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func stubInputs(t *testing.T, answers []string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		s := answers[i]
		i++
		return s, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeAuth struct {
	regIn   client.RegisterInput
	regPass string
	regErr  error

	loginUser string
	loginPass string
	loginErr  error
	deadline  bool

	whoErr error

	loggedIn bool
	closed   bool
}

func (f *fakeAuth) Register(_ context.Context, in client.RegisterInput) (*client.UserInfo, error) {
	f.regIn = in
	f.regPass = string(in.Password)
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &client.UserInfo{ID: "id-1", UserName: in.UserName}, nil
}

func (f *fakeAuth) Login(ctx context.Context, user string, pass []byte) error {
	_, f.deadline = ctx.Deadline()
	f.loginUser, f.loginPass = user, string(pass)
	if f.loginErr != nil {
		return f.loginErr
	}
	f.loggedIn = true
	return nil
}

func (f *fakeAuth) WhoAmI(context.Context) (*client.Identity, error) {
	if f.whoErr != nil {
		return nil, f.whoErr
	}
	return &client.Identity{UserID: "id-1", UserName: f.loginUser}, nil
}

func (f *fakeAuth) LoggedIn() bool { return f.loggedIn }
func (f *fakeAuth) Logout()        { f.loggedIn = false }
func (f *fakeAuth) Close() error   { f.closed = true; return nil }

func newTestApp(f *fakeAuth) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		config: &config.Config{RequestTimeout: time.Second},
		api:    f,
		out:    &out,
	}, &out
}

func TestRegister_Success(t *testing.T) {
	f := &fakeAuth{}
	a, out := newTestApp(f)

	pw := []byte("Passw0rd!")
	stubInputs(t, []string{"alice", "Alice A", ""}, pw)

	require.NoError(t, a.Register(context.Background()))

	assert.Equal(t, "alice", f.regIn.UserName)
	assert.Equal(t, "Alice A", f.regIn.FullName)
	assert.Equal(t, "", f.regIn.Nickname)
	assert.Equal(t, "Passw0rd!", f.regPass)
	assert.Equal(t, make([]byte, len(pw)), pw, "password must be wiped")
	assert.Contains(t, out.String(), "Registered alice (id id-1)")
}

func TestRegister_PrintsServerMessage(t *testing.T) {
	rejection := &client.RemoteError{Code: codes.InvalidArgument, Message: "Password must be at least 8 characters"}
	f := &fakeAuth{regErr: rejection}
	a, out := newTestApp(f)
	stubInputs(t, []string{"alice", "Alice A", "ali"}, []byte("short"))

	err := a.Register(context.Background())
	require.ErrorIs(t, err, rejection)
	assert.Equal(t, "Password must be at least 8 characters\n", out.String())
	assert.Equal(t, "ali", f.regIn.Nickname)
}

func TestLogin_Success(t *testing.T) {
	f := &fakeAuth{}
	a, out := newTestApp(f)
	stubInputs(t, []string{"alice"}, []byte("Passw0rd!"))

	require.NoError(t, a.Login(context.Background()))
	assert.True(t, f.deadline, "login call must carry the request timeout")
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(alice) ", a.getStatus())
	assert.Contains(t, out.String(), "Login successful")
}

func TestLogin_Unavailable(t *testing.T) {
	f := &fakeAuth{loginErr: client.ErrUnavailable}
	a, out := newTestApp(f)
	stubInputs(t, []string{"alice"}, []byte("Passw0rd!"))

	err := a.Login(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "", a.getStatus())
	assert.Contains(t, out.String(), "Server unavailable")
}

func TestLogin_InputError(t *testing.T) {
	f := &fakeAuth{}
	a, _ := newTestApp(f)
	stubInputs(t, nil, nil)

	require.ErrorIs(t, a.Login(context.Background()), io.EOF)
	assert.Equal(t, "", f.loginUser)
}

func TestWhoAmI_UnauthorizedLogsOut(t *testing.T) {
	f := &fakeAuth{loggedIn: true, whoErr: &client.RemoteError{Code: codes.Unauthenticated, Message: "Token expired"}}
	a, out := newTestApp(f)
	a.userName = "alice"

	err := a.WhoAmI(context.Background())
	require.True(t, errors.Is(err, client.ErrUnauthorized))
	assert.False(t, f.loggedIn)
	assert.Equal(t, "", a.userName)
	assert.Equal(t, "Token expired\n", out.String())
}

func TestWhoAmI_Success(t *testing.T) {
	f := &fakeAuth{loggedIn: true, loginUser: "alice"}
	a, out := newTestApp(f)

	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Equal(t, "alice (id id-1)\n", out.String())
}

func TestLogout(t *testing.T) {
	f := &fakeAuth{loggedIn: true}
	a, _ := newTestApp(f)
	a.userName = "alice"

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, f.loggedIn)
	assert.Equal(t, "", a.userName)
}
