package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/thingful/internal/client/client"
	"github.com/dmitrijs2005/thingful/internal/client/config"
)

// authAPI is the part of the AuthService client the CLI drives.
type authAPI interface {
	Register(ctx context.Context, in client.RegisterInput) (*client.UserInfo, error)
	Login(ctx context.Context, userName string, password []byte) error
	WhoAmI(ctx context.Context) (*client.Identity, error)
	LoggedIn() bool
	Logout()
	Close() error
}

type App struct {
	config   *config.Config
	api      authAPI
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewThingfulClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		api:    apiClient,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run starts the REPL and closes the connection once the user leaves.
func (a *App) Run(ctx context.Context) {
	defer a.api.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

// callContext bounds a single server call by the configured request timeout.
func (a *App) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
