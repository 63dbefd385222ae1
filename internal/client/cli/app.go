// Package cli implements the interactive console client for the account
// service.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/easylend/userservice/internal/client/api"
	"github.com/easylend/userservice/internal/client/config"
	pkgapi "github.com/easylend/userservice/pkg/api"
)

// authAPI is the slice of the HTTP client the console needs. Tests can
// provide a stub.
type authAPI interface {
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error)
	Login(ctx context.Context, email, password string) (*pkgapi.LoginResponse, error)
	Confirm(ctx context.Context, token string) (*pkgapi.ConfirmResponse, error)
	Health(ctx context.Context) error
}

type App struct {
	client      authAPI
	reader      *bufio.Reader
	userName    string
	email       string
	accessToken string
}

func NewApp(c *config.Config) *App {
	return &App{
		client: api.NewClientWithTimeout(c.ServerAddr, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.accessToken != ""
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.userName
	}
	return "not logged in"
}
