// Package cli implements the blogctl command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"blogsphere/internal/client/api"
	"blogsphere/internal/client/session"
	"blogsphere/internal/logger"
)

// ExpiredMessage is printed when the server rejects the stored session.
const ExpiredMessage = "Your session has expired. Run `blogctl login` to sign in again."

var errNotLoggedIn = errors.New("not logged in; run `blogctl login` first")

// watcher is implemented by session backends that can report changes made
// by other processes.
type watcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// Options configures an App.
type Options struct {
	APIURL string
	KV     session.KV
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Log    *logger.Logger
}

// App holds what every command needs.
type App struct {
	Client *api.Client
	Auth   *session.Auth
	Store  *session.TokenStore
	KV     session.KV
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Log    *logger.Logger

	JSON bool
}

func New(opts Options) (*App, error) {
	if opts.KV == nil {
		return nil, errors.New("cli: session store is required")
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}

	store := session.NewTokenStore(opts.KV, opts.Log)
	auth := session.NewAuth(store)

	client, err := api.New(opts.APIURL,
		api.WithSession(auth),
		api.WithExpiryNotifier(ExpiryNotice(opts.Err)),
		api.WithLogger(opts.Log),
	)
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}

	return &App{
		Client: client,
		Auth:   auth,
		Store:  store,
		KV:     opts.KV,
		In:     opts.In,
		Out:    opts.Out,
		Err:    opts.Err,
		Log:    opts.Log,
	}, nil
}

// ExpiryNotice returns a notifier that asks the user to sign in again.
func ExpiryNotice(w io.Writer) func() {
	return func() {
		fmt.Fprintln(w, ExpiredMessage)
	}
}

func (a *App) requireLogin() error {
	if !a.Auth.Current().IsAuthenticated {
		return errNotLoggedIn
	}
	return nil
}

// me returns the logged in user's id.
func (a *App) me() (string, error) {
	s := a.Auth.Current()
	if !s.IsAuthenticated || s.User == nil {
		return "", errNotLoggedIn
	}
	return s.User.ID, nil
}
