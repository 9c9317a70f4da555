// Package session owns the login lifecycle: it exchanges credentials
// for a token through the prediction service and persists the result
// locally. Commands ask it for the current session instead of reading
// ambient state.
package session

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/nmdsi/sponsor-cli/internal/model"
	"github.com/nmdsi/sponsor-cli/internal/store"
	"github.com/nmdsi/sponsor-cli/pkg/predictapi"
)

// ErrNotAuthenticated is returned by Require when no session is stored.
var ErrNotAuthenticated = eris.New("session: not logged in")

// Manager performs login, signup, and logout against the prediction
// service and keeps the resulting session in the local store.
type Manager struct {
	client predictapi.Client
	store  store.Store
	now    func() time.Time
}

// NewManager wires a Manager to the API client and local store.
func NewManager(client predictapi.Client, st store.Store) *Manager {
	return &Manager{client: client, store: st, now: time.Now}
}

// Login authenticates and persists the session, replacing any previous
// one.
func (m *Manager) Login(ctx context.Context, email, password string) (*model.Session, error) {
	auth, err := m.client.Login(ctx, email, password)
	if err != nil {
		return nil, eris.Wrap(err, "session: login")
	}

	session := model.Session{
		Token:     auth.Token,
		User:      auth.User,
		CreatedAt: m.now().UTC(),
	}
	if err := m.store.SaveSession(ctx, session); err != nil {
		return nil, eris.Wrap(err, "session: persist")
	}
	return &session, nil
}

// Signup registers a new account and then logs in with the same
// credentials.
func (m *Manager) Signup(ctx context.Context, name, email, password string) (*model.Session, error) {
	if err := m.client.Signup(ctx, name, email, password); err != nil {
		return nil, eris.Wrap(err, "session: signup")
	}
	return m.Login(ctx, email, password)
}

// Logout destroys the stored session. Logging out while logged out is
// not an error.
func (m *Manager) Logout(ctx context.Context) error {
	return eris.Wrap(m.store.DeleteSession(ctx), "session: logout")
}

// Current returns the stored session, or nil when not logged in.
func (m *Manager) Current(ctx context.Context) (*model.Session, error) {
	session, err := m.store.GetSession(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "session: load")
	}
	return session, nil
}

// Require returns the stored session or ErrNotAuthenticated.
func (m *Manager) Require(ctx context.Context) (*model.Session, error) {
	session, err := m.Current(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	return session, nil
}
