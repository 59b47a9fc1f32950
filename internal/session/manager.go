package session

import (
	"context"
	"encoding/base64"
	"sync"

	"go.uber.org/zap"

	"github.com/rushikulya/marketkit/internal/apperrs"
	"github.com/rushikulya/marketkit/internal/domain"
	"github.com/rushikulya/marketkit/internal/restclient"
	"github.com/rushikulya/marketkit/internal/validate"
)

// Kind is the authenticated role of the current session.
type Kind int

const (
	KindNone Kind = iota
	KindAdmin
	KindSeller
)

func (k Kind) String() string {
	switch k {
	case KindAdmin:
		return "admin"
	case KindSeller:
		return "seller"
	}
	return "none"
}

// Session is the current role: exactly one of admin token or seller record,
// or none. A session exists only after a successful login or registration.
type Session struct {
	Kind   Kind
	Token  string
	Seller *domain.Seller
}

// RegisterInput is the seller self-registration payload. Field order drives
// which validation message surfaces first: all-required, then phone, then
// password rules.
type RegisterInput struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Phone           string `json:"phone" validate:"required,phone10" vmsg:"phone10=Phone number must be 10 digits"`
	Password        string `json:"password" validate:"required,min=6" vmsg:"min=Password must be at least 6 characters"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=Password" vmsg:"eqfield=Passwords do not match"`
}

// Manager owns the session lifecycle. It is the only writer of the persisted
// store; every gated operation reads the current role through it.
type Manager struct {
	mu    sync.RWMutex
	store *Store
	rc    *restclient.Client
	cur   Session
}

// NewManager restores any persisted session from the store. The REST client
// is attached afterwards with BindClient, since the client itself reads
// credentials back through the manager.
func NewManager(store *Store) *Manager {
	m := &Manager{store: store}
	if token, err := store.AdminToken(); err == nil && token != "" {
		m.cur = Session{Kind: KindAdmin, Token: token}
	} else if rec, err := store.Seller(); err == nil && rec != nil {
		m.cur = Session{Kind: KindSeller, Seller: rec}
	}
	return m
}

func (m *Manager) BindClient(rc *restclient.Client) { m.rc = rc }

// Current returns the active session, KindNone when logged out.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur
}

// AuthHeader implements restclient.CredentialSource.
func (m *Manager) AuthHeader() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cur.Kind == KindAdmin && m.cur.Token != "" {
		return m.cur.Token, true
	}
	return "", false
}

// LoginAdmin verifies Basic credentials against the collaborator before
// anything is persisted. A rejected attempt leaves the session untouched.
func (m *Manager) LoginAdmin(ctx context.Context, username, password string) (Session, error) {
	if username == "" || password == "" {
		return Session{}, apperrs.Validation("Username and password required")
	}
	token := "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
	if err := m.rc.Get(ctx, "/api/admin/verify", nil, nil, restclient.WithAuth(token)); err != nil {
		if apperrs.IsAuth(err) {
			return Session{}, apperrs.Auth("Invalid credentials")
		}
		return Session{}, err
	}
	return m.activate(Session{Kind: KindAdmin, Token: token})
}

// LoginSeller authenticates a seller by email and password.
func (m *Manager) LoginSeller(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, apperrs.Validation("Email and password are required")
	}
	var resp struct {
		Success bool          `json:"success"`
		Seller  domain.Seller `json:"seller"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := m.rc.Post(ctx, "/api/sellers/login", body, &resp); err != nil {
		return Session{}, err
	}
	return m.activate(Session{Kind: KindSeller, Seller: &resp.Seller})
}

// RegisterSeller validates the registration locally, submits it, and opens a
// seller session on success. Nothing reaches the network on validation
// failure and the session remains none.
func (m *Manager) RegisterSeller(ctx context.Context, in RegisterInput) (Session, error) {
	if err := validate.Struct(in); err != nil {
		return Session{}, err
	}
	var resp struct {
		Success bool          `json:"success"`
		Seller  domain.Seller `json:"seller"`
	}
	if err := m.rc.Post(ctx, "/api/sellers/register", in, &resp); err != nil {
		return Session{}, err
	}
	return m.activate(Session{Kind: KindSeller, Seller: &resp.Seller})
}

func (m *Manager) activate(s Session) (Session, error) {
	if err := m.store.Clear(); err != nil {
		return Session{}, err
	}
	switch s.Kind {
	case KindAdmin:
		if err := m.store.PutAdminToken(s.Token); err != nil {
			return Session{}, err
		}
	case KindSeller:
		if err := m.store.PutSeller(s.Seller); err != nil {
			return Session{}, err
		}
	}
	m.mu.Lock()
	m.cur = s
	m.mu.Unlock()
	zap.L().Info("session opened", zap.String("role", s.Kind.String()))
	return s, nil
}

// Logout clears the persisted session unconditionally. Logging out twice is
// harmless.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.cur = Session{}
	m.mu.Unlock()
	if err := m.store.Clear(); err != nil {
		return err
	}
	zap.L().Info("session closed")
	return nil
}
