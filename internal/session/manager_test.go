package session_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rushikulya/marketkit/internal/apitest"
	"github.com/rushikulya/marketkit/internal/apperrs"
	"github.com/rushikulya/marketkit/internal/domain"
	"github.com/rushikulya/marketkit/internal/restclient"
	"github.com/rushikulya/marketkit/internal/session"
)

// openManager builds a manager on the store file at path. The returned close
// releases the bbolt lock so the same path can be reopened, as a process
// restart would.
func openManager(t *testing.T, srv *apitest.Server, path string) (*session.Manager, func()) {
	t.Helper()
	store, err := session.OpenStore(path)
	require.NoError(t, err)

	var closed bool
	closeFn := func() {
		if !closed {
			closed = true
			_ = store.Close()
		}
	}
	t.Cleanup(closeFn)

	m := session.NewManager(store)
	m.BindClient(restclient.New(srv.URL, 2*time.Second, m))
	return m, closeFn
}

func newManager(t *testing.T, srv *apitest.Server) (*session.Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.db")
	m, _ := openManager(t, srv, path)
	return m, path
}

func TestRegisterInvalidPhoneNeverReachesNetwork(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	m, _ := newManager(t, srv)

	_, err := m.RegisterSeller(context.Background(), session.RegisterInput{
		FirstName:       "Asha",
		LastName:        "Patro",
		Email:           "asha@example.com",
		Phone:           "987654321",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.Error(t, err)
	require.True(t, apperrs.IsValidation(err))
	require.Equal(t, "Phone number must be 10 digits", apperrs.Message(err))

	require.Equal(t, session.KindNone, m.Current().Kind)
	require.Zero(t, srv.TotalHits())
}

func TestRegisterValidationMessages(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	m, _ := newManager(t, srv)
	ctx := context.Background()

	_, err := m.RegisterSeller(ctx, session.RegisterInput{})
	require.Equal(t, "All fields are required", apperrs.Message(err))

	base := session.RegisterInput{
		FirstName: "Asha", LastName: "Patro",
		Email: "asha@example.com", Phone: "9876543210",
	}

	in := base
	in.Password, in.ConfirmPassword = "short", "short"
	_, err = m.RegisterSeller(ctx, in)
	require.Equal(t, "Password must be at least 6 characters", apperrs.Message(err))

	in = base
	in.Password, in.ConfirmPassword = "secret1", "secret2"
	_, err = m.RegisterSeller(ctx, in)
	require.Equal(t, "Passwords do not match", apperrs.Message(err))

	require.Zero(t, srv.TotalHits())
}

func TestRegisterOpensSellerSession(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	m, _ := newManager(t, srv)

	s, err := m.RegisterSeller(context.Background(), session.RegisterInput{
		FirstName:       "Asha",
		LastName:        "Patro",
		Email:           "asha@example.com",
		Phone:           "9876543210",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	require.Equal(t, session.KindSeller, s.Kind)
	require.Equal(t, "Asha Patro", s.Seller.FullName())
	require.Equal(t, session.KindSeller, m.Current().Kind)
}

func TestLoginAdminRejectedLeavesSessionUntouched(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	path := filepath.Join(t.TempDir(), "session.db")
	m, closeStore := openManager(t, srv, path)

	_, err := m.LoginAdmin(context.Background(), "admin", "wrong")
	require.Error(t, err)
	require.True(t, apperrs.IsAuth(err))
	require.Equal(t, "Invalid credentials", apperrs.Message(err))
	require.Equal(t, session.KindNone, m.Current().Kind)

	// nothing was persisted either
	closeStore()
	m2, _ := openManager(t, srv, path)
	require.Equal(t, session.KindNone, m2.Current().Kind)
}

func TestLoginAdminEmptyFields(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	m, _ := newManager(t, srv)

	_, err := m.LoginAdmin(context.Background(), "", "")
	require.True(t, apperrs.IsValidation(err))
	require.Equal(t, "Username and password required", apperrs.Message(err))
	require.Zero(t, srv.TotalHits())
}

func TestLoginAdminPersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	path := filepath.Join(t.TempDir(), "session.db")
	m, closeStore := openManager(t, srv, path)

	s, err := m.LoginAdmin(context.Background(), srv.AdminUser, srv.AdminPass)
	require.NoError(t, err)
	require.Equal(t, session.KindAdmin, s.Kind)
	require.NotEmpty(t, s.Token)

	h, ok := m.AuthHeader()
	require.True(t, ok)
	require.Equal(t, s.Token, h)

	closeStore()
	m2, _ := openManager(t, srv, path)
	require.Equal(t, session.KindAdmin, m2.Current().Kind)
	require.Equal(t, s.Token, m2.Current().Token)
}

func TestLoginSellerPersistsRecord(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	srv.SeedSeller(domain.Seller{
		FirstName: "Ravi", LastName: "Sahu",
		Email: "ravi@example.com", Phone: "9876543210",
	}, "secret1")
	path := filepath.Join(t.TempDir(), "session.db")
	m, closeStore := openManager(t, srv, path)

	s, err := m.LoginSeller(context.Background(), "ravi@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, session.KindSeller, s.Kind)
	require.Equal(t, "ravi@example.com", s.Seller.Email)

	// seller sessions carry no Authorization header
	_, ok := m.AuthHeader()
	require.False(t, ok)

	closeStore()
	m2, _ := openManager(t, srv, path)
	require.Equal(t, session.KindSeller, m2.Current().Kind)
	require.Equal(t, "Ravi Sahu", m2.Current().Seller.FullName())
}

func TestLoginSellerWrongPassword(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	srv.SeedSeller(domain.Seller{Email: "ravi@example.com"}, "secret1")
	m, _ := newManager(t, srv)

	_, err := m.LoginSeller(context.Background(), "ravi@example.com", "nope")
	require.True(t, apperrs.IsAuth(err))
	require.Equal(t, session.KindNone, m.Current().Kind)
}

func TestLogoutIsIdempotent(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	path := filepath.Join(t.TempDir(), "session.db")
	m, closeStore := openManager(t, srv, path)

	_, err := m.LoginAdmin(context.Background(), srv.AdminUser, srv.AdminPass)
	require.NoError(t, err)

	require.NoError(t, m.Logout())
	require.Equal(t, session.KindNone, m.Current().Kind)
	require.NoError(t, m.Logout())

	closeStore()
	m2, _ := openManager(t, srv, path)
	require.Equal(t, session.KindNone, m2.Current().Kind)
}
