package session

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	apperrors "hr-tracker/internal/common/errors"
	"hr-tracker/internal/common/logger"
	"hr-tracker/internal/models"
	"hr-tracker/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockAuth) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockAuth) Profile(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockAuth) ChangePassword(ctx context.Context, current, next, confirm string) (string, error) {
	args := m.Called(ctx, current, next, confirm)
	return args.String(0), args.Error(1)
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestGuard(t *testing.T) (*Guard, *mockAuth, *storage.MemoryStore, *fakeClock) {
	auth := new(mockAuth)
	store := storage.NewMemoryStore()
	clock := newFakeClock()
	g := NewGuard(store, auth, logger.NewTestLogger(t), WithClock(clock.Now))
	return g, auth, store, clock
}

func storeSession(t *testing.T, s storage.Store, userJSON string, loginAt string) {
	t.Helper()
	ctx := context.Background()
	if userJSON != "" {
		require.NoError(t, s.Set(ctx, models.StorageKeyUser, userJSON))
	}
	if loginAt != "" {
		require.NoError(t, s.Set(ctx, models.StorageKeyLoginTime, loginAt))
	}
}

func ms(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func hasKey(s storage.Store, key string) bool {
	_, ok, _ := s.Get(context.Background(), key)
	return ok
}

var hrUser = &models.User{ID: "7", Username: "hr-admin", Name: "Mona Adel"}

// ==========================
// Expiry
// ==========================

func TestIsExpired(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{"fresh", 0, false},
		{"one minute short", 243*time.Hour + 59*time.Minute, false},
		{"exactly the ttl", 244 * time.Hour, false},
		{"one minute over", 244*time.Hour + time.Minute, true},
		{"a month later", 30 * 24 * time.Hour, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsExpired(start, start.Add(tt.elapsed)))
		})
	}
}

func TestParseLoginTime(t *testing.T) {
	at := time.UnixMilli(1767225600123)
	got, ok := ParseLoginTime(FormatLoginTime(at))
	require.True(t, ok)
	assert.True(t, at.Equal(got))

	for _, raw := range []string{"", "yesterday", "12.5", "0x10"} {
		_, ok := ParseLoginTime(raw)
		assert.False(t, ok, raw)
	}
}

// ==========================
// Restore
// ==========================

func TestGuard_Restore(t *testing.T) {
	base := newFakeClock().Now()
	tests := []struct {
		name         string
		user         string
		loginAt      string
		wantLoggedIn bool
		wantCleared  bool
	}{
		{"nothing stored", "", "", false, false},
		{"valid session", `{"id":"7","name":"Mona Adel"}`, ms(base.Add(-2 * time.Hour)), true, false},
		{"expired session", `{"id":"7"}`, ms(base.Add(-245 * time.Hour)), false, true},
		{"missing login time", `{"id":"7"}`, "", false, true},
		{"unparseable login time", `{"id":"7"}`, "not-a-number", false, true},
		{"malformed user", `{"id":`, ms(base.Add(-time.Hour)), false, true},
		{"login time without user", "", ms(base.Add(-time.Hour)), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _, store, _ := newTestGuard(t)
			storeSession(t, store, tt.user, tt.loginAt)

			state, err := g.Restore(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantLoggedIn, state.LoggedIn)
			if tt.wantLoggedIn {
				require.NotNil(t, state.User)
				assert.Equal(t, "Mona Adel", state.User.Name)
				assert.True(t, g.Profiles().Cached())
			} else {
				assert.Nil(t, state.User)
			}
			if tt.wantCleared {
				assert.False(t, hasKey(store, models.StorageKeyUser))
				assert.False(t, hasKey(store, models.StorageKeyLoginTime))
			}
		})
	}
}

// ==========================
// Login / Logout
// ==========================

func TestGuard_Login_Success(t *testing.T) {
	g, auth, store, clock := newTestGuard(t)
	auth.On("Login", mock.Anything, "hr-admin", "s3cret").Return(hrUser, nil).Once()

	user, err := g.Login(context.Background(), "hr-admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, hrUser, user)

	state := g.State()
	assert.True(t, state.LoggedIn)
	assert.True(t, clock.Now().Equal(state.LoginAt))

	raw, ok, _ := store.Get(context.Background(), models.StorageKeyLoginTime)
	require.True(t, ok)
	assert.Equal(t, ms(clock.Now()), raw)

	rawUser, ok, _ := store.Get(context.Background(), models.StorageKeyUser)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"7","username":"hr-admin","name":"Mona Adel"}`, rawUser)
	auth.AssertExpectations(t)
}

func TestGuard_Login_Failure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"server message", apperrors.NewAPIUnauthorizedError("login", "Invalid username or password"), "Invalid username or password"},
		{"status without message", apperrors.NewAPIRequestFailedError("login", 500, ""), "login returned status 500"},
		{"transport error", errors.New("dial tcp: connection refused"), "dial tcp: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, auth, store, clock := newTestGuard(t)
			storeSession(t, store, `{"id":"old"}`, ms(clock.Now()))
			auth.On("Login", mock.Anything, "hr-admin", "wrong").Return(nil, tt.err).Once()

			_, err := g.Login(context.Background(), "hr-admin", "wrong")
			require.Error(t, err)

			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeLoginFailed, stdErr.Code)
			assert.Equal(t, tt.wantMsg, stdErr.Message)

			assert.False(t, g.State().LoggedIn)
			assert.False(t, hasKey(store, models.StorageKeyUser))
			assert.False(t, hasKey(store, models.StorageKeyLoginTime))
		})
	}
}

func TestGuard_Logout_ClearsEvenWhenServerFails(t *testing.T) {
	g, auth, store, _ := newTestGuard(t)
	auth.On("Login", mock.Anything, "hr-admin", "pw").Return(hrUser, nil).Once()
	auth.On("Logout", mock.Anything).Return(errors.New("502 bad gateway")).Once()

	_, err := g.Login(context.Background(), "hr-admin", "pw")
	require.NoError(t, err)

	require.NoError(t, g.Logout(context.Background()))
	assert.False(t, g.State().LoggedIn)
	assert.False(t, hasKey(store, models.StorageKeyUser))
	assert.False(t, hasKey(store, models.StorageKeyLoginTime))
	assert.False(t, g.Profiles().Cached())
	auth.AssertExpectations(t)
}

// ==========================
// Expiry checks
// ==========================

func TestGuard_Check(t *testing.T) {
	g, auth, store, clock := newTestGuard(t)
	auth.On("Login", mock.Anything, "hr-admin", "pw").Return(hrUser, nil).Once()
	_, err := g.Login(context.Background(), "hr-admin", "pw")
	require.NoError(t, err)

	clock.Advance(243 * time.Hour)
	expired, err := g.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, expired)
	assert.True(t, g.State().LoggedIn)

	clock.Advance(2 * time.Hour)
	expired, err = g.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, expired)

	state := g.State()
	assert.False(t, state.LoggedIn)
	assert.Nil(t, state.User)
	assert.False(t, g.Profiles().Cached())
	assert.False(t, hasKey(store, models.StorageKeyUser))
	assert.False(t, hasKey(store, models.StorageKeyLoginTime))

	err = g.Require(context.Background())
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionNotFound))
}

func TestGuard_Check_LoginTimeRemovedElsewhere(t *testing.T) {
	g, _, store, clock := newTestGuard(t)
	storeSession(t, store, `{"id":"7"}`, ms(clock.Now()))
	_, err := g.Restore(context.Background())
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), models.StorageKeyLoginTime))

	expired, err := g.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, expired)
}

func TestGuard_Require_Expired(t *testing.T) {
	g, _, store, clock := newTestGuard(t)
	storeSession(t, store, `{"id":"7"}`, ms(clock.Now()))
	_, err := g.Restore(context.Background())
	require.NoError(t, err)
	require.NoError(t, g.Require(context.Background()))

	clock.Advance(SessionTTL + time.Second)
	err = g.Require(context.Background())
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionExpired))
}

func TestGuard_Watch(t *testing.T) {
	t.Run("returns when the session expires", func(t *testing.T) {
		g, _, store, clock := newTestGuard(t)
		storeSession(t, store, `{"id":"7"}`, ms(clock.Now()))
		_, err := g.Restore(context.Background())
		require.NoError(t, err)

		done := make(chan error, 1)
		go func() { done <- g.Watch(context.Background(), 5*time.Millisecond) }()

		clock.Advance(SessionTTL + time.Minute)

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("watch did not notice expiry")
		}
		assert.False(t, g.State().LoggedIn)
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		g, _, store, clock := newTestGuard(t)
		storeSession(t, store, `{"id":"7"}`, ms(clock.Now()))
		_, err := g.Restore(context.Background())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- g.Watch(ctx, time.Hour) }()
		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("watch ignored cancellation")
		}
		assert.True(t, g.State().LoggedIn)
	})

	t.Run("returns immediately when logged out", func(t *testing.T) {
		g, _, _, _ := newTestGuard(t)
		assert.NoError(t, g.Watch(context.Background(), time.Hour))
	})
}

// ==========================
// 401 handling and profile
// ==========================

func TestGuard_HandleUnauthorized(t *testing.T) {
	g, _, store, clock := newTestGuard(t)
	storeSession(t, store, `{"id":"7"}`, ms(clock.Now()))
	_, err := g.Restore(context.Background())
	require.NoError(t, err)

	assert.True(t, g.HandleUnauthorized(context.Background()))
	assert.False(t, g.State().LoggedIn)
	assert.False(t, hasKey(store, models.StorageKeyUser))
	assert.True(t, hasKey(store, models.StorageKeyLoginTime))
	assert.False(t, g.Profiles().Cached())

	assert.False(t, g.HandleUnauthorized(context.Background()))
}

func TestGuard_Profile(t *testing.T) {
	g, auth, _, _ := newTestGuard(t)

	_, err := g.Profile(context.Background())
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionNotFound))

	auth.On("Login", mock.Anything, "hr-admin", "pw").Return(hrUser, nil).Once()
	_, err = g.Login(context.Background(), "hr-admin", "pw")
	require.NoError(t, err)

	// primed by login, no request
	u, err := g.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Mona Adel", u.Name)

	g.Profiles().Invalidate()
	fresh := &models.User{ID: "7", Name: "Mona A."}
	auth.On("Profile", mock.Anything).Return(fresh, nil).Once()

	u, err = g.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Mona A.", u.Name)
	u, err = g.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Mona A.", u.Name)

	auth.AssertExpectations(t)
}

func TestProfileCache_FailureNotCached(t *testing.T) {
	auth := new(mockAuth)
	auth.On("Profile", mock.Anything).Return(nil, errors.New("timeout")).Once()
	auth.On("Profile", mock.Anything).Return(hrUser, nil).Once()

	c := NewProfileCache(auth)
	_, err := c.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, c.Cached())

	u, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hrUser, u)
}

func TestGuard_ChangePassword(t *testing.T) {
	g, auth, _, _ := newTestGuard(t)

	_, err := g.ChangePassword(context.Background(), "a", "b", "b")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionNotFound))

	auth.On("Login", mock.Anything, "hr-admin", "a").Return(hrUser, nil).Once()
	auth.On("ChangePassword", mock.Anything, "a", "b", "b").Return("Password changed successfully", nil).Once()

	_, err = g.Login(context.Background(), "hr-admin", "a")
	require.NoError(t, err)

	msg, err := g.ChangePassword(context.Background(), "a", "b", "b")
	require.NoError(t, err)
	assert.Equal(t, "Password changed successfully", msg)
	auth.AssertExpectations(t)
}
