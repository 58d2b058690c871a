package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	apperrors "hr-tracker/internal/common/errors"
	"hr-tracker/internal/common/logger"
	"hr-tracker/internal/common/metrics"
	"hr-tracker/internal/models"
	"hr-tracker/internal/storage"
)

// AuthAPI is the subset of the tracker API the guard drives.
type AuthAPI interface {
	ProfileFetcher
	Login(ctx context.Context, username, password string) (*models.User, error)
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context, currentPassword, newPassword, confirmPassword string) (string, error)
}

// Guard owns the authenticated state: it restores it from storage, keeps
// storage in step on login/logout and ends the session once it is older
// than the TTL.
type Guard struct {
	mu      sync.RWMutex
	store   storage.Store
	auth    AuthAPI
	profile *ProfileCache
	log     logger.Logger
	ttl     time.Duration
	now     func() time.Time
	state   models.SessionState
}

type Option func(*Guard)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

// WithTTL overrides SessionTTL.
func WithTTL(ttl time.Duration) Option {
	return func(g *Guard) {
		if ttl > 0 {
			g.ttl = ttl
		}
	}
}

func NewGuard(store storage.Store, auth AuthAPI, log logger.Logger, opts ...Option) *Guard {
	g := &Guard{
		store:   store,
		auth:    auth,
		profile: NewProfileCache(auth),
		log:     log.WithFields(map[string]interface{}{"component": "session"}),
		ttl:     SessionTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State returns a snapshot of the current session.
func (g *Guard) State() models.SessionState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s := g.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Profiles exposes the profile cache.
func (g *Guard) Profiles() *ProfileCache {
	return g.profile
}

// Restore derives the initial state from storage. Missing, unparseable or
// expired timestamps and a malformed profile all yield a logged-out state
// with storage cleared; only a storage outage is returned as an error.
func (g *Guard) Restore(ctx context.Context) (models.SessionState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = models.SessionState{}

	rawTime, ok, err := g.store.Get(ctx, models.StorageKeyLoginTime)
	if err != nil {
		return g.state, err
	}
	loginAt, parsed := ParseLoginTime(rawTime)
	if ok && !parsed {
		g.log.Warn("discarding unreadable login time", map[string]interface{}{
			"error": apperrors.NewStorageCorruptError(models.StorageKeyLoginTime, fmt.Errorf("not an integer: %q", rawTime)),
		})
	}
	if !ok || !parsed || Expired(loginAt, g.now(), g.ttl) {
		if ok && parsed {
			metrics.SessionExpirations.WithLabelValues("restore").Inc()
			g.log.Info("stored session expired", map[string]interface{}{"loginAt": loginAt})
		}
		return g.state, g.clearLocked(ctx)
	}

	rawUser, ok, err := g.store.Get(ctx, models.StorageKeyUser)
	if err != nil {
		return g.state, err
	}
	if !ok {
		return g.state, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		g.log.Warn("discarding unreadable stored user", map[string]interface{}{
			"error": apperrors.NewStorageCorruptError(models.StorageKeyUser, err),
		})
		return g.state, g.clearLocked(ctx)
	}

	g.state = models.SessionState{LoggedIn: true, User: &user, LoginAt: loginAt}
	g.profile.Prime(&user)
	metrics.SessionLoggedIn.Set(1)
	return g.state, nil
}

// Login authenticates and persists the profile with the current time.
// On failure everything is cleared and the error carries the server's
// message, the transport error text or "Login failed", in that order.
func (g *Guard) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := g.auth.Login(ctx, username, password)

	g.mu.Lock()
	defer g.mu.Unlock()

	if err != nil {
		if clearErr := g.clearLocked(ctx); clearErr != nil {
			g.log.Warn("failed to clear storage after login failure", map[string]interface{}{"error": clearErr})
		}
		return nil, apperrors.NewLoginFailedError(apperrors.ServerMessage(err), err)
	}
	if user == nil {
		user = &models.User{Username: username}
	}

	now := g.now()
	g.state = models.SessionState{LoggedIn: true, User: user, LoginAt: now}
	g.profile.Prime(user)
	metrics.SessionLoggedIn.Set(1)

	payload, err := json.Marshal(user)
	if err != nil {
		return user, fmt.Errorf("encode user: %w", err)
	}
	if err := g.store.Set(ctx, models.StorageKeyUser, string(payload)); err != nil {
		return user, err
	}
	if err := g.store.Set(ctx, models.StorageKeyLoginTime, FormatLoginTime(now)); err != nil {
		return user, err
	}

	g.log.Info("logged in", map[string]interface{}{"user": user.DisplayName()})
	return user, nil
}

// Logout notifies the server and always clears local state, even when the
// server call fails.
func (g *Guard) Logout(ctx context.Context) error {
	if err := g.auth.Logout(ctx); err != nil {
		g.log.Error("logout request failed", map[string]interface{}{"error": err})
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = models.SessionState{}
	g.log.Info("logged out", nil)
	return g.clearLocked(ctx)
}

// Clear removes both persisted keys and resets the state.
func (g *Guard) Clear(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = models.SessionState{}
	return g.clearLocked(ctx)
}

func (g *Guard) clearLocked(ctx context.Context) error {
	g.profile.Invalidate()
	metrics.SessionLoggedIn.Set(0)
	return g.store.Remove(ctx, models.StorageKeyUser, models.StorageKeyLoginTime)
}

// Check ends a logged-in session whose stored login time is missing or
// older than the TTL. It reports whether the session ended.
func (g *Guard) Check(ctx context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.state.LoggedIn {
		return false, nil
	}

	rawTime, ok, err := g.store.Get(ctx, models.StorageKeyLoginTime)
	if err != nil {
		return false, err
	}
	loginAt, parsed := ParseLoginTime(rawTime)
	if ok && parsed && !Expired(loginAt, g.now(), g.ttl) {
		return false, nil
	}

	g.log.Info("session expired", map[string]interface{}{
		"user":    g.state.User.DisplayName(),
		"loginAt": g.state.LoginAt,
	})
	metrics.SessionExpirations.WithLabelValues("ttl").Inc()
	g.state = models.SessionState{}
	return true, g.clearLocked(ctx)
}

// Watch runs Check immediately and then every interval until the session
// ends (nil) or ctx is cancelled (ctx.Err()).
func (g *Guard) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}

	ended, err := g.checkOrLoggedOut(ctx)
	if err != nil || ended {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			ended, err := g.checkOrLoggedOut(ctx)
			if err != nil {
				g.log.Warn("session check failed", map[string]interface{}{"error": err})
				continue
			}
			if ended {
				return nil
			}
		}
	}
}

func (g *Guard) checkOrLoggedOut(ctx context.Context) (bool, error) {
	expired, err := g.Check(ctx)
	if err != nil {
		return false, err
	}
	if expired {
		return true, nil
	}
	return !g.State().LoggedIn, nil
}

// HandleUnauthorized reacts to a 401 from any API call. When a profile is
// stored it is dropped and true is returned: the caller must re-authenticate.
func (g *Guard) HandleUnauthorized(ctx context.Context) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok, err := g.store.Get(ctx, models.StorageKeyUser)
	if err != nil {
		g.log.Warn("cannot read stored user on 401", map[string]interface{}{"error": err})
	}
	if !ok {
		return false
	}

	if err := g.store.Remove(ctx, models.StorageKeyUser); err != nil {
		g.log.Warn("cannot remove stored user on 401", map[string]interface{}{"error": err})
	}
	g.profile.Invalidate()
	g.state = models.SessionState{}
	metrics.SessionLoggedIn.Set(0)
	metrics.SessionExpirations.WithLabelValues("unauthorized").Inc()
	g.log.Warn("server rejected session, re-authentication required", nil)
	return true
}

// ChangePassword returns the server's confirmation message.
func (g *Guard) ChangePassword(ctx context.Context, currentPassword, newPassword, confirmPassword string) (string, error) {
	if !g.State().LoggedIn {
		return "", apperrors.NewSessionNotFoundError()
	}
	return g.auth.ChangePassword(ctx, currentPassword, newPassword, confirmPassword)
}

// Profile returns the cached profile, fetching it once when needed.
func (g *Guard) Profile(ctx context.Context) (*models.User, error) {
	if !g.State().LoggedIn {
		return nil, apperrors.NewSessionNotFoundError()
	}
	return g.profile.Get(ctx)
}

// Require returns an error unless a valid session is held, ending it first
// if it has expired.
func (g *Guard) Require(ctx context.Context) error {
	loginAt := g.State().LoginAt
	expired, err := g.Check(ctx)
	if err != nil {
		return err
	}
	if expired {
		return apperrors.NewSessionExpiredError(loginAt)
	}
	if !g.State().LoggedIn {
		return apperrors.NewSessionNotFoundError()
	}
	return nil
}
