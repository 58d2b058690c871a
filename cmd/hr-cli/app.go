package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"hr-tracker/internal/api"
	"hr-tracker/internal/common/config"
	apperrors "hr-tracker/internal/common/errors"
	"hr-tracker/internal/common/i18n"
	"hr-tracker/internal/common/logger"
	"hr-tracker/internal/common/observability"
	"hr-tracker/internal/models"
	"hr-tracker/internal/session"
	"hr-tracker/internal/storage"
)

type app struct {
	cfg        *config.Config
	zapLog     *zap.Logger
	log        logger.Logger
	store      storage.Store
	closeStore func() error
	obs        *observability.Observability
	client     *api.Client
	guard      *session.Guard
	errs       *apperrors.ErrorHandler
	tr         *i18n.Translator
	out        io.Writer
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("HR_CONFIG"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, apperrors.NewConfigInvalidError(err)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	log := logger.NewZapAdapter(zapLog)

	a := &app{
		cfg:        cfg,
		zapLog:     zapLog,
		log:        log,
		closeStore: func() error { return nil },
		errs:       apperrors.NewErrorHandler(log),
		tr:         i18n.New(cfg.Locale),
		out:        os.Stdout,
	}

	err = retryWithBackoff(func() error {
		store, closeFn, err := storage.Open(ctx, cfg, log)
		if err != nil {
			return err
		}
		a.store, a.closeStore = store, closeFn
		return nil
	}, 3, 500*time.Millisecond, zapLog, "session storage")
	if err != nil {
		return nil, apperrors.NewStorageUnavailableError(cfg.Session.Storage, err)
	}

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		log.Warn("otel metrics disabled", map[string]interface{}{"error": err})
	}
	a.obs = obs

	a.client = api.New(cfg.API, log, api.WithRecorder(obs))
	a.guard = session.NewGuard(a.store, a.client, log, session.WithTTL(cfg.SessionTTL()))
	a.client.OnUnauthorized(func(ctx context.Context) bool {
		return a.guard.HandleUnauthorized(ctx)
	})

	if _, err := a.guard.Restore(ctx); err != nil {
		log.Warn("session restore failed", map[string]interface{}{"error": err})
	}
	a.loadCookies(ctx)
	return a, nil
}

func (a *app) Close() {
	if err := a.obs.Shutdown(); err != nil {
		a.log.Warn("metrics shutdown failed", map[string]interface{}{"error": err})
	}
	if err := a.closeStore(); err != nil {
		a.log.Warn("closing session storage failed", map[string]interface{}{"error": err})
	}
	_ = a.zapLog.Sync()
}

// savedCookie is the persisted form of an API session cookie.
type savedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (a *app) loadCookies(ctx context.Context) {
	if !a.guard.State().LoggedIn {
		return
	}
	raw, ok, err := a.store.Get(ctx, models.StorageKeyCookies)
	if err != nil || !ok {
		return
	}
	var saved []savedCookie
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		a.log.Warn("discarding unreadable cookies", map[string]interface{}{
			"error": apperrors.NewStorageCorruptError(models.StorageKeyCookies, err),
		})
		a.forgetCookies(ctx)
		return
	}
	cookies := make([]*http.Cookie, 0, len(saved))
	for _, c := range saved {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	a.client.SetCookies(cookies)
}

func (a *app) saveCookies(ctx context.Context) error {
	cookies := a.client.Cookies()
	saved := make([]savedCookie, 0, len(cookies))
	for _, c := range cookies {
		saved = append(saved, savedCookie{Name: c.Name, Value: c.Value})
	}
	raw, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, models.StorageKeyCookies, string(raw))
}

// forgetCookies drops the persisted API cookies once the session is gone.
func (a *app) forgetCookies(ctx context.Context) {
	if err := a.store.Remove(ctx, models.StorageKeyCookies); err != nil {
		a.log.Warn("removing stored cookies failed", map[string]interface{}{"error": err})
	}
}

// requireSession ends an expired session and reports whether a command that
// needs authentication may proceed.
func (a *app) requireSession(ctx context.Context, operation string) bool {
	if err := a.guard.Require(ctx); err != nil {
		a.forgetCookies(ctx)
		a.fail(operation, err)
		a.println("Run `hr-cli login` to sign in.")
		return false
	}
	return true
}

// fail logs err and prints the user-facing message. It returns the exit code.
func (a *app) fail(operation string, err error) int {
	msg := a.errs.Handle(operation, err)
	fmt.Fprintf(os.Stderr, "Error: %s\n", a.tr.T(msg))
	if apperrors.HasCode(err, apperrors.ErrCodeAPIUnauthorized) {
		a.forgetCookies(context.Background())
		fmt.Fprintln(os.Stderr, "Session rejected by the server. Run `hr-cli login` again.")
	}
	return 1
}

func (a *app) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}
