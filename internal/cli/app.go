// Package cli is the interactive front end for the Moneta core. It stands
// in for the mobile UI: every core operation can be exercised from the
// prompt. The package is also the composition root: stores, services, and
// collaborators are constructed here and passed by reference, never held in
// globals.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/moneta-app/moneta/internal/accounts"
	"github.com/moneta-app/moneta/internal/config"
	"github.com/moneta-app/moneta/internal/cryptox"
	"github.com/moneta-app/moneta/internal/kvstore"
	"github.com/moneta-app/moneta/internal/logging"
	"github.com/moneta-app/moneta/internal/notifications"
	"github.com/moneta-app/moneta/internal/reminders"
	"github.com/moneta-app/moneta/internal/session"
	"github.com/moneta-app/moneta/internal/storage"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB
	reader *bufio.Reader

	session     *session.Manager
	scheduler   *reminders.Scheduler
	feed        *notifications.Log
	coordinator *notifications.Coordinator
}

func slogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewApp wires the whole core together from config.
func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(cfg.LogLevel),
	})
	log := logging.NewSlogLogger(slog.New(handler))

	db, err := storage.InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	repo := accounts.NewSQLiteRepository(db)
	kv := kvstore.NewSQLiteStore(db)

	// The CLI has no fingerprint sensor; quick-access approves by default.
	// The mobile shell supplies the real sensor-backed authenticator.
	biometric := session.StubAuthenticator{Allow: true}

	mgr := session.NewManager(repo, cryptox.Argon2Hasher{}, biometric, kv, log, session.Options{
		AutoProvisionOnUnknownEmail: cfg.AutoProvisionOnUnknownEmail,
	})

	registrar := reminders.NewInMemoryRegistrar()
	scheduler := reminders.NewScheduler(registrar, cfg.RegistrarTimeout, log)
	feed := notifications.NewLog(kv, log)
	coordinator := notifications.NewCoordinator(scheduler, feed, log)

	return &App{
		config:      cfg,
		log:         log,
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
		session:     mgr,
		scheduler:   scheduler,
		feed:        feed,
		coordinator: coordinator,
	}, nil
}

func (a *App) Run() {
	defer a.Close()
	a.Root(context.Background())
}

func (a *App) Close() {
	_ = a.db.Close()
}
