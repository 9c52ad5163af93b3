package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/unowned-ai/aoa/pkg/api"
	"github.com/unowned-ai/aoa/pkg/journal"
	"github.com/unowned-ai/aoa/pkg/logging"
	"github.com/unowned-ai/aoa/pkg/session"
)

// Dashboard is the read-only history of a user's logs.
type Dashboard struct {
	api   LogsAPI
	store UserStore
	log   logging.Logger

	User    *journal.User
	Views   journal.Views
	Err     string
	Loading bool
}

// NewDashboard returns a dashboard that has not loaded yet.
func NewDashboard(client LogsAPI, store UserStore, log logging.Logger) *Dashboard {
	if log == nil {
		log = logging.Discard()
	}
	return &Dashboard{api: client, store: store, log: log, Loading: true, Views: journal.BuildViews(nil)}
}

// SignedIn reports whether there is a user to show logs for.
func (d *Dashboard) SignedIn() bool {
	return d.User != nil
}

// Load reads the stored user and fetches their logs once. A user without logs
// yet gets empty tables.
func (d *Dashboard) Load(ctx context.Context) error {
	defer func() { d.Loading = false }()

	user, err := d.store.LoadUser(ctx)
	if errors.Is(err, session.ErrCorruptUser) {
		d.log.Warn(ctx, "ignoring unreadable stored user", "err", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	d.User = user
	if user == nil || user.ID == 0 {
		return nil
	}

	logs, err := d.api.GetLogsForUser(ctx, user.ID)
	if err != nil && !api.IsNotFound(err) {
		d.log.Error(ctx, "failed to fetch logs", "user_id", user.ID, "err", err)
		d.Err = err.Error()
		return nil
	}
	d.Views = journal.BuildViews(logs)
	return nil
}
