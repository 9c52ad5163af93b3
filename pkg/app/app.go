// Package app holds the page controllers: the state behind the check-in
// page, the sign-up dialog and the dashboard, independent of how they are
// drawn.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/unowned-ai/aoa/pkg/journal"
)

// FetchFailedMessage is shown when today's log cannot be loaded for a reason
// other than it not existing yet.
const FetchFailedMessage = "Could not fetch your daily log."

var (
	ErrNoUser = errors.New("no user signed up on this machine")
	ErrNoLog  = errors.New("no log for today to check out")
)

// LogsAPI is the part of the remote API the pages use.
type LogsAPI interface {
	GetLogsForUser(ctx context.Context, userID int64) ([]journal.DailyLog, error)
	GetLogByDate(ctx context.Context, userID int64, date string) (*journal.DailyLog, error)
	CreateDailyLog(ctx context.Context, payload journal.DailyLogCreate, userID int64) (journal.DailyLog, error)
	CreateCheckoutLog(ctx context.Context, userID int64, date string, payload journal.DailyLogCheckout) (journal.DailyLog, error)
	CreateUserWithLog(ctx context.Context, payload journal.UserCreateWithLog) (journal.User, error)
}

// UserStore remembers the signed-up user between runs.
type UserStore interface {
	LoadUser(ctx context.Context) (*journal.User, error)
	SaveUser(ctx context.Context, user journal.User) error
}

// Clock yields the current time; tests pin it.
type Clock func() time.Time
