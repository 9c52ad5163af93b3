package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unowned-ai/aoa/pkg/api"
	"github.com/unowned-ai/aoa/pkg/journal"
	"github.com/unowned-ai/aoa/pkg/logging"
	"github.com/unowned-ai/aoa/pkg/session"
)

// CheckinPage is the home page: morning check-in or, once checked in,
// evening checkout of today's log.
type CheckinPage struct {
	api   LogsAPI
	store UserStore
	log   logging.Logger
	now   Clock
	loc   *time.Location

	User    *journal.User
	Today   *journal.DailyLog
	Form    *journal.Form
	Err     string
	Saved   bool
	Loading bool
	Dialog  *SignUpDialog
}

// PageOption customizes a CheckinPage.
type PageOption func(*CheckinPage)

// WithClock replaces time.Now.
func WithClock(c Clock) PageOption {
	return func(p *CheckinPage) { p.now = c }
}

// WithLocation sets the zone used to decide which calendar day "today" is.
func WithLocation(loc *time.Location) PageOption {
	return func(p *CheckinPage) { p.loc = loc }
}

// WithPageLogger attaches a logger.
func WithPageLogger(l logging.Logger) PageOption {
	return func(p *CheckinPage) { p.log = l }
}

// NewCheckinPage returns an anonymous page in check-in mode.
func NewCheckinPage(client LogsAPI, store UserStore, opts ...PageOption) *CheckinPage {
	p := &CheckinPage{
		api:   client,
		store: store,
		log:   logging.Discard(),
		now:   time.Now,
		loc:   time.Local,
		Form:  journal.NewForm(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Dialog = NewSignUpDialog(client, p.now, p.loc)
	return p
}

// Date is today's log date.
func (p *CheckinPage) Date() string {
	return journal.Today(p.now(), p.loc)
}

// Now returns the page clock's current time in the page's zone.
func (p *CheckinPage) Now() time.Time {
	return p.now().In(p.loc)
}

// Bootstrap restores the stored user and, when there is one, loads today's log.
// A stored user that cannot be decoded is dropped and the page stays anonymous.
func (p *CheckinPage) Bootstrap(ctx context.Context) error {
	user, err := p.store.LoadUser(ctx)
	if errors.Is(err, session.ErrCorruptUser) {
		p.log.Warn(ctx, "ignoring unreadable stored user", "err", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if user == nil {
		return nil
	}
	p.User = user
	p.refreshToday(ctx, true)
	return nil
}

// refreshToday loads today's log and flips to checkout mode when it already
// has a check-in. With surface set, failures other than 404 land in Err.
func (p *CheckinPage) refreshToday(ctx context.Context, surface bool) {
	date := p.Date()
	log, err := p.api.GetLogByDate(ctx, p.User.ID, date)
	if err != nil {
		if api.IsNotFound(err) {
			p.log.Debug(ctx, "no log yet", "user_id", p.User.ID, "date", date)
			return
		}
		p.log.Error(ctx, "failed to fetch daily log", "user_id", p.User.ID, "date", date, "err", err)
		if surface {
			p.Err = FetchFailedMessage
		}
		return
	}
	if log == nil {
		return
	}
	p.Today = log
	if log.CheckedIn() {
		p.Form.SwitchToCheckout(*log)
	}
}

// CanSave reports whether the save action is offered.
func (p *CheckinPage) CanSave() bool {
	return p.Form.CanSave() && !p.Saved
}

// Save submits the answers. Anonymous users get the sign-up dialog opened with
// the pending answers and ErrNoUser back. API failures are kept in Err verbatim.
func (p *CheckinPage) Save(ctx context.Context) error {
	p.Loading = true
	p.Err = ""
	defer func() { p.Loading = false }()

	var err error
	if p.Form.Mode == journal.ModeCheckout {
		err = p.saveCheckout(ctx)
	} else {
		err = p.saveCheckin(ctx)
	}
	if err != nil && !errors.Is(err, ErrNoUser) && !errors.Is(err, ErrNoLog) {
		p.Err = err.Error()
	}
	return err
}

func (p *CheckinPage) saveCheckin(ctx context.Context) error {
	if p.User == nil {
		p.Dialog.Open(p.Form.Responses())
		return ErrNoUser
	}

	payload := journal.CheckinPayload(p.Form.Responses(), p.Date())
	log, err := p.api.CreateDailyLog(ctx, payload, p.User.ID)
	if err != nil {
		return err
	}
	p.Today = &log
	p.Saved = true
	p.log.Info(ctx, "checked in", "user_id", p.User.ID, "date", log.LogDate)
	return nil
}

func (p *CheckinPage) saveCheckout(ctx context.Context) error {
	if p.User == nil {
		return ErrNoUser
	}
	if p.Today == nil {
		return ErrNoLog
	}

	payload := journal.CheckoutPayload(p.Form.Responses())
	log, err := p.api.CreateCheckoutLog(ctx, p.User.ID, p.Today.LogDate, payload)
	if err != nil {
		return err
	}
	p.Today = &log
	p.Saved = true
	p.log.Info(ctx, "checked out", "user_id", p.User.ID, "date", log.LogDate, "links", len(payload.LinkDumps))
	return nil
}

// CompleteSignUp adopts the user created by the dialog: it is stored, becomes
// the current user, and today's log is re-read to settle the mode.
func (p *CheckinPage) CompleteSignUp(ctx context.Context, user journal.User) error {
	if err := p.store.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to remember user: %w", err)
	}
	p.User = &user
	p.refreshToday(ctx, false)
	p.Dialog.Close()
	p.Saved = true
	p.log.Info(ctx, "signed up", "user_id", user.ID)
	return nil
}
