package app

import (
	"context"
	"strings"
	"time"

	"github.com/unowned-ai/aoa/pkg/journal"
)

// SignUpDialog converts an anonymous check-in into an account plus its
// first log.
type SignUpDialog struct {
	api LogsAPI
	now Clock
	loc *time.Location

	Name      string
	Email     string
	Err       string
	Loading   bool
	IsOpen    bool
	Responses map[string]string
}

// NewSignUpDialog returns a closed dialog.
func NewSignUpDialog(client LogsAPI, now Clock, loc *time.Location) *SignUpDialog {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &SignUpDialog{api: client, now: now, loc: loc, Responses: map[string]string{}}
}

// Open shows the dialog carrying the answers that are waiting to be saved.
func (d *SignUpDialog) Open(responses map[string]string) {
	d.Responses = responses
	d.Err = ""
	d.IsOpen = true
}

// Close hides the dialog. Typed name and email are kept.
func (d *SignUpDialog) Close() {
	d.IsOpen = false
}

// CanSubmit requires both a name and an email.
func (d *SignUpDialog) CanSubmit() bool {
	return !d.Loading && strings.TrimSpace(d.Name) != "" && strings.TrimSpace(d.Email) != ""
}

// Payload builds the create-with-log request from the fields and pending answers.
func (d *SignUpDialog) Payload() journal.UserCreateWithLog {
	return journal.UserCreateWithLog{
		UserData: journal.UserCreate{
			Name:     strings.TrimSpace(d.Name),
			Email:    strings.TrimSpace(d.Email),
			Timezone: journal.LocalTimezone(),
		},
		LogData: journal.CheckinPayload(d.Responses, journal.Today(d.now(), d.loc)),
	}
}

// Submit creates the user with their first log. On failure the error text is
// kept in Err and the dialog stays open.
func (d *SignUpDialog) Submit(ctx context.Context) (journal.User, error) {
	d.Loading = true
	d.Err = ""
	defer func() { d.Loading = false }()

	user, err := d.api.CreateUserWithLog(ctx, d.Payload())
	if err != nil {
		d.Err = err.Error()
		return journal.User{}, err
	}
	return user, nil
}
