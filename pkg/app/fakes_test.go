package app

import (
	"context"
	"time"

	"github.com/unowned-ai/aoa/pkg/api"
	"github.com/unowned-ai/aoa/pkg/journal"
)

type fakeAPI struct {
	logByDate    *journal.DailyLog
	logByDateErr error
	logs         []journal.DailyLog
	logsErr      error
	createErr    error
	checkoutErr  error
	signUpUser   journal.User
	signUpErr    error

	getByDateCalls int
	getLogsCalls   int
	lastDate       string
	created        []journal.DailyLogCreate
	checkouts      []journal.DailyLogCheckout
	signUps        []journal.UserCreateWithLog
}

func (f *fakeAPI) GetLogsForUser(_ context.Context, _ int64) ([]journal.DailyLog, error) {
	f.getLogsCalls++
	return f.logs, f.logsErr
}

func (f *fakeAPI) GetLogByDate(_ context.Context, _ int64, date string) (*journal.DailyLog, error) {
	f.getByDateCalls++
	f.lastDate = date
	return f.logByDate, f.logByDateErr
}

func (f *fakeAPI) CreateDailyLog(_ context.Context, payload journal.DailyLogCreate, userID int64) (journal.DailyLog, error) {
	f.created = append(f.created, payload)
	if f.createErr != nil {
		return journal.DailyLog{}, f.createErr
	}
	return journal.DailyLog{ID: 1, UserID: userID, LogDate: payload.LogDate, InAttention: payload.InAttention}, nil
}

func (f *fakeAPI) CreateCheckoutLog(_ context.Context, userID int64, date string, payload journal.DailyLogCheckout) (journal.DailyLog, error) {
	f.checkouts = append(f.checkouts, payload)
	if f.checkoutErr != nil {
		return journal.DailyLog{}, f.checkoutErr
	}
	return journal.DailyLog{ID: 1, UserID: userID, LogDate: date, OutTIL1: payload.OutTIL1}, nil
}

func (f *fakeAPI) CreateUserWithLog(_ context.Context, payload journal.UserCreateWithLog) (journal.User, error) {
	f.signUps = append(f.signUps, payload)
	return f.signUpUser, f.signUpErr
}

type fakeStore struct {
	user    *journal.User
	loadErr error
	saveErr error
	saved   []journal.User
}

func (s *fakeStore) LoadUser(_ context.Context) (*journal.User, error) {
	return s.user, s.loadErr
}

func (s *fakeStore) SaveUser(_ context.Context, user journal.User) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, user)
	s.user = &user
	return nil
}

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func notFound() error {
	return &api.Error{StatusCode: 404, Detail: "No logs found for this user"}
}
