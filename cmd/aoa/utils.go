package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/unowned-ai/aoa/pkg/api"
	pkgdb "github.com/unowned-ai/aoa/pkg/db"
	"github.com/unowned-ai/aoa/pkg/journal"
	"github.com/unowned-ai/aoa/pkg/logging"
	"github.com/unowned-ai/aoa/pkg/session"
	"github.com/unowned-ai/aoa/pkg/utils"

	"github.com/charmbracelet/x/term"
)

var (
	apiURL   string
	dbPath   string
	walMode  bool
	syncMode string
	timeout  time.Duration
	langFlag string
	logLevel string

	lang   journal.Language = journal.LangHan
	logger logging.Logger   = logging.Discard()
)

// openDB opens and migrates the local store.
func openDB() (*sql.DB, error) {
	path, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, err
	}
	pkgdb.Progress = io.Discard
	return pkgdb.Open(path, walMode, syncMode)
}

// openStore is openDB wrapped in the session store.
func openStore() (*session.Store, func() error, error) {
	dbConn, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	return session.NewStore(dbConn), dbConn.Close, nil
}

func newClient() (*api.Client, error) {
	return api.NewClient(apiURL, api.WithTimeout(timeout), api.WithLogger(logger.With("component", "api")))
}

// terminalWidth is the stdout width, or 100 when stdout is not a terminal.
func terminalWidth() int {
	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return 100
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 100
	}
	return w
}

func formatTimestamp(ts *journal.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return "-"
	}
	return ts.Local().Format(time.RFC3339)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func printUser(w io.Writer, user journal.User) {
	fmt.Fprintln(w, "User Details:")
	fmt.Fprintf(w, "ID:         %d\n", user.ID)
	fmt.Fprintf(w, "Name:       %s\n", orDash(user.Name))
	fmt.Fprintf(w, "Email:      %s\n", user.Email)
	fmt.Fprintf(w, "Timezone:   %s\n", orDash(user.Timezone))
	fmt.Fprintf(w, "Created At: %s\n", formatTimestamp(&user.CreatedAt))
}

func printLog(w io.Writer, log journal.DailyLog) {
	fmt.Fprintln(w, "Daily Log:")
	fmt.Fprintf(w, "Date:          %s\n", log.LogDate)
	fmt.Fprintf(w, "Checked In:    %s\n", formatTimestamp(log.CheckinTime))
	fmt.Fprintf(w, "Attention:     %s\n", orDash(log.InAttention))
	fmt.Fprintf(w, "Obsession:     %s\n", orDash(log.InObsession))
	fmt.Fprintf(w, "Agency:        %s\n", orDash(log.InAgency))
	fmt.Fprintf(w, "Checked Out:   %s\n", formatTimestamp(log.CheckoutTime))
	fmt.Fprintf(w, "Learned:       %s\n", orDash(strings.Join(nonEmpty(log.OutTIL1, log.OutTIL2, log.OutTIL3), " / ")))
	fmt.Fprintf(w, "Reading:       %s\n", orDash(log.Reading))
	if len(log.LinkDumps) == 0 {
		fmt.Fprintln(w, "Links:         -")
		return
	}
	fmt.Fprintln(w, "Links:")
	for _, u := range log.URLs() {
		fmt.Fprintf(w, "  %s\n", u)
	}
}

func nonEmpty(values ...string) []string {
	out := []string{}
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
