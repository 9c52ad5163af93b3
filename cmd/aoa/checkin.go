package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/unowned-ai/aoa/pkg/app"
	"github.com/unowned-ai/aoa/pkg/journal"
	"github.com/unowned-ai/aoa/pkg/tui"

	"github.com/spf13/cobra"
)

var errNoStoredUser = errors.New("no user is signed up on this machine; run `aoa signup` or `aoa checkin --name NAME --email EMAIL`")

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Morning check-in (interactive unless answers are given as flags)",
	Long: `Without flags, opens the check-in page: the clock, the three questions and the save action.
Once today is checked in the same page becomes the evening checkout.

With --attention (and optionally --obsession, --agency) the check-in is saved directly.
On a machine where nobody has signed up yet, pass --name and --email to create the
account together with this first check-in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("attention") && !flags.Changed("obsession") && !flags.Changed("agency") {
			return runInteractivePage(cmd)
		}

		page, closeStore, err := bootstrapPage(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		if page.Form.Mode == journal.ModeCheckout {
			return fmt.Errorf("already checked in for %s; use `aoa checkout`", page.Today.LogDate)
		}
		for flag, key := range map[string]string{
			"attention": journal.KeyAttention,
			"obsession": journal.KeyObsession,
			"agency":    journal.KeyAgency,
		} {
			v, _ := flags.GetString(flag)
			page.Form.Set(key, v)
		}
		if !page.CanSave() {
			return errors.New("--attention must not be empty")
		}

		err = page.Save(cmd.Context())
		if errors.Is(err, app.ErrNoUser) {
			return signUpWithCheckin(cmd, page)
		}
		if err != nil {
			return fmt.Errorf("failed to check in: %w", err)
		}
		printLog(cmd.OutOrStdout(), *page.Today)
		return nil
	},
}

// signUpWithCheckin completes an anonymous check-in through the sign-up dialog.
func signUpWithCheckin(cmd *cobra.Command, page *app.CheckinPage) error {
	page.Dialog.Name, _ = cmd.Flags().GetString("name")
	page.Dialog.Email, _ = cmd.Flags().GetString("email")
	if !page.Dialog.CanSubmit() {
		return errNoStoredUser
	}

	user, err := page.Dialog.Submit(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to sign up: %w", err)
	}
	if err := page.CompleteSignUp(cmd.Context(), user); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed up as %s (id %d).\n", user.Email, user.ID)
	if page.Today != nil {
		printLog(cmd.OutOrStdout(), *page.Today)
	}
	return nil
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Evening checkout (interactive unless answers are given as flags)",
	Long: `Without flags, opens the page in checkout mode when today is already checked in.

With --til (and optionally --til2, --til3, --reading, --link) the checkout is saved directly.
Flags that are not given keep what today's log already has.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		given := false
		for _, name := range []string{"til", "til2", "til3", "reading", "link"} {
			given = given || flags.Changed(name)
		}
		if !given {
			return runInteractivePage(cmd)
		}

		page, closeStore, err := bootstrapPage(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		if page.User == nil {
			return errNoStoredUser
		}
		if page.Today == nil {
			return fmt.Errorf("%w; run `aoa checkin` first", app.ErrNoLog)
		}
		if page.Form.Mode != journal.ModeCheckout {
			page.Form.SwitchToCheckout(*page.Today)
		}

		for flag, key := range map[string]string{
			"til":     journal.KeyTIL1,
			"til2":    journal.KeyTIL2,
			"til3":    journal.KeyTIL3,
			"reading": journal.KeyReading,
		} {
			if flags.Changed(flag) {
				v, _ := flags.GetString(flag)
				page.Form.Set(key, v)
			}
		}
		if flags.Changed("link") {
			page.Form.Set(journal.KeyLinkDumps, linkText(cmd))
		}
		if !page.Form.CanSave() {
			return errors.New("--til must not be empty")
		}

		if err := page.Save(cmd.Context()); err != nil {
			return fmt.Errorf("failed to check out: %w", err)
		}
		printLog(cmd.OutOrStdout(), *page.Today)
		return nil
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's log",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, closeStore, err := bootstrapPage(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		if page.User == nil {
			return errNoStoredUser
		}
		if page.Today == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Nothing recorded for %s yet.\n", page.Date())
			return nil
		}
		printLog(cmd.OutOrStdout(), *page.Today)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit fields of a past or present log",
	Long:  `Applies a partial update to the log of --date. Only the given flags are changed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		date, _ := flags.GetString("date")
		if _, err := time.Parse(journal.DateLayout, date); err != nil {
			return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", date)
		}

		var update journal.DailyLogUpdate
		for flag, field := range map[string]**string{
			"attention": &update.InAttention,
			"obsession": &update.InObsession,
			"agency":    &update.InAgency,
			"til":       &update.OutTIL1,
			"til2":      &update.OutTIL2,
			"til3":      &update.OutTIL3,
			"reading":   &update.Reading,
		} {
			if flags.Changed(flag) {
				v, _ := flags.GetString(flag)
				*field = &v
			}
		}
		if flags.Changed("link") {
			links := journal.ParseLinks(linkText(cmd))
			update.LinkDumps = &links
		}
		if update.Empty() {
			return errors.New("nothing to change: pass at least one field flag")
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()
		user, err := store.LoadUser(cmd.Context())
		if err != nil {
			return err
		}
		if user == nil {
			return errNoStoredUser
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		log, err := client.EditDailyLog(cmd.Context(), user.ID, date, update)
		if err != nil {
			return fmt.Errorf("failed to edit log for %s: %w", date, err)
		}
		printLog(cmd.OutOrStdout(), log)
		return nil
	},
}

// bootstrapPage opens the store and API client and restores the page state.
// A fetch failure other than "no log yet" is returned as an error.
func bootstrapPage(cmd *cobra.Command) (*app.CheckinPage, func() error, error) {
	store, closeStore, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	client, err := newClient()
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	page := app.NewCheckinPage(client, store, app.WithPageLogger(logger))
	if err := page.Bootstrap(cmd.Context()); err != nil {
		closeStore()
		return nil, nil, err
	}
	if page.Err != "" {
		closeStore()
		return nil, nil, errors.New(page.Err)
	}
	return page, closeStore, nil
}

func runInteractivePage(cmd *cobra.Command) error {
	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()
	client, err := newClient()
	if err != nil {
		return err
	}

	page := app.NewCheckinPage(client, store, app.WithPageLogger(logger))
	openDashboard, err := tui.ShowCheckin(cmd.Context(), page, lang)
	if err != nil {
		return err
	}
	if openDashboard {
		return tui.ShowDashboard(cmd.Context(), app.NewDashboard(client, store, logger))
	}
	return nil
}

func addAnswerFlags(cmd *cobra.Command, checkin, checkout bool) {
	if checkin {
		cmd.Flags().String("attention", "", "Where is your attention at today?")
		cmd.Flags().String("obsession", "", "Are you obsessed with it?")
		cmd.Flags().String("agency", "", "What agency are you taking for it today?")
	}
	if checkout {
		cmd.Flags().String("til", "", "Today I learned... (be short, so you can remember)")
		cmd.Flags().String("til2", "", "Anything else you learned")
		cmd.Flags().String("til3", "", "Even more you learned")
		cmd.Flags().String("reading", "", "What you read, watched, or listened to")
		cmd.Flags().StringArray("link", nil, "Link to keep (repeatable)")
	}
}

// linkText joins every --link value one per line, as the links answer is typed.
// Each value is kept whole; URLs may contain commas.
func linkText(cmd *cobra.Command) string {
	links, _ := cmd.Flags().GetStringArray("link")
	return strings.Join(links, "\n")
}

func initCheckinCmds() {
	addAnswerFlags(checkinCmd, true, false)
	checkinCmd.Flags().String("name", "", "Your name, to sign up with this first check-in")
	checkinCmd.Flags().String("email", "", "Your email, to sign up with this first check-in")

	addAnswerFlags(checkoutCmd, false, true)

	addAnswerFlags(editCmd, true, true)
	editCmd.Flags().String("date", "", "Date of the log to edit (YYYY-MM-DD)")
	editCmd.MarkFlagRequired("date")

	rootCmd.AddCommand(checkinCmd, checkoutCmd, todayCmd, editCmd)
}
