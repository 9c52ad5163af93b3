package main

import (
	"fmt"
	"os"
	"strings"

	aoa "github.com/unowned-ai/aoa/pkg"
	"github.com/unowned-ai/aoa/pkg/api"
	pkgdb "github.com/unowned-ai/aoa/pkg/db"
	"github.com/unowned-ai/aoa/pkg/journal"
	"github.com/unowned-ai/aoa/pkg/logging"
	"github.com/unowned-ai/aoa/pkg/utils"

	"github.com/spf13/cobra"
)

const (
	envAPIURL = "AOA_API_URL"
	envDBPath = "AOA_DB"
)

var rootCmd = &cobra.Command{
	Use:   "aoa",
	Short: "Attention, obsession, agency: a daily check-in and checkout journal.",
	Long: `aoa keeps a two-part daily journal on the AOA API.

In the morning, check in: where is your attention, are you obsessed with it,
what agency are you taking. In the evening, check out: what you learned, what
you read, which links you want to keep.

The signed-up user is remembered in a local SQLite store.`,
	Version:       fmt.Sprintf("v%s", aoa.Version),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// loadConfig applies environment fallbacks and validates the global flags.
func loadConfig(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if !flags.Changed("api") {
		if v := os.Getenv(envAPIURL); v != "" {
			apiURL = v
		}
	}
	if !flags.Changed("db") {
		if v := os.Getenv(envDBPath); v != "" {
			dbPath = v
		}
	}

	l, err := journal.ParseLanguage(langFlag)
	if err != nil {
		return err
	}
	lang = l

	lg, err := logging.New(os.Stderr, logLevel)
	if err != nil {
		return err
	}
	logger = lg
	return nil
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for aoa.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(aoa completion bash)

  Zsh:
    $ aoa completion zsh > "${fpath[1]}/_aoa"

  Fish:
    $ aoa completion fish > ~/.config/fish/completions/aoa.fish

  PowerShell:
    PS> aoa completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of aoa",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), aoa.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the local store",
	Long:  `Provides commands for managing the local SQLite store that remembers the signed-up user.`,
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade the local store schema to the latest version",
	Long: `Opens the SQLite store (the --db flag, $AOA_DB, or the system default) and applies any
necessary schema migrations. A missing store is created and initialized.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := utils.ResolveAndEnsureDBPath(dbPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Upgrading local store at: %s (WAL: %t, Sync: %s)\n", path, walMode, syncMode)

		dbConn, err := pkgdb.OpenDBConnection(path, walMode, syncMode)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		return pkgdb.UpgradeDB(dbConn, path, pkgdb.TargetSchemaVersion)
	},
}

func initCmd() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&apiURL, "api", api.DefaultBaseURL, "Base URL of the AOA API (env "+envAPIURL+")")
	pf.StringVar(&dbPath, "db", "", "Path to the local store (env "+envDBPath+", uses a system-specific default if not provided)")
	pf.BoolVar(&walMode, "wal", false, "Enable SQLite WAL (Write-Ahead Logging) mode")
	pf.StringVar(&syncMode, "sync", "FULL", "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA)")
	pf.DurationVar(&timeout, "timeout", api.DefaultTimeout, "Timeout for each API request")
	pf.StringVar(&langFlag, "lang", string(journal.LangHan), "Weekday labels in the header (eng, han)")
	pf.StringVar(&logLevel, "log-level", "warn", "Log level on stderr (debug, info, warn, error)")

	dbCmd.AddCommand(dbUpgradeCmd)

	initCheckinCmds()
	initDashboardCmd()
	initUsersCmds()
	initMCPCmd()
	rootCmd.AddCommand(completionCmd, versionCmd, dbCmd)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
