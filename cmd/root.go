package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yetria/yetria/internal/config"
)

// settings collects flags, environment and the config file. Flags are
// bound in init so they override everything else.
var settings = config.New()

var rootCmd = &cobra.Command{
	Use:   "yetria",
	Short: "Career guidance from situational assessments",
	Long: "Yetria runs a four-stage situational assessment against the Yetria service and\n" +
		"recommends occupations, mentors and courses. Without a subcommand it starts the\n" +
		"interactive terminal app.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the command line. Cancelling ctx stops the running command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file (default: search the config dir and .)")
	pf.String("api-url", "", "Base URL of the Yetria API (overrides YETRIA_API_BASE_URL)")
	pf.String("db", "", "Path to the SQLite database file (overrides YETRIA_DB)")
	pf.String("locale", "", "Display language: en or tr (overrides YETRIA_LOCALE)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	_ = settings.BindPFlag("api.base_url", pf.Lookup("api-url"))
	_ = settings.BindPFlag("db", pf.Lookup("db"))
	_ = settings.BindPFlag("locale", pf.Lookup("locale"))
	_ = settings.BindPFlag("log.level", pf.Lookup("log-level"))

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(mentorsCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(insightCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
