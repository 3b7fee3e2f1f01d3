package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yetria/yetria/internal/app"
)

// runApp builds dependencies and runs the terminal UI until it exits.
// Logs go to a file so they do not corrupt the screen.
func runApp(cmd *cobra.Command) error {
	d, err := setup(cmd, setupOptions{logToFile: true, withAdvisor: true})
	if err != nil {
		return err
	}
	defer d.Close()

	d.log.Info("starting",
		zap.String("version", version),
		zap.String("api", d.client.BaseURL()),
		zap.String("locale", string(d.tr.Locale())),
		zap.Bool("signed_in", d.identity.IsAuthenticated()),
		zap.Bool("insight", d.advisor.Available()),
	)
	if err := app.Run(cmd.Context(), d.env()); err != nil && !errors.Is(err, cmd.Context().Err()) {
		return fmt.Errorf("yetria: %w", err)
	}
	return nil
}
