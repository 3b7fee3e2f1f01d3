package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yetria/yetria/internal/advisor"
	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/results"
)

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Generate narrative career guidance from your results",
	Long: "Generate narrative career guidance from your results with the configured LLM\n" +
		"provider. Insights are cached per result and language; --regenerate replaces\n" +
		"the cached one. --draft prints guidance built from the scores alone.",
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, _ := cmd.Flags().GetBool("draft")
		regenerate, _ := cmd.Flags().GetBool("regenerate")
		style, _ := cmd.Flags().GetString("style")
		width, _ := cmd.Flags().GetInt("width")

		d, err := setup(cmd, setupOptions{withAdvisor: !draft})
		if err != nil {
			return err
		}
		defer d.Close()
		if _, err := d.requireUser(); err != nil {
			return err
		}

		report, err := results.Load(cmd.Context(), d.client, d.log)
		if err != nil {
			return d.fail(err)
		}
		if report.Empty() {
			fmt.Fprintln(cmd.OutOrStdout(), d.tr.T(i18n.KeyResultsNoResult))
			return nil
		}

		var in advisor.Insight
		if draft {
			in = advisor.Draft(report, d.tr)
		} else {
			generate := d.advisor.Generate
			if regenerate {
				generate = d.advisor.Regenerate
			}
			res, err := generate(cmd.Context(), report, d.tr.Locale())
			if errors.Is(err, advisor.ErrNotConfigured) {
				return errors.New(d.tr.T(i18n.KeyResultsInsightUnavailable))
			}
			if err != nil {
				return err
			}
			d.log.Debug("career insight ready",
				zap.String("provider", res.Provider),
				zap.String("model", res.Model),
				zap.Bool("cached", res.Cached),
			)
			in = res.Insight
		}

		out, err := advisor.Render(in.Markdown(d.tr), style, width)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	insightCmd.Flags().Bool("draft", false, "Build guidance from the scores without an LLM")
	insightCmd.Flags().Bool("regenerate", false, "Ignore the cached insight")
	insightCmd.Flags().String("style", "", "Markdown style: dark, light, notty (default: detect)")
	insightCmd.Flags().Int("width", 80, "Wrap width")
}
