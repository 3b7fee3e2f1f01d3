package cmd

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/assessment"
	"github.com/yetria/yetria/internal/i18n"
)

type stageRow struct {
	Stage int    `json:"stage" yaml:"stage"`
	State string `json:"state" yaml:"state"`
}

type progressReport struct {
	CompletedStages       []int      `json:"completed_stages" yaml:"completed_stages"`
	CurrentStage          int        `json:"current_stage" yaml:"current_stage"`
	Stages                []stageRow `json:"stages" yaml:"stages"`
	ResultsReady          bool       `json:"results_ready" yaml:"results_ready"`
	RecommendedOccupation string     `json:"recommended_occupation,omitempty" yaml:"recommended_occupation,omitempty"`
	Offline               bool       `json:"offline,omitempty" yaml:"offline,omitempty"`
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show which assessment stages are completed, ready or locked",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd, setupOptions{})
		if err != nil {
			return err
		}
		defer d.Close()
		if _, err := d.requireUser(); err != nil {
			return err
		}

		boot, err := d.service.Bootstrap(cmd.Context())
		if err != nil {
			return d.fail(err)
		}
		rep := newProgressReport(boot)
		if rep.Offline {
			fmt.Fprintln(cmd.ErrOrStderr(), d.tr.T(i18n.KeyJourneyOffline))
		}
		return render(cmd, rep, func(t table.Writer) {
			t.AppendHeader(table.Row{"Stage", "State"})
			for _, s := range rep.Stages {
				t.AppendRow(table.Row{d.tr.Tf(i18n.KeyStageLabel, s.Stage), s.State})
			}
			t.AppendFooter(table.Row{"", d.tr.Tf(i18n.KeyHomeProgress, len(rep.CompletedStages), assessment.StageCount)})
		})
	},
}

func newProgressReport(boot *assessment.Boot) progressReport {
	j := boot.Journey
	rep := progressReport{
		CompletedStages: j.Completed(),
		CurrentStage:    j.Current(),
		ResultsReady:    j.AllComplete(),
		Offline:         boot.Offline,
	}
	for i, st := range j.States() {
		rep.Stages = append(rep.Stages, stageRow{Stage: i + 1, State: st.String()})
	}
	if boot.Status != nil {
		rep.ResultsReady = rep.ResultsReady || boot.Status.CanViewResults
		rep.RecommendedOccupation = boot.Status.RecommendedOccupation
	}
	return rep
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the scenarios of one stage",
	RunE: func(cmd *cobra.Command, args []string) error {
		stage, _ := cmd.Flags().GetInt("stage")
		if stage < 1 || stage > assessment.StageCount {
			return fmt.Errorf("--stage must be between 1 and %d", assessment.StageCount)
		}
		d, err := setup(cmd, setupOptions{})
		if err != nil {
			return err
		}
		defer d.Close()
		if _, err := d.requireUser(); err != nil {
			return err
		}

		scenarios, err := d.service.FetchStage(cmd.Context(), stage)
		if err != nil {
			return d.fail(err)
		}
		if len(scenarios) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), d.tr.T(i18n.KeyFlowEmpty))
			return nil
		}
		return render(cmd, scenarios, func(t table.Writer) {
			t.AppendHeader(table.Row{"ID", "Competency", "Situation", "Options"})
			for _, s := range scenarios {
				t.AppendRow(table.Row{s.ID, s.CompetencyName, truncate(s.Text, 60), optionLetters(s.Options)})
			}
		})
	},
}

func optionLetters(opts []api.Option) string {
	letters := make([]string, len(opts))
	for i, o := range opts {
		letters[i] = o.Letter
	}
	return strings.Join(letters, " ")
}

func init() {
	addOutputFlag(progressCmd)
	addOutputFlag(scenariosCmd)
	scenariosCmd.Flags().Int("stage", 1, "Stage number (1-4)")
}
