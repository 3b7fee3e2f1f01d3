package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/results"
)

type matchRow struct {
	Occupation string  `json:"occupation" yaml:"occupation"`
	Score      float64 `json:"score" yaml:"score"`
}

type scoreRow struct {
	Competency   string   `json:"competency" yaml:"competency"`
	User         float64  `json:"user" yaml:"user"`
	GroupAverage *float64 `json:"group_average,omitempty" yaml:"group_average,omitempty"`
}

type resultsView struct {
	Winner      string     `json:"winner" yaml:"winner"`
	WinnerScore float64    `json:"winner_score" yaml:"winner_score"`
	Matches     []matchRow `json:"matches" yaml:"matches"`
	Scores      []scoreRow `json:"competencies" yaml:"competencies"`
	Strengths   []string   `json:"strengths" yaml:"strengths"`
	GrowthAreas []string   `json:"growth_areas" yaml:"growth_areas"`
	CompletedAt string     `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

func newResultsView(r *results.Report, tr *i18n.Translator) resultsView {
	v := resultsView{Winner: r.Winner, WinnerScore: r.WinnerScore, CompletedAt: r.CompletedAt}
	for _, m := range r.Matches {
		v.Matches = append(v.Matches, matchRow(m))
	}
	for _, s := range r.Scores {
		row := scoreRow{Competency: s.Name(tr), User: s.User}
		if s.HasGroup {
			avg := s.GroupAverage
			row.GroupAverage = &avg
		}
		v.Scores = append(v.Scores, row)
	}
	for _, s := range r.Strengths() {
		v.Strengths = append(v.Strengths, s.Name(tr))
	}
	for _, s := range r.GrowthAreas() {
		v.GrowthAreas = append(v.GrowthAreas, s.Name(tr))
	}
	return v
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the occupation match and competency scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd, setupOptions{})
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
		tr := d.tr
		v := newResultsView(report, tr)
		return render(cmd, v, func(t table.Writer) {
			t.SetTitle("%s: %s (%d%%)", tr.T(i18n.KeyResultsWinner), v.Winner, report.WinnerPercent())
			t.AppendHeader(table.Row{tr.T(i18n.KeyResultsCompetencies), tr.T(i18n.KeyResultsYou), tr.T(i18n.KeyResultsGroupAverage)})
			for _, s := range v.Scores {
				avg := "-"
				if s.GroupAverage != nil {
					avg = strconv.FormatFloat(*s.GroupAverage, 'f', 1, 64)
				}
				t.AppendRow(table.Row{s.Competency, strconv.FormatFloat(s.User, 'f', 1, 64), avg})
			}
			t.AppendSeparator()
			for _, m := range v.Matches {
				t.AppendRow(table.Row{m.Occupation, fmt.Sprintf("%.0f%%", m.Score), ""})
			}
			t.AppendFooter(table.Row{tr.T(i18n.KeyResultsStrengths), joinOrDash(v.Strengths), ""})
			t.AppendFooter(table.Row{tr.T(i18n.KeyResultsGrowth), joinOrDash(v.GrowthAreas), ""})
		})
	},
}

var mentorsCmd = &cobra.Command{
	Use:   "mentors",
	Short: "Recommend mentors for your occupation match",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd, setupOptions{})
		if err != nil {
			return err
		}
		defer d.Close()
		if _, err := d.requireUser(); err != nil {
			return err
		}

		occupation, _ := cmd.Flags().GetString("occupation")
		if occupation == "" {
			report, err := results.Load(cmd.Context(), d.client, d.log)
			if err != nil {
				return d.fail(err)
			}
			occupation = report.Winner
		}
		if occupation == "" {
			return fmt.Errorf("no occupation match yet; finish the assessment or pass --occupation")
		}
		mentors, err := d.client.RecommendMentors(cmd.Context(), occupation)
		if err != nil {
			return d.fail(err)
		}
		if len(mentors) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), d.tr.T(i18n.KeyMentorNone))
			return nil
		}
		return render(cmd, mentors, func(t table.Writer) {
			t.SetTitle(occupation)
			t.AppendHeader(table.Row{"ID", "Name", "Title", "Company", "Topics"})
			for _, m := range mentors {
				t.AppendRow(table.Row{m.ID, m.DisplayName(), m.Title, m.Company, truncate(m.SupportTopics, 40)})
			}
		})
	},
}

var mentorRequestCmd = &cobra.Command{
	Use:   "request <mentor-id>",
	Short: "Ask a mentor for mentorship",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid mentor id %q", args[0])
		}
		d, err := setup(cmd, setupOptions{})
		if err != nil {
			return err
		}
		defer d.Close()
		if _, err := d.requireUser(); err != nil {
			return err
		}

		req, err := d.client.CreateMentorshipRequest(cmd.Context(), id)
		if err != nil {
			return d.fail(err)
		}
		d.log.Info("mentorship requested")
		fmt.Fprintf(cmd.OutOrStdout(), "%s (#%d)\n", d.tr.T(i18n.KeyMentorRequestSent), req.ID)
		return nil
	},
}

type requestRow struct {
	ID        int    `json:"id" yaml:"id"`
	Mentor    string `json:"mentor" yaml:"mentor"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Company   string `json:"company,omitempty" yaml:"company,omitempty"`
	Status    string `json:"status" yaml:"status"`
	CreatedAt string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

var mentorRequestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List your mentorship requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd, setupOptions{})
		if err != nil {
			return err
		}
		defer d.Close()
		if _, err := d.requireUser(); err != nil {
			return err
		}

		reqs, err := d.client.MentorshipRequests(cmd.Context())
		if err != nil {
			return d.fail(err)
		}
		if len(reqs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), d.tr.T(i18n.KeyRequestsNone))
			return nil
		}
		rows := make([]requestRow, len(reqs))
		for i, r := range reqs {
			rows[i] = newRequestRow(r, d.tr)
		}
		return render(cmd, rows, func(t table.Writer) {
			t.AppendHeader(table.Row{"ID", "Mentor", "Title", "Company", "Status", "Created"})
			for _, r := range rows {
				t.AppendRow(table.Row{r.ID, r.Mentor, r.Title, r.Company, r.Status, r.CreatedAt})
			}
		})
	},
}

func newRequestRow(r api.MentorshipRequestDetail, tr *i18n.Translator) requestRow {
	name := r.MentorName
	if name == "" {
		name = "#" + strconv.Itoa(r.MentorProfileID)
	}
	status := r.StatusName
	if status == "" {
		switch r.StatusID {
		case 1:
			status = tr.T(i18n.KeyRequestSent)
		case 2:
			status = tr.T(i18n.KeyRequestAccepted)
		case 3:
			status = tr.T(i18n.KeyRequestRejected)
		}
	}
	return requestRow{
		ID:        r.ID,
		Mentor:    name,
		Title:     r.MentorTitle,
		Company:   r.MentorCompany,
		Status:    status,
		CreatedAt: r.CreatedAt,
	}
}

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Recommend courses for your growth areas",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd, setupOptions{})
		if err != nil {
			return err
		}
		defer d.Close()
		if _, err := d.requireUser(); err != nil {
			return err
		}

		keywords, _ := cmd.Flags().GetStringSlice("keywords")
		limit, _ := cmd.Flags().GetInt("limit")
		if len(keywords) == 0 {
			report, err := results.Load(cmd.Context(), d.client, d.log)
			if err != nil {
				return d.fail(err)
			}
			keywords = report.CourseKeywords()
		}
		courses, err := d.client.RecommendCourses(cmd.Context(), keywords, limit)
		if err != nil {
			return d.fail(err)
		}
		if len(courses) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), d.tr.T(i18n.KeyCoursesNone))
			return nil
		}
		fill := courseTable(courses)
		return render(cmd, courses, func(t table.Writer) {
			t.SetTitle(strings.Join(keywords, ", "))
			fill(t)
		})
	},
}

var courseCatalogCmd = &cobra.Command{
	Use:   "all",
	Short: "List the whole course catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd, setupOptions{})
		if err != nil {
			return err
		}
		defer d.Close()
		if _, err := d.requireUser(); err != nil {
			return err
		}

		courses, err := d.client.Courses(cmd.Context())
		if err != nil {
			return d.fail(err)
		}
		if len(courses) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), d.tr.T(i18n.KeyCoursesNone))
			return nil
		}
		return render(cmd, courses, courseTable(courses))
	},
}

var courseShowCmd = &cobra.Command{
	Use:   "show <course-id>",
	Short: "Show one course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid course id %q", args[0])
		}
		d, err := setup(cmd, setupOptions{})
		if err != nil {
			return err
		}
		defer d.Close()
		if _, err := d.requireUser(); err != nil {
			return err
		}

		c, err := d.client.Course(cmd.Context(), id)
		if err != nil {
			return d.fail(err)
		}
		return render(cmd, c, func(t table.Writer) {
			t.AppendRows([]table.Row{
				{"ID", c.ID},
				{"Title", c.Title},
				{"Provider", c.Provider},
				{"Duration", c.DurationText},
				{"Link", c.CourseURL},
				{"About", truncate(c.Description, 200)},
			})
		})
	},
}

func courseTable(courses []api.Course) func(table.Writer) {
	return func(t table.Writer) {
		t.AppendHeader(table.Row{"ID", "Title", "Provider", "Duration", "Link"})
		for _, c := range courses {
			t.AppendRow(table.Row{c.ID, truncate(c.Title, 40), c.Provider, c.DurationText, c.CourseURL})
		}
	}
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func init() {
	mentorsCmd.Flags().String("occupation", "", "Occupation to match (default: your result)")
	mentorsCmd.AddCommand(mentorRequestCmd)
	mentorsCmd.AddCommand(mentorRequestsCmd)

	coursesCmd.Flags().StringSlice("keywords", nil, "Competency keywords (default: your growth areas)")
	coursesCmd.Flags().Int("limit", defaultCourseLimit, "Number of courses")
	coursesCmd.AddCommand(courseCatalogCmd)
	coursesCmd.AddCommand(courseShowCmd)

	for _, c := range []*cobra.Command{resultsCmd, mentorsCmd, mentorRequestsCmd, coursesCmd, courseCatalogCmd, courseShowCmd} {
		addOutputFlag(c)
	}
}
