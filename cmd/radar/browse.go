package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"alfredoptarigan/resume-radar/internal/browse"
	"alfredoptarigan/resume-radar/internal/client"
	"alfredoptarigan/resume-radar/internal/models"
)

type browseOptions struct {
	Search    string
	Skill     string
	Education string
	From      string
	To        string
	Select    bool
}

var browseOpts browseOptions

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List stored resumes, filtered by search, skill, education and upload date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		resumes, err := client.New(cfg.BackendURL, nil, log).ListResumes(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching resumes: %w", err)
		}

		state, err := browseOpts.state(resumes, time.Local)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := renderList(out, state.Visible, time.Local); err != nil {
			return err
		}

		if !browseOpts.Select || len(state.Visible) == 0 {
			return nil
		}

		chosen, err := pickResume(state)
		if err != nil {
			return err
		}
		return printJSON(out, chosen)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)

	flags := browseCmd.Flags()
	flags.StringVarP(&browseOpts.Search, "search", "s", "", "match name, email or recommended role")
	flags.StringVar(&browseOpts.Skill, "skill", "", "match any skill")
	flags.StringVar(&browseOpts.Education, "education", "", "match the education details")
	flags.StringVar(&browseOpts.From, "from", "", "first upload day to include (YYYY-MM-DD)")
	flags.StringVar(&browseOpts.To, "to", "", "last upload day to include (YYYY-MM-DD)")
	flags.BoolVar(&browseOpts.Select, "select", false, "pick a resume interactively and show its details")
}

// state loads the snapshot and applies the filters given on the command line.
func (o browseOptions) state(resumes []models.Resume, loc *time.Location) (browse.State, error) {
	state := browse.State{Location: loc}.Loaded(resumes).
		WithSearch(o.Search).
		WithSkill(o.Skill).
		WithEducation(o.Education)

	if o.From != "" {
		from, err := browse.ParseDay(o.From, loc)
		if err != nil {
			return state, fmt.Errorf("invalid --from date: %w", err)
		}
		state = state.WithStartDate(&from)
	}
	if o.To != "" {
		to, err := browse.ParseDay(o.To, loc)
		if err != nil {
			return state, fmt.Errorf("invalid --to date: %w", err)
		}
		state = state.WithEndDate(&to)
	}

	return state.Apply(), nil
}

func renderList(w io.Writer, resumes []models.Resume, loc *time.Location) error {
	if len(resumes) == 0 {
		_, err := fmt.Fprintln(w, "No resumes found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tATS\tSKILLS\tUPLOADED")
	for _, r := range resumes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			orDash(r.Name),
			orDash(r.EmailAddress),
			formatScore(r.ATSScore),
			orDash(strings.Join(r.Skills, ", ")),
			formatDay(r.UploadedAt, loc),
		)
	}
	return tw.Flush()
}

func pickResume(state browse.State) (models.Resume, error) {
	labels := make([]string, len(state.Visible))
	for i, r := range state.Visible {
		labels[i] = fmt.Sprintf("%s <%s> %s", orDash(r.Name), orDash(r.EmailAddress), formatScore(r.ATSScore))
	}

	prompt := promptui.Select{
		Label: "Resume",
		Items: labels,
		Size:  10,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return models.Resume{}, err
	}

	chosen, ok := state.Select(state.Visible[idx].ID)
	if !ok {
		return models.Resume{}, fmt.Errorf("resume %s is no longer in the snapshot", state.Visible[idx].ID)
	}
	return chosen, nil
}

func formatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *score)
}

func formatDay(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "-"
	}
	return t.In(loc).Format("2006-01-02")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
