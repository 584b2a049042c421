package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/store"
)

var assessmentsCmd = &cobra.Command{
	Use:   "assessments",
	Short: "Inspect saved assessments",
	Long:  "Commands for listing and viewing persisted assessment results.",
}

// -- assessments list --

var assessmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved assessments, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		industry, _ := cmd.Flags().GetString("industry")
		readiness, _ := cmd.Flags().GetString("readiness")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		recs, err := st.ListAssessments(ctx, store.ListFilter{
			Industry:       industry,
			ReadinessLevel: model.ReadinessLevel(readiness),
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			return eris.Wrap(err, "assessments list")
		}

		if len(recs) == 0 {
			fmt.Fprintln(os.Stderr, "No assessments found.")
			return nil
		}

		return formatAssessmentsList(cmd.OutOrStdout(), recs)
	},
}

// -- assessments get --

var assessmentsGetCmd = &cobra.Command{
	Use:   "get <assessment-id>",
	Short: "Print the full result of a saved assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		rec, err := st.GetAssessment(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "assessments get")
		}

		format, _ := cmd.Flags().GetString("format")
		return writeOutput(cmd.OutOrStdout(), rec, format)
	},
}

func init() {
	lf := assessmentsListCmd.Flags()
	lf.String("industry", "", "filter by industry")
	lf.String("readiness", "", `filter by readiness level (e.g. "Needs Work")`)
	lf.Int("limit", 20, "max assessments to list")
	lf.Int("offset", 0, "number of assessments to skip")

	assessmentsGetCmd.Flags().String("format", "json", "output format: json or yaml")

	assessmentsCmd.AddCommand(assessmentsListCmd, assessmentsGetCmd)
	rootCmd.AddCommand(assessmentsCmd)
}

var (
	readyColor       = color.New(color.FgGreen, color.Bold)
	approachingColor = color.New(color.FgGreen)
	needsWorkColor   = color.New(color.FgYellow)
	notReadyColor    = color.New(color.FgRed, color.Bold)
)

// readinessLabel colors a readiness level for terminal output.
func readinessLabel(level model.ReadinessLevel) string {
	switch level {
	case model.ReadinessExitReady:
		return readyColor.Sprint(level)
	case model.ReadinessApproachingReady:
		return approachingColor.Sprint(level)
	case model.ReadinessNeedsWork:
		return needsWorkColor.Sprint(level)
	case model.ReadinessNotReady:
		return notReadyColor.Sprint(level)
	default:
		return string(level)
	}
}

func formatAssessmentsList(w io.Writer, recs []model.AssessmentRecord) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Submission", "Industry", "Score", "Readiness", "Created"})

	var data [][]string
	for _, r := range recs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		sub := r.SubmissionID
		if sub == "" {
			sub = "-"
		}
		data = append(data, []string{
			id,
			sub,
			r.Industry,
			fmt.Sprintf("%.1f", r.OverallScore),
			readinessLabel(r.ReadinessLevel),
			r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	if err := table.Bulk(data); err != nil {
		return eris.Wrap(err, "assessments list: table")
	}
	return eris.Wrap(table.Render(), "assessments list: render")
}
