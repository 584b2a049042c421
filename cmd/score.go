package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/exit-readiness/internal/assessment"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one questionnaire submission",
	Long: `Score a questionnaire submission across the five exit readiness categories.

The request is a JSON or YAML file with responses (q1..q10), industry,
revenue_range, years_in_business, exit_timeline, and optional research_data.

Examples:
  # Score a submission and print JSON
  score --input request.json

  # Score from stdin and persist the result
  cat request.json | score --input - --save --submission-id sub-42`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.StringP("input", "i", "", "request file (.json, .yaml), or - for stdin")
	f.String("format", "json", "output format: json or yaml")
	f.Bool("save", false, "persist the result to the configured store")
	f.String("submission-id", "", "submission id recorded with a saved result")
	_ = scoreCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := cfg.Validate("score"); err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")
	submissionID, _ := cmd.Flags().GetString("submission-id")

	var req assessment.ScoreRequest
	if err := readRequest(input, cmd.InOrStdin(), scoreRequestSchema, &req); err != nil {
		return err
	}

	svc, err := initService(cfg)
	if err != nil {
		return err
	}
	res, err := svc.Score(ctx, req)
	if err != nil {
		return eris.Wrap(err, "score")
	}

	if save {
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		rec, err := res.Record(submissionID)
		if err != nil {
			return err
		}
		if err := st.SaveAssessment(ctx, rec); err != nil {
			return eris.Wrap(err, "score: save")
		}
		zap.L().Info("score: saved assessment", zap.String("id", rec.ID))
	}

	return writeOutput(cmd.OutOrStdout(), res, format)
}

