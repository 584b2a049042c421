package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/exit-readiness/internal/assessment"
)

var personalizeCmd = &cobra.Command{
	Use:   "personalize",
	Short: "Mine insights and profile owner sentiment",
	Long: `Mine owner quotes, named roles, numbers, and category signals from
anonymized responses, and profile the owner's confidence, urgency, tone, and
stress to select a communication voice.

The request is a JSON or YAML file with anonymized_responses, industry,
years_in_business, revenue_range, exit_timeline, and optional location.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("personalize"); err != nil {
			return err
		}
		input, _ := cmd.Flags().GetString("input")
		format, _ := cmd.Flags().GetString("format")

		var req assessment.PersonalizeRequest
		if err := readRequest(input, cmd.InOrStdin(), personalizeRequestSchema, &req); err != nil {
			return err
		}

		svc, err := initService(cfg)
		if err != nil {
			return err
		}
		res, err := svc.Personalize(cmd.Context(), req)
		if err != nil {
			return eris.Wrap(err, "personalize")
		}
		return writeOutput(cmd.OutOrStdout(), res, format)
	},
}

func init() {
	f := personalizeCmd.Flags()
	f.StringP("input", "i", "", "request file (.json, .yaml), or - for stdin")
	f.String("format", "json", "output format: json or yaml")
	_ = personalizeCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(personalizeCmd)
}
