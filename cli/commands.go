package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"loan-eligibility/domain"
)

func newEvaluateCmd(loadApp appLoader) *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run the full eligibility pipeline on a JSON request file",
		Long: "Reads an evaluation request (identity, credit_report, vehicle, economics) " +
			"from --file, or stdin when --file is '-', and prints the eligibility report.",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readEvaluationRequest(cmd, inputPath)
			if err != nil {
				return err
			}

			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			policies, err := app.Policies.List(cmd.Context())
			if err != nil {
				return err
			}
			report, err := app.Eligibility.Evaluate(cmd.Context(), req, policies)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVarP(&inputPath, "file", "f", "-", "request JSON file")
	return cmd
}

func readEvaluationRequest(cmd *cobra.Command, path string) (domain.EvaluationRequest, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return domain.EvaluationRequest{}, fmt.Errorf("opening request: %w", err)
		}
		defer f.Close()
		r = f
	}

	var req domain.EvaluationRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return domain.EvaluationRequest{}, fmt.Errorf("decoding request: %w", err)
	}
	return req, nil
}

func newPrequalifyCmd(loadApp appLoader) *cobra.Command {
	var (
		input  domain.PrequalificationInput
		income string
	)

	cmd := &cobra.Command{
		Use:   "prequalify",
		Short: "Match a declared applicant profile against the lender policy table",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(income)
			if err != nil {
				return domain.NewValidationError("income", "must be a number")
			}
			input.MonthlyIncome = amount

			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			policies, err := app.Policies.List(cmd.Context())
			if err != nil {
				return err
			}
			matches, err := app.Eligibility.Prequalify(input, policies)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), matches)
		},
	}
	cmd.Flags().IntVar(&input.CreditScore, "score", 0, "credit score (0-900)")
	cmd.Flags().StringVar(&income, "income", "0", "monthly income in rupees")
	cmd.Flags().StringVar(&input.EmploymentType, "employment", "salaried", "salaried | self-employed")
	cmd.Flags().StringVar(&input.FuelType, "fuel", "petrol", "petrol | diesel | cng | electric")
	cmd.Flags().StringVar(&input.LoanPurpose, "purpose", "purchase", "purchase | refinance | balance-transfer")
	return cmd
}

func newPoliciesCmd(loadApp appLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policies",
		Short: "List the lender policy table",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			policies, err := app.Policies.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), policies)
		},
	}
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
