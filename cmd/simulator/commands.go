package main

import (
	"strings"

	"github.com/NeuralTrust/TMSHarness/pkg/app/attack"
	"github.com/NeuralTrust/TMSHarness/pkg/app/batch"
	"github.com/NeuralTrust/TMSHarness/pkg/app/flow"
	"github.com/spf13/cobra"
)

func velocityCmd(a *app) *cobra.Command {
	var req attack.VelocityRequest
	cmd := &cobra.Command{
		Use:   "velocity",
		Short: "Rule 901: many payments from one debtor",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.container.AttackService.Velocity(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.renderAttack(res)
		},
	}
	cmd.Flags().StringVar(&req.DebtorAccount, "debtor", "VELOCITY_DEBTOR_001", "Debtor account")
	cmd.Flags().StringVar(&req.DebtorName, "debtor-name", "Velocity Debtor", "Debtor name")
	cmd.Flags().IntVarP(&req.Count, "count", "n", 20, "Number of transactions")
	cmd.Flags().Float64Var(&req.Amount, "amount", 0, "Fixed amount (random when 0)")
	return cmd
}

func moneyMuleCmd(a *app) *cobra.Command {
	var req attack.CreditorRequest
	cmd := &cobra.Command{
		Use:     "money-mule",
		Aliases: []string{"velocity-creditor"},
		Short:   "Rule 902: many debtors paying one creditor",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.container.AttackService.CreditorVelocity(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.renderAttack(res)
		},
	}
	cmd.Flags().StringVar(&req.CreditorAccount, "creditor", "MULE_CREDITOR_001", "Creditor account")
	cmd.Flags().StringVar(&req.CreditorName, "creditor-name", "Mule Account", "Creditor name")
	cmd.Flags().IntVarP(&req.Count, "count", "n", 20, "Number of transactions")
	cmd.Flags().Float64Var(&req.Amount, "amount", attack.DefaultCreditorAmount, "Amount per transaction")
	cmd.Flags().StringVar(&req.DebtorPrefix, "debtor-prefix", "", "Prefix of the generated debtor accounts")
	return cmd
}

func scenarioCmd(a *app, use, short, scenario string, defaultAmount float64) *cobra.Command {
	req := attack.ScenarioRequest{Scenario: scenario}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.container.AttackService.Scenario(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.renderAttack(res)
		},
	}
	cmd.Flags().IntVarP(&req.Count, "count", "n", 5, "Number of transactions")
	cmd.Flags().Float64Var(&req.Amount, "amount", defaultAmount, "Amount per transaction")
	cmd.Flags().StringVar(&req.DebtorAccount, "debtor", "", "Debtor account (generated when empty)")
	cmd.Flags().StringVar(&req.DebtorName, "debtor-name", "", "Debtor name (generated when empty)")
	return cmd
}

func structuringCmd(a *app) *cobra.Command {
	return scenarioCmd(a, "structuring", "Rule 006: near-identical amounts from one debtor",
		attack.ScenarioRule006, attack.DefaultStructuringAmount)
}

func highValueCmd(a *app) *cobra.Command {
	return scenarioCmd(a, "high-value", "Rule 018: one transfer far above the debtor's average",
		attack.ScenarioRule018, attack.DefaultHighValueAmount)
}

func fraudSimulationCmd(a *app) *cobra.Command {
	var req attack.SimulationRequest
	cmd := &cobra.Command{
		Use:   "simulate <rule>",
		Short: "Baseline, attack and alert check for one rule (901, 902, 006, 018)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Rule = args[0]
			res, err := a.container.AttackService.FraudSimulation(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.renderSimulation(res)
		},
	}
	cmd.Flags().StringVar(&req.AccountID, "account", "SIM_ACCOUNT_001", "Account under attack")
	cmd.Flags().IntVarP(&req.AttackCount, "count", "n", 5, "Number of attack transactions")
	return cmd
}

func e2eCmd(a *app) *cobra.Command {
	var req flow.Request
	cmd := &cobra.Command{
		Use:   "e2e",
		Short: "Send pain.001, pain.013, pacs.008 and pacs.002 in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.container.FlowRunner.Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.renderFlow(res)
		},
	}
	cmd.Flags().StringVar(&req.DebtorAccount, "debtor", flow.DefaultDebtorAccount, "Debtor account")
	cmd.Flags().StringVar(&req.CreditorAccount, "creditor", flow.DefaultCreditorAccount, "Creditor account")
	cmd.Flags().Float64Var(&req.Amount, "amount", flow.DefaultAmount, "Amount")
	cmd.Flags().StringVar(&req.FinalStatus, "final-status", "ACCC", "pacs.002 status code (ACCC, ACSC, RJCT)")
	return cmd
}

func batchCmd(a *app) *cobra.Command {
	var scenarios string
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run several scenarios in sequence",
		Long:  "Available scenarios: " + strings.Join(batch.Available, ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.container.BatchRunner.Run(cmd.Context(), batch.ParseScenarios(scenarios))
			if err != nil {
				return err
			}
			return a.renderBatch(res)
		},
	}
	cmd.Flags().StringVarP(&scenarios, "scenarios", "s", strings.Join(batch.Available, ","), "Comma separated scenario names")
	return cmd
}

func dbSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "db-summary",
		Short: "Per debtor and creditor totals from the TMS transaction table",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.container.SummaryService.GetTransactionSummary(cmd.Context())
			if err != nil {
				return err
			}
			return a.renderSummary(res)
		},
	}
}

func healthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the TMS answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.renderHealth(a.container.TMSClient.CheckHealth(cmd.Context()))
		},
	}
}
