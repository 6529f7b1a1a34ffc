package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/NeuralTrust/TMSHarness/pkg/app/attack"
	"github.com/NeuralTrust/TMSHarness/pkg/app/batch"
	"github.com/NeuralTrust/TMSHarness/pkg/app/flow"
	"github.com/NeuralTrust/TMSHarness/pkg/domain/alert"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/database"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/tms"
	"github.com/pterm/pterm"
)

func (a *app) printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func formatMs(ms float64) string {
	return strconv.FormatFloat(ms, 'f', 1, 64) + " ms"
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func (a *app) renderAttack(res *attack.Result) error {
	if a.flags.jsonOutput {
		return a.printJSON(res)
	}
	pterm.DefaultSection.Printfln("Rule %s against %s", res.Rule, a.container.TMSClient.BaseURL())

	data := pterm.TableData{{"#", "Debtor", "Amount", "pacs.008", "pacs.002", "Time"}}
	for _, it := range res.Results {
		pacs002 := "-"
		if it.Pacs002Status != nil {
			pacs002 = strconv.Itoa(*it.Pacs002Status)
		}
		data = append(data, []string{
			strconv.Itoa(it.Iteration),
			it.DebtorAccount,
			formatAmount(it.Amount),
			strconv.Itoa(it.Status),
			pacs002,
			formatMs(it.ResponseTimeMs),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithHeaderRowSeparator("-").WithData(data).Render(); err != nil {
		return err
	}

	if ok := res.SuccessCount(); ok == res.TotalSent {
		pterm.Success.Printfln("%d/%d transactions accepted", ok, res.TotalSent)
	} else {
		pterm.Warning.Printfln("%d/%d transactions accepted", ok, res.TotalSent)
	}
	return a.renderAlerts(res.FraudAlerts)
}

func (a *app) renderAlerts(alerts []alert.FraudAlert) error {
	if len(alerts) == 0 {
		pterm.Info.Println("no fraud alerts found in the rule container logs")
		return nil
	}
	data := pterm.TableData{{"Rule", "Alert", "Container", "Time"}}
	for _, al := range alerts {
		data = append(data, []string{al.RuleID, al.Title, al.Container, al.Timestamp})
	}
	pterm.Error.Printfln("%d fraud alert(s) raised", len(alerts))
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (a *app) renderSimulation(res *attack.SimulationResult) error {
	if a.flags.jsonOutput {
		return a.printJSON(res)
	}
	pterm.DefaultSection.Printfln("Fraud simulation: rule %s on %s", res.TargetRule, res.AccountID)

	data := pterm.TableData{{"Step", "Name", "Result", "Detail"}}
	for _, st := range res.Steps {
		outcome := "ok"
		if !st.Success {
			outcome = "failed"
		}
		data = append(data, []string{strconv.Itoa(st.Step), st.Name, outcome, st.Detail})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithHeaderRowSeparator("-").WithData(data).Render(); err != nil {
		return err
	}

	switch res.Summary.FinalStatus {
	case attack.FinalStatusDetected:
		pterm.Error.Println(res.Summary.FinalStatus)
	case attack.FinalStatusNotDetected:
		pterm.Success.Println(res.Summary.FinalStatus)
	default:
		pterm.Warning.Println(res.Summary.FinalStatus)
	}
	pterm.Info.Println("Trigger: " + res.Summary.TriggerCondition)
	return a.renderAlerts(res.FraudAlerts)
}

func (a *app) renderFlow(res *flow.Result) error {
	if a.flags.jsonOutput {
		return a.printJSON(res)
	}
	pterm.DefaultSection.Printfln("E2E flow %s -> %s", res.DebtorAccount, res.CreditorAccount)

	data := pterm.TableData{{"Step", "Message", "Status", "Time", "Note"}}
	for _, st := range res.Steps {
		note := ""
		if st.Note != nil {
			note = *st.Note
		}
		status := strconv.Itoa(st.Status)
		if st.Skipped {
			status += " (skipped)"
		}
		data = append(data, []string{strconv.Itoa(st.Step), st.Name, status, formatMs(st.ResponseTimeMs), note})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithHeaderRowSeparator("-").WithData(data).Render(); err != nil {
		return err
	}
	if res.OverallStatus == flow.StatusCompleted {
		pterm.Success.Printfln("completed in %s", formatMs(res.TotalTimeMs))
	} else {
		pterm.Error.Println(res.OverallStatus)
	}
	return nil
}

func (a *app) renderBatch(res *batch.Result) error {
	if a.flags.jsonOutput {
		return a.printJSON(res)
	}
	data := pterm.TableData{{"Scenario", "Status"}}
	for _, sc := range res.Results {
		data = append(data, []string{sc.Scenario, sc.Status})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithHeaderRowSeparator("-").WithData(data).Render(); err != nil {
		return err
	}
	pterm.Info.Printfln("%d succeeded, %d failed in %s", res.SuccessCount, res.FailureCount, formatMs(res.TotalTimeMs))
	return nil
}

func (a *app) renderSummary(res *database.Summary) error {
	if a.flags.jsonOutput {
		return a.printJSON(res)
	}
	pterm.DefaultSection.Printfln("%d transactions (%s)", res.TotalTransactions, res.Strategy)
	for _, group := range []struct {
		title string
		rows  []database.AccountSummary
	}{
		{"Debtors", res.Debtors},
		{"Creditors", res.Creditors},
	} {
		data := pterm.TableData{{group.title, "Transactions", "Total amount"}}
		for _, row := range group.rows {
			data = append(data, []string{row.Account, strconv.Itoa(row.TxCount), formatAmount(row.TotalAmount)})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) renderHealth(report tms.HealthReport) error {
	if a.flags.jsonOutput {
		return a.printJSON(report)
	}
	if report.Healthy() && report.HTTPCode == 0 {
		pterm.Warning.Println(report.Message)
		return nil
	}
	if report.Healthy() {
		pterm.Success.Printfln("TMS at %s answered %d (%s)", a.container.TMSClient.BaseURL(), report.HTTPCode, formatMs(report.ResponseTimeMs))
		return nil
	}
	pterm.Error.Printfln("TMS at %s: %s", a.container.TMSClient.BaseURL(), report.Message)
	return nil
}
