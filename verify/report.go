package verify

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/msm/core"
	"github.com/sarchlab/msm/isa"
)

// VerificationReport represents a complete verification report
type VerificationReport struct {
	Program       isa.Program
	LintIssues    []Issue
	StructIssues  []Issue
	FlowIssues    []Issue
	StackIssues   []Issue
	Output        []string
	FinalIP       int
	FinalStack    []int32
	Steps         uint64
	Halted        bool
	SimulationErr error
	SimulationOK  bool
}

// GenerateReport runs lint and a bounded execution, returns a report.
// Execution is skipped when lint finds STRUCT issues.
func GenerateReport(p isa.Program, maxSteps uint64) *VerificationReport {
	report := &VerificationReport{Program: p}

	report.LintIssues = RunLint(p)
	for _, issue := range report.LintIssues {
		switch issue.Type {
		case IssueStruct:
			report.StructIssues = append(report.StructIssues, issue)
		case IssueFlow:
			report.FlowIssues = append(report.FlowIssues, issue)
		case IssueStack:
			report.StackIssues = append(report.StackIssues, issue)
		}
	}

	if len(report.StructIssues) > 0 {
		report.SimulationErr = fmt.Errorf("skipped: %d STRUCT issues", len(report.StructIssues))
		return report
	}

	out := new(bytes.Buffer)
	m := core.NewBuilder().
		WithOutput(out).
		WithMaxSteps(maxSteps).
		Build(p)

	report.SimulationErr = m.Run()
	report.SimulationOK = report.SimulationErr == nil
	report.FinalIP = m.IP()
	report.FinalStack = m.Stack()
	report.Steps = m.Steps()
	report.Halted = m.Halted()
	if s := strings.TrimSuffix(out.String(), "\n"); s != "" {
		report.Output = strings.Split(s, "\n")
	}

	return report
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "PROGRAM VERIFICATION REPORT")
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "\nLoaded program with %d instructions\n", len(r.Program))

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 1: STATIC LINT CHECKS")
	fmt.Fprintln(w, separator)

	if len(r.LintIssues) == 0 {
		fmt.Fprintln(w, "No lint issues found")
	} else {
		fmt.Fprintf(w, "Found %d lint issues:\n\n", len(r.LintIssues))

		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"Type", "Index", "Opcode", "Message"})
		for _, issue := range r.LintIssues {
			t.AppendRow(table.Row{issue.Type, issue.Index, issue.Op, issue.Message})
		}
		t.Render()
	}

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 2: BOUNDED EXECUTION")
	fmt.Fprintln(w, separator)

	if r.SimulationOK {
		fmt.Fprintln(w, "Execution completed successfully")
	} else {
		fmt.Fprintf(w, "Execution error: %v\n", r.SimulationErr)
	}

	if len(r.StructIssues) == 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle("Final State")
		t.AppendRows([]table.Row{
			{"IP", r.FinalIP},
			{"SP", len(r.FinalStack)},
			{"Steps", r.Steps},
			{"Halted", r.Halted},
			{"Output", strings.Join(r.Output, " ")},
		})
		t.Render()
	}

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "VERIFICATION SUMMARY")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "Lint Result: %d issues detected (%d STRUCT, %d FLOW, %d STACK)\n",
		len(r.LintIssues), len(r.StructIssues), len(r.FlowIssues), len(r.StackIssues))
	status := "SUCCESS"
	if !r.SimulationOK {
		status = "FAILED: " + r.SimulationErr.Error()
	}
	fmt.Fprintf(w, "Execution Result: %s\n", status)

	if r.Passed() {
		fmt.Fprintln(w, "\nPROGRAM PASSED ALL CHECKS")
	}

	fmt.Fprintln(w)
}

// Passed reports whether lint found nothing and the execution succeeded.
func (r *VerificationReport) Passed() bool {
	return len(r.LintIssues) == 0 && r.SimulationOK
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
