package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// LevelTrace is the slog level of per-instruction records. It sits below
// Debug so tracing is off unless a handler asks for it.
const LevelTrace slog.Level = slog.LevelDebug - 4

// Trace logs msg at LevelTrace on the default logger.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

func traceEnabled() bool {
	return slog.Default().Enabled(context.Background(), LevelTrace)
}

// LogState records a checkpoint of the machine at Debug level.
func LogState(m *Machine) {
	slog.Debug("StateCheckpoint",
		"IP", m.state.IP,
		"SP", m.state.Stack.Len(),
		"Steps", m.state.Steps,
		"Halted", m.state.Halted,
		"Stack", m.state.Stack.Values(),
	)
}

// PrintState renders the registers and the occupied stack of m as tables.
func PrintState(w io.Writer, m *Machine) {
	regTable := table.NewWriter()
	regTable.SetOutputMirror(w)
	regTable.SetTitle("Machine State")
	regTable.AppendHeader(table.Row{"IP", "SP", "Steps", "Halted", "Program"})
	regTable.AppendRow(table.Row{
		m.state.IP,
		m.state.Stack.Len(),
		m.state.Steps,
		m.state.Halted,
		fmt.Sprintf("%d instructions", len(m.state.Program)),
	})
	regTable.Render()

	stackTable := table.NewWriter()
	stackTable.SetOutputMirror(w)
	stackTable.SetTitle("Stack (top first)")
	stackTable.AppendHeader(table.Row{"Slot", "Value", ""})

	values := m.state.Stack.Values()
	for i := len(values) - 1; i >= 0; i-- {
		marker := ""
		if i == len(values)-1 {
			marker = "<- top"
		}
		stackTable.AppendRow(table.Row{i, values[i], marker})
	}
	if len(values) == 0 {
		stackTable.AppendRow(table.Row{"-", "empty", ""})
	}

	stackTable.Render()
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
