package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/msm/api"
	"github.com/sarchlab/msm/asm"
	"github.com/sarchlab/msm/core"
	"github.com/tebeka/atexit"
)

//go:embed countdown.asm
var source string

func main() {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	program, err := asm.Assemble(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	engine := sim.NewSerialEngine()

	machine := core.NewBuilder().
		WithOutput(os.Stdout).
		Build(program)

	driver := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithMachine(machine).
		Build("Driver")

	if err := driver.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	slog.Info("Countdown finished",
		"Cycles", driver.Cycles(),
		"TimeNS", float64(driver.SimTime()*1e9),
	)

	core.PrintState(os.Stdout, machine)

	atexit.Exit(0)
}
