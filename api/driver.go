// Package api defines the driver that runs a machine under the akita
// simulation engine, one instruction per cycle.
package api

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/msm/core"
)

// Driver provides the interface to run a machine as a timed component.
type Driver interface {
	// Machine returns the machine the driver executes.
	Machine() *core.Machine

	// Run ticks the machine until it is done or faults. The fault, if any,
	// is returned.
	Run() error

	// Cycles returns the number of cycles in which an instruction retired.
	Cycles() uint64

	// SimTime returns the simulated time reached by the engine.
	SimTime() sim.VTimeInSec
}

type driverImpl struct {
	*sim.TickingComponent

	machine *core.Machine
	cycles  uint64
	err     error
}

// Tick executes one instruction.
func (d *driverImpl) Tick() (madeProgress bool) {
	if d.err != nil || d.machine.Done() {
		return false
	}

	if err := d.machine.Step(); err != nil {
		d.err = err
		core.Trace("Fault",
			"Driver", d.Name(),
			"Cycle", d.cycles,
			"Time", float64(d.Engine.CurrentTime()*1e9),
			"Error", err.Error(),
		)
		return false
	}

	d.cycles++

	return true
}

func (d *driverImpl) Machine() *core.Machine {
	return d.machine
}

func (d *driverImpl) Cycles() uint64 {
	return d.cycles
}

func (d *driverImpl) SimTime() sim.VTimeInSec {
	return d.Engine.CurrentTime()
}

// Run schedules the first tick and runs the engine until no more events are
// pending.
func (d *driverImpl) Run() error {
	d.TickNow()

	if err := d.Engine.Run(); err != nil {
		return fmt.Errorf("engine stopped: %w", err)
	}

	core.Trace("DriverDone",
		"Driver", d.Name(),
		"Cycles", d.cycles,
		"Time", float64(d.Engine.CurrentTime()*1e9),
	)

	return d.err
}
