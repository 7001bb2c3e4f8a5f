package api

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/msm/core"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine  sim.Engine
	freq    sim.Freq
	machine *core.Machine
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the driver.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// WithMachine sets the machine the driver executes.
func (b DriverBuilder) WithMachine(m *core.Machine) DriverBuilder {
	b.machine = m
	return b
}

// Build creates a driver. The engine defaults to a new serial engine and the
// frequency to 1 GHz.
func (b DriverBuilder) Build(name string) Driver {
	if b.machine == nil {
		panic("DriverBuilder needs a machine")
	}

	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	freq := b.freq
	if freq == 0 {
		freq = 1 * sim.GHz
	}

	d := &driverImpl{
		machine: b.machine,
	}
	d.TickingComponent = sim.NewTickingComponent(name, engine, freq, d)

	return d
}
