package config

import (
	"io"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/msm/api"
	"github.com/sarchlab/msm/core"
	"github.com/sarchlab/msm/isa"
)

// Platform is a machine ready to run, with the driver that times it when
// the configuration asks for one.
type Platform struct {
	Machine *core.Machine
	// Driver is nil for untimed runs.
	Driver api.Driver
}

// Run executes the program through the driver if there is one, or directly
// on the machine otherwise.
func (p Platform) Run() error {
	if p.Driver != nil {
		return p.Driver.Run()
	}
	return p.Machine.Run()
}

// PlatformBuilder can build platforms from a configuration.
type PlatformBuilder struct {
	cfg    Config
	output io.Writer
	engine sim.Engine
}

// WithConfig sets the configuration.
func (b PlatformBuilder) WithConfig(cfg Config) PlatformBuilder {
	b.cfg = cfg
	return b
}

// WithOutput sets the writer PRINT uses.
func (b PlatformBuilder) WithOutput(w io.Writer) PlatformBuilder {
	b.output = w
	return b
}

// WithEngine sets the engine of timed runs. A serial engine is created when
// none is given.
func (b PlatformBuilder) WithEngine(engine sim.Engine) PlatformBuilder {
	b.engine = engine
	return b
}

// Build loads program into a new machine.
func (b PlatformBuilder) Build(name string, program isa.Program) Platform {
	mb := core.NewBuilder().WithMaxSteps(b.cfg.MaxSteps)
	if b.output != nil {
		mb = mb.WithOutput(b.output)
	}

	p := Platform{Machine: mb.Build(program)}
	if !b.cfg.Timed {
		return p
	}

	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	p.Driver = api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(sim.Freq(b.cfg.FreqMHz) * sim.MHz).
		WithMachine(p.Machine).
		Build(name + ".Driver")

	return p
}
