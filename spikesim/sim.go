// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikesim

import (
	"io"
	"strconv"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/odespike/membrane"
	"github.com/emer/odespike/units"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LogPrec is precision for saving float values in logs
const LogPrec = 6

// Sim runs one spiking membrane over a stimulus schedule, recording a
// per-cycle trace.
type Sim struct {

	// the membrane being driven
	Membrane *membrane.Membrane `view:"-"`

	// stimulus schedule, indexed by Time.CycleTot so that successive Runs
	// continue it -- Init restarts it
	Stim Stim

	// timing state
	Time Time

	// inter-spike-interval statistics
	ISI ISIStats

	// per-cycle trace: Cycle, Time (s), Stim (nA), Vm (mV), Spike, ISIAvg,
	// then one column per auxiliary evolving variable, as reported by
	// Membrane.AuxVars (W in nA, U in mV)
	Trace *etable.Table `view:"no-inline"`

	// logger -- per-spike events are logged at Debug level
	Log *logrus.Entry `view:"-"`

	auxNames []string
}

// NewSim builds the membrane described by cf and a Sim to drive it.
// log may be nil, in which case the standard logrus logger is used.
func NewSim(cf *Config, log *logrus.Entry) (*Sim, error) {
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	m, err := cf.Membrane.New()
	if err != nil {
		return nil, errors.Wrapf(err, "spikesim: building %v membrane", cf.Membrane.Kind)
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	ss := &Sim{
		Membrane: m,
		Stim:     cf.Stim,
		Trace:    &etable.Table{},
		Log:      log.WithField("kind", m.Kind().String()),
	}
	ss.Time.Defaults()
	ss.Time.TimePerCyc = units.Milliseconds(cf.Membrane.Common().Solver.StepDur)
	ss.ISI.Defaults()
	ss.auxNames = m.VarNames()[1:]
	ss.Init()
	return ss, nil
}

// Init resets the membrane, the stimulus noise, the counters, and clears the trace
func (ss *Sim) Init() {
	ss.Membrane.Reset()
	ss.Stim.Init()
	ss.Time.Reset()
	ss.ISI.Init()
	ss.ConfigTrace(ss.Trace)
}

// ConfigTrace configures the trace table columns, with no rows
func (ss *Sim) ConfigTrace(dt *etable.Table) {
	dt.SetMetaData("name", "SpikeTrace")
	dt.SetMetaData("desc", "per-cycle membrane trace")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{"Cycle", etensor.INT64, nil, nil},
		{"Time", etensor.FLOAT64, nil, nil},
		{"Stim", etensor.FLOAT64, nil, nil},
		{"Vm", etensor.FLOAT64, nil, nil},
		{"Spike", etensor.FLOAT64, nil, nil},
		{"ISIAvg", etensor.FLOAT64, nil, nil},
	}
	for _, nm := range ss.auxNames {
		sch = append(sch, etable.Column{nm, etensor.FLOAT64, nil, nil})
	}
	dt.SetFromSchema(sch, 0)
}

// Step runs one cycle: presents the stimulus, computes the membrane,
// updates the ISI statistics and records a trace row.  Returns the
// membrane output (1 on spike, else 0).
func (ss *Sim) Step() float64 {
	x := ss.Stim.Value(ss.Time.CycleTot)
	out := ss.Membrane.Compute(x)
	spike := out == 1
	ss.ISI.Cycle(spike)

	vars := ss.Membrane.EvolvingVars()
	vm := units.ToMillivolts(vars.At(membrane.VmIdx))

	dt := ss.Trace
	row := dt.Rows
	dt.SetNumRows(row + 1)
	dt.SetCellFloat("Cycle", row, float64(ss.Time.CycleTot))
	dt.SetCellFloat("Time", row, ss.Time.Time)
	dt.SetCellFloat("Stim", row, ss.Membrane.Stimulus())
	dt.SetCellFloat("Vm", row, vm)
	dt.SetCellFloat("Spike", row, out)
	dt.SetCellFloat("ISIAvg", row, ss.ISI.ISIAvg)
	for i, av := range ss.Membrane.AuxVars() {
		dt.SetCellFloat(ss.auxNames[i], row, av)
	}

	if spike {
		ss.Log.WithFields(logrus.Fields{
			"cycle": ss.Time.CycleTot,
			"vm":    vm,
			"isi":   ss.ISI.LastISI,
		}).Debug("spike")
	}
	ss.Time.CycleInc()
	return out
}

// Run runs ncyc cycles continuing from the current state, and returns the
// number of spikes in this run.
func (ss *Sim) Run(ncyc int) int {
	ss.Time.RunStart()
	st := ss.ISI.SpikeCount
	ss.Log.WithFields(logrus.Fields{
		"cycles": ncyc,
		"stim":   ss.Stim.Type.String(),
	}).Info("run start")
	for i := 0; i < ncyc; i++ {
		ss.Step()
	}
	nspk := ss.ISI.SpikeCount - st
	ss.Log.WithFields(logrus.Fields{
		"spikes":  nspk,
		"isi_avg": ss.ISI.ISIAvg,
		"rate_hz": ss.ISI.Rate(ss.Time.TimePerCyc),
	}).Info("run done")
	return nspk
}

// MeanRate returns the spike count over the total simulated time, in Hz
func (ss *Sim) MeanRate() float64 {
	if ss.Time.Time <= 0 {
		return 0
	}
	return float64(ss.ISI.SpikeCount) / ss.Time.Time
}

// WriteTrace writes the trace table as CSV with headers
func (ss *Sim) WriteTrace(w io.Writer) error {
	if err := ss.Trace.WriteCSV(w, etable.Comma, true); err != nil {
		return errors.Wrap(err, "spikesim: writing trace")
	}
	return nil
}
