// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikesim

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emer/odespike/membrane"
	"github.com/emer/odespike/ode"
	"github.com/emer/odespike/units"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-9

func testSim(t *testing.T, cf *Config) (*Sim, *logtest.Hook) {
	t.Helper()
	lg, hook := logtest.NewNullLogger()
	lg.SetLevel(logrus.DebugLevel)
	ss, err := NewSim(cf, logrus.NewEntry(lg))
	require.NoError(t, err)
	return ss, hook
}

func TestTime(t *testing.T) {
	tm := NewTime()
	assert.Equal(t, 0.001, tm.TimePerCyc)
	for i := 0; i < 10; i++ {
		tm.CycleInc()
	}
	tm.RunStart()
	tm.CycleInc()
	assert.Equal(t, 1, tm.Cycle)
	assert.Equal(t, 11, tm.CycleTot)
	assert.InDelta(t, 0.011, tm.Time, difTol)
	tm.Reset()
	assert.Equal(t, 0, tm.CycleTot)
	assert.Equal(t, 0.0, tm.Time)
}

func TestISIStats(t *testing.T) {
	is := ISIStats{}
	is.Defaults()
	is.Init()
	assert.Equal(t, -1.0, is.ISI)
	assert.Equal(t, -1.0, is.ISIAvg)

	train := []bool{false, true, false, false, true, false, false, true, true}
	for _, s := range train {
		is.Cycle(s)
	}
	assert.Equal(t, 4, is.SpikeCount)
	assert.Equal(t, 1, is.LastISI)
	// first interval of 3 is taken as is, second of 3 leaves it, then 1 < 0.8*3 is taken
	assert.Equal(t, 1.0, is.ISIAvg)
	assert.InDelta(t, 1000.0, is.Rate(0.001), difTol)

	is.Init()
	is.Cycle(true)
	assert.Equal(t, -2.0, is.ISIAvg)
	assert.Equal(t, 0.0, is.Rate(0.001))

	// a long silence pulls the average up
	is.Init()
	is.Cycle(true)
	is.Cycle(false)
	is.Cycle(true)
	assert.Equal(t, 2.0, is.ISIAvg)
	for i := 0; i < 10; i++ {
		is.Cycle(false)
	}
	assert.Greater(t, is.ISIAvg, 2.0)
}

func TestStim(t *testing.T) {
	st := Stim{}
	st.Defaults()
	st.Amp = 2
	st.Onset = 5
	st.Offset = 10
	require.NoError(t, st.Validate())
	assert.Equal(t, 0.0, st.Value(4))
	assert.Equal(t, 2.0, st.Value(5))
	assert.Equal(t, 2.0, st.Value(9))
	assert.Equal(t, 0.0, st.Value(10))

	st.Type = PulseStim
	st.Onset = 0
	st.Offset = 0
	st.Period = 4
	st.Width = 1
	var got []float64
	for c := 0; c < 8; c++ {
		got = append(got, st.Value(c))
	}
	assert.Equal(t, []float64{2, 0, 0, 0, 2, 0, 0, 0}, got)

	st.Type = NoisyStim
	st.Seed = 42
	st.Init()
	n1 := []float64{st.Value(0), st.Value(1), st.Value(2)}
	st.Init()
	n2 := []float64{st.Value(0), st.Value(1), st.Value(2)}
	assert.Equal(t, n1, n2, "same seed gives same noise")
	assert.NotEqual(t, n1[0], n1[1])

	st.NoiseStd = 0
	st.Init()
	assert.Equal(t, 2.0, st.Value(3))

	st.Type = PulseStim
	st.Period = 0
	assert.Error(t, st.Validate())

	var typ StimTypes
	require.NoError(t, typ.UnmarshalText([]byte("PulseStim")))
	assert.Equal(t, PulseStim, typ)
	assert.Error(t, typ.FromString("RampStim"))
	assert.Error(t, typ.UnmarshalText([]byte("StimTypesN")))
	assert.Equal(t, PulseStim, typ)
}

func TestSimLeakyIF(t *testing.T) {
	cf := &Config{}
	cf.Defaults()
	cf.Stim.Amp = 5
	ss, hook := testSim(t, cf)

	nspk := ss.Run(100)
	// spikes at cycles 3, 8, ... 98 with one refractory cycle
	assert.Equal(t, 20, nspk)
	assert.Equal(t, 20, ss.ISI.SpikeCount)
	assert.Equal(t, 5, ss.ISI.LastISI)
	assert.InDelta(t, 5.0, ss.ISI.ISIAvg, difTol)
	assert.InDelta(t, 200.0, ss.ISI.Rate(ss.Time.TimePerCyc), 1e-6)
	assert.InDelta(t, 200.0, ss.MeanRate(), 1e-6)

	dt := ss.Trace
	require.Equal(t, 100, dt.Rows)
	sum := 0.0
	for r := 0; r < dt.Rows; r++ {
		assert.Equal(t, float64(r), dt.CellFloat("Cycle", r))
		spk := dt.CellFloat("Spike", r)
		sum += spk
		if spk == 1 {
			assert.InDelta(t, -50.0, dt.CellFloat("Vm", r), difTol)
		}
	}
	assert.Equal(t, 20.0, sum)
	assert.Equal(t, 1.0, dt.CellFloat("Spike", 3))
	assert.Equal(t, 0.0, dt.CellFloat("Stim", 4), "refractory cycle ignores input")
	assert.InDelta(t, 5.0, dt.CellFloat("Stim", 5), difTol)

	var nstart, ndone, nspkLog int
	for _, e := range hook.AllEntries() {
		switch e.Message {
		case "run start":
			nstart++
		case "run done":
			ndone++
			assert.Equal(t, 20, e.Data["spikes"])
		case "spike":
			nspkLog++
			assert.Equal(t, logrus.DebugLevel, e.Level)
		}
	}
	assert.Equal(t, 1, nstart)
	assert.Equal(t, 1, ndone)
	assert.Equal(t, 20, nspkLog)

	// running again continues the trace, Init clears it
	ss.Run(10)
	assert.Equal(t, 110, dt.Rows)
	assert.Equal(t, 110.0-1, dt.CellFloat("Cycle", 109))
	ss.Init()
	assert.Equal(t, 0, ss.Trace.Rows)
	assert.Equal(t, 0, ss.ISI.SpikeCount)
	assert.Equal(t, 20, ss.Run(100), "Init restores the same run")
}

func TestSimAuxColumns(t *testing.T) {
	cf := &Config{}
	cf.Defaults()
	cf.Membrane.Kind = membrane.AdExpIF
	cf.Stim.Amp = 2
	ss, _ := testSim(t, cf)
	ss.Run(100)
	require.GreaterOrEqual(t, ss.Trace.ColIdx("W"), 0)
	last := ss.Membrane.EvolvingVars().At(membrane.AdaptIdx)
	assert.Equal(t, last, ss.Trace.CellFloat("W", ss.Trace.Rows-1))
	assert.Greater(t, ss.ISI.SpikeCount, 3)
	wna := ss.Membrane.AuxVars()[0]
	assert.InDelta(t, units.ToNanoamperes(last), wna, difTol)
	assert.Equal(t, wna, ss.Trace.CellFloat("W", ss.Trace.Rows-1), "W is recorded in nA")
	assert.Greater(t, wna, 0.0)

	cf.Membrane.Kind = membrane.IzhikevichIF
	ss, _ = testSim(t, cf)
	ss.Run(10)
	u := ss.Membrane.EvolvingVars().At(membrane.RecoveryIdx)
	assert.InDelta(t, units.ToMillivolts(u), ss.Trace.CellFloat("U", ss.Trace.Rows-1), difTol, "U is recorded in mV")
}

func TestSimScheduleAcrossRuns(t *testing.T) {
	cf := &Config{}
	cf.Defaults()
	cf.Stim.Amp = 1
	cf.Stim.Onset = 5
	cf.Stim.Offset = 15
	ss, _ := testSim(t, cf)
	ss.Run(10)
	ss.Run(10)
	dt := ss.Trace
	require.Equal(t, 20, dt.Rows)
	// the second run continues the schedule rather than replaying the onset
	for r := 10; r < 15; r++ {
		assert.InDelta(t, 1.0, dt.CellFloat("Stim", r), difTol, "cycle %d", r)
	}
	for r := 15; r < 20; r++ {
		assert.Equal(t, 0.0, dt.CellFloat("Stim", r), "cycle %d", r)
	}
	assert.Equal(t, 0, ss.ISI.SpikeCount)

	// pulses keep their phase across runs
	cf.Stim.Onset = 0
	cf.Stim.Offset = 0
	cf.Stim.Type = PulseStim
	cf.Stim.Period = 8
	cf.Stim.Width = 3
	ss, _ = testSim(t, cf)
	ss.Run(6)
	ss.Run(6)
	for r := 0; r < 12; r++ {
		want := 0.0
		if r%8 < 3 {
			want = 1
		}
		assert.InDelta(t, want, ss.Trace.CellFloat("Stim", r), difTol, "cycle %d", r)
	}
}

func TestWriteTrace(t *testing.T) {
	cf := &Config{}
	cf.Defaults()
	cf.Stim.Amp = 5
	ss, _ := testSim(t, cf)
	ss.Run(25)

	var buf bytes.Buffer
	require.NoError(t, ss.WriteTrace(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 26)
	assert.Contains(t, lines[0], "Vm")
	assert.Contains(t, lines[0], "Spike")
}

func TestNewSimErrors(t *testing.T) {
	cf := &Config{}
	cf.Defaults()
	cf.Membrane.LeakyIF.Solver.SubSteps = 0
	_, err := NewSim(cf, nil)
	assert.ErrorIs(t, err, membrane.ErrInvalidArgument)

	cf.Defaults()
	cf.Run.LogLevel = "loud"
	_, err = NewSim(cf, nil)
	assert.Error(t, err)

	cf.Defaults()
	cf.Run.Cycles = 0
	_, err = NewSim(cf, nil)
	assert.Error(t, err)
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(body), 0644))
	return fn
}

func TestLoadConfig(t *testing.T) {
	fn := writeFile(t, "adex.toml", `
[Membrane]
Kind = "AdExpIF"

[Membrane.AdExpIF]
RefractoryPeriods = 2
AdaptSpikeIncr = 0.1

[Membrane.AdExpIF.Solver]
Method = "RK4"
SubSteps = 4

[Stim]
Type = "PulseStim"
Amp = 3.5
Period = 50
Width = 25

[Run]
Cycles = 500
TraceFile = "trace.csv"
LogLevel = "debug"
`)
	cf, err := LoadConfig(fn)
	require.NoError(t, err)
	assert.Equal(t, membrane.AdExpIF, cf.Membrane.Kind)
	ap := cf.Membrane.AdExpIF
	assert.Equal(t, 2, ap.RefractoryPeriods)
	assert.Equal(t, 0.1, ap.AdaptSpikeIncr)
	assert.InDelta(t, 0.1e-9, ap.AdaptSpikeIncrSI, 1e-20, "derived values updated")
	assert.Equal(t, -70.6, ap.RestV, "defaults kept")
	assert.Equal(t, ode.RK4, ap.Solver.Method)
	assert.Equal(t, 4, ap.Solver.SubSteps)
	assert.Equal(t, PulseStim, cf.Stim.Type)
	assert.Equal(t, 3.5, cf.Stim.Amp)
	assert.Equal(t, 500, cf.Run.Cycles)
	assert.Equal(t, "trace.csv", cf.Run.TraceFile)
	lvl, err := cf.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, lvl)
	assert.Equal(t, &cf.Membrane.AdExpIF.Params, cf.Membrane.Common())

	ss, _ := testSim(t, cf)
	assert.Equal(t, []string{"Vm", "W"}, ss.Membrane.VarNames())

	fn = writeFile(t, "typo.toml", "[Stim]\nAmplitude = 3\n")
	_, err = LoadConfig(fn)
	assert.ErrorContains(t, err, "Stim.Amplitude")

	fn = writeFile(t, "kind.toml", "[Membrane]\nKind = \"HodgkinHuxley\"\n")
	_, err = LoadConfig(fn)
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
