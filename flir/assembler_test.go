// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler_firstSyncDoesNotFlush(t *testing.T) {
	a := NewAssembler()
	f := a.Push(Sync, &SyncRecord{TsLow: 1})
	assert.Nil(t, f)
}

func TestAssembler_secondSyncFlushesWithTs(t *testing.T) {
	a := NewAssembler()
	a.Push(Sync, &SyncRecord{TsLow: 0x12345678})
	thermal := &ThermalImage{}
	a.Push(Packets, thermal)
	f := a.Push(Sync, &SyncRecord{TsLow: 0x87654321})
	if f == nil {
		t.Fatal("expected a flushed frame")
	}
	assert.Equal(t, 1, f.Idx)
	assert.Equal(t, uint32(0x12345678), *f.Ts)
	assert.Same(t, thermal, f.Thermal)
}

func TestAssembler_idxIsContiguous(t *testing.T) {
	a := NewAssembler()
	a.Push(Sync, &SyncRecord{TsLow: 0})
	var idxs []int
	for i := 0; i < 5; i++ {
		a.Push(Packets, &ThermalImage{})
		f := a.Push(Sync, &SyncRecord{TsLow: uint32(i)})
		if f != nil {
			idxs = append(idxs, f.Idx)
		}
	}
	for i, idx := range idxs {
		assert.Equal(t, i+1, idx)
	}
}

func TestAssembler_emptyWindowBetweenSyncsYieldsNothing(t *testing.T) {
	a := NewAssembler()
	a.Push(Sync, &SyncRecord{TsLow: 0})
	f := a.Push(Sync, &SyncRecord{TsLow: 1})
	assert.Nil(t, f)
}

func TestAssembler_telemetryPrecedence(t *testing.T) {
	a := NewAssembler()
	a.Push(Sync, &SyncRecord{TsLow: 0})

	shutterState := "open"
	visTel := &Telemetry{ShutterState: &shutterState}
	a.Push(Visible, VisibleResult{kind: visibleReady, Telemetry: visTel})

	voltage := 3.9
	dedicated := &Telemetry{BatteryVoltage: &voltage}
	a.Push(TelemetryLabel, dedicated)

	f := a.Push(Sync, &SyncRecord{TsLow: 1})
	if f == nil {
		t.Fatal("expected a flushed frame")
	}
	assert.Same(t, dedicated, f.Telemetry)
}

func TestAssembler_fallsBackToVisibleTelemetry(t *testing.T) {
	a := NewAssembler()
	a.Push(Sync, &SyncRecord{TsLow: 0})

	shutterState := "open"
	visTel := &Telemetry{ShutterState: &shutterState}
	a.Push(Visible, VisibleResult{kind: visibleReady, Telemetry: visTel})

	f := a.Push(Sync, &SyncRecord{TsLow: 1})
	if f == nil {
		t.Fatal("expected a flushed frame")
	}
	assert.Same(t, visTel, f.Telemetry)
}
