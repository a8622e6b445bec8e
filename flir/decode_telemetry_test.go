// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maruel/flirone/flirtest"
)

func TestDecodeTelemetry_noJSON(t *testing.T) {
	tel, err := DecodeTelemetry(make([]byte, 200))
	assert.NoError(t, err)
	assert.Nil(t, tel)
}

func TestDecodeTelemetry_unrecognizedObjectYieldsNoTelemetry(t *testing.T) {
	raw := flirtest.BuildTelemetry(200, `{"foo":"bar"}`)
	tel, err := DecodeTelemetry(raw)
	assert.NoError(t, err)
	assert.Nil(t, tel)
}

func TestDecodeTelemetry_statusOnly(t *testing.T) {
	raw := flirtest.BuildTelemetry(200, flirtest.StatusJSON("closed", "running", 305.5, 298.1))
	tel, err := DecodeTelemetry(raw)
	assert.NoError(t, err)
	assert.Equal(t, "closed", *tel.ShutterState)
	assert.Equal(t, "running", *tel.FFCState)
	assert.InDelta(t, 305.5, *tel.ShutterTempK, 0.001)
	assert.InDelta(t, 298.1, *tel.AuxTempK, 0.001)
	assert.Nil(t, tel.BatteryVoltage)
}

func TestDecodeTelemetry_batteryWinsOverStatus(t *testing.T) {
	raw := flirtest.BuildTelemetry(400,
		flirtest.StatusJSON("closed", "running", 305.5, 298.1),
		flirtest.BatteryUpdateJSON(4.1, 87),
	)
	tel, err := DecodeTelemetry(raw)
	assert.NoError(t, err)
	assert.InDelta(t, 4.1, *tel.BatteryVoltage, 0.001)
	assert.InDelta(t, 87, *tel.BatteryPercent, 0.001)
}

func TestDecodeTelemetry_batteryWinsRegardlessOfOrder(t *testing.T) {
	raw := flirtest.BuildTelemetry(400,
		flirtest.BatteryUpdateJSON(3.9, 50),
		flirtest.StatusJSON("open", "idle", 300, 290),
	)
	tel, err := DecodeTelemetry(raw)
	assert.NoError(t, err)
	assert.InDelta(t, 3.9, *tel.BatteryVoltage, 0.001)
}
