// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

import (
	"bytes"
	"encoding/json"
	"io"
)

// DecodeTelemetry decodes a dedicated telemetry slice: zero-padded, mixed
// binary/ASCII bytes carrying one or more whitespace-free JSON objects.
//
// The camera emits telemetry as a sequence of independently-addressed JSON
// messages rather than one envelope, so raw is scanned object-by-object
// rather than unmarshalled whole. A batteryVoltageUpdate message always
// wins outright; a general status message is kept only as a fallback in
// case no battery update is found anywhere in the slice.
//
// A slice that matched the telemetry heuristic but carries no recognized
// object is not an error: it is swallowed and reported as "no telemetry"
// (nil, nil), the same way the original scanner simply returns None. This
// keeps MalformedSlice reserved for decoders with a strict, fixed shape.
func DecodeTelemetry(raw []byte) (*Telemetry, error) {
	cleaned := stripNonPrintable(raw)

	var fallback *Telemetry
	for _, obj := range scanJSONObjects(cleaned) {
		t := telemetryFromObject(obj)
		if t == nil {
			continue
		}
		if t.BatteryVoltage != nil || t.BatteryPercent != nil {
			return t, nil
		}
		if fallback == nil {
			fallback = t
		}
	}
	return fallback, nil
}

// stripNonPrintable drops NUL padding and anything outside printable ASCII,
// leaving the embedded JSON text compact enough for json.Decoder to parse
// object-by-object.
func stripNonPrintable(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for _, b := range raw {
		switch b {
		case '\t', '\n', '\r', '\v', '\f':
			out = append(out, b)
		default:
			if b >= 0x20 && b < 0x7f {
				out = append(out, b)
			}
		}
	}
	return out
}

// scanJSONObjects repeatedly decodes one JSON value starting from the first
// '{' at or after the decoder's current offset, the Go analogue of
// json.JSONDecoder().raw_decode() used to pull multiple back-to-back objects
// out of a single buffer with no separators between them. A '{' that isn't
// the start of a valid object is skipped one byte at a time.
func scanJSONObjects(buf []byte) []map[string]interface{} {
	var objs []map[string]interface{}
	pos := 0
	for {
		rel := bytes.IndexByte(buf[pos:], '{')
		if rel < 0 {
			return objs
		}
		pos += rel
		dec := json.NewDecoder(bytes.NewReader(buf[pos:]))
		var obj map[string]interface{}
		if err := dec.Decode(&obj); err != nil {
			if err == io.EOF {
				return objs
			}
			pos++
			continue
		}
		objs = append(objs, obj)
		pos += int(dec.InputOffset())
	}
}

// telemetryFromObject maps one decoded JSON telemetry message to a
// Telemetry value, or nil if the object matches neither recognized shape:
//
//   - a battery status update: {"type":"batteryVoltageUpdate","data":{"voltage":..,"percentage":..}}
//   - a general status update: {"shutterState":..,"ffcState":..,"shutterTemperature":..,
//     "auxTemperature":..,"usbNotifiedTimestamp":..,"usbEnqueuedTimestamp":..}
func telemetryFromObject(obj map[string]interface{}) *Telemetry {
	if typ, _ := obj["type"].(string); typ == "batteryVoltageUpdate" {
		data, _ := obj["data"].(map[string]interface{})
		t := &Telemetry{}
		if v, ok := asFloat(data["voltage"]); ok {
			t.BatteryVoltage = &v
		}
		if v, ok := asFloat(data["percentage"]); ok {
			t.BatteryPercent = &v
		}
		if t.IsEmpty() {
			return nil
		}
		return t
	}

	_, hasShutter := obj["shutterState"]
	_, hasFFC := obj["ffcState"]
	if !hasShutter && !hasFFC {
		return nil
	}

	t := &Telemetry{}
	if s, ok := obj["shutterState"].(string); ok {
		t.ShutterState = &s
	}
	if s, ok := obj["ffcState"].(string); ok {
		t.FFCState = &s
	}
	if v, ok := asFloat(obj["shutterTemperature"]); ok {
		t.ShutterTempK = &v
	}
	if v, ok := asFloat(obj["auxTemperature"]); ok {
		t.AuxTempK = &v
	}
	if v, ok := asFloat(obj["usbNotifiedTimestamp"]); ok {
		t.TNotify = &v
	}
	if v, ok := asFloat(obj["usbEnqueuedTimestamp"]); ok {
		t.TEnqueue = &v
	}
	if t.IsEmpty() {
		return nil
	}
	return t
}

func asFloat(v interface{}) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}
