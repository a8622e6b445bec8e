// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

import "image"

// Assembler correlates decoded slice values into Frames, using each Sync
// slice as the boundary between one frame's data and the next.
//
// It owns no decoders; the caller (Pipeline) decodes a slice first and
// pushes the labelled result in. A Sync doesn't carry data of its own: the
// camera emits exactly one per frame near the top of the slice burst, so
// everything collected since the previous Sync belongs to the frame that
// sync opened. Consequently a frame is only flushed once the *next* Sync
// arrives, not immediately when the first one is seen.
type Assembler struct {
	pending map[Label]interface{}
	idx     int
}

// NewAssembler returns an empty Assembler. idx starts at 0 so the first
// flushed Frame has Idx == 1.
func NewAssembler() *Assembler {
	return &Assembler{pending: make(map[Label]interface{})}
}

// Push records one decoded value under its label.
//
// A Sync value only triggers a flush if pending already holds an earlier
// Sync (i.e. this is the second sync boundary seen): the prior frame is
// flushed and returned, then the new sync is stored into the now-empty
// pending map. The leading sync of a stream is just stored, with nothing to
// flush yet. Every other label simply accumulates, overwriting any earlier
// value under the same label, and returns nil.
func (a *Assembler) Push(label Label, value interface{}) *Frame {
	if label == Visible {
		if vr, ok := value.(VisibleResult); ok && !vr.Ready() && !vr.Dropped() {
			return nil
		}
	}

	if label == Sync {
		if _, ok := a.pending[Sync]; ok {
			frame := a.flush()
			a.pending[Sync] = value
			return frame
		}
		a.pending[Sync] = value
		return nil
	}

	a.pending[label] = value
	return nil
}

// flush builds a Frame from whatever is pending (other than the Sync that
// triggered it, which the caller re-stores immediately after) and resets for
// the next one. It returns nil when nothing usable accumulated between the
// two syncs.
func (a *Assembler) flush() *Frame {
	defer func() { a.pending = make(map[Label]interface{}) }()

	sync, hasSync := a.pending[Sync].(*SyncRecord)
	thermal, hasThermal := a.pending[Packets].(*ThermalImage)
	agc, hasAGC := a.pending[Agc].(*image.Gray)
	visible, hasVisible := a.pending[Visible].(VisibleResult)
	edges, hasEdges := a.pending[EdgeRLE].(*EdgeMask)
	telemetry, hasTelemetry := a.pending[TelemetryLabel].(*Telemetry)

	if !hasThermal && !hasAGC && !hasVisible && !hasEdges && !hasTelemetry {
		return nil
	}

	a.idx++
	f := &Frame{Idx: a.idx}

	if hasSync {
		ts := sync.TsLow
		f.Ts = &ts
	}
	if hasThermal {
		f.Thermal = thermal
	}
	if hasAGC {
		f.AGC = agc
	}
	if hasEdges {
		f.EdgeMask = edges
	}

	// A dedicated Telemetry slice and a visible-frame's JSON trailer both
	// describe the same camera state; the dedicated slice wins when both are
	// present in the same window.
	switch {
	case hasTelemetry:
		f.Telemetry = telemetry
	case hasVisible && visible.Telemetry != nil:
		f.Telemetry = visible.Telemetry
	}

	if hasVisible && visible.Ready() {
		f.Visible = visible.Image
	}

	return f
}
