// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

import (
	"image"
	"image/color"
)

// Label identifies the kind of a raw USB slice, as determined by Classifier.
type Label uint8

// All the labels a Classifier can produce. Sync, Packets, Visible,
// TelemetryLabel, Agc and EdgeRLE each select a decoder; KeepAlive and
// Unknown are discarded by the pipeline.
const (
	Unknown Label = iota
	KeepAlive
	Sync
	Packets
	Visible
	TelemetryLabel
	Agc
	EdgeRLE
)

func (l Label) String() string {
	switch l {
	case KeepAlive:
		return "keep_alive"
	case Sync:
		return "sync"
	case Packets:
		return "packets"
	case Visible:
		return "visible"
	case TelemetryLabel:
		return "telemetry"
	case Agc:
		return "agc"
	case EdgeRLE:
		return "edge_rle"
	default:
		return "unknown"
	}
}

// SyncRecord is the decoded content of a 28-byte EFBE sync slice.
//
// magic is always 0x0000BEEF (little-endian bytes EF BE 00 00); TsLow is the
// field exposed as the frame timestamp. The others are preserved verbatim
// but not otherwise interpreted by this package.
type SyncRecord struct {
	Magic      uint32
	Zero       uint32
	Flag       uint32
	LenPacket  uint32
	LenJSON    uint32
	TsLow      uint32
	TsHigh     uint32
	Reserved   uint32
}

// syncMagic is the little-endian uint32 formed by the wire bytes EF BE 00 00.
const syncMagic = 0x0000BEEF

// ThermalImage is a 60-row by 80-column matrix of 14-bit radiometric counts,
// one per pixel, stored in 16-bit cells with the upper two bits always zero.
//
// It mirrors a flat pixel array plus image.Image glue, since the wire image
// is the same 60x80 Lepton-3 frame, just re-tunnelled over USB instead of
// SPI.
type ThermalImage struct {
	Pix [ThermalHeight * ThermalWidth]uint16
}

// Thermal image dimensions, fixed by the Lepton-3 sensor.
const (
	ThermalWidth  = 80
	ThermalHeight = 60
)

func (t *ThermalImage) ColorModel() color.Model { return color.Gray16Model }

func (t *ThermalImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, ThermalWidth, ThermalHeight)
}

func (t *ThermalImage) At(x, y int) color.Color {
	return color.Gray16{Y: t.Gray16At(x, y)}
}

// Gray16At returns the raw 14-bit count (in a 16-bit cell) at (x, y).
func (t *ThermalImage) Gray16At(x, y int) uint16 {
	return t.Pix[y*ThermalWidth+x]
}

// Row returns row y (0-based) as a slice aliasing the image's backing array.
func (t *ThermalImage) Row(y int) []uint16 {
	return t.Pix[y*ThermalWidth : (y+1)*ThermalWidth]
}

// EdgeMask is a 1080-row by 1440-column boolean bitmap, one bool per pixel,
// used for multi-spectral overlay of visible edges onto the thermal image.
type EdgeMask struct {
	Bits []bool // row-major, len == EdgeHeight*EdgeWidth
}

// Edge mask dimensions, fixed by the camera's visible-light edge detector.
const (
	EdgeWidth  = 1440
	EdgeHeight = 1080
	EdgePixels = EdgeWidth * EdgeHeight
)

func newEdgeMask() *EdgeMask {
	return &EdgeMask{Bits: make([]bool, EdgePixels)}
}

// At reports whether pixel (x, y) is an edge.
func (m *EdgeMask) At(x, y int) bool {
	return m.Bits[y*EdgeWidth+x]
}

// Telemetry is camera telemetry extracted from a dedicated telemetry slice
// or from the JSON trailer of a visible-light JPEG. Every field is
// independently optional; a Telemetry value with every field nil must never
// be emitted by a decoder.
type Telemetry struct {
	ShutterState   *string
	FFCState       *string
	ShutterTempK   *float64
	AuxTempK       *float64
	TNotify        *float64
	TEnqueue       *float64
	BatteryVoltage *float64
	BatteryPercent *float64
}

// IsEmpty reports whether every field of t is nil.
func (t *Telemetry) IsEmpty() bool {
	if t == nil {
		return true
	}
	return t.ShutterState == nil && t.FFCState == nil && t.ShutterTempK == nil &&
		t.AuxTempK == nil && t.TNotify == nil && t.TEnqueue == nil &&
		t.BatteryVoltage == nil && t.BatteryPercent == nil
}

// Frame is one correlated bundle of thermal, visible, telemetry and
// edge-mask data for a single sensor exposure, as emitted by Assembler.
type Frame struct {
	Idx       int // strictly increasing, starts at 1
	Ts        *uint32
	Thermal   *ThermalImage
	AGC       *image.Gray
	Telemetry *Telemetry
	EdgeMask  *EdgeMask
	Visible   image.Image
}

// visibleResultKind tags the three-way return of VisibleDecoder.Decode.
type visibleResultKind uint8

const (
	visibleNotReady visibleResultKind = iota
	visibleDropped
	visibleReady
)

// VisibleResult is the result of feeding one slice to a VisibleDecoder.
type VisibleResult struct {
	kind      visibleResultKind
	Image     image.Image
	Telemetry *Telemetry
}

// Ready reports whether a complete (possibly telemetry-less) image was
// decoded from the accumulated slices.
func (r VisibleResult) Ready() bool { return r.kind == visibleReady }

// Dropped reports whether a complete JPEG byte stream was assembled but
// failed to decode.
func (r VisibleResult) Dropped() bool { return r.kind == visibleDropped }
