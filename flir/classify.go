// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

import "bytes"

// Classifier labels each raw USB slice in an interleaved FLIR One Pro stream.
//
// It is stateful: a visible-light JPEG spans multiple slices, and the
// telemetry slice trailing a JPEG must be attributed to that JPEG's frame
// rather than misclassified as an edge-RLE slice (their byte-length ranges
// overlap). Two pipelines must never share a Classifier; construct one per
// Pipeline.
type Classifier struct {
	collectingJPEG   bool
	waitingTelemetry bool
}

// NewClassifier returns a Classifier with fresh state.
func NewClassifier() *Classifier {
	return &Classifier{}
}

var (
	jpegSOIPrefix = []byte{0xFF, 0xD8, 0xFF, 0xC0, 0x00, 0x11}
	jpegEOI       = []byte{0xFF, 0xD9}
	syncPrefix    = []byte{0xEF, 0xBE, 0x00, 0x00}
)

// Classify labels one slice, in order, and updates the classifier's state.
func (c *Classifier) Classify(slice []byte) Label {
	if c.collectingJPEG {
		if bytes.Contains(slice, jpegEOI) {
			c.collectingJPEG = false
			c.waitingTelemetry = true
		}
		return Visible
	}

	if c.waitingTelemetry {
		c.waitingTelemetry = false
		if looksLikeTelemetry(slice) {
			return TelemetryLabel
		}
		// Fall through to normal detection for this slice.
	}

	if bytes.HasPrefix(slice, jpegSOIPrefix) {
		c.collectingJPEG = true
		if bytes.Contains(slice, jpegEOI) {
			c.collectingJPEG = false
			c.waitingTelemetry = true
		}
		return Visible
	}

	n := len(slice)
	switch {
	case n == 0:
		return KeepAlive
	case n == 28 && bytes.HasPrefix(slice, syncPrefix):
		return Sync
	case n >= 10000 && n <= 11000:
		return Packets
	case looksLikeTelemetry(slice):
		return TelemetryLabel
	case n >= 7000 && n <= 25000 && !bytes.HasPrefix(slice, []byte{0xFF, 0xD8}):
		return EdgeRLE
	case n == 32768:
		return Agc // legacy / rarely used, kept per the source's own note
	default:
		return Unknown
	}
}

// looksLikeTelemetry applies the shape-only telemetry heuristic: length in
// [120, 512], contains a '{', and the last non-zero byte is '}'. It is
// deliberately cheap (no JSON parsing) so the common rejection path stays
// O(len(slice)).
func looksLikeTelemetry(slice []byte) bool {
	n := len(slice)
	if n < 120 || n > 512 {
		return false
	}
	if !bytes.ContainsRune(slice, '{') {
		return false
	}
	trimmed := bytes.TrimRight(slice, "\x00")
	return len(trimmed) > 0 && trimmed[len(trimmed)-1] == '}'
}
