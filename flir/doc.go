// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package flir decodes the raw USB bulk-endpoint stream produced by a FLIR
// One Pro Gen-3 thermal camera.
//
// The camera re-tunnels its Lepton-3 sensor's VoSPI row-packet framing, a
// streaming JPEG from its visible-light sensor, an edge bitmap, and JSON
// telemetry, all interleaved on one bulk endpoint and delimited by EFBE sync
// markers. This package classifies each raw slice, decodes it according to
// its kind, and assembles the decoded pieces into timestamped Frames.
//
// References
//
// FLIR One Pro Gen-3 USB protocol (reverse engineered, no public datasheet):
//   VID 0x09CB, PID 0x1996, bulk-IN endpoint 0x85.
//
// Lepton-3 VoSPI framing (same row-packet shape as the SPI-attached Lepton):
//   https://www.flir.com/support/products/lepton/
package flir
