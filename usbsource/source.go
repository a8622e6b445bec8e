// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package usbsource supplies raw USB bulk-transfer slices to a flir.Pipeline,
// either replayed from a directory of previously captured chunks or read
// live from an attached FLIR One Pro.
package usbsource

import "io"

// Source yields raw USB slices, one bulk transfer at a time, in the order
// the pipeline must see them.
//
// Next returns io.EOF once the source is exhausted (end of a replay
// directory, or the device was closed); any other error is a read failure
// the caller should treat as fatal to the stream.
type Source interface {
	Next() ([]byte, error)
	Close() error
}
