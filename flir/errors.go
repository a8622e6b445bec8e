// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

import "fmt"

// MalformedSlice is returned by a decoder when a slice already routed to it
// by its label fails that decoder's strict shape check (wrong length, bad
// magic). It is distinct from a silently dropped frame: the caller gets an
// explicit error instead of a nil result.
type MalformedSlice struct {
	Label  Label
	Reason string
}

func (e *MalformedSlice) Error() string {
	return fmt.Sprintf("flir: malformed %s slice: %s", e.Label, e.Reason)
}

func malformed(label Label, format string, args ...interface{}) error {
	return &MalformedSlice{Label: label, Reason: fmt.Sprintf(format, args...)}
}
