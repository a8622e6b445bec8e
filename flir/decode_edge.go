// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

import "encoding/binary"

// DecodeEdgeRLE decodes a run-length-encoded edge bitmap slice into a
// 1080x1440 boolean mask (true == edge pixel).
//
// raw is a 4-byte little-endian declared payload length L followed by the
// L-byte run-length payload itself, zero-padded out to the slice's full
// size; the payload is a sequence of little-endian uint16 run lengths,
// alternating off/on starting with an off-run. Only the declared L bytes
// are decoded — anything beyond that is padding, not further runs. The
// decoded run stream is then clamped and zero-padded to exactly EdgePixels:
// a camera that undercounts or overcounts by a few runs still yields a
// usable (if slightly truncated or padded) mask rather than an error, since
// the mask is advisory overlay data rather than pipeline critical.
func DecodeEdgeRLE(raw []byte) (*EdgeMask, error) {
	if len(raw) < 6 {
		return nil, malformed(EdgeRLE, "want at least 6 bytes, got %d", len(raw))
	}

	declared := int(binary.LittleEndian.Uint32(raw[0:4]))
	payload := raw[4:]
	if declared < len(payload) {
		payload = payload[:declared]
	}

	mask := newEdgeMask()
	runs := payload
	// Pad a single trailing odd byte with one zero byte rather than
	// dropping it: the run stream is pairs of u16s, and the original
	// decoder still counts the odd byte as contributing a (short) run.
	if len(runs)%2 != 0 {
		runs = append(append([]byte{}, runs...), 0)
	}

	pos := 0
	on := false
	for i := 0; i+2 <= len(runs) && pos < EdgePixels; i += 2 {
		n := int(binary.LittleEndian.Uint16(runs[i : i+2]))
		if pos+n > EdgePixels {
			n = EdgePixels - pos
		}
		if on {
			for j := pos; j < pos+n; j++ {
				mask.Bits[j] = true
			}
		}
		pos += n
		on = !on
	}
	return mask, nil
}
