// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

import (
	"bytes"
	"encoding/binary"
)

const syncLen = 28

// DecodeSync decodes a 28-byte EFBE sync marker into a SyncRecord.
//
// It fails with *MalformedSlice if raw is not exactly 28 bytes or does not
// begin with the EF BE 00 00 magic.
func DecodeSync(raw []byte) (*SyncRecord, error) {
	if len(raw) != syncLen {
		return nil, malformed(Sync, "want %d bytes, got %d", syncLen, len(raw))
	}
	if !bytes.HasPrefix(raw, syncPrefix) {
		return nil, malformed(Sync, "missing EF BE 00 00 magic")
	}

	// Right-pad to 32 B so the record parses as eight clean little-endian
	// u32 fields (the trailing 4 B "reserved" field is not on the wire and
	// always decodes as zero).
	var padded [32]byte
	copy(padded[:], raw)

	var rec SyncRecord
	fields := []*uint32{
		&rec.Magic, &rec.Zero, &rec.Flag, &rec.LenPacket,
		&rec.LenJSON, &rec.TsLow, &rec.TsHigh, &rec.Reserved,
	}
	for i, f := range fields {
		*f = binary.LittleEndian.Uint32(padded[i*4 : i*4+4])
	}
	return &rec, nil
}

// Encode re-encodes r as the 32-byte little-endian layout DecodeSync parses
// (28 meaningful bytes followed by the reserved field). Used by round-trip
// tests.
func (r *SyncRecord) Encode() []byte {
	out := make([]byte, 32)
	fields := []uint32{r.Magic, r.Zero, r.Flag, r.LenPacket, r.LenJSON, r.TsLow, r.TsHigh, r.Reserved}
	for i, v := range fields {
		binary.LittleEndian.PutUint32(out[i*4:i*4+4], v)
	}
	return out
}
