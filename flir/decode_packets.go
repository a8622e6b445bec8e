// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

// VoSPI packet layout, as documented at p.21 of the Lepton engineering
// datasheet and observed on the FLIR One Pro's re-tunnelled USB stream.
const (
	packetLen      = 164
	packetIDMask   = 0x0FFF // 12-bit row id; high nibble is segment/discard flags
	rowWords       = 80     // 80 x uint16 == 160 B payload
	imageRows      = ThermalHeight
	telemetryRows  = 3
	rowsPerSlice   = imageRows + telemetryRows
	packetsLen     = rowsPerSlice * packetLen // 10,332 B
	pixelDataMask  = 0x3FFF
	maxMissingRows = 2
)

// DecodePackets decodes one 10,332-byte VoSPI packets slice into a 60x80
// ThermalImage.
//
// It returns (nil, false) when the slice is the wrong length, or when more
// than two image rows are missing after all packets are consumed: both are
// upstream transmission glitches that must be dropped silently rather than
// surfaced as errors (see MalformedSlice doc).
//
// The CRC carried in each packet is intentionally not validated; the
// camera's error rate on this endpoint is negligible and checking it would
// double the decode cost for no practical benefit.
func DecodePackets(raw []byte) (*ThermalImage, bool) {
	if len(raw) != packetsLen {
		return nil, false
	}

	var rows [imageRows][rowWords]uint16
	present := [imageRows]bool{}

	for p := 0; p < rowsPerSlice; p++ {
		pkt := raw[p*packetLen : (p+1)*packetLen]
		id := (uint16(pkt[0])<<8 | uint16(pkt[1])) & packetIDMask
		if int(id) >= imageRows {
			continue // telemetry packet or stray id
		}
		payload := pkt[4 : 4+rowWords*2]
		var row [rowWords]uint16
		for i := 0; i < rowWords; i++ {
			row[i] = (uint16(payload[2*i])<<8 | uint16(payload[2*i+1])) & pixelDataMask
		}
		rows[id] = row
		present[id] = true
	}

	missing := 0
	for _, ok := range present {
		if !ok {
			missing++
		}
	}
	if missing > maxMissingRows {
		return nil, false
	}

	fillGaps(&rows, &present)

	img := &ThermalImage{}
	for y := 0; y < imageRows; y++ {
		copy(img.Row(y), rows[y][:])
	}
	return img, true
}

// fillGaps fills each missing row by copying the nearest preceding valid
// row, falling back to the nearest following valid row when no preceding
// row exists (e.g. row 0 is missing).
func fillGaps(rows *[imageRows][rowWords]uint16, present *[imageRows]bool) {
	for y := 0; y < imageRows; y++ {
		if present[y] {
			continue
		}
		if prev, ok := nearestPresent(present, y, -1); ok {
			rows[y] = rows[prev]
			continue
		}
		if next, ok := nearestPresent(present, y, 1); ok {
			rows[y] = rows[next]
		}
	}
}

func nearestPresent(present *[imageRows]bool, from, dir int) (int, bool) {
	for i := from + dir; i >= 0 && i < imageRows; i += dir {
		if present[i] {
			return i, true
		}
	}
	return 0, false
}
