// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package flirtest builds synthetic FLIR One Pro USB slices for testing,
// standing in for a physical camera the same way the driver's own fake
// hardware shim stands in for a physical Lepton sensor.
package flirtest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/jpeg"
	"math/rand"
)

// BuildSync returns a 28-byte EFBE sync slice carrying ts as TsLow, along
// with the declared lengths of the packets/JSON blocks that follow it.
func BuildSync(ts uint32, lenPacket, lenJSON uint32) []byte {
	buf := make([]byte, 28)
	binary.LittleEndian.PutUint32(buf[0:4], 0x0000BEEF)
	binary.LittleEndian.PutUint32(buf[4:8], 0)
	binary.LittleEndian.PutUint32(buf[8:12], 1)
	binary.LittleEndian.PutUint32(buf[12:16], lenPacket)
	binary.LittleEndian.PutUint32(buf[16:20], lenJSON)
	binary.LittleEndian.PutUint32(buf[20:24], ts)
	binary.LittleEndian.PutUint32(buf[24:28], 0)
	return buf
}

// BuildPackets returns a 10,332-byte VoSPI packets slice for an 80x60
// thermal frame whose pixel at (x, y) is fill+x+y, deterministic and cheap
// to assert against. missingRows marks row ids (0-59) to omit entirely, to
// exercise the gap-fill path.
func BuildPackets(fill uint16, missingRows ...int) []byte {
	return buildPacketsImpl(missingRows, func(row, col int) uint16 {
		return fill + uint16(row) + uint16(col)
	})
}

// BuildPacketsRowFill returns a 10,332-byte VoSPI packets slice where every
// pixel in row r is rowValue(r), letting a caller build row-uniform test
// frames (e.g. "pixel == row index") that BuildPackets's fill+x+y shape
// can't express. missingRows marks row ids (0-59) to omit entirely.
func BuildPacketsRowFill(rowValue func(row int) uint16, missingRows ...int) []byte {
	return buildPacketsImpl(missingRows, func(row, _ int) uint16 { return rowValue(row) })
}

func buildPacketsImpl(missingRows []int, pixel func(row, col int) uint16) []byte {
	skip := make(map[int]bool, len(missingRows))
	for _, r := range missingRows {
		skip[r] = true
	}

	const packetLen = 164
	buf := make([]byte, 63*packetLen)
	for row := 0; row < 63; row++ {
		pkt := buf[row*packetLen : (row+1)*packetLen]
		id := row
		if id >= 60 || skip[id] {
			// Telemetry rows (60-62) and deliberately-missing rows carry an
			// out-of-range id so the decoder's row filter drops them.
			id = 0x0FFF
		}
		pkt[0] = byte(id >> 8)
		pkt[1] = byte(id)
		if id >= 60 {
			continue
		}
		for i := 0; i < 80; i++ {
			v := pixel(row, i) & 0x3FFF
			pkt[4+2*i] = byte(v >> 8)
			pkt[4+2*i+1] = byte(v)
		}
	}
	return buf
}

// BuildAGC returns a 32,768-byte AGC slice whose active 120x160 region is
// filled with fill, leaving the padding band zeroed.
func BuildAGC(fill byte) []byte {
	const w, h = 256, 128
	buf := make([]byte, w*h)
	const activeW, activeH = 160, 120
	const x0, y0 = (w - activeW) / 2, (h - activeH) / 2
	for y := 0; y < activeH; y++ {
		row := buf[(y0+y)*w+x0 : (y0+y)*w+x0+activeW]
		for i := range row {
			row[i] = fill
		}
	}
	return buf
}

// BuildEdgeRLE returns an edge-RLE slice encoding alternating off/on runs,
// each of length runLen, until total pixels are covered. The 4-byte header
// carries the payload's byte length, as the decoder expects, not the pixel
// total.
func BuildEdgeRLE(total int, runLen int) []byte {
	var payload bytes.Buffer
	remaining := total
	for remaining > 0 {
		n := runLen
		if n > remaining {
			n = remaining
		}
		var run [2]byte
		binary.LittleEndian.PutUint16(run[:], uint16(n))
		payload.Write(run[:])
		remaining -= n
	}

	var buf bytes.Buffer
	header := make([]byte, 4)
	binary.LittleEndian.PutUint32(header, uint32(payload.Len()))
	buf.Write(header)
	buf.Write(payload.Bytes())
	return buf.Bytes()
}

// BuildTelemetry returns a dedicated telemetry slice of exactly n bytes
// (zero-padded), embedding the given JSON-object bodies back to back.
func BuildTelemetry(n int, objs ...string) []byte {
	buf := make([]byte, n)
	var payload bytes.Buffer
	for _, o := range objs {
		payload.WriteString(o)
	}
	copy(buf, payload.Bytes())
	return buf
}

// BatteryUpdateJSON returns the JSON body of a battery status telemetry
// message, as embedded via BuildTelemetry or a visible-frame trailer.
func BatteryUpdateJSON(voltage, percentage float64) string {
	return fmt.Sprintf(`{"type":"batteryVoltageUpdate","data":{"voltage":%g,"percentage":%g}}`, voltage, percentage)
}

// StatusJSON returns the JSON body of a general status telemetry message.
func StatusJSON(shutterState, ffcState string, shutterTempK, auxTempK float64) string {
	return fmt.Sprintf(`{"shutterState":%q,"ffcState":%q,"shutterTemperature":%g,"auxTemperature":%g}`,
		shutterState, ffcState, shutterTempK, auxTempK)
}

// BuildVisible returns one or more Visible-labelled slices (split at
// maxChunk bytes, the way the camera streams a JPEG across several bulk
// transfers) encoding a solid-color w x h JPEG, optionally followed by a
// JSON telemetry tail.
//
// The camera's own JPEGs go straight from SOI to a 3-component SOF0 with no
// JFIF/APP0 segment, which is what the classifier's six-byte magic
// (FF D8 FF C0 00 11) matches. The standard library's encoder writes its
// DQT segment before SOF0, so the encoded stream is reordered to move its
// SOF0 segment immediately after SOI before splitting — a reorder that
// doesn't touch decodability, since a decoder resolves SOF's component
// table references only once it reaches the scan, by which point DQT/DHT
// have already been read regardless of where SOF itself sat.
func BuildVisible(w, h int, c uint8, maxChunk int, tailJSON string) [][]byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c, c, c, 0xFF
	}
	var jpegBuf bytes.Buffer
	if err := jpeg.Encode(&jpegBuf, img, nil); err != nil {
		panic(err) // synthetic input is always encodable
	}

	full := leadWithSOF0(jpegBuf.Bytes())
	full = append(full, []byte(tailJSON)...)

	var chunks [][]byte
	for len(full) > 0 {
		n := maxChunk
		if n > len(full) {
			n = len(full)
		}
		chunks = append(chunks, full[:n])
		full = full[n:]
	}
	return chunks
}

// leadWithSOF0 reorders the markers preceding a JPEG's Start-Of-Scan so the
// SOF0 segment comes right after SOI, pulling every other leading segment
// (APP0, DQT, DHT, ...) after it in their original relative order.
func leadWithSOF0(full []byte) []byte {
	const soi, sof0, sos = 0xD8, 0xC0, 0xDA

	pos := 2 // past FF D8
	var sofSeg, others []byte
	for pos+4 <= len(full) && full[pos] == 0xFF {
		marker := full[pos+1]
		if marker == sos {
			break
		}
		length := int(full[pos+2])<<8 | int(full[pos+3])
		seg := full[pos : pos+2+length]
		if marker == sof0 {
			sofSeg = seg
		} else {
			others = append(others, seg...)
		}
		pos += 2 + length
	}
	if sofSeg == nil {
		return full // not a baseline SOF0 stream; leave as-is
	}

	out := make([]byte, 0, len(full))
	out = append(out, 0xFF, soi)
	out = append(out, sofSeg...)
	out = append(out, others...)
	out = append(out, full[pos:]...)
	return out
}

// RandSlice returns n pseudo-random bytes seeded deterministically by seed,
// for exercising the classifier's Unknown fallback and property-based
// fuzzing.
func RandSlice(seed int64, n int) []byte {
	r := rand.New(rand.NewSource(seed))
	buf := make([]byte, n)
	r.Read(buf)
	return buf
}
