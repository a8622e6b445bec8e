// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

// Pipeline decodes a stream of raw USB slices into Frames.
//
// It owns one Classifier, one VisibleDecoder and one Assembler and wires
// them together: classify the slice, hand it to the decoder selected by its
// label, push the decoded value (if any) into the assembler. Pipeline holds
// all the stateful pieces of this package in one place so a caller only
// ever has to manage one value per physical camera stream.
type Pipeline struct {
	classifier *Classifier
	visible    *VisibleDecoder
	assembler  *Assembler
}

// NewPipeline returns a Pipeline ready to decode a fresh stream.
func NewPipeline() *Pipeline {
	return &Pipeline{
		classifier: NewClassifier(),
		visible:    NewVisibleDecoder(),
		assembler:  NewAssembler(),
	}
}

// Next decodes one raw slice and returns the Frame it completes, if any.
//
// A nil Frame with a nil error is the common case: most slices merely
// accumulate into the frame currently being assembled. A non-nil error is
// always a *MalformedSlice: the slice's label selected a decoder, and that
// decoder's own strict shape check failed. KeepAlive, Unknown and
// not-yet-complete Visible slices never produce an error.
func (p *Pipeline) Next(slice []byte) (*Frame, error) {
	label := p.classifier.Classify(slice)

	switch label {
	case KeepAlive, Unknown:
		return nil, nil

	case Sync:
		rec, err := DecodeSync(slice)
		if err != nil {
			return nil, err
		}
		return p.assembler.Push(Sync, rec), nil

	case Packets:
		thermal, ok := DecodePackets(slice)
		if !ok {
			return nil, nil // dropped: bad length or too many missing rows
		}
		return p.assembler.Push(Packets, thermal), nil

	case Agc:
		img, err := DecodeAGC(slice)
		if err != nil {
			return nil, err
		}
		return p.assembler.Push(Agc, img), nil

	case EdgeRLE:
		mask, err := DecodeEdgeRLE(slice)
		if err != nil {
			return nil, err
		}
		return p.assembler.Push(EdgeRLE, mask), nil

	case TelemetryLabel:
		t, err := DecodeTelemetry(slice)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, nil // heuristic matched but no recognizable object: no telemetry
		}
		return p.assembler.Push(TelemetryLabel, t), nil

	case Visible:
		result := p.visible.Decode(slice)
		if !result.Ready() && !result.Dropped() {
			return nil, nil
		}
		return p.assembler.Push(Visible, result), nil

	default:
		return nil, nil
	}
}
