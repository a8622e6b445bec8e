// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usbsource

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/gousb"
)

// Known FLIR One Pro (Gen 3) USB identity and endpoint layout.
const (
	VID = gousb.ID(0x09cb)
	PID = gousb.ID(0x1996)

	// frameEndpoint is the bulk-IN endpoint carrying the interleaved
	// sync/packets/visible/telemetry/agc/edge slice stream this package
	// decodes. The camera also exposes two low-rate housekeeping bulk-IN
	// endpoints that must be drained so the device doesn't stall, but
	// whose contents this driver has no use for.
	frameEndpoint   = 0x85
	noisyEndpointA  = 0x81
	noisyEndpointB  = 0x83
	readTimeout     = 2 * time.Second
	noisyBufferSize = 512
	frameBufferSize = 32768
)

// Live reads slices directly from an attached FLIR One Pro over USB bulk
// transfers.
//
// It holds one open gousb context/device until Close. Close may be called
// more than once; after it, Next always returns io.EOF.
type Live struct {
	ctx    *gousb.Context
	dev    *gousb.Device
	detach func()
	in     *gousb.InEndpoint

	closed atomic.Bool
	mu     sync.Mutex

	stopNoisy chan struct{}
}

// Open claims the FLIR One Pro's frame bulk-IN endpoint and starts draining
// its two housekeeping endpoints in the background.
func Open() (*Live, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(VID, PID)
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("usbsource: opening device: %w", err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("usbsource: no device matching VID:PID %s:%s", VID, PID)
	}

	if err := dev.SetAutoDetach(true); err != nil {
		// Not fatal: some platforms don't need or support this.
		_ = err
	}

	intf, done, err := dev.DefaultInterface()
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("usbsource: claiming interface: %w", err)
	}

	in, err := intf.InEndpoint(frameEndpoint)
	if err != nil {
		done()
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("usbsource: opening frame endpoint: %w", err)
	}

	l := &Live{
		ctx:       ctx,
		dev:       dev,
		detach:    done,
		in:        in,
		stopNoisy: make(chan struct{}),
	}
	l.drainNoisyEndpoints(intf)
	return l, nil
}

// drainNoisyEndpoints reads and discards from the camera's two housekeeping
// bulk-IN endpoints for as long as Live is open: on this device they must be
// kept flowing or the frame endpoint eventually stalls too, even though
// nothing in this package consumes their content.
func (l *Live) drainNoisyEndpoints(intf *gousb.Interface) {
	for _, addr := range []int{noisyEndpointA, noisyEndpointB} {
		ep, err := intf.InEndpoint(addr)
		if err != nil {
			continue // not every unit exposes both; best effort
		}
		go func(ep *gousb.InEndpoint) {
			buf := make([]byte, noisyBufferSize)
			for {
				select {
				case <-l.stopNoisy:
					return
				default:
				}
				ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
				_, _ = ep.ReadContext(ctx, buf)
				cancel()
			}
		}(ep)
	}
}

// Next blocks for one bulk read on the frame endpoint and returns the bytes
// received. A read that times out is not an error: it returns whatever
// arrived before the timeout, often nothing.
func (l *Live) Next() ([]byte, error) {
	if l.closed.Load() {
		return nil, io.EOF
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	buf := make([]byte, frameBufferSize)
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()
	n, err := l.in.ReadContext(ctx, buf)
	if err != nil {
		if ctx.Err() != nil {
			return buf[:n], nil // timed out: the camera had nothing to send
		}
		return nil, fmt.Errorf("usbsource: reading frame endpoint: %w", err)
	}
	return buf[:n], nil
}

// Close releases the device and its USB context. It is safe to call more
// than once.
func (l *Live) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(l.stopNoisy)
	l.detach()
	l.dev.Close()
	return l.ctx.Close()
}

var _ Source = (*Live)(nil)
