// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// flirpipe decodes a FLIR One Pro USB slice stream, either replayed from a
// captured chunk directory or read live from an attached camera, and prints
// a summary of each assembled frame.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/maruel/flirone/flir"
	"github.com/maruel/flirone/usbsource"
)

func mainImpl() error {
	dir := flag.String("dir", "", "replay a captured chunk directory instead of a live camera")
	repeat := flag.Int("repeat", 1, "replay lap count; -1 loops forever (only with -dir)")
	live := flag.Bool("live", false, "read from an attached FLIR One Pro over USB")
	pngDir := flag.String("png", "", "directory to dump each frame's thermal image as 16-bit PNG")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	if (*dir == "") == !*live {
		return errors.New("specify exactly one of -dir or -live")
	}

	var src usbsource.Source
	var err error
	if *dir != "" {
		src, err = usbsource.NewChunkReplay(*dir)
		if err != nil {
			return err
		}
		if cr, ok := src.(*usbsource.ChunkReplay); ok {
			cr.Repeat = *repeat
		}
	} else {
		src, err = usbsource.Open()
		if err != nil {
			return err
		}
	}
	defer src.Close()

	if *pngDir != "" {
		if err := os.MkdirAll(*pngDir, 0o755); err != nil {
			return err
		}
	}

	pipeline := flir.NewPipeline()
	for {
		slice, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		frame, err := pipeline.Next(slice)
		if err != nil {
			var malformed *flir.MalformedSlice
			if errors.As(err, &malformed) {
				log.Printf("dropping malformed slice: %s", malformed)
				continue
			}
			return err
		}
		if frame == nil {
			continue
		}

		printFrame(frame)
		if *pngDir != "" && frame.Thermal != nil {
			if err := dumpThermalPNG(*pngDir, frame.Idx, frame.Thermal); err != nil {
				return err
			}
		}
	}
}

func printFrame(f *flir.Frame) {
	fmt.Printf("frame %d:", f.Idx)
	if f.Ts != nil {
		fmt.Printf(" ts=%d", *f.Ts)
	}
	if f.Thermal != nil {
		fmt.Print(" thermal")
	}
	if f.AGC != nil {
		fmt.Print(" agc")
	}
	if f.Visible != nil {
		fmt.Print(" visible")
	}
	if f.EdgeMask != nil {
		fmt.Print(" edges")
	}
	if f.Telemetry != nil && !f.Telemetry.IsEmpty() {
		fmt.Print(" telemetry")
		if f.Telemetry.BatteryPercent != nil {
			fmt.Printf(" battery=%.0f%%", *f.Telemetry.BatteryPercent)
		}
	}
	fmt.Println()
}

func dumpThermalPNG(dir string, idx int, img *flir.ThermalImage) error {
	path := filepath.Join(dir, fmt.Sprintf("%06d.png", idx))
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, img)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "\nflirpipe: %s.\n", err)
		os.Exit(1)
	}
}
