// SPDX-License-Identifier: EPL-2.0

// Command soundify transports an arbitrary file over an acoustic
// channel: encode turns a file into an audible WAV, decode turns such a
// recording (or a recapture of one, saved as WAV/MP3/Ogg
// Vorbis/AIFF) back into the original file.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/nasirxo/soundify/codec"
)

const usage = `soundify - acoustic file transport codec

Usage:
  soundify encode <input_file> <output.wav>
  soundify decode <input_file> <output_dir>
  soundify help

decode accepts .wav, .mp3, .ogg, .aiff, or .aif input, chosen by
file extension.
`

func main() {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(logger, os.Args[2:])
	case "decode":
		err = runDecode(logger, os.Args[2:])
	case "help", "--help", "-h":
		fmt.Print(usage)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "soundify: unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(1)
	}

	if err != nil {
		logger.Printf("[error] cmd: %v", err)
		os.Exit(1)
	}
}

func runEncode(logger *log.Logger, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("encode requires <input_file> <output.wav>")
	}
	inputPath, outputPath := args[0], args[1]

	payload, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer out.Close()

	c := codec.New(logger)
	name := filepath.Base(inputPath)
	if err := c.EncodeToWAV(out, name, payload); err != nil {
		return fmt.Errorf("encoding %s: %w", inputPath, err)
	}

	logger.Printf("encoded %s (%d bytes) -> %s", inputPath, len(payload), outputPath)
	return nil
}

func runDecode(logger *log.Logger, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("decode requires <input_file> <output_dir>")
	}
	inputPath, outputDir := args[0], args[1]

	reg := codec.NewRegistry()
	dec, err := codec.DecoderFor(reg, inputPath)
	if err != nil {
		return err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer in.Close()

	src, err := dec.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding container %s: %w", inputPath, err)
	}
	defer src.Close()

	c := codec.New(logger)
	frame, err := c.DecodeSource(src)
	if err != nil {
		return fmt.Errorf("decoding channel data from %s: %w", inputPath, err)
	}

	if !frame.CRCOK {
		logger.Printf("[warn] cmd: CRC32 mismatch for %q, writing payload anyway", frame.Name)
	}

	outputPath := filepath.Join(outputDir, frame.Name)
	if err := os.WriteFile(outputPath, frame.Payload, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	logger.Printf("decoded %s -> %s (%d bytes)", inputPath, outputPath, len(frame.Payload))
	return nil
}
