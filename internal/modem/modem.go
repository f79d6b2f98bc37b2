// SPDX-License-Identifier: EPL-2.0

// Package modem implements the multi-tone FSK modem: byte-to-tone
// synthesis with preamble framing on the modulate side, and
// Goertzel-based tone detection with preamble synchronization on the
// demodulate side.
//
// Diagnostics are routed through an injected *log.Logger rather than
// printed directly, so callers can silence, redirect, or capture them.
package modem

import (
	"log"
	"math"
)

const (
	// SampleRate is the only sample rate this modem speaks; callers must
	// resample to this rate before demodulating.
	SampleRate = 44100
	// SymbolSeconds is the nominal duration of one symbol.
	SymbolSeconds = 0.030
	// SamplesPerSymbol is floor(SampleRate * SymbolSeconds) = 1323 at 44.1kHz.
	SamplesPerSymbol = 1323
	// NumTones is the number of distinct data tones (one per byte value).
	NumTones = 256
	// BaseFreq is the frequency of data tone 0.
	BaseFreq = 2000.0
	// FreqSpacing is the frequency step between adjacent data tones.
	FreqSpacing = 50.0
	// SyncFreq is the preamble tone frequency.
	SyncFreq = 1000.0
	// PreambleSymbols is the number of sync tones in a preamble.
	PreambleSymbols = 5
	// PreambleThreshold is the bare Goertzel-magnitude floor a preamble
	// window must exceed. It assumes samples in [-1, 1] and moderate SNR;
	// there is no automatic gain control.
	PreambleThreshold = 10.0
	// amplitude is the peak tone amplitude, leaving headroom below clipping.
	amplitude = 0.7
)

func defaultLogger() *log.Logger {
	return log.Default()
}

// toneFreq returns the data tone frequency for byte value b.
func toneFreq(b byte) float64 {
	return BaseFreq + float64(b)*FreqSpacing
}

// tone synthesizes one symbol at frequency f, with a linear amplitude
// ramp over the first and last SamplesPerSymbol/10 samples to suppress
// click artifacts at symbol boundaries.
func tone(f float64) []float32 {
	n := SamplesPerSymbol
	out := make([]float32, n)

	for i := 0; i < n; i++ {
		out[i] = float32(amplitude * math.Sin(2*math.Pi*f*float64(i)/SampleRate))
	}

	ramp := n / 10
	for i := 0; i < ramp; i++ {
		g := float32(i) / float32(ramp)
		out[i] *= g
		out[n-1-i] *= g
	}

	return out
}

func preamble() []float32 {
	out := make([]float32, 0, PreambleSymbols*SamplesPerSymbol)
	sync := tone(SyncFreq)
	for i := 0; i < PreambleSymbols; i++ {
		out = append(out, sync...)
	}
	return out
}
