// SPDX-License-Identifier: EPL-2.0

package modem

import "log"

// Modulator turns a byte stream into an FSK sample stream: preamble,
// a 4-symbol little-endian length field, one symbol per data byte, and a
// trailing preamble.
type Modulator struct {
	logger *log.Logger
}

// NewModulator builds a Modulator. A nil logger defaults to the standard
// logger.
func NewModulator(logger *log.Logger) *Modulator {
	if logger == nil {
		logger = defaultLogger()
	}
	return &Modulator{logger: logger}
}

// Modulate synthesizes the full wire frame for data: preamble, length
// field, one tone per data byte, trailing preamble.
func (m *Modulator) Modulate(data []byte) []float32 {
	n := len(data)

	out := make([]float32, 0, (2*PreambleSymbols+4+n)*SamplesPerSymbol)

	out = append(out, preamble()...)

	var lenBytes [4]byte
	lenBytes[0] = byte(n)
	lenBytes[1] = byte(n >> 8)
	lenBytes[2] = byte(n >> 16)
	lenBytes[3] = byte(n >> 24)
	for _, b := range lenBytes {
		out = append(out, tone(toneFreq(b))...)
	}

	for _, b := range data {
		out = append(out, tone(toneFreq(b))...)
	}

	out = append(out, preamble()...)

	m.logger.Printf("modem: modulated %d data bytes into %d samples", n, len(out))
	return out
}
