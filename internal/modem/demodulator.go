// SPDX-License-Identifier: EPL-2.0

package modem

import (
	"encoding/binary"
	"errors"
	"log"
)

// ErrNoPreamble is returned when no preamble can be located in the
// sample stream; the caller has no valid signal to demodulate.
var ErrNoPreamble = errors.New("modem: no preamble detected")

// Demodulator recovers a byte stream from an FSK sample stream: it locates
// the preamble, reads the length field, then reads one tone per data
// byte via a 256-candidate Goertzel sweep.
type Demodulator struct {
	logger *log.Logger
}

// NewDemodulator builds a Demodulator. A nil logger defaults to the
// standard logger.
func NewDemodulator(logger *log.Logger) *Demodulator {
	if logger == nil {
		logger = defaultLogger()
	}
	return &Demodulator{logger: logger}
}

// FindPreambles scans samples in strides of SamplesPerSymbol/2, looking
// for 5 consecutive symbol windows where at least 4 exceed
// PreambleThreshold at SyncFreq. It returns the data-start sample index
// (just past the matched preamble) for every match, in order; the search
// cursor jumps past a match instead of re-scanning inside it.
func (d *Demodulator) FindPreambles(samples []float32) []int {
	var positions []int

	stride := SamplesPerSymbol / 2
	span := PreambleSymbols * SamplesPerSymbol

	for s := 0; s+span <= len(samples); {
		matches := 0
		for w := 0; w < PreambleSymbols; w++ {
			if goertzelMagnitude(samples, s+w*SamplesPerSymbol, SyncFreq) > PreambleThreshold {
				matches++
			}
		}

		if matches >= PreambleSymbols-1 {
			pos := s + span
			positions = append(positions, pos)
			s = pos
			continue
		}

		s += stride
	}

	return positions
}

// detectTone returns the data tone (byte value) with the greatest
// Goertzel magnitude over samples[start : start+SamplesPerSymbol]. Ties
// are broken toward the lowest index by a plain ">" comparison.
func detectTone(samples []float32, start int) byte {
	var best byte
	bestMag := -1.0

	for k := 0; k < NumTones; k++ {
		mag := goertzelMagnitude(samples, start, toneFreq(byte(k)))
		if mag > bestMag {
			bestMag = mag
			best = byte(k)
		}
	}
	return best
}

// Demodulate locates the first preamble, reads the 4-symbol length
// field, and then reads that many data symbols. If the audio ends before
// all data symbols are read, it logs a warning and returns the bytes
// decoded so far rather than failing. It fails only when no preamble is
// found at all.
func (d *Demodulator) Demodulate(samples []float32) ([]byte, error) {
	positions := d.FindPreambles(samples)
	if len(positions) == 0 {
		return nil, ErrNoPreamble
	}

	pos := positions[0]
	if pos+4*SamplesPerSymbol > len(samples) {
		d.logger.Printf("[warn] modem: audio ends before length field, decoded 0 bytes")
		return nil, nil
	}

	var lenBytes [4]byte
	for i := range lenBytes {
		lenBytes[i] = detectTone(samples, pos)
		pos += SamplesPerSymbol
	}
	dataLen := binary.LittleEndian.Uint32(lenBytes[:])

	d.logger.Printf("modem: detected length field = %d bytes", dataLen)

	data := make([]byte, 0, dataLen)
	for i := uint32(0); i < dataLen; i++ {
		if pos+SamplesPerSymbol > len(samples) {
			d.logger.Printf("[warn] modem: audio truncated, decoded %d/%d data bytes", len(data), dataLen)
			break
		}
		data = append(data, detectTone(samples, pos))
		pos += SamplesPerSymbol
	}

	return data, nil
}
