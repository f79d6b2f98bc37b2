// SPDX-License-Identifier: EPL-2.0

// Package codec wires the channel codec's three core stages — packet
// framing, Reed-Solomon FEC, and the FSK modem — into the two
// end-to-end operations the CLI exposes: Encode and Decode. It is the
// only package that knows about all three stages together; each stage
// itself stays oblivious to the others.
package codec

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nasirxo/soundify/audio"
	"github.com/nasirxo/soundify/formats/wav"
	"github.com/nasirxo/soundify/internal/modem"
	"github.com/nasirxo/soundify/internal/packet"
	"github.com/nasirxo/soundify/internal/rs"
)

// Codec ties the packet framer, Reed-Solomon FEC, and FSK modem together.
// It is safe for concurrent use: the RS generator polynomial and GF
// tables are immutable after construction, and the modulator/demodulator
// hold no mutable state beyond their logger.
type Codec struct {
	rs  *rs.Codec
	mod *modem.Modulator
	dem *modem.Demodulator

	logger *log.Logger
}

// New builds a Codec. A nil logger defaults to one writing to stderr.
func New(logger *log.Logger) *Codec {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	return &Codec{
		rs:     rs.NewWithLogger(logger),
		mod:    modem.NewModulator(logger),
		dem:    modem.NewDemodulator(logger),
		logger: logger,
	}
}

// Encode frames name and payload into a packet, FEC-encodes it, and
// modulates the result into a mono float32 sample stream at
// modem.SampleRate. name must be a base filename (1..255 bytes, no path
// separators).
func (c *Codec) Encode(name string, payload []byte) ([]float32, error) {
	frame, err := packet.Pack(name, payload)
	if err != nil {
		return nil, fmt.Errorf("codec: framing %q: %w", name, err)
	}

	encoded := c.rs.Encode(frame)
	samples := c.mod.Modulate(encoded)

	c.logger.Printf("codec: encoded %q (%d payload bytes) into %d samples", name, len(payload), len(samples))
	return samples, nil
}

// EncodeToWAV performs Encode and writes the resulting samples as a
// canonical mono 16-bit WAV at modem.SampleRate to w.
func (c *Codec) EncodeToWAV(w io.Writer, name string, payload []byte) error {
	samples, err := c.Encode(name, payload)
	if err != nil {
		return err
	}
	if err := wav.WriteFloat32(w, modem.SampleRate, samples); err != nil {
		return fmt.Errorf("codec: writing WAV: %w", err)
	}
	return nil
}

// Decode demodulates samples (which must already be mono at
// modem.SampleRate) back into a packet.Frame. It returns an error when
// demodulation fails (no preamble) or when the packet parser rejects the
// decoded bytes; everything else follows this codec's
// make-progress-when-possible policy: truncated audio yields a short byte
// stream (which the packet parser then rejects as too short), and a CRC
// mismatch yields a Frame with CRCOK false rather than an error.
func (c *Codec) Decode(samples []float32) (packet.Frame, error) {
	encoded, err := c.dem.Demodulate(samples)
	if err != nil {
		return packet.Frame{}, fmt.Errorf("codec: demodulating: %w", err)
	}

	decoded := c.rs.Decode(encoded)

	frame, err := packet.Unpack(decoded)
	if err != nil {
		return packet.Frame{}, fmt.Errorf("codec: parsing packet: %w", err)
	}

	if !frame.CRCOK {
		c.logger.Printf("[warn] codec: CRC32 mismatch for %q, returning payload anyway", frame.Name)
	}

	return frame, nil
}

// DecodeSource normalizes src to mono at modem.SampleRate (resampling
// and downmixing as needed) and then decodes it.
func (c *Codec) DecodeSource(src audio.Source) (packet.Frame, error) {
	samples, err := CollectMono(src, modem.SampleRate)
	if err != nil {
		return packet.Frame{}, fmt.Errorf("codec: normalizing input: %w", err)
	}
	return c.Decode(samples)
}
