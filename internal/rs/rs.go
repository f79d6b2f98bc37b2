// SPDX-License-Identifier: EPL-2.0

// Package rs implements a Reed-Solomon (255, 223) block code over GF(256),
// the forward error correction layer under the acoustic channel codec.
//
// The decoder is verification-only: it re-encodes the tentative message
// half of a codeword and accepts the block if at most nsym/2 bytes differ
// from what was received, rather than running a full syndrome-based
// correction. That tolerates the common case of a clean channel and
// rejects blocks the parity disagrees with; it does not repair errors in
// place.
package rs

import (
	"log"
	"os"

	"github.com/nasirxo/soundify/internal/gf"
)

const (
	// N is the codeword size in bytes.
	N = 255
	// K is the message size in bytes.
	K = 223
	// NSym is the number of parity bytes per codeword.
	NSym = N - K
)

// Codec holds the GF(256) tables and generator polynomial for RS(255,223).
// A Codec is immutable after construction and safe for concurrent use.
type Codec struct {
	gf     *gf.Tables
	gen    []byte // generator polynomial, degree NSym, highest-degree coefficient first
	logger *log.Logger
}

// New builds a Codec with a default stderr logger, computing its
// generator polynomial once.
func New() *Codec {
	return NewWithLogger(nil)
}

// NewWithLogger builds a Codec that reports dropped blocks to logger
// (defaulting to stderr when nil).
func NewWithLogger(logger *log.Logger) *Codec {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	tb := gf.New()

	gen := []byte{1}
	for i := 0; i < NSym; i++ {
		gen = tb.PolyMul(gen, []byte{1, tb.Exp(i)})
	}

	return &Codec{gf: tb, gen: gen, logger: logger}
}

// EncodeBlock systematically encodes a 223-byte message block into a
// 255-byte codeword whose first 223 bytes equal the message.
func (c *Codec) EncodeBlock(msg [K]byte) [N]byte {
	var r [N]byte
	copy(r[:K], msg[:])

	for i := 0; i < K; i++ {
		coef := r[i]
		if coef == 0 {
			continue
		}
		for j, g := range c.gen {
			r[i+j] ^= c.gf.Mul(g, coef)
		}
	}

	copy(r[:K], msg[:])
	return r
}

// DecodeBlock verifies a 255-byte codeword against its own parity: it
// re-encodes the first K bytes and counts how many bytes of the result
// disagree with the received codeword. If at most NSym/2 bytes disagree,
// the tentative message is accepted.
func (c *Codec) DecodeBlock(codeword [N]byte) (msg [K]byte, ok bool) {
	copy(msg[:], codeword[:K])

	reencoded := c.EncodeBlock(msg)

	diff := 0
	for i := 0; i < N; i++ {
		if reencoded[i] != codeword[i] {
			diff++
			if diff > NSym/2 {
				return msg, false
			}
		}
	}
	return msg, true
}

// Encode chunks data into K-byte blocks (zero-padding the last block),
// encodes each, and concatenates the resulting N-byte codewords.
func (c *Codec) Encode(data []byte) []byte {
	blocks := (len(data) + K - 1) / K
	if blocks == 0 {
		blocks = 1
	}

	out := make([]byte, 0, blocks*N)
	for i := 0; i < blocks; i++ {
		var msg [K]byte
		start := i * K
		end := start + K
		if end > len(data) {
			end = len(data)
		}
		copy(msg[:], data[start:end])

		cw := c.EncodeBlock(msg)
		out = append(out, cw[:]...)
	}
	return out
}

// Decode splits data into N-byte blocks (dropping a trailing partial
// block), decodes each, and concatenates the accepted message halves.
// Blocks that fail verification are dropped with a logged warning and
// no error; the caller is
// expected to use the packet's own length field to find the true payload
// end within the (possibly truncated, possibly zero-padded) result.
func (c *Codec) Decode(data []byte) []byte {
	blocks := len(data) / N

	out := make([]byte, 0, blocks*K)
	for i := 0; i < blocks; i++ {
		var cw [N]byte
		copy(cw[:], data[i*N:(i+1)*N])

		msg, ok := c.DecodeBlock(cw)
		if !ok {
			c.logger.Printf("[warn] rs: block %d failed verification, dropped", i)
			continue
		}
		out = append(out, msg[:]...)
	}
	return out
}
