// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/nasirxo/soundify/audio"
)

type wavSource struct {
	r             io.Reader
	sampleRate    int
	channels      int
	bitsPerSample int
	buf           []byte
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Close() error    { return nil }
func (s *wavSource) BufSize() int    { return cap(s.buf) / (s.bitsPerSample / 8) }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	sampleSize := s.bitsPerSample / 8
	bytesNeeded := len(dst) * sampleSize
	if len(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}

	n, err := io.ReadFull(s.r, s.buf[:bytesNeeded])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("%w", err)
	}

	samples := n / sampleSize

	switch s.bitsPerSample {
	case 8:
		for i := 0; i < samples; i++ {
			dst[i] = (float32(s.buf[i]) - 128) / 128.0
		}
	case 16:
		for i := 0; i < samples; i++ {
			v := int16(binary.LittleEndian.Uint16(s.buf[2*i : 2*i+2]))
			dst[i] = float32(v) / 32768.0
		}
	}

	if samples == 0 && (err == io.EOF || err == io.ErrUnexpectedEOF) {
		return 0, io.EOF
	}
	return samples, nil
}

// Decoder parses a RIFF/WAVE container: PCM 8-bit unsigned or 16-bit
// signed, mono or stereo, any sample rate.
type Decoder struct{}

// Decode parses the canonical 44-byte WAV header and returns a streaming
// audio.Source over the data chunk that follows it.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	header := make([]byte, 44)
	if n, err := io.ReadFull(r, header); err != nil {
		// A short input that does not even begin like a RIFF header is
		// reported as not a WAV file rather than as a truncated one.
		got := header[:min(n, 4)]
		if !bytes.Equal(got, []byte("RIFF")[:len(got)]) {
			return nil, ErrNotWavFile
		}
		return nil, fmt.Errorf("%w", err)
	}

	if !bytes.HasPrefix(header[:4], []byte("RIFF")) || !bytes.HasPrefix(header[8:12], []byte("WAVE")) {
		return nil, ErrNotWavFile
	}
	if !bytes.HasPrefix(header[12:16], []byte("fmt ")) {
		return nil, ErrUnsupportedWavLayout
	}

	audioFormat := binary.LittleEndian.Uint16(header[20:22])
	channels := int(binary.LittleEndian.Uint16(header[22:24]))
	sampleRate := int(binary.LittleEndian.Uint32(header[24:28]))
	bitsPerSample := int(binary.LittleEndian.Uint16(header[34:36]))

	if audioFormat != 1 {
		return nil, ErrNotPCM
	}
	if bitsPerSample != 8 && bitsPerSample != 16 {
		return nil, ErrUnsupportedBitDepth
	}
	if !bytes.HasPrefix(header[36:40], []byte("data")) {
		return nil, ErrUnsupportedWavChunks
	}

	return &wavSource{
		r:             r,
		sampleRate:    sampleRate,
		channels:      channels,
		bitsPerSample: bitsPerSample,
		buf:           make([]byte, 4096),
	}, nil
}
