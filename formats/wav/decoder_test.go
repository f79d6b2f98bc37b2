// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"
)

// createWAVFile builds a minimal canonical 44-byte-header WAV file for
// either 8-bit unsigned or 16-bit signed samples.
func createWAVFile(sampleRate, channels, bitsPerSample int, samples []int16) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bits/8)
	blockAlign := uint16(numChannels) * uint16(bits/8)
	bytesPerSample := bitsPerSample / 8
	dataSize := uint32(len(samples) * bytesPerSample)
	riffSize := 36 + dataSize

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, riffSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bits)

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)

	for _, s := range samples {
		if bitsPerSample == 8 {
			buf.WriteByte(byte(s))
		} else {
			binary.Write(buf, binary.LittleEndian, s)
		}
	}

	return buf.Bytes()
}

func TestDecoderValidWAVFile(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 100, 200, -100, -200, 0}
	wavData := createWAVFile(8000, 1, 16, samples)

	decoder := Decoder{}
	src, err := decoder.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}
}

func TestDecoderStereoWAVFile(t *testing.T) {
	t.Parallel()

	samples := []int16{100, 200, 300, 400, 500, 600}
	wavData := createWAVFile(44100, 2, 16, samples)

	decoder := Decoder{}
	src, err := decoder.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
}

func TestDecoder8BitPCM(t *testing.T) {
	t.Parallel()

	// 8-bit samples stored centered at 128: 128 (silence), 255 (max), 0 (min).
	samples := []int16{128, 255, 0}
	wavData := createWAVFile(8000, 1, 8, samples)

	decoder := Decoder{}
	src, err := decoder.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	dst := make([]float32, 3)
	n, err := src.ReadSamples(dst)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("ReadSamples() n = %d, want 3", n)
	}

	want := []float32{0, 0.9921875, -1}
	for i := range want {
		if math.Abs(float64(dst[i]-want[i])) > 1e-6 {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestDecoderNotWAVFile(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader([]byte("NOT A WAV FILE DATA")))

	if err != ErrNotWavFile {
		t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
	}
}

func TestDecoderInvalidWAVEMarker(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36))
	buf.WriteString("NOPE")
	buf.Write(make([]byte, 32))

	decoder := Decoder{}
	_, err := decoder.Decode(buf)

	if err != ErrNotWavFile {
		t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
	}
}

func TestDecoderTruncatedHeader(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader([]byte("RIFF\x00")))

	if err == nil {
		t.Error("Decode() error = nil, want error for truncated header")
	}
}

func TestDecoderUnsupportedBitDepth(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint32(8000))
	binary.Write(buf, binary.LittleEndian, uint32(24000))
	binary.Write(buf, binary.LittleEndian, uint16(3))
	binary.Write(buf, binary.LittleEndian, uint16(24)) // unsupported bit depth

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(0))

	decoder := Decoder{}
	_, err := decoder.Decode(buf)

	if err != ErrUnsupportedBitDepth {
		t.Errorf("Decode() error = %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestDecoderNonPCMFormat(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(3)) // IEEE float, not PCM
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint32(8000))
	binary.Write(buf, binary.LittleEndian, uint32(16000))
	binary.Write(buf, binary.LittleEndian, uint16(2))
	binary.Write(buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(0))

	decoder := Decoder{}
	_, err := decoder.Decode(buf)

	if err != ErrNotPCM {
		t.Errorf("Decode() error = %v, want ErrNotPCM", err)
	}
}

func TestSourceReadSamples(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, 32767, -16384, -32768}
	wavData := createWAVFile(8000, 1, 16, samples)

	decoder := Decoder{}
	src, err := decoder.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	dst := make([]float32, 5)
	n, err := src.ReadSamples(dst)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 5 {
		t.Errorf("ReadSamples() n = %d, want 5", n)
	}

	expected := []float32{0.0, 0.5, 1.0, -0.5, -1.0}
	for i := range expected {
		if math.Abs(float64(dst[i]-expected[i])) > 0.01 {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], expected[i])
		}
	}
}

func TestSourceReadSamplesEOF(t *testing.T) {
	t.Parallel()

	samples := []int16{100, 200}
	wavData := createWAVFile(8000, 1, 16, samples)

	decoder := Decoder{}
	src, err := decoder.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	dst := make([]float32, 2)
	n1, err1 := src.ReadSamples(dst)
	if err1 != nil && err1 != io.EOF {
		t.Errorf("ReadSamples() error = %v, want nil or io.EOF", err1)
	}
	if n1 != 2 {
		t.Errorf("ReadSamples() n = %d, want 2", n1)
	}

	if err1 != io.EOF {
		n2, err2 := src.ReadSamples(dst)
		if err2 != io.EOF {
			t.Errorf("second ReadSamples() error = %v, want io.EOF", err2)
		}
		if n2 != 0 {
			t.Errorf("second ReadSamples() n = %d, want 0", n2)
		}
	}
}

func TestSourceClose(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(8000, 1, 16, []int16{100, 200})
	decoder := Decoder{}
	src, err := decoder.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}

func TestDecoderVariousSampleRates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
	}{
		{"8kHz Mono", 8000, 1},
		{"16kHz Mono", 16000, 1},
		{"22.05kHz Stereo", 22050, 2},
		{"44.1kHz Mono", 44100, 1},
		{"48kHz Stereo", 48000, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wavData := createWAVFile(tt.sampleRate, tt.channels, 16, []int16{100, 200, 300})

			decoder := Decoder{}
			src, err := decoder.Decode(bytes.NewReader(wavData))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if src.SampleRate() != tt.sampleRate {
				t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), tt.sampleRate)
			}
			if src.Channels() != tt.channels {
				t.Errorf("Channels() = %d, want %d", src.Channels(), tt.channels)
			}
		})
	}
}

func BenchmarkDecoderDecode(b *testing.B) {
	samples := make([]int16, 44100)
	for i := range samples {
		samples[i] = int16(i % 1000)
	}
	wavData := createWAVFile(44100, 2, 16, samples)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		decoder := Decoder{}
		_, _ = decoder.Decode(bytes.NewReader(wavData))
	}
}
