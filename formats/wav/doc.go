// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// This package reads and writes RIFF/WAVE PCM files directly against the
// 44-byte canonical header; it does not depend on a third-party WAV
// library.
//
// # Supported Formats
//
// Currently supported:
//   - PCM 8-bit unsigned or 16-bit signed
//   - Mono and stereo (decode); writer always emits mono
//   - Any sample rate
//
// # Decoding WAV Files
//
// Use the Decoder to read WAV files:
//
//	decoder := wav.Decoder{}
//	file, _ := os.Open("audio.wav")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	// Read samples
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// The decoder returns an audio.Source that provides samples as float32
// values in the range [-1.0, 1.0].
//
// # Writing WAV Files
//
// Use WriteWAV16 to write pre-scaled int16 PCM, or WriteFloat32 to write
// float32 samples in [-1.0, 1.0] directly:
//
//	samples := []int16{100, -100, 200, -200}
//	file, _ := os.Create("output.wav")
//	err := wav.WriteWAV16(file, 8000, samples)
//
// Both write a complete canonical mono WAV file with proper headers.
//
// # Error Handling
//
// The package defines several error types:
//   - ErrNotWavFile: The input is not a valid WAV file
//   - ErrNotPCM: The fmt chunk's audio_format is not PCM
//   - ErrUnsupportedBitDepth: The PCM bit depth is neither 8 nor 16
//   - ErrUnsupportedWavLayout: Unsupported WAV file structure
//
// Example:
//
//	source, err := decoder.Decode(file)
//	if err == wav.ErrNotWavFile {
//	    fmt.Println("Not a WAV file")
//	}
//
// # Performance
//
// The WAV encoder is highly optimized:
//   - Near-zero allocations (5-11 allocations per file)
//   - Chunked writing for large files
//   - Pre-allocated header buffer
//
// The decoder provides:
//   - Minimal allocations (the read buffer is allocated once and reused)
//   - Efficient buffer management
//   - Stream-based reading for memory efficiency
//
// # File Format
//
// WAV files consist of:
//   - RIFF header (12 bytes)
//   - fmt chunk (24 bytes): audio format, sample rate, channels, bit depth
//   - data chunk: actual audio samples
//
// The WriteWAV16 function handles all format details automatically.
package wav
