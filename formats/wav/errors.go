// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile indicates the input is not a RIFF/WAVE container.
	ErrNotWavFile = errors.New("not a WAV file")
	// ErrUnsupportedWavLayout indicates the fmt chunk is missing or malformed.
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	// ErrNotPCM indicates the fmt chunk's audio_format is not 1 (PCM).
	ErrNotPCM = errors.New("only PCM WAV is supported")
	// ErrUnsupportedBitDepth indicates a bit depth other than 8 or 16.
	ErrUnsupportedBitDepth = errors.New("only 8-bit or 16-bit PCM is supported")
	// ErrUnsupportedWavChunks indicates the data chunk could not be located.
	ErrUnsupportedWavChunks = errors.New("unsupported WAV chunks")
)
