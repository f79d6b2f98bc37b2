// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"
	"io"

	"github.com/nasirxo/soundify/audio"
)

// CollectMono resamples src to targetRate, downmixes it to mono, and
// collects every sample into a single in-memory float32 slice. The
// demodulator consumes exactly this shape: one contiguous mono buffer
// at the modem's fixed sample rate.
//
// src that is already mono at targetRate still passes through the
// pipeline; both stages degrade to a cheap passthrough in that case
// (audio.Resampler's ratio is 1, audio.MonoMixer skips the downmix
// arithmetic for single-channel sources).
func CollectMono(src audio.Source, targetRate int) ([]float32, error) {
	resampler := audio.NewResampler(src, targetRate)
	mono := audio.NewMonoMixer(resampler)

	var out []float32
	buf := make([]float32, 4096)

	for {
		n, err := mono.ReadSamples(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("normalizing audio: %w", err)
		}
	}

	return out, nil
}
