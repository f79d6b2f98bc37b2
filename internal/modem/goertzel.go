// SPDX-License-Identifier: EPL-2.0

package modem

import "math"

// goertzelMagnitude computes the single-bin DFT magnitude at frequency f
// over samples[start : start+SamplesPerSymbol].
func goertzelMagnitude(samples []float32, start int, f float64) float64 {
	omega := 2 * math.Pi * f / SampleRate
	c := 2 * math.Cos(omega)

	var q1, q2 float64
	end := start + SamplesPerSymbol
	for i := start; i < end; i++ {
		q0 := c*q1 - q2 + float64(samples[i])
		q2 = q1
		q1 = q0
	}

	real := q1 - q2*math.Cos(omega)
	imag := q2 * math.Sin(omega)
	return math.Sqrt(real*real + imag*imag)
}
