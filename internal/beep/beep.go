// Package beep plays short generated cues so the learner hears when
// the microphone opens and closes without looking at the screen.
// Playback is best effort: a machine with no output device practices
// silently.
package beep

import "math"

var disabled bool

// Disable turns all cues off, e.g. for tests and headless runs.
func Disable() { disabled = true }

const (
	sampleRate = 44100

	// Mic-open cue: high, short.
	startFreq   = 1320
	startVolume = 0.4
	startDecay  = 55

	// Mic-closed cue: lower, a touch longer.
	endFreq   = 880
	endVolume = 0.4
	endDecay  = 35

	// Error cue: low double-beep.
	errorFreq   = 330
	errorVolume = 0.5
	errorDecay  = 30
)

func generateTick(freq, duration, volume, decay float64) []int16 {
	n := int(sampleRate * duration)
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		envelope := math.Exp(-t * decay)
		samples[i] = int16(math.Sin(2*math.Pi*freq*t) * 32767 * volume * envelope)
	}
	return samples
}

func generateDoubleBeep(freq, beepDur, gapDur, volume, decay float64) []int16 {
	tick := generateTick(freq, beepDur, volume, decay)
	gap := make([]int16, int(sampleRate*gapDur))
	result := make([]int16, 0, len(tick)*2+len(gap))
	result = append(result, tick...)
	result = append(result, gap...)
	result = append(result, tick...)
	return result
}
