//go:build linux

package beep

import (
	"sync"

	"github.com/jfreymuth/pulse"
)

var (
	startSamples []int16
	endSamples   []int16
	errorSamples []int16
	soundOnce    sync.Once
)

func initSound() {
	startSamples = generateTick(startFreq, 0.15, startVolume, startDecay)
	endSamples = generateTick(endFreq, 0.18, endVolume, endDecay)
	errorSamples = generateDoubleBeep(errorFreq, 0.08, 0.05, errorVolume, errorDecay)
}

func playTones(samples []int16) {
	if len(samples) == 0 {
		return
	}
	c, err := pulse.NewClient()
	if err != nil {
		return
	}
	defer c.Close()

	pos := 0
	reader := pulse.Int16Reader(func(buf []int16) (int, error) {
		if pos >= len(samples) {
			return 0, pulse.EndOfData
		}
		n := copy(buf, samples[pos:])
		pos += n
		return n, nil
	})

	stream, err := c.NewPlayback(reader,
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(sampleRate),
		pulse.PlaybackLatency(0.1),
	)
	if err != nil {
		return
	}
	stream.Start()
	stream.Drain()
	stream.Stop()
	stream.Close()
}

// PlayStart signals that the microphone just opened.
func PlayStart() {
	if disabled {
		return
	}
	soundOnce.Do(initSound)
	go playTones(startSamples)
}

// PlayEnd signals that the microphone just closed.
func PlayEnd() {
	if disabled {
		return
	}
	soundOnce.Do(initSound)
	go playTones(endSamples)
}

// PlayError signals a failed recording attempt.
func PlayError() {
	if disabled {
		return
	}
	soundOnce.Do(initSound)
	go playTones(errorSamples)
}
