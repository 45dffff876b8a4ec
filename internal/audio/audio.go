package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/diegok/pixbowl/internal/protocol"
)

const (
	sampleRate = beep.SampleRate(44100)
)

var (
	initialized bool
)

// Init initializes the audio system
func Init() error {
	if initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Second/30))
	if err != nil {
		return err
	}

	initialized = true
	return nil
}

// Close shuts down the audio system
func Close() {
	if initialized {
		speaker.Close()
		initialized = false
	}
}

// sweep generates a sine tone gliding from one frequency to another
func sweep(from, to float64, duration time.Duration) beep.Streamer {
	total := sampleRate.N(duration)
	remaining := total
	phase := 0.0

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if remaining <= 0 {
				return i, i > 0
			}
			progress := float64(total-remaining) / float64(total)
			freq := from + (to-from)*progress
			val := math.Sin(phase) * 0.3 * (1 - progress)
			samples[i][0] = val
			samples[i][1] = val
			phase += 2 * math.Pi * freq / float64(sampleRate)
			remaining--
		}
		return len(samples), true
	})
}

// squareWave generates a square wave tone
func squareWave(freq float64, duration time.Duration) beep.Streamer {
	remaining := sampleRate.N(duration)
	phase := 0.0
	phaseStep := freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if remaining <= 0 {
				return i, i > 0
			}
			val := 0.2
			if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			remaining--
		}
		return len(samples), true
	})
}

// cue returns the sound for a delivery event, or nil for silent events
func cue(t protocol.EventType) beep.Streamer {
	switch t {
	case protocol.EventRelease:
		// Whoosh down the pitch
		return sweep(660, 220, 120*time.Millisecond)
	case protocol.EventBounce:
		return squareWave(180, 40*time.Millisecond)
	case protocol.EventNoBall:
		return beep.Seq(
			squareWave(880, 90*time.Millisecond),
			beep.Silence(sampleRate.N(40*time.Millisecond)),
			squareWave(880, 90*time.Millisecond),
		)
	}
	return nil
}

// PlayEvent plays the cue for a delivery event
func PlayEvent(t protocol.EventType) {
	if !initialized {
		return
	}
	if s := cue(t); s != nil {
		speaker.Play(s)
	}
}

// PlayRelease plays the release whoosh
func PlayRelease() {
	PlayEvent(protocol.EventRelease)
}

// PlayBounce plays the thud of the ball pitching
func PlayBounce() {
	PlayEvent(protocol.EventBounce)
}

// PlayNoBall plays the umpire's double beep
func PlayNoBall() {
	PlayEvent(protocol.EventNoBall)
}
