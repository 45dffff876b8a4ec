package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep/v2"

	"github.com/diegok/pixbowl/internal/protocol"
)

// drain counts the samples a streamer produces before it ends
func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestCueLengths(t *testing.T) {
	tests := []struct {
		name string
		typ  protocol.EventType
		want int
	}{
		{"release", protocol.EventRelease, sampleRate.N(120 * time.Millisecond)},
		{"bounce", protocol.EventBounce, sampleRate.N(40 * time.Millisecond)},
		{"no ball", protocol.EventNoBall, 2*sampleRate.N(90*time.Millisecond) + sampleRate.N(40*time.Millisecond)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := cue(tt.typ)
			if s == nil {
				t.Fatal("expected a cue")
			}
			if got := drain(s); got != tt.want {
				t.Errorf("expected %d samples, got %d", tt.want, got)
			}
		})
	}
}

func TestCueSilentEvents(t *testing.T) {
	if cue(protocol.EventDeflect) != nil {
		t.Error("expected no cue for deflection")
	}
}

func TestSquareWaveAmplitude(t *testing.T) {
	buf := make([][2]float64, 64)
	n, _ := squareWave(440, 10*time.Millisecond).Stream(buf)
	for i := 0; i < n; i++ {
		if v := buf[i][0]; v != 0.2 && v != -0.2 {
			t.Fatalf("sample %d: expected +/-0.2, got %f", i, v)
		}
	}
}

func TestPlayWithoutInit(t *testing.T) {
	// Must be a no-op when the speaker is not initialised
	PlayRelease()
	PlayBounce()
	PlayNoBall()
}
