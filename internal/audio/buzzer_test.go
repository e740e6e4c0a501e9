package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestBuzzerChirpsOnRise(t *testing.T) {
	var played []beep.Streamer
	b := NewBuzzer()
	b.play = func(s beep.Streamer) { played = append(played, s) }

	b.SetIndicator(1)
	b.SetIndicator(2)
	b.SetIndicator(2)
	b.SetIndicator(0)

	if len(played) != 2 {
		t.Fatalf("chirps = %d, expected 2", len(played))
	}

	buf := make([][2]float64, 512)
	total := 0
	nonZero := false
	for {
		n, ok := played[0].Stream(buf)
		for _, s := range buf[:n] {
			if s[0] != 0 {
				nonZero = true
			}
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}
	if want := buzzerSampleRate.N(80 * time.Millisecond); total != want {
		t.Errorf("chirp length = %d samples, expected %d", total, want)
	}
	if !nonZero {
		t.Error("chirp is silent")
	}
}

func TestBuzzerWithoutAudioIsQuiet(t *testing.T) {
	b := NewBuzzer()
	b.SetIndicator(3)
	b.Close()
}
