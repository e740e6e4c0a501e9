// Package audio drives the optional buzzer that mirrors score changes with
// short tones on the host's sound device.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const buzzerSampleRate = beep.SampleRate(44100)

// Buzzer is a score indicator that chirps whenever the mask rises.
// Until Init succeeds it only tracks the mask.
type Buzzer struct {
	mu    sync.Mutex
	sr    beep.SampleRate
	ready bool
	last  uint8
	play  func(beep.Streamer)
}

// NewBuzzer creates a silent buzzer. Call Init to attach the speaker.
func NewBuzzer() *Buzzer {
	return &Buzzer{sr: buzzerSampleRate}
}

// Init opens the audio device.
func (b *Buzzer) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ready {
		return nil
	}
	if err := speaker.Init(b.sr, b.sr.N(time.Millisecond*100)); err != nil {
		return err
	}
	b.play = func(s beep.Streamer) { speaker.Play(s) }
	b.ready = true
	return nil
}

// Close shuts the audio device down.
func (b *Buzzer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	b.ready = false
	b.play = nil
}

// SetIndicator plays a chirp when mask is higher than the previous one.
func (b *Buzzer) SetIndicator(mask uint8) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rose := mask > b.last
	b.last = mask
	if !rose || b.play == nil {
		return
	}
	// Pitch climbs with the low bits of the score.
	freq := 660 + 40*float64(mask%8)
	b.play(beep.Take(b.sr.N(time.Millisecond*80), newChirp(b.sr, freq)))
}

// chirp is a sine tone with a short attack and a linear fade.
type chirp struct {
	sr   beep.SampleRate
	freq float64
	pos  int
	n    int
}

func newChirp(sr beep.SampleRate, freq float64) *chirp {
	return &chirp{sr: sr, freq: freq, n: sr.N(time.Millisecond * 80)}
}

func (c *chirp) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(c.pos) / float64(c.sr)
		attack := math.Min(t/0.005, 1.0)
		fade := 1.0 - math.Min(float64(c.pos)/float64(c.n), 1.0)

		sample := 0.25 * math.Sin(2*math.Pi*c.freq*t) * attack * fade
		samples[i][0] = sample
		samples[i][1] = sample
		c.pos++
	}
	return len(samples), true
}

func (c *chirp) Err() error {
	return nil
}
