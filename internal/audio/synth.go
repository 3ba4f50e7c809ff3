package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

const sampleRate = beep.SampleRate(44100)

const (
	attackTime   = 10 * time.Millisecond
	decayFloor   = 0.001
	decayPortion = 0.8 // Fraction of the note over which it decays to decayFloor
)

// triangle is a triangle-wave oscillator.
type triangle struct {
	freq  float64
	phase float64
	rate  beep.SampleRate
}

func (o *triangle) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		val := 4*math.Abs(o.phase-0.5) - 1
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
	}
	return len(samples), true
}

func (o *triangle) Err() error { return nil }

// pluck shapes a note: a linear attack up to peak, then an exponential
// decay that reaches decayFloor at decayPortion of the note.
type pluck struct {
	streamer beep.Streamer
	peak     float64
	attack   int
	decayEnd int
	total    int
	pos      int
}

func (p *pluck) Stream(samples [][2]float64) (n int, ok bool) {
	if p.pos >= p.total {
		return 0, false
	}
	if remaining := p.total - p.pos; len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, ok = p.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := p.gain(p.pos)
		samples[i][0] *= gain
		samples[i][1] *= gain
		p.pos++
	}
	return n, ok
}

func (p *pluck) gain(pos int) float64 {
	if pos < p.attack {
		return p.peak * float64(pos) / float64(p.attack)
	}
	if pos >= p.decayEnd {
		return p.peak * decayFloor
	}
	t := float64(pos-p.attack) / float64(p.decayEnd-p.attack)
	return p.peak * math.Pow(decayFloor, t)
}

func (p *pluck) Err() error { return p.streamer.Err() }

// noteStreamer renders one note at the given peak volume.
func noteStreamer(n Note, w Waveform, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	var osc beep.Streamer
	switch w {
	case Triangle:
		osc = &triangle{freq: n.Freq, rate: rate}
	default:
		sine, err := generators.SineTone(rate, n.Freq)
		if err != nil {
			return nil, err
		}
		osc = sine
	}

	total := rate.N(n.Duration)
	attack := min(rate.N(attackTime), total)
	decayEnd := max(int(float64(total)*decayPortion), attack+1)
	return &pluck{
		streamer: osc,
		peak:     volume,
		attack:   attack,
		decayEnd: decayEnd,
		total:    total,
	}, nil
}

// Render builds the finite stream of a preset.
func Render(p Preset, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	notes, err := ParseScore(p.Score, p.BPM)
	if err != nil {
		return nil, err
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		s, err := noteStreamer(n, p.Waveform, rate, volume)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return beep.Seq(parts...), nil
}

// Delayed prefixes s with d of silence.
func Delayed(s beep.Streamer, rate beep.SampleRate, d time.Duration) beep.Streamer {
	return beep.Seq(beep.Silence(rate.N(d)), s)
}
