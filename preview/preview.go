// Package preview renders short test signals through the generated
// interpolation tables, stepping a fixed-point phase exactly like the voice
// renderer, and writes them as WAV files for listening tests.
package preview

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-synthtab/dsp/interp"
	"github.com/cwbudde/algo-synthtab/dsp/window"
)

var (
	// ErrInvalidRatio indicates a non-positive or non-finite pitch ratio.
	ErrInvalidRatio = errors.New("preview: pitch ratio must be positive and finite")
	// ErrInvalidRate indicates a non-positive sample rate.
	ErrInvalidRate = errors.New("preview: sample rate must be > 0")
	// ErrInvalidTone indicates a tone frequency outside (0, Nyquist).
	ErrInvalidTone = errors.New("preview: tone frequency must be in (0, sampleRate/2)")
)

type config struct {
	sampleRate int
	freqHz     float64
	ratio      float64
	seconds    float64
	fadeLen    int
}

func defaultConfig() config {
	return config{
		sampleRate: 44100,
		freqHz:     1000,
		ratio:      1,
		seconds:    1,
		fadeLen:    441,
	}
}

// Option configures Render.
type Option func(*config)

// WithSampleRate sets the sample rate of the source tone and the output.
func WithSampleRate(hz int) Option {
	return func(c *config) {
		c.sampleRate = hz
	}
}

// WithFrequency sets the frequency of the source tone in Hz.
func WithFrequency(hz float64) Option {
	return func(c *config) {
		c.freqHz = hz
	}
}

// WithRatio sets the pitch ratio, the source samples consumed per output
// sample. A ratio of 2 plays the tone an octave up.
func WithRatio(r float64) Option {
	return func(c *config) {
		c.ratio = r
	}
}

// WithDuration sets the output length in seconds.
func WithDuration(seconds float64) Option {
	return func(c *config) {
		if seconds > 0 {
			c.seconds = seconds
		}
	}
}

// WithFade sets the Hann fade-in/fade-out length in samples. Zero disables it.
func WithFade(samples int) Option {
	return func(c *config) {
		if samples >= 0 {
			c.fadeLen = samples
		}
	}
}

// Render resamples a sine tone through k. The source tone is long enough
// for the whole output, so no output sample reads past its end.
func Render(k interp.Kernel, opts ...Option) ([]float64, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}

	n := int(cfg.seconds * float64(cfg.sampleRate))
	srcLen := int(math.Ceil(float64(n)*cfg.ratio)) + k.Taps
	src := make([]float64, srcLen)
	step := 2 * math.Pi * cfg.freqHz / float64(cfg.sampleRate)
	for i := range src {
		src[i] = math.Sin(step * float64(i))
	}

	out := Resample(k, src, cfg.ratio, n)
	fade(out, cfg.fadeLen)
	return out, nil
}

// Resample reads n output samples from src, advancing the phase by ratio
// per sample. The increment is quantized to the 32-bit phase fraction, the
// same way the renderer stores its pitch.
func Resample(k interp.Kernel, src []float64, ratio float64, n int) []float64 {
	out := make([]float64, n)
	scratch := make([]float64, k.Taps)
	incr := interp.PhaseFromFloat(ratio)
	var p interp.Phase
	for i := range out {
		out[i] = k.At(src, scratch, p)
		p += incr
	}
	return out
}

func fade(buf []float64, n int) {
	if n <= 0 || len(buf) < 2*n {
		return
	}
	window.Apply(window.TypeHann, buf[:n], window.WithRisingHalf())
	window.Apply(window.TypeHann, buf[len(buf)-n:], window.WithFallingHalf())
}

func validate(cfg config) error {
	if cfg.sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRate, cfg.sampleRate)
	}
	if cfg.ratio <= 0 || math.IsNaN(cfg.ratio) || math.IsInf(cfg.ratio, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidRatio, cfg.ratio)
	}
	if cfg.freqHz <= 0 || cfg.freqHz >= float64(cfg.sampleRate)/2 {
		return fmt.Errorf("%w: %v Hz at %d Hz", ErrInvalidTone, cfg.freqHz, cfg.sampleRate)
	}
	return nil
}

// WriteWAV writes samples as 16-bit mono PCM. Samples are clipped to [-1, 1].
func WriteWAV(w io.WriteSeeker, samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRate, sampleRate)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		s = math.Max(-1, math.Min(1, s))
		data[i] = int(math.Round(s * math.MaxInt16))
	}

	enc := wav.NewEncoder(w, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("preview: write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("preview: close wav: %w", err)
	}
	return nil
}
