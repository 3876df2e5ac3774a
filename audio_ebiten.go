package poncho

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// DefaultSampleRate is the sample rate used by NewEbitenSoundBank when the
// caller passes zero.
const DefaultSampleRate = 44100

// EbitenSoundBank decodes WAV sounds into memory and plays them through an
// Ebitengine audio context.
type EbitenSoundBank struct {
	ctx    *audio.Context
	sounds map[string][]byte
}

// NewEbitenSoundBank returns a bank backed by the process-wide audio context,
// creating it at sampleRate if it doesn't exist yet.
func NewEbitenSoundBank(sampleRate int) *EbitenSoundBank {
	ctx := audio.CurrentContext()
	if ctx == nil {
		if sampleRate <= 0 {
			sampleRate = DefaultSampleRate
		}
		ctx = audio.NewContext(sampleRate)
	}
	return &EbitenSoundBank{ctx: ctx, sounds: make(map[string][]byte)}
}

// Load decodes a WAV stream and stores it under name. Loading a name that is
// already present is a no-op.
func (b *EbitenSoundBank) Load(name string, r io.Reader) error {
	if _, ok := b.sounds[name]; ok {
		return nil
	}
	stream, err := wav.DecodeWithSampleRate(b.ctx.SampleRate(), r)
	if err != nil {
		return fmt.Errorf("poncho: decode sound %q: %w", name, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return fmt.Errorf("poncho: decode sound %q: %w", name, err)
	}
	b.sounds[name] = pcm
	return nil
}

// Has reports whether name has been loaded.
func (b *EbitenSoundBank) Has(name string) bool {
	_, ok := b.sounds[name]
	return ok
}

// NewVoice creates a player for the named sound.
func (b *EbitenSoundBank) NewVoice(name string, loop bool) (Voice, error) {
	pcm, ok := b.sounds[name]
	if !ok {
		return nil, fmt.Errorf("sound %q: %w", name, ErrNotFound)
	}
	var src io.Reader = bytes.NewReader(pcm)
	if loop {
		src = audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	}
	p, err := b.ctx.NewPlayer(src)
	if err != nil {
		return nil, err
	}
	return p, nil
}
