package poncho

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	mixerChannels   = 32
	musicInChannel  = 0
	musicOutChannel = 1
	firstSfxChannel = 2

	// DefaultReplayWindow is how long a sound effect blocks re-triggers of
	// the same name.
	DefaultReplayWindow = 100 * time.Millisecond

	// silentVolume is the effective volume below which a fading-out channel
	// is stopped.
	silentVolume = 0.01
)

// ErrNoFreeChannel is returned by PlaySfx when every effect channel is busy.
var ErrNoFreeChannel = errors.New("poncho: no free sound effect channel")

// Voice is one playing instance of a sound. *audio.Player satisfies it.
type Voice interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
	Close() error
}

// VoiceEffects is implemented by voices that can pan and change pitch.
// Voices without it play centered at their recorded pitch.
type VoiceEffects interface {
	// SetPan positions the voice from -1 (left) to 1 (right).
	SetPan(pan float64)
	// SetPitch scales playback rate; 1 is the recorded pitch.
	SetPitch(pitch float64)
}

// SoundBank creates voices for loaded sounds by name.
type SoundBank interface {
	// NewVoice returns a stopped voice for the named sound. Unknown names
	// return an error wrapping ErrNotFound.
	NewVoice(name string, loop bool) (Voice, error)
}

// VolumeGroup selects one of the mixer's volume levels.
type VolumeGroup uint8

const (
	VolumeGlobal VolumeGroup = iota
	VolumeMusic
	VolumeSfx
)

// PlayOption customizes a single PlayMusic or PlaySfx call.
type PlayOption func(*playConfig)

type playConfig struct {
	from, to float64
	fade     time.Duration
	replay   time.Duration
	pan      float64
	pitch    float64
}

// WithVolume sets the volume the sound plays at (or fades to).
func WithVolume(v float64) PlayOption {
	return func(c *playConfig) { c.to = v }
}

// WithFade starts the sound at volume from and fades to its target volume
// over d.
func WithFade(from float64, d time.Duration) PlayOption {
	return func(c *playConfig) {
		c.from = from
		c.fade = d
	}
}

// WithPan positions the sound from -1 (left) to 1 (right), clamped. It has
// no effect on voices that do not implement VoiceEffects.
func WithPan(pan float64) PlayOption {
	return func(c *playConfig) { c.pan = min(max(pan, -1), 1) }
}

// WithPitch scales the playback rate; 1 is the recorded pitch. Non-positive
// values are ignored. It has no effect on voices that do not implement
// VoiceEffects.
func WithPitch(pitch float64) PlayOption {
	return func(c *playConfig) {
		if pitch > 0 {
			c.pitch = pitch
		}
	}
}

// WithReplayWindow overrides DefaultReplayWindow for a sound effect.
func WithReplayWindow(d time.Duration) PlayOption {
	return func(c *playConfig) { c.replay = d }
}

// channel is one mixer slot.
type channel struct {
	name         string
	voice        Voice
	fade         *gween.Tween
	volume       float64 // current fade value, before group levels
	stopIfSilent bool
	paused       bool
	replayUntil  time.Duration
}

func (c *channel) playing() bool { return c.voice != nil }

// Mixer plays music and sound effects over a fixed set of channels.
// Channel 0 holds the current music track, channel 1 the track being faded
// out by a crossfade, and the rest hold sound effects.
//
// Mixer is not safe for concurrent use; drive it from the game loop.
type Mixer struct {
	bank   SoundBank
	ch     [mixerChannels]channel
	levels [3]float64

	now     time.Duration
	started bool
}

// NewMixer creates a mixer over bank with all volume levels at 1.
func NewMixer(bank SoundBank) *Mixer {
	if bank == nil {
		panic("poncho: nil sound bank")
	}
	return &Mixer{bank: bank, levels: [3]float64{1, 1, 1}}
}

// Volume returns the level of group g.
func (m *Mixer) Volume(g VolumeGroup) float64 {
	return m.levels[g]
}

// SetVolume sets the level of group g, clamped to [0, 1]. The change is
// applied on the next Update.
func (m *Mixer) SetVolume(g VolumeGroup, v float64) {
	m.levels[g] = min(max(v, 0), 1)
}

// groupLevel returns global × music or global × sfx for channel i.
func (m *Mixer) groupLevel(i int) float64 {
	if i < firstSfxChannel {
		return m.levels[VolumeGlobal] * m.levels[VolumeMusic]
	}
	return m.levels[VolumeGlobal] * m.levels[VolumeSfx]
}

// PlayMusic starts name on the music channel, looping, replacing whatever is
// playing there.
func (m *Mixer) PlayMusic(name string, opts ...PlayOption) error {
	return m.play(musicInChannel, name, true, opts)
}

// CrossfadeMusic fades the current track out while fading name in to
// volume over d. With no music playing it simply fades name in.
func (m *Mixer) CrossfadeMusic(name string, d time.Duration, volume float64) error {
	in := &m.ch[musicInChannel]
	if !in.playing() {
		return m.PlayMusic(name, WithFade(0, d), WithVolume(volume))
	}

	m.stopChannel(musicOutChannel)
	in.stopIfSilent = true
	in.fadeTo(0, d)
	m.ch[musicInChannel], m.ch[musicOutChannel] = m.ch[musicOutChannel], m.ch[musicInChannel]

	return m.PlayMusic(name, WithFade(0, d), WithVolume(volume))
}

// PlaySfx plays a sound effect on a free effect channel. If the same effect
// was started less than its replay window ago, the call is ignored.
func (m *Mixer) PlaySfx(name string, opts ...PlayOption) error {
	free := -1
	for i := firstSfxChannel; i < mixerChannels; i++ {
		c := &m.ch[i]
		if !c.playing() {
			if free < 0 {
				free = i
			}
			continue
		}
		if c.name == name && m.now < c.replayUntil {
			return nil
		}
	}
	if free < 0 {
		return ErrNoFreeChannel
	}
	return m.play(free, name, false, opts)
}

func (m *Mixer) play(i int, name string, loop bool, opts []PlayOption) error {
	cfg := playConfig{from: 1, to: 1, replay: DefaultReplayWindow, pitch: 1}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.fade <= 0 {
		cfg.from = cfg.to
	}

	v, err := m.bank.NewVoice(name, loop)
	if err != nil {
		return fmt.Errorf("poncho: play %q: %w", name, err)
	}

	m.stopChannel(i)
	c := &m.ch[i]
	*c = channel{
		name:        name,
		voice:       v,
		volume:      cfg.from,
		replayUntil: m.now + cfg.replay,
	}
	c.fadeTo(cfg.to, cfg.fade)
	if fx, ok := v.(VoiceEffects); ok {
		fx.SetPan(cfg.pan)
		fx.SetPitch(cfg.pitch)
	}
	v.SetVolume(c.volume * m.groupLevel(i))
	v.Play()
	return nil
}

// fadeTo moves the channel's volume linearly to v over d. A non-positive d
// jumps straight to v.
func (c *channel) fadeTo(v float64, d time.Duration) {
	if d <= 0 {
		c.volume = v
		c.fade = nil
		return
	}
	c.fade = gween.New(float32(c.volume), float32(v), float32(d.Seconds()), ease.Linear)
}

// Update advances fades to now and releases finished voices. now is the
// same monotonic time the scene clock reports.
func (m *Mixer) Update(now time.Duration) {
	var dt time.Duration
	if m.started && now > m.now {
		dt = now - m.now
	}
	m.started = true
	m.now = now

	for i := range m.ch {
		c := &m.ch[i]
		if !c.playing() {
			continue
		}
		if c.fade != nil && !c.paused {
			v, done := c.fade.Update(float32(dt.Seconds()))
			c.volume = float64(v)
			if done {
				c.fade = nil
			}
		}
		eff := c.volume * m.groupLevel(i)
		c.voice.SetVolume(eff)

		switch {
		case c.stopIfSilent && eff < silentVolume:
			m.stopChannel(i)
		case !c.paused && !c.voice.IsPlaying():
			m.stopChannel(i)
		}
	}
}

// Playing reports the names on the music and effect channels that currently
// hold a voice, music first.
func (m *Mixer) Playing() []string {
	var names []string
	for i := range m.ch {
		if m.ch[i].playing() {
			names = append(names, m.ch[i].name)
		}
	}
	return names
}

func (m *Mixer) PauseMusic()  { m.pause(0, firstSfxChannel) }
func (m *Mixer) PauseSfx()    { m.pause(firstSfxChannel, mixerChannels) }
func (m *Mixer) PauseAll()    { m.pause(0, mixerChannels) }
func (m *Mixer) ResumeMusic() { m.resume(0, firstSfxChannel) }
func (m *Mixer) ResumeSfx()   { m.resume(firstSfxChannel, mixerChannels) }
func (m *Mixer) ResumeAll()   { m.resume(0, mixerChannels) }
func (m *Mixer) StopMusic()   { m.stop(0, firstSfxChannel) }
func (m *Mixer) StopSfx()     { m.stop(firstSfxChannel, mixerChannels) }
func (m *Mixer) StopAll()     { m.stop(0, mixerChannels) }

func (m *Mixer) pause(from, to int) {
	for i := from; i < to; i++ {
		if c := &m.ch[i]; c.playing() && !c.paused {
			c.voice.Pause()
			c.paused = true
		}
	}
}

func (m *Mixer) resume(from, to int) {
	for i := from; i < to; i++ {
		if c := &m.ch[i]; c.playing() && c.paused {
			c.voice.Play()
			c.paused = false
		}
	}
}

func (m *Mixer) stop(from, to int) {
	for i := from; i < to; i++ {
		m.stopChannel(i)
	}
}

func (m *Mixer) stopChannel(i int) {
	c := &m.ch[i]
	if c.voice != nil {
		c.voice.Pause()
		if err := c.voice.Close(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[poncho] audio: close %q: %v\n", c.name, err)
		}
	}
	*c = channel{}
}
