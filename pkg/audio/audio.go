// Package audio implements the SoundPlayer collaborator: MIDI background
// music rendered through a software synthesizer and WAV sound effects,
// both mixed by a single Ebitengine audio context.
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/sinshu/go-meltysynth/meltysynth"

	"github.com/luoxia/jianghu/pkg/fileutil"
	"github.com/luoxia/jianghu/pkg/logger"
)

// SampleRate is the shared sample rate for synthesis and WAV decoding.
const SampleRate = 44100

// ErrNoSoundFont is returned by PlayMusic when the player was built
// without a SoundFont; MIDI synthesis needs one.
var ErrNoSoundFont = errors.New("no SoundFont loaded, MIDI playback unavailable")

// Player plays music and sound effects from a game file system. Effects
// layer over the music; Ebitengine mixes all active players.
type Player struct {
	fs  fileutil.FileSystem
	log *slog.Logger

	ctx       *audio.Context
	soundFont *meltysynth.SoundFont

	mu      sync.Mutex
	music   *audio.Player
	stream  *midiStream
	effects []*audio.Player
}

// NewPlayer creates a Player over the given file system. soundFontPath
// may be empty, in which case music commands report ErrNoSoundFont and
// only sound effects work. The audio context must be created once per
// process; pass nil to create it here.
func NewPlayer(fsys fileutil.FileSystem, ctx *audio.Context, soundFontPath string) (*Player, error) {
	if ctx == nil {
		ctx = audio.NewContext(SampleRate)
	}
	p := &Player{
		fs:  fsys,
		log: logger.GetLogger(),
		ctx: ctx,
	}
	if soundFontPath != "" {
		data, err := fsys.ReadFile(soundFontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read SoundFont %s: %w", soundFontPath, err)
		}
		sf, err := meltysynth.NewSoundFont(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse SoundFont %s: %w", soundFontPath, err)
		}
		p.soundFont = sf
	}
	return p, nil
}

// PlayMusic starts looping playback of a MIDI file, replacing the
// current music.
func (p *Player) PlayMusic(fileName string) error {
	if p.soundFont == nil {
		return ErrNoSoundFont
	}

	data, err := p.fs.ReadFile(fileName)
	if err != nil {
		return fmt.Errorf("failed to read MIDI file %s: %w", fileName, err)
	}
	midi, err := meltysynth.NewMidiFile(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse MIDI file %s: %w", fileName, err)
	}

	settings := meltysynth.NewSynthesizerSettings(SampleRate)
	synth, err := meltysynth.NewSynthesizer(p.soundFont, settings)
	if err != nil {
		return fmt.Errorf("failed to create synthesizer: %w", err)
	}

	sequencer := meltysynth.NewMidiFileSequencer(synth)
	sequencer.Play(midi, true)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopMusicLocked()

	stream := &midiStream{sequencer: sequencer}
	player, err := p.ctx.NewPlayer(stream)
	if err != nil {
		return fmt.Errorf("failed to create music player: %w", err)
	}
	player.Play()

	p.stream = stream
	p.music = player
	p.log.Debug("music started", "file", fileName)
	return nil
}

// StopMusic stops the current music. Sound effects keep playing.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopMusicLocked()
}

func (p *Player) stopMusicLocked() {
	if p.stream != nil {
		p.stream.Stop()
		p.stream = nil
	}
	if p.music != nil {
		p.music.Close()
		p.music = nil
	}
}

// PlaySound plays a WAV effect once. Multiple effects play concurrently.
func (p *Player) PlaySound(fileName string) error {
	data, err := p.fs.ReadFile(fileName)
	if err != nil {
		return fmt.Errorf("failed to read WAV file %s: %w", fileName, err)
	}
	stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode WAV file %s: %w", fileName, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.reapFinishedLocked()

	player, err := p.ctx.NewPlayer(stream)
	if err != nil {
		return fmt.Errorf("failed to create effect player: %w", err)
	}
	player.Play()
	p.effects = append(p.effects, player)
	return nil
}

// Close stops everything.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopMusicLocked()
	for _, e := range p.effects {
		e.Close()
	}
	p.effects = nil
}

func (p *Player) reapFinishedLocked() {
	kept := p.effects[:0]
	for _, e := range p.effects {
		if e.IsPlaying() {
			kept = append(kept, e)
			continue
		}
		e.Close()
	}
	p.effects = kept
}

// midiStream adapts a meltysynth sequencer to the io.Reader Ebitengine
// players consume: 16-bit little-endian interleaved stereo.
type midiStream struct {
	mu        sync.Mutex
	sequencer *meltysynth.MidiFileSequencer
	stopped   bool
}

func (s *midiStream) Read(buf []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.sequencer == nil {
		for i := range buf {
			buf[i] = 0
		}
		return len(buf), nil
	}

	// 4 bytes per stereo frame.
	frames := len(buf) / 4
	if frames == 0 {
		return 0, nil
	}

	left := make([]float32, frames)
	right := make([]float32, frames)
	s.sequencer.Render(left, right)

	for i := 0; i < frames; i++ {
		l := int16(clamp(left[i], -1, 1) * 32767)
		r := int16(clamp(right[i], -1, 1) * 32767)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(l))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(r))
	}
	return frames * 4, nil
}

// Stop makes subsequent reads return silence.
func (s *midiStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
