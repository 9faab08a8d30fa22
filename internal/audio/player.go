package audio

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// ErrNoTrack is returned for a playlist index out of range.
var ErrNoTrack = errors.New("no such track")

// ErrUnsupportedFormat is returned by Load for file types other than
// wav, mp3 and flac.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// SupportedPatterns lists the glob patterns Load accepts.
var SupportedPatterns = []string{"*.wav", "*.mp3", "*.flac"}

const tapRingSize = 8192

// Player decodes audio files from a playlist, plays them through the system
// speaker and exposes the audible signal as a Provider. The chain is
// decoder -> Tap -> Ctrl -> Volume, so the analyser sees the signal before
// the volume is applied.
type Player struct {
	mu sync.Mutex

	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	tap      *Tap

	queue Playlist
	level float64

	analyser *Analyser
	mono     []float64

	speakerInit bool
	paused      bool
	activated   bool
	track       string
}

func NewPlayer(fftSize int) *Player {
	a := NewAnalyser(fftSize)
	return &Player{
		analyser: a,
		mono:     make([]float64, a.Size()),
		level:    DefaultVolume,
	}
}

// Activate marks the session as started without loading anything.
func (p *Player) Activate() {
	p.mu.Lock()
	p.activated = true
	p.mu.Unlock()
}

func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Load stops whatever is playing, starts path and appends it to the
// playlist as the current track.
func (p *Player) Load(path string) error {
	if err := p.play(path); err != nil {
		return err
	}
	p.mu.Lock()
	p.queue.Select(p.queue.Add(path))
	p.mu.Unlock()
	return nil
}

// AddTracks appends paths to the playlist. When nothing is playing the first
// added track starts.
func (p *Player) AddTracks(paths ...string) error {
	p.mu.Lock()
	first := p.queue.Add(paths...)
	idle := p.streamer == nil
	p.mu.Unlock()

	if first < 0 || !idle {
		return nil
	}
	return p.PlayTrack(first)
}

// PlayTrack starts the playlist entry at index i.
func (p *Player) PlayTrack(i int) error {
	p.mu.Lock()
	path, ok := p.queue.At(i)
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("play track %d: %w", i, ErrNoTrack)
	}

	if err := p.play(path); err != nil {
		return err
	}
	p.mu.Lock()
	p.queue.Select(i)
	p.mu.Unlock()
	return nil
}

// PlayNext and PlayPrev move through the playlist; both are no-ops at the
// ends.
func (p *Player) PlayNext() error {
	p.mu.Lock()
	next, ok := p.queue.Current()+1, p.queue.HasNext()
	p.mu.Unlock()
	if !ok {
		return nil
	}
	return p.PlayTrack(next)
}

func (p *Player) PlayPrev() error {
	p.mu.Lock()
	prev, ok := p.queue.Current()-1, p.queue.HasPrev()
	p.mu.Unlock()
	if !ok {
		return nil
	}
	return p.PlayTrack(prev)
}

// Playlist returns the track display names and the current index.
func (p *Player) Playlist() ([]string, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Names(), p.queue.Current()
}

// SetVolume sets the linear output level, clamped to [0,1].
func (p *Player) SetVolume(level float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = clampLevel(level)
	if p.volume != nil {
		speaker.Lock()
		setLevel(p.volume, p.level)
		speaker.Unlock()
	}
}

func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *Player) play(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	streamer, format, err := decode(path, f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", path, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.speakerInit:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.speakerInit = true
	case p.format.SampleRate != format.SampleRate:
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("reinit speaker: %w", err)
		}
	default:
		speaker.Clear()
	}
	p.closeLocked()

	tap := NewTap(streamer, tapRingSize)
	ctrl := &beep.Ctrl{Streamer: tap}
	volume := &effects.Volume{Streamer: ctrl}
	setLevel(volume, p.level)

	p.file = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.volume = volume
	p.tap = tap
	p.paused = false
	p.activated = true
	p.track = filepath.Base(path)
	p.analyser.Reset()

	// the callback runs under the speaker lock, so release resources elsewhere
	speaker.Play(beep.Seq(volume, beep.Callback(func() {
		go func() {
			next, ok := p.finished(streamer)
			if !ok {
				return
			}
			if err := p.PlayTrack(next); err != nil {
				log.Printf("advance playlist: %v", err)
			}
		}()
	})))
	return nil
}

// finished releases streamer if it is still the current track and reports
// the playlist entry to continue with, if any.
func (p *Player) finished(streamer beep.StreamSeekCloser) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer != streamer {
		return 0, false
	}
	p.closeLocked()
	if !p.queue.HasNext() {
		return 0, false
	}
	return p.queue.Current() + 1, true
}

func (p *Player) closeLocked() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		_ = p.file.Close()
		p.file = nil
	}
	p.ctrl = nil
	p.volume = nil
	p.tap = nil
	p.track = ""
}

// Close stops playback and releases the open file.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.speakerInit {
		speaker.Clear()
	}
	p.closeLocked()
}

// TogglePause flips between playing and paused. It is a no-op without a track.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

// Seek jumps to fraction (0..1) of the track length.
func (p *Player) Seek(fraction float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return nil
	}

	fraction = min(max(fraction, 0), 1)
	n := p.streamer.Len()
	pos := min(int(fraction*float64(n)), n-1)
	pos = max(pos, 0)

	speaker.Lock()
	err := p.streamer.Seek(pos)
	speaker.Unlock()
	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	return nil
}

// Position and Duration report playback progress; both are zero without a track.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}

func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// Track is the base name of the loaded file, or "" when idle.
func (p *Player) Track() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

func (p *Player) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.streamer != nil
}

func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

func (p *Player) FillFrequencyData(buf []byte) {
	p.mu.Lock()
	tap := p.tap
	paused := p.paused
	p.mu.Unlock()

	if tap == nil {
		clear(buf)
		return
	}
	if paused {
		// let the analyser history decay instead of freezing
		clear(p.mono)
	} else {
		tap.Mono(p.mono)
	}
	p.analyser.Process(p.mono, buf)
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.streamer != nil && !p.paused
}

func (p *Player) HasBeenActivated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activated
}
