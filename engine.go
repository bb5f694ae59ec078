// SPDX-License-Identifier: EPL-2.0

package gamemix

import (
	"log/slog"

	"github.com/gamemix/gamemix/audio"
	"github.com/gamemix/gamemix/backend"
	"github.com/gamemix/gamemix/formats/aiff"
	"github.com/gamemix/gamemix/formats/flac"
	"github.com/gamemix/gamemix/formats/mp3"
	"github.com/gamemix/gamemix/formats/vorbis"
	"github.com/gamemix/gamemix/formats/wav"
	"github.com/gamemix/gamemix/mixer"
)

// Engine bundles a mixer, the format registry and the playback device into
// the audio runtime. The mixer's control surface is reached through the
// Mixer field; the engine itself handles loading, validation and device
// lifecycle.
type Engine struct {
	Mixer *mixer.Mixer

	reg *audio.Registry
	log *slog.Logger
	dev *backend.Device
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes the engine's validation and device messages to l
// instead of slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithDecoder registers an extra (or replacement) decoder for a file suffix.
func WithDecoder(ext string, d audio.Decoder) Option {
	return func(e *Engine) { e.reg.Register(ext, d) }
}

// New creates an engine with all built-in decoders registered. No device is
// opened yet; call Start for that, or drive Mixer.Fill yourself.
func New(opts ...Option) *Engine {
	e := &Engine{
		Mixer: mixer.New(),
		reg:   audio.NewRegistry(),
		log:   slog.Default(),
	}

	e.reg.Register("wav", wav.Decoder{})
	e.reg.Register("mp3", mp3.Decoder{})
	e.reg.Register("flac", flac.Decoder{})
	e.reg.Register("ogg", vorbis.Decoder{})
	e.reg.Register("aiff", aiff.Decoder{})
	e.reg.Register("aif", aiff.Decoder{})

	for _, o := range opts {
		o(e)
	}
	return e
}

// Start opens the playback device and begins pulling from the mixer. On
// failure the error is logged and returned, and the engine stays silent;
// everything except audible output keeps working.
func (e *Engine) Start() error {
	if e.dev != nil {
		return nil
	}

	dev, err := backend.Open(mixer.SampleRate, mixer.Channels, e.Mixer.Fill)
	if err != nil {
		e.log.Error("failed to open playback device", "err", err)
		return err
	}
	e.dev = dev
	dev.Start()
	return nil
}

// Close stops the device and frees every sound still alive.
func (e *Engine) Close() {
	if e.dev != nil {
		e.dev.Close()
		e.dev = nil
	}
	e.Mixer.StopAll()
	e.Mixer.FreeAllSounds()
}
