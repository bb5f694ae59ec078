// SPDX-License-Identifier: EPL-2.0

package gamemix

import (
	"fmt"
	"os"

	"github.com/gamemix/gamemix/audio"
	"github.com/gamemix/gamemix/mixer"
)

// readBufSize is the granularity for draining decoder streams.
const readBufSize = 4096

// LoadSound decodes an audio file into a mixer sound. Any failure - bad
// path, unknown suffix, decode error, unsupported channel count, empty
// decode - is logged and reported as an invalid (empty) sound; callers can
// play it and simply get an invalid handle.
//
// The sound keeps the file's native sample rate and channel count; the mixer
// resamples during playback.
func (e *Engine) LoadSound(path string) *mixer.Sound {
	data, channels, rate, _, err := e.DecodeFile(path)
	if err != nil {
		e.log.Error("cannot create sound", "path", path, "err", err)
		return e.Mixer.NewSoundPCM(0, 0, nil)
	}
	return e.Mixer.NewSoundPCM(rate, channels, data)
}

// LoadSoundAt decodes an audio file and resamples it to sampleRate, so
// playback at pitch 1 consumes exactly one source frame per output frame.
func (e *Engine) LoadSoundAt(path string, sampleRate int) *mixer.Sound {
	snd, err := e.loadConditioned(path, sampleRate, false)
	if err != nil {
		e.log.Error("cannot create sound", "path", path, "err", err)
	}
	return snd
}

// LoadSoundMono decodes an audio file and folds it down to one channel.
func (e *Engine) LoadSoundMono(path string) *mixer.Sound {
	snd, err := e.loadConditioned(path, 0, true)
	if err != nil {
		e.log.Error("cannot create sound", "path", path, "err", err)
	}
	return snd
}

// DecodeFile decodes an audio file to interleaved float32 PCM. This is the
// raw decoder contract: path validation, suffix lookup in the registry,
// streaming decode, and the channel-count check.
func (e *Engine) DecodeFile(path string) (data []float32, channels, sampleRate, frames int, err error) {
	src, err := e.openSource(path)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	defer src.Close()

	data, err = audio.ReadAll(src, readBufSize)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("decoding %s: %w", path, err)
	}

	channels = src.Channels()
	if channels != 1 && channels != 2 {
		return nil, 0, 0, 0, fmt.Errorf("%s: %d channels: %w", path, channels, ErrUnsupportedChannels)
	}
	if len(data) == 0 {
		return nil, 0, 0, 0, fmt.Errorf("%s: %w", path, ErrEmptyDecode)
	}

	return data, channels, src.SampleRate(), len(data) / channels, nil
}

// loadConditioned decodes through an optional resample/mono pipeline.
func (e *Engine) loadConditioned(path string, sampleRate int, mono bool) (*mixer.Sound, error) {
	src, err := e.openSource(path)
	if err != nil {
		return e.Mixer.NewSoundPCM(0, 0, nil), err
	}
	defer src.Close()

	channels := src.Channels()
	if !mono && channels != 1 && channels != 2 {
		return e.Mixer.NewSoundPCM(0, 0, nil), fmt.Errorf("%s: %d channels: %w", path, channels, ErrUnsupportedChannels)
	}

	var conditioned audio.Source = src
	if sampleRate > 0 && sampleRate != src.SampleRate() {
		conditioned = audio.NewResampler(conditioned, sampleRate)
	}
	if mono {
		conditioned = audio.NewMonoMixer(conditioned)
	}

	data, err := audio.ReadAll(conditioned, readBufSize)
	if err != nil {
		return e.Mixer.NewSoundPCM(0, 0, nil), fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(data) == 0 {
		return e.Mixer.NewSoundPCM(0, 0, nil), fmt.Errorf("%s: %w", path, ErrEmptyDecode)
	}

	outRate := src.SampleRate()
	if sampleRate > 0 {
		outRate = sampleRate
	}
	outChannels := channels
	if mono {
		outChannels = 1
	}
	return e.Mixer.NewSoundPCM(outRate, outChannels, data), nil
}

// openSource validates the path and opens a decoder stream for it.
func (e *Engine) openSource(path string) (audio.Source, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if !isPathValid(path) {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidPath)
	}

	dec, ok := e.reg.ForPath(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return &fileSource{Source: src, f: f}, nil
}

// fileSource ties the file's lifetime to the stream's.
type fileSource struct {
	audio.Source
	f *os.File
}

func (fs *fileSource) Close() error {
	err := fs.Source.Close()
	if cerr := fs.f.Close(); err == nil {
		err = cerr
	}
	return err
}
