// SPDX-License-Identifier: EPL-2.0

package gamemix

import (
	"fmt"
	"io"

	"github.com/gamemix/gamemix/audio"
	"github.com/gamemix/gamemix/formats/wav"
	"github.com/gamemix/gamemix/mixer"
)

// ExportWAV writes a sound as mono 16-bit PCM WAV at sampleRate, running it
// through the same resample/mono pipeline the loaders use. Useful for
// dumping synthesized or edited sounds back to disk.
func ExportWAV(w io.Writer, snd *mixer.Sound, sampleRate int) error {
	if !snd.Valid() {
		return ErrEmptyDecode
	}

	pcm16, _, err := audio.ResampleToMono16(newSoundSource(snd), sampleRate, readBufSize)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := wav.WriteWAV16(w, sampleRate, pcm16); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// soundSource adapts a mixer.Sound to audio.Source so a fully decoded sound
// can run back through the streaming pipeline. The samples are snapshotted
// at construction; later edits to the sound do not show up mid-stream.
type soundSource struct {
	data     []float32
	rate     int
	channels int
	pos      int
}

func newSoundSource(snd *mixer.Sound) *soundSource {
	s := &soundSource{
		rate:     snd.Frequency(),
		channels: snd.Channels(),
	}
	if s.channels == 2 {
		s.data = make([]float32, snd.Samples()*2)
		snd.DataStereo(s.data)
	} else {
		s.data = make([]float32, snd.Samples())
		snd.Data(s.data)
	}
	return s
}

func (s *soundSource) SampleRate() int { return s.rate }
func (s *soundSource) Channels() int   { return s.channels }
func (s *soundSource) Close() error    { return nil }

func (s *soundSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	n := copy(dst, s.data[s.pos:])
	s.pos += n
	if s.pos >= len(s.data) {
		return n, io.EOF
	}
	return n, nil
}
