// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/gamemix/gamemix/audio"
)

// flacReader is the slice of flac.Stream the source needs; tests substitute
// their own implementation.
type flacReader interface {
	ParseNext() (*frame.Frame, error)
}

// source wraps a flac.Stream to implement audio.Source. FLAC frames arrive
// planar (one subframe per channel); interleaved leftovers of the current
// frame are kept in pending between reads.
type source struct {
	dec        flacReader
	sampleRate int
	channels   int
	scale      float32

	pending []float32
	eof     bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	written := 0
	for written < len(dst) {
		if len(s.pending) == 0 {
			if s.eof {
				break
			}
			if err := s.decodeFrame(); err != nil {
				if err == io.EOF {
					s.eof = true
					continue
				}
				return written, fmt.Errorf("%w", err)
			}
		}

		n := copy(dst[written:], s.pending)
		s.pending = s.pending[n:]
		written += n
	}

	if written == 0 {
		return 0, io.EOF
	}
	if s.eof && len(s.pending) == 0 {
		return written, io.EOF
	}
	return written, nil
}

// decodeFrame parses the next FLAC frame and interleaves it into pending.
func (s *source) decodeFrame() error {
	f, err := s.dec.ParseNext()
	if err != nil {
		return err
	}
	if len(f.Subframes) == 0 {
		return ErrBadFrame
	}

	blockSize := len(f.Subframes[0].Samples)
	channels := min(len(f.Subframes), s.channels)

	out := make([]float32, blockSize*s.channels)
	for ch := 0; ch < channels; ch++ {
		samples := f.Subframes[ch].Samples
		for i := 0; i < blockSize && i < len(samples); i++ {
			out[i*s.channels+ch] = float32(samples[i]) / s.scale
		}
	}
	s.pending = out
	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	info := stream.Info
	if info == nil {
		return nil, ErrMissingStreamInfo
	}
	bps := int(info.BitsPerSample)
	if bps < 4 || bps > 32 {
		return nil, ErrBadBitDepth
	}

	return &source{
		dec:        stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		scale:      float32(int64(1) << (bps - 1)),
	}, nil
}
