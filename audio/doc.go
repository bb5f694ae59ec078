// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming decode side of the runtime: the
// Source interface, the decoder registry, and offline conditioning
// (resampling, mono folding, draining) applied to sounds before they are
// handed to the real-time mixer.
//
// # Source Interface
//
// The Source interface is the seam between format decoders and everything
// else:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// All format decoders in formats/... return a Source, so they can be chained
// with the processors here.
//
// # Registry
//
// The Registry binds file suffixes to decoders:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, ok := reg.ForPath("assets/door.wav")
//
// # Conditioning
//
// The Resampler converts a stream to another sample rate with cubic
// interpolation, MonoMixer averages channels down to one, and ReadAll drains
// a stream into memory:
//
//	src, _ := dec.Decode(file)
//	data, err := audio.ReadAll(audio.NewResampler(src, 48000), 4096)
//
// These run at load time, not in the audio callback; the mixer itself only
// ever touches fully decoded buffers.
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0], interleaved by channel. Streams end
// with io.EOF from ReadSamples, following the io.Reader convention.
package audio
