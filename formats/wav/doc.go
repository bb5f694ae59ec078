// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes WAV files.
//
// Decoding is built on github.com/go-audio/wav and accepts PCM data at 8,
// 16, 24 or 32 bits per sample, any channel count, any sample rate. The
// decoder implements the audio.Decoder interface:
//
//	dec := wav.Decoder{}
//	src, err := dec.Decode(file)
//
// When the input is not an io.ReadSeeker it is buffered in memory first,
// since the underlying RIFF parser needs to seek.
//
// Writing covers the single case the runtime needs, mono 16-bit PCM:
//
//	err := wav.WriteWAV16(w, 48000, samples)
//
// # Errors
//
//   - ErrNotWavFile: the RIFF/WAVE magic is missing
//   - ErrOnlyPCMSupported: compressed or float formats
//   - ErrUnsupportedWavLayout: header parsed but unusable
package wav
