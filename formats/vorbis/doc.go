// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files via github.com/jfreymuth/oggvorbis.
//
// The decoder implements the audio.Decoder interface:
//
//	dec := vorbis.Decoder{}
//	src, err := dec.Decode(file)
//
// The underlying library decodes straight to interleaved float32, so this
// package is a thin adapter. Channel count and sample rate come from the
// stream's identification header.
package vorbis
