// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC files via github.com/mewkiz/flac.
//
// The decoder implements the audio.Decoder interface:
//
//	dec := flac.Decoder{}
//	src, err := dec.Decode(file)
//
// FLAC stores each frame planar, one subframe per channel; the source
// interleaves the channels and normalizes by the stream's bit depth so
// consumers see the same interleaved float32 layout as every other format.
package flac
