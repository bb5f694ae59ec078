// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files via github.com/hajimehoshi/go-mp3.
//
// The decoder implements the audio.Decoder interface and streams the file as
// interleaved float32:
//
//	dec := mp3.Decoder{}
//	src, err := dec.Decode(file)
//
// go-mp3 always upmixes to two channels, so the returned Source reports
// stereo regardless of the encoded layout. The sample rate is whatever the
// file was encoded at (commonly 44100 or 48000 Hz).
package mp3
