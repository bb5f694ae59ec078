// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files via github.com/go-audio/aiff.
//
// The decoder implements the audio.Decoder interface:
//
//	dec := aiff.Decoder{}
//	src, err := dec.Decode(file)
//
// Only 16-bit PCM AIFF is accepted. Input that cannot seek is buffered in
// memory, since the underlying parser requires an io.ReadSeeker.
package aiff
