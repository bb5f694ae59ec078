// SPDX-License-Identifier: EPL-2.0

// Package gamemix is the audio runtime of a small interactive-media engine:
// a real-time software mixer plus the loading, validation and device
// plumbing around it.
//
// # Quick Start
//
//	eng := gamemix.New()
//	if err := eng.Start(); err != nil {
//	    // no audio device; everything still works, silently
//	}
//	defer eng.Close()
//
//	snd := eng.LoadSound("sfx/door.wav")
//	h := eng.Mixer.Play(snd, mixer.WithVolume(0.8))
//
//	// later
//	eng.Mixer.Stop(h)
//
// # Layers
//
// The mixer subpackage is the real-time core: a fixed pool of voices,
// versioned handles, per-callback summing with resampling, panning and
// click-free gain ramps. It never allocates or fails inside the device
// callback.
//
// The audio subpackage and the formats/... decoders feed it: WAV, MP3,
// FLAC, Ogg Vorbis and AIFF files stream through the audio.Source interface
// and are drained into fully decoded in-memory sounds at load time.
//
// The backend subpackage owns the playback device (ebitengine/oto) and pulls
// from Mixer.Fill on its audio goroutine.
//
// # Error Model
//
// Loading failures - an invalid path, an unknown suffix, a broken file, a
// channel count the mixer cannot use - are logged (slog) and produce an
// empty sound, which plays as an invalid handle. Control operations on stale
// handles are silent no-ops. This keeps game code free of audio error
// handling: a sound that cannot play is simply never heard.
//
// Asset paths are restricted to relative paths without parent-directory
// traversal, so script-supplied names stay inside the asset tree.
package gamemix
