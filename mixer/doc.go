// SPDX-License-Identifier: EPL-2.0

// Package mixer implements a real-time software audio mixer with a fixed
// pool of voices.
//
// The mixer owns up to 127 concurrently playing voices (slot 0 of the
// 128-entry table is reserved) and renders interleaved stereo float32 at a
// fixed 48 kHz. An audio backend calls Mixer.Fill from its device callback;
// any other goroutine drives the control surface. A single mutex serializes
// the two sides, held for the duration of one callback or one control call.
// At typical device buffer sizes the worst-case blocking of a control call
// is a few milliseconds.
//
// # Sounds
//
// A Sound is a fully decoded block of interleaved float32 PCM plus a few
// trailing guard frames holding a copy of the first frame. The guard lets
// the linear interpolator read one frame past any valid cursor position
// without bounds checks, and keeps a loop wrap continuous.
//
//	m := mixer.New()
//	snd := m.NewSound(44100, samples)
//	h := m.Play(snd, mixer.WithVolume(0.8), mixer.WithPan(-0.3))
//
// Sounds are mutable in place (SetData/SetDataStereo) and deleted with
// Sound.Delete. Deleting a sound that is still playing is safe: every voice
// referencing it is forced into its stop fade, which drops the reference,
// before the buffer is released.
//
// # Voices and handles
//
// Play returns a Handle, an opaque 32-bit value packing the slot index and a
// version counter. Every slot reuse and every stop advances the version, so
// a handle kept around too long simply stops matching: all control
// operations on a stale handle are silent no-ops and IsPlaying reports
// false. The zero Handle is always invalid.
//
// # Stopping
//
// Stop does not cut a voice off. The last sample value becomes the seed of a
// short exponential fade (a 1/10000 step toward zero, then decay 0.997 per
// output sample), which from a full-scale seed reaches silence in about 1100
// samples at 48 kHz - some 23 ms - and only then frees the slot. Volume, pan and master-volume changes are smoothed the
// same way, by sliding each channel gain at most 1/512 per output sample
// toward its target. Both mechanisms exist to keep the output click free.
//
// # Timing
//
// PlayDeferred schedules a voice into the future (positive defer: silent
// pre-roll) or into the past (negative defer: the voice starts mid-sound, as
// if it had been playing all along). WithTimeRange restricts playback to a
// window of the sound, which is also the loop region for PlayLoop.
//
// # Real-time discipline
//
// Fill never allocates, never blocks on anything but the mixer mutex, and
// never fails. Errors simply do not exist inside the callback: a full voice
// pool or a stale handle is reported as an invalid handle or a no-op on the
// control side instead.
package mixer
