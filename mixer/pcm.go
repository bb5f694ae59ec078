// SPDX-License-Identifier: EPL-2.0

package mixer

// guardFrames is the number of extra frames allocated past the end of a
// sound's sample data. The first frame is duplicated there so the linear
// interpolator can read one frame past any valid position without a branch,
// and so a loop wrap stays continuous.
const guardFrames = 4

// Sound is a block of interleaved float32 PCM owned by a Mixer.
//
// A Sound is created through Mixer.NewSound, Mixer.NewSoundStereo or
// Mixer.NewSoundPCM and stays attached to that mixer for its whole life.
// An invalid (empty) Sound is still usable: playing it yields an invalid
// handle, all accessors report zero sizes.
type Sound struct {
	mix  *Mixer
	data []float32

	frequency int
	samples   int
	channels  int
}

// emptySound is what every failed creation path returns.
func emptySound(m *Mixer) *Sound {
	return &Sound{mix: m, frequency: 44100, channels: 1}
}

// dataLen is the allocation length in floats, guard frames included.
func dataLen(channels, samples int) int {
	return channels * (samples + guardFrames)
}

// writeGuard duplicates the first frame right after the last real frame.
func (s *Sound) writeGuard() {
	if len(s.data) == 0 || s.samples == 0 {
		return
	}
	if s.channels == 2 {
		s.data[s.samples*2] = s.data[0]
		s.data[s.samples*2+1] = s.data[1]
	} else {
		s.data[s.samples] = s.data[0]
	}
}

// Valid reports whether the sound carries sample data.
func (s *Sound) Valid() bool { return s != nil && s.data != nil }

// Frequency returns the sample rate of the sound in Hz.
func (s *Sound) Frequency() int { return s.frequency }

// Samples returns the frame count.
func (s *Sound) Samples() int { return s.samples }

// Channels returns the channel count (1 or 2).
func (s *Sound) Channels() int { return s.channels }

// Duration returns the length of the sound in seconds.
func (s *Sound) Duration() float32 {
	if s.frequency <= 0 {
		return 0
	}
	return float32(s.samples) / float32(s.frequency)
}

// NewSound creates a mono sound from samples at the given sample rate.
// Returns an invalid sound when frequency < 1 or samples is empty.
func (m *Mixer) NewSound(frequency int, samples []float32) *Sound {
	if frequency < 1 || len(samples) == 0 {
		return emptySound(m)
	}

	s := &Sound{
		mix:       m,
		frequency: frequency,
		channels:  1,
		samples:   len(samples),
		data:      make([]float32, dataLen(1, len(samples))),
	}
	copy(s.data, samples)
	s.writeGuard()
	m.registerSound(s)
	return s
}

// NewSoundStereo creates a stereo sound from interleaved L/R samples.
// len(frames) must be even; the frame count is len(frames)/2.
func (m *Mixer) NewSoundStereo(frequency int, frames []float32) *Sound {
	if frequency < 1 || len(frames) == 0 || len(frames)%2 != 0 {
		return emptySound(m)
	}

	s := &Sound{
		mix:       m,
		frequency: frequency,
		channels:  2,
		samples:   len(frames) / 2,
		data:      make([]float32, dataLen(2, len(frames)/2)),
	}
	copy(s.data, frames)
	s.writeGuard()
	m.registerSound(s)
	return s
}

// NewSoundPCM creates a sound from decoded interleaved PCM with the given
// channel count. Only mono and stereo input is accepted.
func (m *Mixer) NewSoundPCM(frequency, channels int, interleaved []float32) *Sound {
	if frequency < 1 || len(interleaved) == 0 {
		return emptySound(m)
	}
	if channels != 1 && channels != 2 {
		return emptySound(m)
	}
	samples := len(interleaved) / channels
	if samples == 0 {
		return emptySound(m)
	}

	s := &Sound{
		mix:       m,
		frequency: frequency,
		channels:  channels,
		samples:   samples,
		data:      make([]float32, dataLen(channels, samples)),
	}
	copy(s.data, interleaved[:samples*channels])
	s.writeGuard()
	m.registerSound(s)
	return s
}

// Clone returns a deep copy of the sound. The copy owns its own buffer and
// plays independently of the original.
func (s *Sound) Clone() *Sound {
	if s.mix == nil {
		return &Sound{frequency: s.frequency, channels: s.channels}
	}

	s.mix.mu.Lock()
	defer s.mix.mu.Unlock()

	if s.data == nil {
		return emptySound(s.mix)
	}
	c := &Sound{
		mix:       s.mix,
		frequency: s.frequency,
		samples:   s.samples,
		channels:  s.channels,
		data:      make([]float32, len(s.data)),
	}
	copy(c.data, s.data)
	s.mix.sounds[c] = struct{}{}
	return c
}

// Data copies the sound as mono samples into dst and returns the number of
// samples copied. Stereo sounds are averaged down per frame.
func (s *Sound) Data(dst []float32) int {
	if s.mix == nil {
		return 0
	}
	s.mix.mu.Lock()
	defer s.mix.mu.Unlock()

	if s.data == nil {
		return 0
	}
	count := min(s.samples, len(dst))
	if s.channels == 1 {
		copy(dst[:count], s.data[:count])
	} else {
		for i := range count {
			dst[i] = (s.data[i*2] + s.data[i*2+1]) * 0.5
		}
	}
	return count
}

// DataStereo copies the sound as interleaved stereo frames into dst and
// returns the number of frames copied. Mono sounds are duplicated to both
// channels.
func (s *Sound) DataStereo(dst []float32) int {
	if s.mix == nil {
		return 0
	}
	s.mix.mu.Lock()
	defer s.mix.mu.Unlock()

	if s.data == nil {
		return 0
	}
	count := min(s.samples, len(dst)/2)
	if s.channels == 2 {
		copy(dst[:count*2], s.data[:count*2])
	} else {
		for i := range count {
			dst[i*2] = s.data[i]
			dst[i*2+1] = s.data[i]
		}
	}
	return count
}

// SetData overwrites the sound's samples from a mono slice and returns the
// number of samples written. Stereo sounds receive the mono signal on both
// channels. The guard frames are rewritten.
func (s *Sound) SetData(src []float32) int {
	if s.mix == nil {
		return 0
	}
	s.mix.mu.Lock()
	defer s.mix.mu.Unlock()

	if s.data == nil {
		return 0
	}
	count := min(s.samples, len(src))
	if count == 0 {
		return 0
	}
	if s.channels == 1 {
		copy(s.data[:count], src[:count])
	} else {
		for i := range count {
			s.data[i*2] = src[i]
			s.data[i*2+1] = src[i]
		}
	}
	s.writeGuard()
	return count
}

// SetDataStereo overwrites the sound's samples from interleaved stereo frames
// and returns the number of frames written. Mono sounds receive the per-frame
// average. The guard frames are rewritten.
func (s *Sound) SetDataStereo(src []float32) int {
	if s.mix == nil {
		return 0
	}
	s.mix.mu.Lock()
	defer s.mix.mu.Unlock()

	if s.data == nil {
		return 0
	}
	count := min(s.samples, len(src)/2)
	if count == 0 {
		return 0
	}
	if s.channels == 2 {
		copy(s.data[:count*2], src[:count*2])
	} else {
		for i := range count {
			s.data[i] = (src[i*2] + src[i*2+1]) * 0.5
		}
	}
	s.writeGuard()
	return count
}

// Delete releases the sound's buffer. Any voice still playing it is forced
// into its stop fade first, so a deleted sound is never read by the mixer
// again. Deleting an invalid sound is a no-op.
func (s *Sound) Delete() {
	if s.mix == nil {
		return
	}
	s.mix.mu.Lock()
	defer s.mix.mu.Unlock()
	s.mix.deleteSoundLocked(s)
}

func (m *Mixer) registerSound(s *Sound) {
	m.mu.Lock()
	m.sounds[s] = struct{}{}
	m.mu.Unlock()
}

func (m *Mixer) deleteSoundLocked(s *Sound) {
	for i := range m.voices {
		v := &m.voices[i]
		if v.snd == s && !v.isEmpty() {
			v.setStopMode()
		}
	}
	delete(m.sounds, s)
	s.data = nil
	s.samples = 0
}

// DeleteSound releases a sound owned by this mixer. See Sound.Delete.
func (m *Mixer) DeleteSound(s *Sound) {
	if s == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteSoundLocked(s)
}

// FreeAllSounds releases every sound still registered with the mixer. This is
// the teardown path: afterwards all previously created sounds are invalid and
// all voices are silent or fading out.
func (m *Mixer) FreeAllSounds() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for s := range m.sounds {
		for i := range m.voices {
			v := &m.voices[i]
			if v.snd == s && !v.isEmpty() {
				v.setStopMode()
			}
		}
		s.data = nil
		s.samples = 0
	}
	clear(m.sounds)
}
