// SPDX-License-Identifier: EPL-2.0

package mixer

import "math"

// Clamp ranges applied when a voice is started.
const (
	minPitch  = 1e-5
	maxPitch  = 1000.0
	maxVolume = 100000.0
)

// defaultEndTime stands in for "play to the end"; it clamps to the last
// frame of any real sound.
const defaultEndTime = 1e9

type playParams struct {
	volume    float32
	pitch     float32
	pan       float32
	startTime float32
	endTime   float32
}

// PlayOption adjusts how a voice is started.
type PlayOption func(*playParams)

// WithVolume sets the voice gain. Clamped to [0, 1e5].
func WithVolume(v float32) PlayOption {
	return func(p *playParams) { p.volume = v }
}

// WithPitch sets the playback-rate multiplier. Clamped to [1e-5, 1000].
func WithPitch(pitch float32) PlayOption {
	return func(p *playParams) { p.pitch = pitch }
}

// WithPan sets the stereo balance in [-1, 1]. The left gain is
// volume*min(1+pan, 1) and the right gain volume*min(1-pan, 1): -1 silences
// the left channel, +1 silences the right, 0 keeps both at full gain.
func WithPan(pan float32) PlayOption {
	return func(p *playParams) { p.pan = pan }
}

// WithTimeRange restricts playback (and looping) to the window between start
// and end, both in seconds from the beginning of the sound.
func WithTimeRange(start, end float32) PlayOption {
	return func(p *playParams) {
		p.startTime = start
		p.endTime = end
	}
}

// Play starts a voice for snd and returns its handle. Returns the zero
// (invalid) Handle when the voice pool is full or the sound has fewer than
// three samples.
func (m *Mixer) Play(snd *Sound, opts ...PlayOption) Handle {
	return m.play(snd, false, 0, opts)
}

// PlayLoop starts a voice that loops over its time window until stopped.
func (m *Mixer) PlayLoop(snd *Sound, opts ...PlayOption) Handle {
	return m.play(snd, true, 0, opts)
}

// PlayDeferred starts a voice shifted in time. A positive deferSeconds keeps
// the voice silent for that long before it starts; a negative value starts
// it immediately as if it had already been playing for that many seconds.
func (m *Mixer) PlayDeferred(snd *Sound, deferSeconds float32, opts ...PlayOption) Handle {
	return m.play(snd, false, deferSeconds, opts)
}

func (m *Mixer) play(snd *Sound, loop bool, deferSeconds float32, opts []PlayOption) Handle {
	p := playParams{volume: 1.0, pitch: 1.0, endTime: defaultEndTime}
	for _, o := range opts {
		o(&p)
	}
	return m.playInternal(snd, p.volume, p.pitch, p.pan, p.startTime, p.endTime, loop, deferSeconds)
}

func (m *Mixer) playInternal(snd *Sound, volume, pitch, pan, startTime, endTime float32, loop bool, deferSeconds float32) Handle {
	if snd == nil {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.allocateVoice()
	if idx < 0 || snd.data == nil || snd.samples <= 2 {
		return 0
	}

	pitch = clamp32(pitch, minPitch, maxPitch)
	pan = clamp32(pan, -1.0, 1.0)
	volume = clamp32(volume, 0.0, maxVolume)

	last := float64(snd.samples - 1)
	start := clamp64(framePos(startTime, snd.frequency), 0, last)
	stop := clamp64(framePos(endTime, snd.frequency), start, last)
	pos := start
	if deferSeconds < 0 {
		pos = math.Min(framePos(-deferSeconds, snd.frequency), stop)
	}

	v := &m.voices[idx]
	v.channels = snd.channels
	v.snd = snd
	v.volume = volume
	v.pitch = pitch
	v.pan = pan
	v.volumeL = m.masterVolume * volume * min32(1.0+pan, 1.0)
	v.volumeR = m.masterVolume * volume * min32(1.0-pan, 1.0)

	v.pos = pos
	v.startPos = start
	v.stopPos = stop
	v.loop = loop
	v.stopMode = false
	v.timeToStart = float64(max32(deferSeconds, 0.0))
	v.waitingStart = v.timeToStart != 0.0

	return Handle(uint32(idx) | v.version)
}

// Stop begins the stop fade of the voice addressed by h. The handle becomes
// invalid immediately; from a full-scale sample the voice rings out over about
// 1100 output samples. A stale handle is a no-op.
func (m *Mixer) Stop(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.handleToIndex(h)
	if idx < 0 {
		return
	}
	v := &m.voices[idx]
	if v.snd == nil || v.stopMode {
		return
	}
	v.setStopMode()
}

// StopAll begins the stop fade of every active voice.
func (m *Mixer) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.voices {
		v := &m.voices[i]
		if !v.isEmpty() {
			v.setStopMode()
		}
	}
}

// SetPitch changes the playback-rate multiplier of a voice.
func (m *Mixer) SetPitch(h Handle, pitch float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.handleToIndex(h)
	if idx < 0 {
		return
	}
	m.voices[idx].pitch = pitch
}

// SetVolume changes the gain of a voice. The running gains slide toward the
// new target through the per-sample smoothing.
func (m *Mixer) SetVolume(h Handle, volume float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.handleToIndex(h)
	if idx < 0 {
		return
	}
	m.voices[idx].volume = volume
}

// SetPan changes the stereo position of a voice.
func (m *Mixer) SetPan(h Handle, pan float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.handleToIndex(h)
	if idx < 0 {
		return
	}
	m.voices[idx].pan = pan
}

// IsPlaying reports whether h still addresses a live voice that has not been
// stopped. It deliberately takes no lock: the version check makes a stale
// read answer false, and callers only use this as a hint.
func (m *Mixer) IsPlaying(h Handle) bool {
	idx := m.handleToIndex(h)
	if idx < 0 || m.voices[idx].stopMode {
		return false
	}
	return true
}

// PlayPos returns the voice's cursor in seconds from the start of its sound,
// or 0 when the handle is stale, the voice is fading out, or it has not
// started yet.
func (m *Mixer) PlayPos(h Handle) float32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.handleToIndex(h)
	if idx < 0 {
		return 0
	}
	v := &m.voices[idx]
	if v.snd == nil || v.stopMode || v.waitingStart {
		return 0
	}
	return float32(v.pos / float64(v.snd.frequency))
}

// SetPlayPos moves the voice's cursor to posSeconds, clamped to the voice's
// playback window. Refused for stale handles and fading voices.
func (m *Mixer) SetPlayPos(h Handle, posSeconds float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.handleToIndex(h)
	if idx < 0 {
		return
	}
	v := &m.voices[idx]
	if v.snd == nil || v.stopMode {
		return
	}

	p := math.Floor(float64(v.snd.frequency) * float64(posSeconds))
	v.pos = clamp64(p, v.startPos, v.stopPos)
}

// framePos converts a time in seconds to a whole frame position, truncating
// toward zero. The clamp to the sound's bounds happens at the call sites, so
// oversized inputs stay in float space and never overflow an integer.
func framePos(t float32, frequency int) float64 {
	return math.Trunc(float64(t) * float64(frequency))
}

func clamp32(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clamp64(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
