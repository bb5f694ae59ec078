// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"sync"
	"sync/atomic"
)

const (
	// SampleRate is the fixed output sample rate of the mixer in Hz.
	SampleRate = 48000
	// Channels is the fixed output channel count.
	Channels = 2

	// MaxVoices is the size of the voice table, a power of two. Slot 0 is
	// reserved so that a zero Handle is always invalid, leaving
	// MaxVoices-1 usable voices.
	MaxVoices = 128

	voiceMask = MaxVoices - 1

	// mixStep is the largest number of frames mixed per inner pass of
	// Fill; voice state (gains, loop wraps, fades) is re-evaluated at
	// least this often.
	mixStep = 256
)

// Handle identifies a playing voice. The low bits carry the slot index, the
// high bits a version that advances on every reuse and on every stop, so a
// stale Handle silently stops addressing anything. The zero Handle is always
// invalid.
type Handle uint32

// Mixer owns a fixed pool of voices and produces interleaved stereo float32
// output on demand. One mutex serializes the device callback (Fill) against
// all control operations; both sides hold it only for bounded work.
type Mixer struct {
	mu            sync.Mutex
	manualEntered atomic.Bool

	voices [MaxVoices]voice
	sounds map[*Sound]struct{}

	masterVolume float32

	totalSamplesPlayed int64
	totalTimePlayed    float64
}

// New creates a mixer with an empty voice table and master volume 1.
func New() *Mixer {
	return &Mixer{
		masterVolume: 1.0,
		sounds:       make(map[*Sound]struct{}),
	}
}

// allocateVoice returns the index of the first empty slot, advancing its
// version, or -1 when the pool is exhausted. Slot 0 is never handed out.
func (m *Mixer) allocateVoice() int {
	for i := 1; i < MaxVoices; i++ {
		if m.voices[i].isEmpty() {
			m.voices[i].version += MaxVoices
			return i
		}
	}
	return -1
}

// handleToIndex resolves a handle to its slot index, or -1 when the handle
// is stale or zero.
func (m *Mixer) handleToIndex(h Handle) int {
	idx := uint32(h) & voiceMask
	if idx == 0 {
		return -1
	}
	if m.voices[idx].version != uint32(h)&^uint32(voiceMask) {
		return -1
	}
	return int(idx)
}

// Fill renders interleaved stereo float32 frames into out at SampleRate.
// This is the device callback: the buffer is zeroed first, then every
// non-empty voice is summed in, in chunks of at most mixStep frames. Fill
// never fails; an idle mixer produces silence.
func (m *Mixer) Fill(out []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range out {
		out[i] = 0
	}

	frames := len(out) / Channels
	const invFrequency = 1.0 / float64(SampleRate)

	off := 0
	for frames > 0 {
		n := min(frames, mixStep)
		chunk := out[off : off+n*Channels]
		for i := range m.voices {
			v := &m.voices[i]
			if !v.isEmpty() {
				v.mixTo(chunk, n, invFrequency, float64(n)*invFrequency, m.masterVolume)
			}
		}
		frames -= n
		off += n * Channels
		m.totalSamplesPlayed += int64(n)
		m.totalTimePlayed += float64(n) * invFrequency
	}
}

// SetMasterVolume sets the global gain applied to every voice. The change
// reaches running voices through the per-sample gain smoothing; there is no
// separate ramp.
func (m *Mixer) SetMasterVolume(v float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = v
}

// MasterVolume returns the global gain.
func (m *Mixer) MasterVolume() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.masterVolume
}

// OutputSampleRate returns the fixed output rate in Hz.
func (m *Mixer) OutputSampleRate() int { return SampleRate }

// TotalSamplesPlayed returns the number of output frames rendered since the
// mixer was created.
func (m *Mixer) TotalSamplesPlayed() int64 { return m.totalSamplesPlayed }

// TotalTimePlayed returns the rendered output time in seconds.
func (m *Mixer) TotalTimePlayed() float64 { return m.totalTimePlayed }

// Lock manually enters the mixer's critical section so a caller can batch
// several control operations atomically with respect to the device callback.
// A second Lock before Unlock is a no-op.
//
// Lock and Unlock must be called in pairs from the same goroutine. The mutex
// is not re-entrant: other Mixer or Sound methods must not be called between
// Lock and Unlock.
func (m *Mixer) Lock() {
	if m.manualEntered.Load() {
		return
	}
	m.mu.Lock()
	m.manualEntered.Store(true)
}

// Unlock leaves the critical section entered by Lock. Unlock without a
// matching Lock is a no-op.
func (m *Mixer) Unlock() {
	if m.manualEntered.Load() {
		m.manualEntered.Store(false)
		m.mu.Unlock()
	}
}
