// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"math"
	"testing"
)

// fill renders n frames and returns the interleaved buffer.
func fill(m *Mixer, frames int) []float32 {
	out := make([]float32, frames*Channels)
	m.Fill(out)
	return out
}

// constSound builds a mono sound at the output rate so playback is 1:1.
func constSound(m *Mixer, samples int, value float32) *Sound {
	data := make([]float32, samples)
	for i := range data {
		data[i] = value
	}
	return m.NewSound(SampleRate, data)
}

func TestFill_IdleSilence(t *testing.T) {
	t.Parallel()

	m := New()
	out := fill(m, 1000)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v on idle mixer, want 0", i, v)
		}
	}
}

func TestFill_ClearsBuffer(t *testing.T) {
	t.Parallel()

	m := New()
	out := make([]float32, 64)
	for i := range out {
		out[i] = 42
	}
	m.Fill(out)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want 0 (stale data not cleared)", i, v)
		}
	}
}

// A default play of a 1000-sample constant sound at the output rate: the
// signal appears immediately at unity gain on both channels, ends after the
// last frame, and the stop fade decays to exact zero shortly after.
func TestFill_PlayThroughAndFadeOut(t *testing.T) {
	t.Parallel()

	m := New()
	snd := constSound(m, 1000, 0.5)
	h := m.Play(snd)
	if h == 0 {
		t.Fatal("Play() returned invalid handle")
	}

	out := fill(m, 512)
	if out[0] != 0.5 || out[1] != 0.5 {
		t.Fatalf("first frame = (%v, %v), want (0.5, 0.5)", out[0], out[1])
	}
	for i := 0; i < 512; i++ {
		if out[i*2] != 0.5 || out[i*2+1] != 0.5 {
			t.Fatalf("frame %d = (%v, %v), want (0.5, 0.5)", i, out[i*2], out[i*2+1])
		}
	}

	// Drain past the end of the sound plus the whole fade window.
	fill(m, 512+2100)

	if m.IsPlaying(h) {
		t.Error("IsPlaying() = true after sound ended")
	}

	out = fill(m, 256)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v after fade, want exact 0", i, v)
		}
	}

	// The slot is empty again and reusable.
	if !m.voices[uint32(h)&voiceMask].isEmpty() {
		t.Error("voice slot not empty after fade completed")
	}
}

// The fade tail must be audible: after a manual Stop the next frames are
// nonzero and strictly shrinking, reaching zero within ~2100 samples.
func TestFill_StopFadeTail(t *testing.T) {
	t.Parallel()

	m := New()
	snd := constSound(m, 48000, 0.5)
	h := m.Play(snd)

	fill(m, 100)
	m.Stop(h)

	out := fill(m, 2200)
	first := out[0]
	if first <= 0 || first >= 0.5 {
		t.Fatalf("first fade frame = %v, want in (0, 0.5)", first)
	}
	if out[200] >= first {
		t.Errorf("fade not decaying: frame 100 = %v, frame 0 = %v", out[200], first)
	}

	last := out[len(out)-2]
	if last != 0 {
		t.Errorf("fade tail = %v after 2200 frames, want exact 0", last)
	}
}

// Deferred start: 0.5 s of pre-roll at 48 kHz is 24000 frames of silence
// from this voice, then the signal starts.
func TestFill_DeferredStart(t *testing.T) {
	t.Parallel()

	m := New()
	snd := constSound(m, 48000, 0.5)
	h := m.PlayDeferred(snd, 0.5)
	if h == 0 {
		t.Fatal("PlayDeferred() returned invalid handle")
	}

	out := fill(m, 25000)

	for i := 0; i < 23990; i++ {
		if out[i*2] != 0 {
			t.Fatalf("frame %d = %v during pre-roll, want 0", i, out[i*2])
		}
	}
	// Allow a few frames of float fuzz around the exact boundary.
	for i := 24010; i < 25000; i++ {
		if out[i*2] != 0.5 {
			t.Fatalf("frame %d = %v after pre-roll, want 0.5", i, out[i*2])
		}
	}
}

// Negative defer starts mid-sound.
func TestPlayDeferred_NegativeSkipsAhead(t *testing.T) {
	t.Parallel()

	m := New()
	snd := constSound(m, 48000, 0.5)
	h := m.PlayDeferred(snd, -0.25)
	if h == 0 {
		t.Fatal("PlayDeferred() returned invalid handle")
	}

	got := m.PlayPos(h)
	if math.Abs(float64(got)-0.25) > 1e-6 {
		t.Errorf("PlayPos() = %v, want 0.25", got)
	}
}

// Voice pool exhaustion: slot 0 is reserved, so 127 voices fit.
func TestPlay_PoolExhaustion(t *testing.T) {
	t.Parallel()

	m := New()
	snd := constSound(m, 100, 0.1)

	handles := make([]Handle, 0, MaxVoices-1)
	for i := 0; i < MaxVoices-1; i++ {
		h := m.Play(snd)
		if h == 0 {
			t.Fatalf("Play() #%d returned invalid handle", i)
		}
		handles = append(handles, h)
	}

	if h := m.Play(snd); h != 0 {
		t.Fatalf("Play() #%d = %#x, want 0 (pool full)", MaxVoices-1, h)
	}

	seen := make(map[Handle]bool)
	for _, h := range handles {
		if seen[h] {
			t.Fatalf("duplicate handle %#x", h)
		}
		seen[h] = true
	}

	// Stopping one voice frees its slot after the fade (seeded from the
	// sample value 0.1, it runs out in under 500 samples). Drain and
	// re-play.
	m.Stop(handles[0])
	fill(m, 4096)

	h := m.Play(snd)
	if h == 0 {
		t.Fatal("Play() after Stop still failed")
	}
	if h == handles[0] {
		t.Error("slot reuse returned the same handle, want a new version")
	}
}

// Handle versions advance by the table size, so a reused slot produces a
// distinct handle with the same low bits.
func TestHandle_VersionAdvance(t *testing.T) {
	t.Parallel()

	m := New()
	snd := constSound(m, 100, 0.1)

	h1 := m.Play(snd)
	m.Stop(h1)
	fill(m, 4096) // drain the fade so the slot empties

	h2 := m.Play(snd)
	if uint32(h1)&voiceMask != uint32(h2)&voiceMask {
		t.Fatalf("expected same slot, got %#x and %#x", h1, h2)
	}
	if h1 == h2 {
		t.Fatal("reused slot produced identical handle")
	}
	if uint32(h2)-uint32(h1) != 2*MaxVoices {
		t.Errorf("version advanced by %d, want %d", uint32(h2)-uint32(h1), 2*MaxVoices)
	}
}

func TestTransportCounters(t *testing.T) {
	t.Parallel()

	m := New()
	fill(m, 1000)

	if got := m.TotalSamplesPlayed(); got != 1000 {
		t.Errorf("TotalSamplesPlayed() = %d, want 1000", got)
	}
	want := 1000.0 / SampleRate
	if got := m.TotalTimePlayed(); math.Abs(got-want) > 1e-9 {
		t.Errorf("TotalTimePlayed() = %v, want %v", got, want)
	}

	fill(m, 100)
	if got := m.TotalSamplesPlayed(); got != 1100 {
		t.Errorf("TotalSamplesPlayed() = %d after second fill, want 1100", got)
	}
}

// Master volume reaches running voices through the per-sample smoothing:
// 1/512 per sample, so a 1.0 -> 0.5 drop completes within 256 samples.
func TestSetMasterVolume_Smoothed(t *testing.T) {
	t.Parallel()

	m := New()
	snd := constSound(m, 48000, 1.0)
	m.Play(snd)

	fill(m, 16)
	m.SetMasterVolume(0.5)

	out := fill(m, 512)
	// The gain is applied before it is nudged, so the very first frame is
	// still at the old level, and the ramp down is gradual.
	if out[0] != 1.0 {
		t.Errorf("first frame after volume change = %v, want 1.0", out[0])
	}
	if out[2] >= out[0] || out[2] < 0.9 {
		t.Errorf("second frame = %v, want a gentle ramp below 1.0", out[2])
	}
	last := out[len(out)-2]
	if last != 0.5 {
		t.Errorf("steady state = %v, want exact 0.5 after snap", last)
	}
}

func TestOutputSampleRate(t *testing.T) {
	t.Parallel()

	m := New()
	if got := m.OutputSampleRate(); got != 48000 {
		t.Errorf("OutputSampleRate() = %d, want 48000", got)
	}
}

func TestManualCriticalSection(t *testing.T) {
	t.Parallel()

	m := New()

	m.Lock()
	m.Lock() // double enter is a no-op, must not deadlock
	m.Unlock()
	m.Unlock() // double leave is a no-op

	// The mixer still works afterwards.
	snd := constSound(m, 100, 0.1)
	if h := m.Play(snd); h == 0 {
		t.Fatal("Play() failed after manual critical section")
	}
}
