// SPDX-License-Identifier: EPL-2.0

package backend

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// FillFunc renders interleaved float32 output frames into out. It must fill
// the whole slice before returning; a silent renderer writes zeros.
type FillFunc func(out []float32)

// Device is a playback device on ebitengine/oto. The device pulls: oto reads
// little-endian float32 bytes from the Device, which renders them on demand
// through the FillFunc. That makes the fill callback run on oto's audio
// goroutine, the "device callback thread" of the runtime.
type Device struct {
	ctx    *oto.Context
	player *oto.Player
	fill   FillFunc
	buf    []float32

	mu      sync.Mutex
	started bool
}

// Open creates a playback device at the given rate and channel count and
// prepares a player that renders through fill. The device does not produce
// sound until Start is called.
func Open(sampleRate, channels int, fill FillFunc) (*Device, error) {
	if fill == nil {
		return nil, ErrNilFill
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening playback device: %w", err)
	}
	<-ready

	d := &Device{
		ctx:  ctx,
		fill: fill,
		buf:  make([]float32, 4096),
	}
	d.player = ctx.NewPlayer(d)
	return d, nil
}

// Read renders the next block of output. Called by oto's player goroutine.
func (d *Device) Read(p []byte) (int, error) {
	n := len(p) / 4
	if n == 0 {
		return 0, nil
	}

	if len(d.buf) < n {
		d.buf = make([]float32, n)
	}
	samples := d.buf[:n]

	d.fill(samples)

	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return n * 4, nil
}

// Start begins playback.
func (d *Device) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started && d.player != nil {
		d.player.Play()
		d.started = true
	}
}

// Stop halts playback. The device can not be restarted afterwards; open a
// new one instead.
func (d *Device) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started && d.player != nil {
		d.player.Close()
		d.player = nil
		d.started = false
	}
}

// Close stops playback and releases the player.
func (d *Device) Close() {
	d.Stop()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player != nil {
		d.player.Close()
		d.player = nil
	}
}
