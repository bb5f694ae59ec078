// SPDX-License-Identifier: EPL-2.0

// Package backend opens the playback device.
//
// It is a small adapter around github.com/ebitengine/oto/v3: oto pulls
// little-endian float32 bytes from an io.Reader, and the Device translates
// those pulls into FillFunc calls on a float32 frame buffer. The rest of the
// runtime never sees oto.
//
//	dev, err := backend.Open(mixer.SampleRate, mixer.Channels, m.Fill)
//	if err != nil {
//	    // no audio device; the runtime stays silent
//	}
//	dev.Start()
//
// Device failures surface only here, at open time. Once the device runs, the
// fill callback is infallible by design.
package backend
