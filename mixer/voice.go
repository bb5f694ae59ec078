// SPDX-License-Identifier: EPL-2.0

package mixer

// Per-sample gain smoothing step. Gains approach their target by at most
// this much per output sample, which keeps volume changes click free.
const gainStep = 1.0 / 512

// Stop-fade shaping: once a voice is stopped its last sample value decays as
// (v + trend) * fadeDecay per output sample until it falls under gainStep.
const (
	fadeDecay = 0.997
	fadeTrend = 1.0 / 10000
)

// voice is one slot of the playing-sound table.
type voice struct {
	snd *Sound

	pos      float64 // read cursor, in input frames
	startPos float64
	stopPos  float64

	pitch  float32
	volume float32
	pan    float32

	volumeL      float32
	volumeR      float32
	volumeTrendL float32
	volumeTrendR float32

	timeToStart float64 // remaining pre-roll, in seconds

	channels int
	version  uint32

	loop         bool
	stopMode     bool
	waitingStart bool
}

// isEmpty reports whether the slot can be handed out again.
func (v *voice) isEmpty() bool {
	return v.snd == nil && !v.stopMode && !v.waitingStart
}

// setStopMode begins the stop fade. The voice's handle is invalidated, the
// fade is seeded from the sample under the cursor, and the sound reference is
// dropped so the buffer can be freed safely afterwards. A voice that was
// still waiting to start simply becomes empty.
func (v *voice) setStopMode() {
	if v.snd == nil {
		v.waitingStart = false
		return
	}

	if v.stopMode {
		v.waitingStart = false
		return
	}

	v.version += MaxVoices

	if v.waitingStart {
		v.waitingStart = false
		v.snd = nil
		return
	}

	ip := int(v.pos)
	if v.channels == 1 {
		val := v.snd.data[ip]
		v.volumeL *= val
		v.volumeR *= val
	} else {
		v.volumeL *= v.snd.data[ip*2]
		v.volumeR *= v.snd.data[ip*2+1]
	}
	v.volumeTrendL = sign(v.volumeL) * -fadeTrend
	v.volumeTrendR = sign(v.volumeR) * -fadeTrend
	v.stopMode = true
	v.snd = nil
}

// mixTo adds count stereo frames of this voice into mix. invFrequency is
// 1/outputRate, bufferTime is count*invFrequency. masterVolume folds the
// mixer's master gain into the per-channel targets.
func (v *voice) mixTo(mix []float32, count int, invFrequency float64, bufferTime float64, masterVolume float32) {
	wishVolumeL := masterVolume * v.volume * min32(1.0+v.pan, 1.0)
	wishVolumeR := masterVolume * v.volume * min32(1.0-v.pan, 1.0)

	var sndData []float32
	if v.snd != nil {
		sndData = v.snd.data
	}
	if sndData == nil && !v.stopMode {
		return
	}

	advance := 1.0
	if v.snd != nil {
		advance = float64(v.snd.frequency) * invFrequency * float64(v.pitch)
	}

	// Fast path: steady gains, no loop or stop boundary inside this chunk.
	if !v.stopMode && !v.waitingStart && v.snd != nil &&
		v.volumeL > 0.0 && v.volumeR > 0.0 &&
		wishVolumeL == v.volumeL && wishVolumeR == v.volumeR &&
		v.pos+advance*float64(count) < v.stopPos {
		if v.channels == 1 {
			for i := 0; i < count; i++ {
				ip := int(v.pos)
				t := float32(v.pos - float64(ip))
				val := lerp(sndData[ip], sndData[ip+1], t)
				mix[i*2] += val * v.volumeL
				mix[i*2+1] += val * v.volumeR
				v.pos += advance
			}
		} else {
			for i := 0; i < count; i++ {
				ip := int(v.pos)
				t := float32(v.pos - float64(ip))
				vl := lerp(sndData[ip*2], sndData[ip*2+2], t)
				vr := lerp(sndData[ip*2+1], sndData[ip*2+2+1], t)
				mix[i*2] += vl * v.volumeL
				mix[i*2+1] += vr * v.volumeR
				v.pos += advance
			}
		}
		return
	}

	// A waiting voice whose pre-roll outlasts the whole chunk contributes
	// nothing and just consumes time.
	if v.waitingStart && v.timeToStart > bufferTime {
		v.timeToStart -= bufferTime
		return
	}

	if v.channels == 1 {
		for i := 0; i < count; i++ {
			if v.waitingStart {
				v.timeToStart -= invFrequency
				if v.timeToStart <= 0.0 {
					v.waitingStart = false
					v.pos = v.startPos
				}
			} else if !v.stopMode {
				ip := int(v.pos)
				t := float32(v.pos - float64(ip))
				val := lerp(sndData[ip], sndData[ip+1], t)

				mix[i*2] += val * v.volumeL
				mix[i*2+1] += val * v.volumeR

				v.volumeL = approach(v.volumeL, wishVolumeL)
				v.volumeR = approach(v.volumeR, wishVolumeR)

				v.pos += advance
				if v.pos >= v.stopPos {
					if v.loop {
						v.pos = v.startPos
					} else {
						v.pos = v.stopPos
						v.setStopMode()
					}
				}
			} else {
				if abs32(v.volumeL) <= gainStep {
					v.volumeL = 0.0
				} else {
					v.volumeL += v.volumeTrendL
					v.volumeL *= fadeDecay
				}

				if abs32(v.volumeR) <= gainStep {
					v.volumeR = 0.0
				} else {
					v.volumeR += v.volumeTrendR
					v.volumeR *= fadeDecay
				}

				if v.volumeR == 0.0 && v.volumeL == 0.0 {
					v.stopMode = false
					break
				}

				mix[i*2] += v.volumeL
				mix[i*2+1] += v.volumeR
			}
		}
	} else {
		for i := 0; i < count; i++ {
			if v.waitingStart {
				v.timeToStart -= invFrequency
				if v.timeToStart <= 0.0 {
					v.waitingStart = false
					v.pos = v.startPos
				}
			} else if !v.stopMode {
				ip := int(v.pos)
				t := float32(v.pos - float64(ip))
				vl := lerp(sndData[ip*2], sndData[ip*2+2], t)
				vr := lerp(sndData[ip*2+1], sndData[ip*2+2+1], t)

				mix[i*2] += vl * v.volumeL
				mix[i*2+1] += vr * v.volumeR

				v.volumeL = approach(v.volumeL, wishVolumeL)
				v.volumeR = approach(v.volumeR, wishVolumeR)

				v.pos += advance
				if v.pos >= v.stopPos {
					if v.loop {
						v.pos = v.startPos
					} else {
						v.pos = v.stopPos
						v.setStopMode()
					}
				}
			} else {
				if abs32(v.volumeL) <= gainStep {
					v.volumeL = 0.0
				} else {
					v.volumeL += v.volumeTrendL
					v.volumeL *= fadeDecay
				}

				if abs32(v.volumeR) <= gainStep {
					v.volumeR = 0.0
				} else {
					v.volumeR += v.volumeTrendR
					v.volumeR *= fadeDecay
				}

				if v.volumeR == 0.0 && v.volumeL == 0.0 {
					v.stopMode = false
					break
				}

				mix[i*2] += v.volumeL
				mix[i*2+1] += v.volumeR
			}
		}
	}
}

// approach nudges cur toward target by at most gainStep, snapping when the
// gap is within one step.
func approach(cur, target float32) float32 {
	if cur == target {
		return cur
	}
	if abs32(cur-target) <= gainStep {
		return target
	}
	if cur < target {
		return cur + gainStep
	}
	return cur - gainStep
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
