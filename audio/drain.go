// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/gamemix/gamemix/utils"
)

// ReadAll drains src completely and returns the collected interleaved
// samples. bufSize is the read granularity in samples (4096 is a good
// default).
func ReadAll(src Source, bufSize int) ([]float32, error) {
	if bufSize < src.Channels() {
		bufSize = src.Channels()
	}

	var out []float32
	buf := make([]float32, bufSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}

		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("%w", err)
		}
	}
}

// ResampleToMono16 resamples src to targetRate, folds it down to mono and
// collects the result as 16-bit PCM. It is the conditioning pipeline for
// sinks that want fixed-rate mono integers, such as a WAV export.
//
// bufSize is the buffer granularity for the reads (e.g. 4096).
func ResampleToMono16(src Source, targetRate int, bufSize int) ([]int16, int, error) {
	mono := NewMonoMixer(NewResampler(src, targetRate))

	var pcm16 []int16
	buf := make([]float32, bufSize)

	for {
		n, err := mono.ReadSamples(buf)
		if n > 0 {
			for i := range n {
				pcm16 = append(pcm16, utils.Float32ToInt16(buf[i]))
			}
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, targetRate, fmt.Errorf("%w", err)
		}
	}

	return pcm16, targetRate, nil
}
