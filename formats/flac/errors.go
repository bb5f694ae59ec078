// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrMissingStreamInfo = errors.New("flac stream has no StreamInfo block")
	ErrBadBitDepth       = errors.New("unsupported flac bit depth")
	ErrBadFrame          = errors.New("flac frame has no subframes")
)
