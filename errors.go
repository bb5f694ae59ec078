// SPDX-License-Identifier: EPL-2.0

package gamemix

import "errors"

var (
	ErrEmptyPath           = errors.New("file name is empty")
	ErrInvalidPath         = errors.New("absolute paths or access to the parent directory is prohibited")
	ErrUnknownFormat       = errors.New("unrecognized file format")
	ErrUnsupportedChannels = errors.New("only mono and stereo sounds are supported")
	ErrEmptyDecode         = errors.New("file decoded to zero samples")
)
