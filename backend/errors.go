// SPDX-License-Identifier: EPL-2.0

package backend

import "errors"

var (
	ErrNilFill = errors.New("fill function must not be nil")
)
