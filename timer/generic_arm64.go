// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package timer

const hasGeneric = true

// cntvct reads the virtual count register. Implemented in generic_arm64.s.
func cntvct() uint64

// cntfrq reads the counter frequency register. Implemented in generic_arm64.s.
func cntfrq() uint64
