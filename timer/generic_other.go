// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

//go:build !arm64

package timer

const hasGeneric = false

func cntvct() uint64 { panic("timer: no generic timer") }
func cntfrq() uint64 { return 0 }
