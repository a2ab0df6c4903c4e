// Copyright (c) 2023 Meng Huang (mhboy@outlook.com)
// This package is licensed under a MIT license that can be found in the LICENSE file.

//go:build !linux
// +build !linux

package writev

import (
	"io"
)

const writevSupported = false

func newRawSink(w io.Writer) (Sink, bool) {
	return nil, false
}
