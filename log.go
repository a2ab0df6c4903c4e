// Copyright (c) 2026 Meng Huang (mhboy@outlook.com)
// This package is licensed under a MIT license that can be found in the LICENSE file.

package writev

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var currentLogger atomic.Value

func init() {
	SetLogger(nil)
}

func logger() *logrus.Entry {
	return currentLogger.Load().(*logrus.Entry)
}

// SetLogger replaces the logger used by the package. A nil entry restores
// the default. It is safe to call while writes are in progress.
func SetLogger(l *logrus.Entry) {
	if l == nil {
		l = logrus.WithField("module", "writev")
	}
	currentLogger.Store(l)
}
