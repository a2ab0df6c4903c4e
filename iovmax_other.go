// Copyright (c) 2026 Meng Huang (mhboy@outlook.com)
// This package is licensed under a MIT license that can be found in the LICENSE file.

//go:build !linux && !darwin
// +build !linux,!darwin

package writev

// No sysconf here; assume the POSIX minimum.
func sysconfIovMax() (int64, error) {
	return posixIovMax, nil
}
