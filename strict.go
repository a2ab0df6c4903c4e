// Copyright (c) 2026 Meng Huang (mhboy@outlook.com)
// This package is licensed under a MIT license that can be found in the LICENSE file.

//go:build !writevdebug
// +build !writevdebug

package writev

// strictProbe makes a failed IOV_MAX probe panic instead of falling back.
// Build with -tags writevdebug to enable it.
const strictProbe = false
