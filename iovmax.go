// Copyright (c) 2026 Meng Huang (mhboy@outlook.com)
// This package is licensed under a MIT license that can be found in the LICENSE file.

package writev

import (
	"math"
	"sync"

	"github.com/pkg/errors"
)

// posixIovMax is the smallest IOV_MAX POSIX allows. Most systems use 1024.
const posixIovMax = 16

var defaultOracle = NewOracle(sysconfIovMax)

// IovMax returns the maximum number of buffers the platform accepts in one
// vectored write. The value is probed on first use and cached for the
// lifetime of the process.
func IovMax() int {
	return defaultOracle.Ceiling()
}

// Oracle caches the result of a batch ceiling probe.
type Oracle struct {
	once  sync.Once
	probe func() (int64, error)
	value int
}

// NewOracle returns an Oracle that runs probe at most once.
func NewOracle(probe func() (int64, error)) *Oracle {
	return &Oracle{probe: probe}
}

// Ceiling returns the cached batch ceiling, running the probe on first use.
// The result is always at least 1.
func (o *Oracle) Ceiling() int {
	o.once.Do(func() {
		v, err := o.resolve()
		o.value = v
		if err != nil {
			if strictProbe {
				panic(err)
			}
			logger().WithError(err).Warnf("using %d buffers per vectored write", v)
		}
	})
	return o.value
}

func (o *Oracle) resolve() (int, error) {
	v, err := o.probe()
	if err != nil {
		return posixIovMax, errors.Wrap(err, "sysconf(_SC_IOV_MAX)")
	}
	if v < 1 || uint64(v) > math.MaxInt {
		return posixIovMax, errors.Errorf("sysconf(_SC_IOV_MAX): implausible value %d", v)
	}
	return int(v), nil
}
