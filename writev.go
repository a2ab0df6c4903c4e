// Copyright (c) 2026 Meng Huang (mhboy@outlook.com)
// This package is licensed under a MIT license that can be found in the LICENSE file.

package writev

import (
	"io"

	"github.com/pkg/errors"
)

var (
	// ErrNoProgress is returned when a sink accepts zero bytes of a batch
	// that holds data.
	ErrNoProgress = errors.New("writev: write produced no progress")

	// ErrInvalidWrite is returned when a sink reports a byte count that is
	// negative or larger than what it was offered.
	ErrInvalidWrite = errors.New("writev: invalid write result")
)

// WriteAllVectored writes every byte of buffers, in order, to s.
//
// Buffers are offered to s in batches of at most IovMax. Interrupted writes
// are retried. If a write stops in the middle of a buffer, the rest of that
// buffer is written with s.WriteAll before the next batch.
//
// It returns nil only when all data was written. Neither buffers nor the
// slices it holds are modified, and no reference to them is kept.
func WriteAllVectored(s Sink, buffers [][]byte) error {
	return writeAllVectored(s, buffers, IovMax())
}

// WriteAllVectoredTo is shorthand for WriteAllVectored(NewSink(w), buffers).
func WriteAllVectoredTo(w io.Writer, buffers [][]byte) error {
	return WriteAllVectored(NewSink(w), buffers)
}

func writeAllVectored(s Sink, buffers [][]byte, ceiling int) error {
	for {
		for len(buffers) > 0 && len(buffers[0]) == 0 {
			buffers = buffers[1:]
		}
		if len(buffers) == 0 {
			return nil
		}
		batch := buffers
		if len(batch) > ceiling {
			batch = batch[:ceiling]
		}
		batch = batch[:len(batch):len(batch)]

		n, err := s.WriteVectored(batch)
		if err != nil && !isInterrupted(err) {
			return err
		}
		if n < 0 || n > batchLen(batch) {
			return ErrInvalidWrite
		}
		if n == 0 {
			if err != nil {
				continue
			}
			return ErrNoProgress
		}
		// An interrupted write may still report progress; keep it.

		for len(buffers) > 0 && len(buffers[0]) <= n {
			n -= len(buffers[0])
			buffers = buffers[1:]
		}
		if n > 0 {
			head := buffers[0]
			logger().Debugf("write stopped %d bytes into a %d byte buffer", n, len(head))
			if err := s.WriteAll(head[n:]); err != nil {
				return err
			}
			buffers = buffers[1:]
		}
	}
}

func batchLen(batch [][]byte) (n int) {
	for _, b := range batch {
		n += len(b)
	}
	return n
}
