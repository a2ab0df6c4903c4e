// Copyright (c) 2026 Meng Huang (mhboy@outlook.com)
// This package is licensed under a MIT license that can be found in the LICENSE file.

package writev

import (
	"io"
	"net"
	"syscall"

	"github.com/pkg/errors"
)

// Sink is the destination of a vectored write.
//
// Both methods must report an interrupted system call with an error that
// matches syscall.EINTR.
type Sink interface {
	// WriteVectored writes the concatenation of buffers, up to IovMax of
	// them, in a single operation where possible. It returns the number of
	// bytes written, which may be fewer than offered.
	WriteVectored(buffers [][]byte) (n int, err error)

	// WriteAll writes all of p or returns an error.
	WriteAll(p []byte) error
}

// NewSink returns a Sink that writes to w.
//
// Writers that already implement Sink are returned as is. Files, pipes and
// sockets go straight to writev(2) where the platform supports it. Any other
// writer receives the buffers through net.Buffers.
func NewSink(w io.Writer) Sink {
	if s, ok := w.(Sink); ok {
		return s
	}
	if s, ok := newRawSink(w); ok {
		return s
	}
	return &writerSink{w: w}
}

type writerSink struct {
	w       io.Writer
	scratch net.Buffers
}

func (s *writerSink) WriteVectored(buffers [][]byte) (n int, err error) {
	// WriteTo consumes the slice it is called on; hand it a copy of the
	// headers so the caller's buffers stay intact.
	bufs := append(s.scratch[:0], buffers...)
	s.scratch = bufs[:0]
	written, err := bufs.WriteTo(s.w)
	scratch := s.scratch[:len(buffers)]
	for i := range scratch {
		scratch[i] = nil
	}
	return int(written), err
}

func (s *writerSink) WriteAll(p []byte) error {
	return writeFull(s.w, p)
}

// writeFull writes p to w, retrying interrupted writes.
func writeFull(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if n > 0 {
			if n > len(p) {
				return ErrInvalidWrite
			}
			p = p[n:]
		}
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			return err
		}
		if n == 0 {
			return ErrNoProgress
		}
	}
	return nil
}

func isInterrupted(err error) bool {
	return errors.Is(err, syscall.EINTR)
}
