// Copyright (c) 2023 Meng Huang (mhboy@outlook.com)
// This package is licensed under a MIT license that can be found in the LICENSE file.

//go:build linux
// +build linux

package writev

import (
	"io"
	"syscall"

	"golang.org/x/sys/unix"
)

const writevSupported = true

// Writev system call writes iovcnt buffers of data described by iov to the file associated with the file descriptor fd ("gather output").
//
// It makes exactly one writev call. Callers are expected to keep len(buffers)
// at or below IovMax and to handle short writes.
func Writev(fd int, buffers [][]byte) (n int, err error) {
	n, err = unix.Writev(fd, buffers)
	if n < 0 {
		n = 0
	}
	return n, err
}

// fdSink writes through the descriptor behind a syscall.Conn, which covers
// *os.File and the socket types in package net.
type fdSink struct {
	w  io.Writer
	rc syscall.RawConn
}

func newRawSink(w io.Writer) (Sink, bool) {
	sc, ok := w.(syscall.Conn)
	if !ok {
		return nil, false
	}
	rc, err := sc.SyscallConn()
	if err != nil {
		return nil, false
	}
	return &fdSink{w: w, rc: rc}, true
}

func (s *fdSink) WriteVectored(buffers [][]byte) (n int, err error) {
	var writevErr error
	err = s.rc.Write(func(fd uintptr) bool {
		n, writevErr = Writev(int(fd), buffers)
		// Returning false parks the goroutine until the poller reports the
		// descriptor writable again.
		return writevErr != unix.EAGAIN
	})
	if err != nil {
		return n, err
	}
	return n, writevErr
}

func (s *fdSink) WriteAll(p []byte) error {
	return writeFull(s.w, p)
}
