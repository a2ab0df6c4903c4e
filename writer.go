// Copyright (c) 2020 Meng Huang (mhboy@outlook.com)
// This package is licensed under a MIT license that can be found in the LICENSE file.

// Package writev implements batched vectored writing.
package writev

import (
	"io"
	"sync"

	"github.com/hslam/atomic"
	"github.com/hslam/buffer"
	"github.com/pkg/errors"
)

const maximumSegmentSize = 65536

var (
	buffers = buffer.NewBuffers(1024)
)

// ErrWriterClosed is returned by the Writer's Write methods after a call to Close.
var ErrWriterClosed = errors.New("Writer closed")

// Flusher is the interface that wraps the basic Flush method.
//
// Flush writes any buffered data to the underlying io.Writer.
type Flusher interface {
	Flush() (err error)
}

// Writer implements batch writing for an io.Writer object.
//
// Small writes are copied into a buffer of size bytes. A write that does not
// fit, and every call to Writev, is sent together with the buffered bytes in
// one vectored write.
type Writer struct {
	lock    sync.Mutex
	sink    Sink
	shared  bool
	mss     int
	buffer  []byte
	size    int
	vectors [][]byte
	err     error
	closed  *atomic.Int32
}

// NewWriter returns a new batch Writer with a buffer of size bytes.
// If shared is true the buffer is taken from a shared pool when data is
// buffered and returned to it after every flush.
func NewWriter(writer io.Writer, size int, shared bool) *Writer {
	if size < 1 {
		size = maximumSegmentSize
	}
	var buffer []byte
	if !shared {
		buffer = make([]byte, size)
	}
	return &Writer{
		sink:   NewSink(writer),
		shared: shared,
		mss:    size,
		buffer: buffer,
		closed: atomic.NewInt32(0),
	}
}

// Write writes the contents of p into the buffer or the underlying io.Writer.
// It returns the number of bytes written.
func (w *Writer) Write(p []byte) (n int, err error) {
	if w.closed.Load() > 0 {
		return 0, ErrWriterClosed
	}
	length := len(p)
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.closed.Load() > 0 {
		return 0, ErrWriterClosed
	}
	if w.err != nil {
		return 0, w.err
	}
	if w.size+length > w.mss {
		err = w.flush(p)
	} else if length > 0 {
		if w.shared && len(w.buffer) == 0 {
			w.buffer = buffers.AssignPool(w.mss).GetBuffer(w.mss)
		}
		copy(w.buffer[w.size:], p)
		w.size += length
	}
	if err == nil {
		n = length
	}
	return n, err
}

// WriteString is like Write but writes the contents of s.
func (w *Writer) WriteString(s string) (n int, err error) {
	return w.Write([]byte(s))
}

// Writev writes the buffered data followed by each of vectors in a single
// vectored write. The vectors are not retained after Writev returns.
func (w *Writer) Writev(vectors [][]byte) (n int, err error) {
	if w.closed.Load() > 0 {
		return 0, ErrWriterClosed
	}
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.closed.Load() > 0 {
		return 0, ErrWriterClosed
	}
	if w.err != nil {
		return 0, w.err
	}
	if err = w.flush(vectors...); err != nil {
		return 0, err
	}
	return batchLen(vectors), nil
}

// Buffered returns the number of bytes that have been written into the buffer.
func (w *Writer) Buffered() int {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.size
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.err != nil {
		return w.err
	}
	return w.flush()
}

// flush writes the buffer and then extra. The first error is kept and
// returned by every later call.
func (w *Writer) flush(extra ...[]byte) (err error) {
	vectors := w.vectors[:0]
	if w.size > 0 {
		vectors = append(vectors, w.buffer[:w.size])
	}
	vectors = append(vectors, extra...)
	if len(vectors) > 0 {
		err = WriteAllVectored(w.sink, vectors)
	}
	for i := range vectors {
		vectors[i] = nil
	}
	w.vectors = vectors[:0]
	if w.shared && len(w.buffer) > 0 {
		buffers.AssignPool(w.mss).PutBuffer(w.buffer)
		w.buffer = nil
	}
	w.size = 0
	if err != nil {
		w.err = err
	}
	return err
}

// Close flushes the writer, but do not close the underlying io.Writer
func (w *Writer) Close() (err error) {
	if !w.closed.CompareAndSwap(0, 1) {
		return nil
	}
	return w.Flush()
}
