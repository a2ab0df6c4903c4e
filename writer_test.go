package writev

import (
	"bytes"
	"io"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countPipe() (io.WriteCloser, func() int) {
	r, w := io.Pipe()
	size := 0
	done := make(chan struct{})
	go func() {
		buf := make([]byte, 65536)
		for {
			n, err := r.Read(buf)
			if err != nil {
				break
			}
			size += n
		}
		close(done)
	}()
	return w, func() int {
		<-done
		return size
	}
}

func TestWriterConcurrentWrites(t *testing.T) {
	testConcurrentWrites(0, false, t)
	testConcurrentWrites(0, true, t)
	testConcurrentWrites(1, true, t)
	testConcurrentWrites(512+1, true, t)
	testConcurrentWrites(512*4+1, false, t)
	testConcurrentWrites(512*32+1, true, t)
}

func testConcurrentWrites(mss int, shared bool, t *testing.T) {
	w, size := countPipe()
	writer := NewWriter(w, mss, shared)
	msg := make([]byte, 512)
	wg := sync.WaitGroup{}
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				writer.Write(msg)
			}
		}()
	}
	wg.Wait()
	require.NoError(t, writer.Close())
	require.NoError(t, writer.Close())
	w.Close()
	assert.Equal(t, 512*100*64, size(), "mss=%d shared=%t", mss, shared)
}

func TestWriterOrder(t *testing.T) {
	var out, want bytes.Buffer
	writer := NewWriter(&out, 64, true)
	for i := 0; i < 1000; i++ {
		line := strconv.Itoa(i) + "\n"
		if i%100 == 0 {
			line = string(bytes.Repeat([]byte{'#'}, 100)) + line
		}
		want.WriteString(line)
		n, err := writer.WriteString(line)
		require.NoError(t, err)
		require.Equal(t, len(line), n)
	}
	require.NoError(t, writer.Flush())
	assert.Equal(t, 0, writer.Buffered())
	assert.Equal(t, want.String(), out.String())
}

func TestWriterWritev(t *testing.T) {
	s := &fakeSink{}
	writer := NewWriter(s, 0, false)
	_, err := writer.Write([]byte("head "))
	require.NoError(t, err)
	assert.Equal(t, 5, writer.Buffered())
	assert.Equal(t, 0, s.calls)

	n, err := writer.Writev([][]byte{[]byte("one "), nil, []byte("two")})
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, "head one two", s.out.String())
	assert.Equal(t, 1, s.calls)
	assert.Equal(t, 0, writer.Buffered())
}

func TestWriterClosed(t *testing.T) {
	var out bytes.Buffer
	writer := NewWriter(&out, 0, false)
	_, err := writer.Write([]byte("pending"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	assert.Equal(t, "pending", out.String())

	_, err = writer.Write([]byte("late"))
	require.ErrorIs(t, err, ErrWriterClosed)
	_, err = writer.Writev([][]byte{[]byte("late")})
	require.ErrorIs(t, err, ErrWriterClosed)
}

func TestWriterStickyError(t *testing.T) {
	s := &fakeSink{failAt: 1, failErr: io.ErrClosedPipe}
	writer := NewWriter(s, 4, false)
	_, err := writer.Write([]byte("overflow"))
	require.ErrorIs(t, err, io.ErrClosedPipe)
	_, err = writer.Write([]byte("x"))
	require.ErrorIs(t, err, io.ErrClosedPipe)
	require.ErrorIs(t, writer.Flush(), io.ErrClosedPipe)
	assert.Equal(t, 1, s.calls)
}

func TestWriterWriteDuringClose(t *testing.T) {
	var out bytes.Buffer
	writer := NewWriter(&out, 0, false)
	writer.lock.Lock()
	result := make(chan error, 1)
	go func() {
		_, err := writer.Write([]byte("late"))
		result <- err
	}()
	time.Sleep(10 * time.Millisecond)
	closed := make(chan error, 1)
	go func() {
		closed <- writer.Close()
	}()
	time.Sleep(10 * time.Millisecond)
	writer.lock.Unlock()

	require.NoError(t, <-closed)
	require.ErrorIs(t, <-result, ErrWriterClosed)
	assert.Equal(t, 0, writer.Buffered())
	assert.Equal(t, "", out.String())
}
