package handler

import (
	"bytes"
	"sync"
)

const (
	encodeBufferSize = 512
	// history and snapshot payloads can grow large; keep those out of the pool
	maxPooledBuffer = 64 << 10
)

var encodeBuffers = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, encodeBufferSize)) },
}

func getBuffer() *bytes.Buffer {
	return encodeBuffers.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	buf.Reset()
	encodeBuffers.Put(buf)
}
