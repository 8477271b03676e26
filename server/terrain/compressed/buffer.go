// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import "io"

// maxRun is the longest run a single tuple can hold.
const maxRun = 256

// Buffer run length encodes bytes after dropping their least significant bits.
// Each tuple is 2 bytes: the value followed by count - 1.
type Buffer struct {
	buf       []byte
	off       int  // Read position (tuple start)
	read      int  // Bytes already read from the tuple at off
	precision uint // Significant bits kept per byte, 1-8
}

// NewBuffer creates a Buffer that keeps precision significant bits of each byte.
func NewBuffer(precision uint8) *Buffer {
	var buffer Buffer
	buffer.Reset(nil, precision)
	return &buffer
}

func (buffer *Buffer) Reset(buf []byte, precision uint8) {
	buffer.buf = buf
	buffer.off = 0
	buffer.read = 0
	buffer.precision = uint(clampPrecision(precision))
}

// round drops the bits below the buffer's precision.
func (buffer *Buffer) round(b byte) byte {
	return b &^ (0xff >> buffer.precision)
}

func (buffer *Buffer) writeByte(b byte) {
	buf := buffer.buf
	next := buffer.round(b)
	end := len(buf) - 2

	if end >= 0 && buf[end] == next && buf[end+1] < maxRun-1 {
		// Add 1 to count
		buf[end+1]++
	} else {
		// Start new tuple
		buf = append(buf, next, 0)
	}

	buffer.buf = buf
}

func (buffer *Buffer) Write(buf []byte) (int, error) {
	for _, b := range buf {
		buffer.writeByte(b)
	}
	return len(buf), nil
}

func (buffer *Buffer) readByte() (b byte, more bool) {
	b = buffer.buf[buffer.off]
	count := int(buffer.buf[buffer.off+1]) + 1

	buffer.read++
	if buffer.read == count {
		buffer.off += 2
		buffer.read = 0
	}

	return b, buffer.off+1 < len(buffer.buf)
}

func (buffer *Buffer) Read(buf []byte) (int, error) {
	more := buffer.off+1 < len(buffer.buf)
	i := 0

	for ; i < len(buf) && more; i++ {
		buf[i], more = buffer.readByte()
	}

	if i == 0 {
		return 0, io.EOF
	}

	return i, nil
}

// Grow makes space for about n elements
func (buffer *Buffer) Grow(n int) {
	compressed := n / 2
	if old := buffer.buf; cap(old)-len(old) < compressed {
		buf := make([]byte, len(old), len(old)+compressed)
		copy(buf, old)
		buffer.buf = buf
	}
}

// Buffer returns the encoded tuples that are not yet fully read.
func (buffer *Buffer) Buffer() []byte {
	return buffer.buf[buffer.off:]
}
