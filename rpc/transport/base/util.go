package base

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
)

const (
	// headerSize is the size of the frame header in bytes
	headerSize = 20
	// MaxFrameSize is the largest payload accepted by readFrame
	MaxFrameSize = 64 << 20
)

// ErrFrameTooLarge is returned by readFrame if the announced payload exceeds MaxFrameSize
var ErrFrameTooLarge = errors.New("frame too large")

// frameHeader holds the fixed size part of every frame
type frameHeader struct {
	method    uint32
	status    uint32
	requestID uint64
}

// writeFrame writes a frame to the connection with the format:
// - 4 bytes: method (uint32, big endian)
// - 4 bytes: status (uint32, big endian)
// - 8 bytes: requestID (uint64, big endian)
// - 4 bytes: data length (uint32, big endian)
// - N bytes: data payload
func writeFrame(conn io.Writer, h frameHeader, data []byte) error {
	if len(data) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(data))
	}

	header := make([]byte, headerSize)
	binary.BigEndian.PutUint32(header[:4], h.method)
	binary.BigEndian.PutUint32(header[4:8], h.status)
	binary.BigEndian.PutUint64(header[8:16], h.requestID)
	binary.BigEndian.PutUint32(header[16:20], uint32(len(data)))

	b := net.Buffers{header, data}
	_, err := b.WriteTo(conn)
	return err
}

// readFrame reads a frame from the connection using the provided buffer
// If the buffer is too small, it will allocate a new temporary buffer for the data
func readFrame(conn io.Reader, buf []byte) (frameHeader, []byte, error) {
	// Check if buffer is large enough for header
	if len(buf) < headerSize {
		buf = make([]byte, headerSize)
	}

	// Read header
	if _, err := io.ReadFull(conn, buf[:headerSize]); err != nil {
		return frameHeader{}, nil, err
	}

	// Parse header
	h := frameHeader{
		method:    binary.BigEndian.Uint32(buf[:4]),
		status:    binary.BigEndian.Uint32(buf[4:8]),
		requestID: binary.BigEndian.Uint64(buf[8:16]),
	}
	contentLength := binary.BigEndian.Uint32(buf[16:20])

	// If no data, return empty slice
	if contentLength == 0 {
		return h, []byte{}, nil
	}
	if contentLength > MaxFrameSize {
		return frameHeader{}, nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, contentLength)
	}

	// Check if buffer is large enough for data
	if len(buf) < int(contentLength) {
		buf = make([]byte, contentLength)
	}

	// Read data
	if _, err := io.ReadFull(conn, buf[:contentLength]); err != nil {
		return frameHeader{}, nil, err
	}

	return h, buf[:contentLength], nil
}
