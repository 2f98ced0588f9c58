// Package frame owns the outermost wire unit: a 4-byte big-endian length,
// one message-code byte, then the raw payload. The length covers the code
// byte plus the payload, never itself.
package frame

import (
	"encoding/binary"
	"errors"
	"io"
)

const headerLen = 4

var (
	ErrShortHeader     = errors.New("frame: short length header")
	ErrShortBody       = errors.New("frame: stream closed mid-frame")
	ErrZeroLength      = errors.New("frame: declared length omits message code")
	ErrMessageTooLarge = errors.New("frame: message exceeds configured limit")
)

// Limits constrains frame decode/encode memory use. A zero MaxMessageBytes
// means no cap; the codec itself never imposes one.
type Limits struct {
	MaxMessageBytes uint32
}

// Read consumes exactly one frame from r and returns its message code and
// payload. Any short read is a framing failure: once a frame boundary is
// lost the stream cannot be resynchronized.
func Read(r io.Reader, limits Limits) (byte, []byte, error) {
	var head [headerLen]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, nil, ErrShortHeader
		}
		return 0, nil, err
	}

	length := binary.BigEndian.Uint32(head[:])
	if length == 0 {
		return 0, nil, ErrZeroLength
	}
	if limits.MaxMessageBytes != 0 && length > limits.MaxMessageBytes {
		return 0, nil, ErrMessageTooLarge
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, nil, ErrShortBody
		}
		return 0, nil, err
	}

	return body[0], body[1:], nil
}

// Write emits one frame for code and payload. The payload may be empty; the
// frame then carries only the code byte.
func Write(w io.Writer, code byte, payload []byte, limits Limits) error {
	length := uint32(len(payload)) + 1
	if limits.MaxMessageBytes != 0 && length > limits.MaxMessageBytes {
		return ErrMessageTooLarge
	}

	buf := make([]byte, headerLen+1, headerLen+1+len(payload))
	binary.BigEndian.PutUint32(buf[:headerLen], length)
	buf[headerLen] = code
	buf = append(buf, payload...)

	// One write call per frame keeps the code byte and payload contiguous
	// on the wire even through non-buffering transports.
	if _, err := w.Write(buf); err != nil {
		return err
	}
	return nil
}

// Append encodes one frame into b without touching a transport. Used by
// tests and by callers that assemble multi-frame scripts.
func Append(b []byte, code byte, payload []byte) []byte {
	var head [headerLen]byte
	binary.BigEndian.PutUint32(head[:], uint32(len(payload))+1)
	b = append(b, head[:]...)
	b = append(b, code)
	return append(b, payload...)
}
