// Package wire owns the payload sub-encoding: standard protocol-buffer
// wire format, varint tags and length-prefixed values. It carries no
// knowledge of any particular message schema.
package wire

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

var (
	ErrTruncated    = errors.New("wire: truncated field")
	ErrTypeMismatch = errors.New("wire: field wire type mismatch")
)

// Number aliases protowire.Number so schema packages do not import
// protowire directly.
type Number = protowire.Number

func AppendBytes(b []byte, num Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func AppendString(b []byte, num Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func AppendUint32(b []byte, num Number, v uint32) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func AppendUint64(b []byte, num Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func AppendInt64(b []byte, num Number, v int64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func AppendBool(b []byte, num Number, v bool) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	if v {
		return protowire.AppendVarint(b, 1)
	}
	return protowire.AppendVarint(b, 0)
}

// AppendMessage embeds an already-encoded sub-message as one
// length-prefixed field.
func AppendMessage(b []byte, num Number, msg []byte) []byte {
	return AppendBytes(b, num, msg)
}

// Decoder walks the fields of one encoded payload in order. Unknown field
// numbers are the caller's business: the decoder parses every field and the
// caller skips the numbers it does not recognize, which makes forward
// compatibility the default.
type Decoder struct {
	buf []byte
	off int

	num Number
	typ protowire.Type
	val []byte // BytesType value, aliasing buf
	uv  uint64 // varint / fixed scalar value

	err error
}

func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

// Next advances to the next field. It returns false at end of payload or on
// a malformed field; the two are told apart by Err.
func (d *Decoder) Next() bool {
	if d.err != nil || d.off >= len(d.buf) {
		return false
	}
	num, typ, n := protowire.ConsumeTag(d.buf[d.off:])
	if n < 0 {
		d.err = ErrTruncated
		return false
	}
	d.off += n
	d.num, d.typ, d.val = num, typ, nil

	rest := d.buf[d.off:]
	switch typ {
	case protowire.VarintType:
		v, n := protowire.ConsumeVarint(rest)
		if n < 0 {
			d.err = ErrTruncated
			return false
		}
		d.uv = v
		d.off += n
	case protowire.Fixed32Type:
		v, n := protowire.ConsumeFixed32(rest)
		if n < 0 {
			d.err = ErrTruncated
			return false
		}
		d.uv = uint64(v)
		d.off += n
	case protowire.Fixed64Type:
		v, n := protowire.ConsumeFixed64(rest)
		if n < 0 {
			d.err = ErrTruncated
			return false
		}
		d.uv = v
		d.off += n
	case protowire.BytesType:
		v, n := protowire.ConsumeBytes(rest)
		if n < 0 {
			d.err = ErrTruncated
			return false
		}
		d.val = v
		d.off += n
	default:
		// groups and future wire types: consume and leave unreadable
		n := protowire.ConsumeFieldValue(num, typ, rest)
		if n < 0 {
			d.err = ErrTruncated
			return false
		}
		d.off += n
	}
	return true
}

func (d *Decoder) Err() error { return d.err }

// Field reports the field number of the current field.
func (d *Decoder) Field() Number { return d.num }

// Bytes returns a copy of the current length-prefixed value. The copy keeps
// decoded messages independent of the frame buffer they arrived in.
func (d *Decoder) Bytes() ([]byte, error) {
	if d.typ != protowire.BytesType {
		return nil, fmt.Errorf("%w: field %d", ErrTypeMismatch, d.num)
	}
	out := make([]byte, len(d.val))
	copy(out, d.val)
	return out, nil
}

// RawBytes returns the current length-prefixed value without copying. Only
// for immediate sub-message decoding.
func (d *Decoder) RawBytes() ([]byte, error) {
	if d.typ != protowire.BytesType {
		return nil, fmt.Errorf("%w: field %d", ErrTypeMismatch, d.num)
	}
	return d.val, nil
}

func (d *Decoder) String() (string, error) {
	if d.typ != protowire.BytesType {
		return "", fmt.Errorf("%w: field %d", ErrTypeMismatch, d.num)
	}
	return string(d.val), nil
}

func (d *Decoder) Uint64() (uint64, error) {
	if d.typ != protowire.VarintType {
		return 0, fmt.Errorf("%w: field %d", ErrTypeMismatch, d.num)
	}
	return d.uv, nil
}

func (d *Decoder) Uint32() (uint32, error) {
	v, err := d.Uint64()
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func (d *Decoder) Int64() (int64, error) {
	v, err := d.Uint64()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

func (d *Decoder) Bool() (bool, error) {
	v, err := d.Uint64()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}
