package rpb

import (
	"errors"
	"fmt"

	"riak/internal/wire"
)

// SchemaError reports a well-framed payload that violates a message schema:
// a required field missing, a wire type that contradicts the schema, or a
// truncated field body. Framing was intact, so the session stays usable.
type SchemaError struct {
	Code   byte
	Field  wire.Number
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == 0 {
		return fmt.Sprintf("rpb: message_code=%d: %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("rpb: message_code=%d field=%d: %s", e.Code, e.Field, e.Reason)
}

// RequestError reports a caller-supplied request that violates a schema
// precondition. It is raised before any bytes are written.
type RequestError struct {
	Op     string
	Reason string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("rpb: invalid %s request: %s", e.Op, e.Reason)
}

func schemaErr(code byte, field wire.Number, reason string) *SchemaError {
	return &SchemaError{Code: code, Field: field, Reason: reason}
}

// finish folds a decoder's terminal state into the schema error taxonomy.
func finish(d *wire.Decoder, code byte) error {
	if err := d.Err(); err != nil {
		return schemaErr(code, 0, err.Error())
	}
	return nil
}

func fieldErr(code byte, field wire.Number, err error) error {
	var se *SchemaError
	if errors.As(err, &se) {
		return err
	}
	return schemaErr(code, field, err.Error())
}

// ServerErrorPayload is the decoded body of an MsgErrorResp frame.
//
//	RpbErrorResp: errmsg=1 bytes, errcode=2 uint32
type ServerErrorPayload struct {
	Code    uint32
	Message string
}

func DecodeErrorResp(payload []byte) (ServerErrorPayload, error) {
	var (
		out        ServerErrorPayload
		haveErrmsg bool
	)
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.String()
			if err != nil {
				return out, fieldErr(MsgErrorResp, 1, err)
			}
			out.Message = v
			haveErrmsg = true
		case 2:
			v, err := d.Uint32()
			if err != nil {
				return out, fieldErr(MsgErrorResp, 2, err)
			}
			out.Code = v
		}
	}
	if err := finish(d, MsgErrorResp); err != nil {
		return out, err
	}
	if !haveErrmsg {
		return out, schemaErr(MsgErrorResp, 1, "missing required errmsg")
	}
	return out, nil
}

// EncodeErrorResp renders an error frame payload. The client never sends
// one; mock servers in tests do.
func EncodeErrorResp(p ServerErrorPayload) []byte {
	var b []byte
	b = wire.AppendString(b, 1, p.Message)
	b = wire.AppendUint32(b, 2, p.Code)
	return b
}
