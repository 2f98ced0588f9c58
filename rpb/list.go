package rpb

import (
	"riak/internal/wire"
)

// Listing schemas. Both listings stream: the server answers with any number
// of partial pages flagged done=false and one final page flagged done=true.
//
//	RpbListBucketsReq: timeout=1, stream=2, type=3
//	RpbListBucketsResp: buckets=1 repeated bytes, done=2
//	RpbListKeysReq: bucket=1 (required), timeout=2, type=3
//	RpbListKeysResp: keys=1 repeated bytes, done=2

type ListBucketsReq struct {
	Timeout uint32
	Stream  bool
	Type    string
}

type ListBucketsPage struct {
	Buckets []string
	Done    bool
}

type ListKeysReq struct {
	Bucket  string
	Timeout uint32
	Type    string
}

type ListKeysPage struct {
	Keys [][]byte
	Done bool
}

func EncodeListBucketsReq(req *ListBucketsReq) []byte {
	var b []byte
	if req.Timeout != 0 {
		b = wire.AppendUint32(b, 1, req.Timeout)
	}
	if req.Stream {
		b = wire.AppendBool(b, 2, true)
	}
	if req.Type != "" {
		b = wire.AppendString(b, 3, req.Type)
	}
	return b
}

func DecodeListBucketsReq(payload []byte) (*ListBucketsReq, error) {
	out := &ListBucketsReq{}
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgListBucketsReq, 1, err)
			}
			out.Timeout = v
		case 2:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(MsgListBucketsReq, 2, err)
			}
			out.Stream = v
		case 3:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(MsgListBucketsReq, 3, err)
			}
			out.Type = v
		}
	}
	return out, finish(d, MsgListBucketsReq)
}

func EncodeListBucketsResp(page *ListBucketsPage) []byte {
	var b []byte
	for _, name := range page.Buckets {
		b = wire.AppendString(b, 1, name)
	}
	if page.Done {
		b = wire.AppendBool(b, 2, true)
	}
	return b
}

func DecodeListBucketsResp(payload []byte) (*ListBucketsPage, error) {
	out := &ListBucketsPage{}
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(MsgListBucketsResp, 1, err)
			}
			out.Buckets = append(out.Buckets, v)
		case 2:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(MsgListBucketsResp, 2, err)
			}
			out.Done = v
		}
	}
	return out, finish(d, MsgListBucketsResp)
}

func EncodeListKeysReq(req *ListKeysReq) ([]byte, error) {
	if req.Bucket == "" {
		return nil, &RequestError{Op: "list-keys", Reason: "missing bucket"}
	}
	var b []byte
	b = wire.AppendString(b, 1, req.Bucket)
	if req.Timeout != 0 {
		b = wire.AppendUint32(b, 2, req.Timeout)
	}
	if req.Type != "" {
		b = wire.AppendString(b, 3, req.Type)
	}
	return b, nil
}

func DecodeListKeysReq(payload []byte) (*ListKeysReq, error) {
	out := &ListKeysReq{}
	var haveBucket bool
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(MsgListKeysReq, 1, err)
			}
			out.Bucket = v
			haveBucket = true
		case 2:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgListKeysReq, 2, err)
			}
			out.Timeout = v
		case 3:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(MsgListKeysReq, 3, err)
			}
			out.Type = v
		}
	}
	if err := finish(d, MsgListKeysReq); err != nil {
		return nil, err
	}
	if !haveBucket {
		return nil, schemaErr(MsgListKeysReq, 1, "missing required bucket")
	}
	return out, nil
}

func EncodeListKeysResp(page *ListKeysPage) []byte {
	var b []byte
	for _, key := range page.Keys {
		b = wire.AppendBytes(b, 1, key)
	}
	if page.Done {
		b = wire.AppendBool(b, 2, true)
	}
	return b
}

func DecodeListKeysResp(payload []byte) (*ListKeysPage, error) {
	out := &ListKeysPage{}
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.Bytes()
			if err != nil {
				return nil, fieldErr(MsgListKeysResp, 1, err)
			}
			out.Keys = append(out.Keys, v)
		case 2:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(MsgListKeysResp, 2, err)
			}
			out.Done = v
		}
	}
	return out, finish(d, MsgListKeysResp)
}
