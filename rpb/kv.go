package rpb

import (
	"riak/internal/wire"
	"riak/object"
)

// KV operation schemas:
//
//	RpbGetReq: bucket=1 (required), key=2 (required), r=3, pr=4,
//	  basic_quorum=5, notfound_ok=6, if_modified=7 bytes, head=8,
//	  deletedvclock=9, timeout=10, sloppy_quorum=11, n_val=12, type=13
//	RpbGetResp: content=1 repeated RpbContent, vclock=2, unchanged=3
//	RpbPutReq: bucket=1 (required), key=2, vclock=3, content=4 (required),
//	  w=5, dw=6, return_body=7, pw=8, if_not_modified=9, if_none_match=10,
//	  return_head=11, timeout=12, asis=13, sloppy_quorum=14, n_val=15,
//	  type=16
//	RpbPutResp: content=1 repeated RpbContent, vclock=2, key=3
//	RpbDelReq: bucket=1 (required), key=2 (required), rw=3, vclock=4, r=5,
//	  w=6, pr=7, pw=8, dw=9, timeout=10, sloppy_quorum=11, n_val=12,
//	  type=13
//	RpbDelResp: empty

func EncodeGetReq(req *object.FetchRequest) ([]byte, error) {
	if req.Bucket == "" {
		return nil, &RequestError{Op: "get", Reason: "missing bucket"}
	}
	if req.Key == "" {
		return nil, &RequestError{Op: "get", Reason: "missing key"}
	}
	var b []byte
	b = wire.AppendString(b, 1, req.Bucket)
	b = wire.AppendString(b, 2, req.Key)
	if req.R != nil {
		b = wire.AppendUint32(b, 3, *req.R)
	}
	if req.PR != nil {
		b = wire.AppendUint32(b, 4, *req.PR)
	}
	if req.BasicQuorum != nil {
		b = wire.AppendBool(b, 5, *req.BasicQuorum)
	}
	if req.NotfoundOK != nil {
		b = wire.AppendBool(b, 6, *req.NotfoundOK)
	}
	if len(req.IfModified) > 0 {
		b = wire.AppendBytes(b, 7, req.IfModified)
	}
	if req.Head {
		b = wire.AppendBool(b, 8, true)
	}
	if req.DeletedVclock {
		b = wire.AppendBool(b, 9, true)
	}
	if req.Timeout != 0 {
		b = wire.AppendUint32(b, 10, req.Timeout)
	}
	if req.SloppyQuorum != nil {
		b = wire.AppendBool(b, 11, *req.SloppyQuorum)
	}
	if req.NVal != nil {
		b = wire.AppendUint32(b, 12, *req.NVal)
	}
	if req.Type != "" {
		b = wire.AppendString(b, 13, req.Type)
	}
	return b, nil
}

func DecodeGetReq(payload []byte) (*object.FetchRequest, error) {
	out := &object.FetchRequest{}
	var haveBucket, haveKey bool
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(MsgGetReq, 1, err)
			}
			out.Bucket = v
			haveBucket = true
		case 2:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(MsgGetReq, 2, err)
			}
			out.Key = v
			haveKey = true
		case 3:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgGetReq, 3, err)
			}
			out.R = &v
		case 4:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgGetReq, 4, err)
			}
			out.PR = &v
		case 5:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(MsgGetReq, 5, err)
			}
			out.BasicQuorum = &v
		case 6:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(MsgGetReq, 6, err)
			}
			out.NotfoundOK = &v
		case 7:
			v, err := d.Bytes()
			if err != nil {
				return nil, fieldErr(MsgGetReq, 7, err)
			}
			out.IfModified = v
		case 8:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(MsgGetReq, 8, err)
			}
			out.Head = v
		case 9:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(MsgGetReq, 9, err)
			}
			out.DeletedVclock = v
		case 10:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgGetReq, 10, err)
			}
			out.Timeout = v
		case 11:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(MsgGetReq, 11, err)
			}
			out.SloppyQuorum = &v
		case 12:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgGetReq, 12, err)
			}
			out.NVal = &v
		case 13:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(MsgGetReq, 13, err)
			}
			out.Type = v
		}
	}
	if err := finish(d, MsgGetReq); err != nil {
		return nil, err
	}
	if !haveBucket {
		return nil, schemaErr(MsgGetReq, 1, "missing required bucket")
	}
	if !haveKey {
		return nil, schemaErr(MsgGetReq, 2, "missing required key")
	}
	return out, nil
}

func EncodeGetResp(resp *object.FetchResponse) []byte {
	var b []byte
	for _, c := range resp.Content {
		b = wire.AppendMessage(b, 1, encodeContent(c))
	}
	if len(resp.Vclock) > 0 {
		b = wire.AppendBytes(b, 2, resp.Vclock)
	}
	if resp.Unchanged != nil {
		b = wire.AppendBool(b, 3, *resp.Unchanged)
	}
	return b
}

func DecodeGetResp(payload []byte) (*object.FetchResponse, error) {
	out := &object.FetchResponse{}
	var haveVclock bool
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			raw, err := d.RawBytes()
			if err != nil {
				return nil, fieldErr(MsgGetResp, 1, err)
			}
			c, err := decodeContent(raw, MsgGetResp)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, c)
		case 2:
			v, err := d.Bytes()
			if err != nil {
				return nil, fieldErr(MsgGetResp, 2, err)
			}
			out.Vclock = v
			haveVclock = true
		case 3:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(MsgGetResp, 3, err)
			}
			out.Unchanged = &v
		}
	}
	if err := finish(d, MsgGetResp); err != nil {
		return nil, err
	}
	// a response with neither siblings nor a causal token means the key
	// does not exist; an empty sibling set under a vclock does not
	out.NotFound = len(out.Content) == 0 && !haveVclock
	return out, nil
}

func EncodePutReq(req *object.StoreRequest) ([]byte, error) {
	if req.Bucket == "" {
		return nil, &RequestError{Op: "put", Reason: "missing bucket"}
	}
	if len(req.Content.Value) == 0 {
		return nil, &RequestError{Op: "put", Reason: "missing content value"}
	}
	var b []byte
	b = wire.AppendString(b, 1, req.Bucket)
	if req.Key != "" {
		b = wire.AppendString(b, 2, req.Key)
	}
	if len(req.Vclock) > 0 {
		b = wire.AppendBytes(b, 3, req.Vclock)
	}
	b = wire.AppendMessage(b, 4, encodeContent(req.Content))
	if req.W != nil {
		b = wire.AppendUint32(b, 5, *req.W)
	}
	if req.DW != nil {
		b = wire.AppendUint32(b, 6, *req.DW)
	}
	if req.ReturnBody {
		b = wire.AppendBool(b, 7, true)
	}
	if req.PW != nil {
		b = wire.AppendUint32(b, 8, *req.PW)
	}
	if req.IfNotModified {
		b = wire.AppendBool(b, 9, true)
	}
	if req.IfNoneMatch {
		b = wire.AppendBool(b, 10, true)
	}
	if req.ReturnHead {
		b = wire.AppendBool(b, 11, true)
	}
	if req.Timeout != 0 {
		b = wire.AppendUint32(b, 12, req.Timeout)
	}
	if req.Asis {
		b = wire.AppendBool(b, 13, true)
	}
	if req.SloppyQuorum != nil {
		b = wire.AppendBool(b, 14, *req.SloppyQuorum)
	}
	if req.NVal != nil {
		b = wire.AppendUint32(b, 15, *req.NVal)
	}
	if req.Type != "" {
		b = wire.AppendString(b, 16, req.Type)
	}
	return b, nil
}

func DecodePutReq(payload []byte) (*object.StoreRequest, error) {
	out := &object.StoreRequest{}
	var haveBucket, haveContent bool
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(MsgPutReq, 1, err)
			}
			out.Bucket = v
			haveBucket = true
		case 2:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(MsgPutReq, 2, err)
			}
			out.Key = v
		case 3:
			v, err := d.Bytes()
			if err != nil {
				return nil, fieldErr(MsgPutReq, 3, err)
			}
			out.Vclock = v
		case 4:
			raw, err := d.RawBytes()
			if err != nil {
				return nil, fieldErr(MsgPutReq, 4, err)
			}
			c, err := decodeContent(raw, MsgPutReq)
			if err != nil {
				return nil, err
			}
			out.Content = c
			haveContent = true
		case 5:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgPutReq, 5, err)
			}
			out.W = &v
		case 6:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgPutReq, 6, err)
			}
			out.DW = &v
		case 7:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(MsgPutReq, 7, err)
			}
			out.ReturnBody = v
		case 8:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgPutReq, 8, err)
			}
			out.PW = &v
		case 9:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(MsgPutReq, 9, err)
			}
			out.IfNotModified = v
		case 10:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(MsgPutReq, 10, err)
			}
			out.IfNoneMatch = v
		case 11:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(MsgPutReq, 11, err)
			}
			out.ReturnHead = v
		case 12:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgPutReq, 12, err)
			}
			out.Timeout = v
		case 13:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(MsgPutReq, 13, err)
			}
			out.Asis = v
		case 14:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(MsgPutReq, 14, err)
			}
			out.SloppyQuorum = &v
		case 15:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgPutReq, 15, err)
			}
			out.NVal = &v
		case 16:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(MsgPutReq, 16, err)
			}
			out.Type = v
		}
	}
	if err := finish(d, MsgPutReq); err != nil {
		return nil, err
	}
	if !haveBucket {
		return nil, schemaErr(MsgPutReq, 1, "missing required bucket")
	}
	if !haveContent {
		return nil, schemaErr(MsgPutReq, 4, "missing required content")
	}
	return out, nil
}

func EncodePutResp(resp *object.StoreResponse) []byte {
	var b []byte
	for _, c := range resp.Content {
		b = wire.AppendMessage(b, 1, encodeContent(c))
	}
	if len(resp.Vclock) > 0 {
		b = wire.AppendBytes(b, 2, resp.Vclock)
	}
	if resp.Key != "" {
		b = wire.AppendString(b, 3, resp.Key)
	}
	return b
}

func DecodePutResp(payload []byte) (*object.StoreResponse, error) {
	out := &object.StoreResponse{}
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			raw, err := d.RawBytes()
			if err != nil {
				return nil, fieldErr(MsgPutResp, 1, err)
			}
			c, err := decodeContent(raw, MsgPutResp)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, c)
		case 2:
			v, err := d.Bytes()
			if err != nil {
				return nil, fieldErr(MsgPutResp, 2, err)
			}
			out.Vclock = v
		case 3:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(MsgPutResp, 3, err)
			}
			out.Key = v
		}
	}
	if err := finish(d, MsgPutResp); err != nil {
		return nil, err
	}
	return out, nil
}

func EncodeDelReq(req *object.DeleteRequest) ([]byte, error) {
	if req.Bucket == "" {
		return nil, &RequestError{Op: "delete", Reason: "missing bucket"}
	}
	if req.Key == "" {
		return nil, &RequestError{Op: "delete", Reason: "missing key"}
	}
	var b []byte
	b = wire.AppendString(b, 1, req.Bucket)
	b = wire.AppendString(b, 2, req.Key)
	if req.RW != nil {
		b = wire.AppendUint32(b, 3, *req.RW)
	}
	if len(req.Vclock) > 0 {
		b = wire.AppendBytes(b, 4, req.Vclock)
	}
	if req.R != nil {
		b = wire.AppendUint32(b, 5, *req.R)
	}
	if req.W != nil {
		b = wire.AppendUint32(b, 6, *req.W)
	}
	if req.PR != nil {
		b = wire.AppendUint32(b, 7, *req.PR)
	}
	if req.PW != nil {
		b = wire.AppendUint32(b, 8, *req.PW)
	}
	if req.DW != nil {
		b = wire.AppendUint32(b, 9, *req.DW)
	}
	if req.Timeout != 0 {
		b = wire.AppendUint32(b, 10, req.Timeout)
	}
	if req.SloppyQuorum != nil {
		b = wire.AppendBool(b, 11, *req.SloppyQuorum)
	}
	if req.NVal != nil {
		b = wire.AppendUint32(b, 12, *req.NVal)
	}
	if req.Type != "" {
		b = wire.AppendString(b, 13, req.Type)
	}
	return b, nil
}

func DecodeDelReq(payload []byte) (*object.DeleteRequest, error) {
	out := &object.DeleteRequest{}
	var haveBucket, haveKey bool
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(MsgDelReq, 1, err)
			}
			out.Bucket = v
			haveBucket = true
		case 2:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(MsgDelReq, 2, err)
			}
			out.Key = v
			haveKey = true
		case 3:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgDelReq, 3, err)
			}
			out.RW = &v
		case 4:
			v, err := d.Bytes()
			if err != nil {
				return nil, fieldErr(MsgDelReq, 4, err)
			}
			out.Vclock = v
		case 5:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgDelReq, 5, err)
			}
			out.R = &v
		case 6:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgDelReq, 6, err)
			}
			out.W = &v
		case 7:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgDelReq, 7, err)
			}
			out.PR = &v
		case 8:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgDelReq, 8, err)
			}
			out.PW = &v
		case 9:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgDelReq, 9, err)
			}
			out.DW = &v
		case 10:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgDelReq, 10, err)
			}
			out.Timeout = v
		case 11:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(MsgDelReq, 11, err)
			}
			out.SloppyQuorum = &v
		case 12:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(MsgDelReq, 12, err)
			}
			out.NVal = &v
		case 13:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(MsgDelReq, 13, err)
			}
			out.Type = v
		}
	}
	if err := finish(d, MsgDelReq); err != nil {
		return nil, err
	}
	if !haveBucket {
		return nil, schemaErr(MsgDelReq, 1, "missing required bucket")
	}
	if !haveKey {
		return nil, schemaErr(MsgDelReq, 2, "missing required key")
	}
	return out, nil
}
