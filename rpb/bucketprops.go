package rpb

import (
	"riak/bucket"
	"riak/internal/wire"
)

// Bucket property schemas:
//
//	RpbBucketProps: n_val=1, allow_mult=2, last_write_wins=3,
//	  chash_keyfun=8 RpbModFun, old_vclock=10, young_vclock=11,
//	  big_vclock=12, small_vclock=13, pr=14, r=15, w=16, pw=17, dw=18,
//	  rw=19, basic_quorum=20, notfound_ok=21, backend=22, search=23,
//	  search_index=25, datatype=26, consistent=27, write_once=28,
//	  hll_precision=29, ttl=30
//	RpbModFun: module=1 (required), function=2 (required)
//	RpbGetBucketReq: bucket=1 (required), type=2
//	RpbGetBucketResp: props=1 (required)
//	RpbSetBucketReq: bucket=1 (required), props=2 (required), type=3
//	RpbResetBucketReq: bucket=1 (required), type=2
//	RpbGetBucketTypeReq: type=1 (required)
//	RpbSetBucketTypeReq: type=1 (required), props=2 (required)
//
// Property numbers this client does not model are skipped on decode and
// passed through from Props.Raw on encode.

func encodeModFun(mf bucket.ModFun) []byte {
	var b []byte
	b = wire.AppendString(b, 1, mf.Module)
	b = wire.AppendString(b, 2, mf.Function)
	return b
}

func decodeModFun(payload []byte, code byte) (bucket.ModFun, error) {
	var (
		out          bucket.ModFun
		haveModule   bool
		haveFunction bool
	)
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.String()
			if err != nil {
				return out, fieldErr(code, 1, err)
			}
			out.Module = v
			haveModule = true
		case 2:
			v, err := d.String()
			if err != nil {
				return out, fieldErr(code, 2, err)
			}
			out.Function = v
			haveFunction = true
		}
	}
	if err := finish(d, code); err != nil {
		return out, err
	}
	if !haveModule || !haveFunction {
		return out, schemaErr(code, 1, "modfun missing required module/function")
	}
	return out, nil
}

func encodeBucketProps(p *bucket.Props) []byte {
	var b []byte
	if p.NVal != nil {
		b = wire.AppendUint32(b, 1, *p.NVal)
	}
	if p.AllowMult != nil {
		b = wire.AppendBool(b, 2, *p.AllowMult)
	}
	if p.LastWriteWins != nil {
		b = wire.AppendBool(b, 3, *p.LastWriteWins)
	}
	if p.ChashKeyfun != nil {
		b = wire.AppendMessage(b, 8, encodeModFun(*p.ChashKeyfun))
	}
	if p.OldVclock != nil {
		b = wire.AppendUint32(b, 10, *p.OldVclock)
	}
	if p.YoungVclock != nil {
		b = wire.AppendUint32(b, 11, *p.YoungVclock)
	}
	if p.BigVclock != nil {
		b = wire.AppendUint32(b, 12, *p.BigVclock)
	}
	if p.SmallVclock != nil {
		b = wire.AppendUint32(b, 13, *p.SmallVclock)
	}
	if p.PR != nil {
		b = wire.AppendUint32(b, 14, *p.PR)
	}
	if p.R != nil {
		b = wire.AppendUint32(b, 15, *p.R)
	}
	if p.W != nil {
		b = wire.AppendUint32(b, 16, *p.W)
	}
	if p.PW != nil {
		b = wire.AppendUint32(b, 17, *p.PW)
	}
	if p.DW != nil {
		b = wire.AppendUint32(b, 18, *p.DW)
	}
	if p.RW != nil {
		b = wire.AppendUint32(b, 19, *p.RW)
	}
	if p.BasicQuorum != nil {
		b = wire.AppendBool(b, 20, *p.BasicQuorum)
	}
	if p.NotfoundOK != nil {
		b = wire.AppendBool(b, 21, *p.NotfoundOK)
	}
	if p.Backend != "" {
		b = wire.AppendString(b, 22, p.Backend)
	}
	if p.Search != nil {
		b = wire.AppendBool(b, 23, *p.Search)
	}
	if p.SearchIndex != "" {
		b = wire.AppendString(b, 25, p.SearchIndex)
	}
	if p.Datatype != "" {
		b = wire.AppendString(b, 26, p.Datatype)
	}
	if p.Consistent != nil {
		b = wire.AppendBool(b, 27, *p.Consistent)
	}
	if p.WriteOnce != nil {
		b = wire.AppendBool(b, 28, *p.WriteOnce)
	}
	if p.HLLPrecision != nil {
		b = wire.AppendUint32(b, 29, *p.HLLPrecision)
	}
	if p.TTL != nil {
		b = wire.AppendUint32(b, 30, *p.TTL)
	}
	return append(b, p.Raw...)
}

func decodeBucketProps(payload []byte, code byte) (*bucket.Props, error) {
	out := &bucket.Props{}
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(code, 1, err)
			}
			out.NVal = &v
		case 2:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(code, 2, err)
			}
			out.AllowMult = &v
		case 3:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(code, 3, err)
			}
			out.LastWriteWins = &v
		case 8:
			raw, err := d.RawBytes()
			if err != nil {
				return nil, fieldErr(code, 8, err)
			}
			mf, err := decodeModFun(raw, code)
			if err != nil {
				return nil, err
			}
			out.ChashKeyfun = &mf
		case 10:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(code, 10, err)
			}
			out.OldVclock = &v
		case 11:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(code, 11, err)
			}
			out.YoungVclock = &v
		case 12:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(code, 12, err)
			}
			out.BigVclock = &v
		case 13:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(code, 13, err)
			}
			out.SmallVclock = &v
		case 14:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(code, 14, err)
			}
			out.PR = &v
		case 15:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(code, 15, err)
			}
			out.R = &v
		case 16:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(code, 16, err)
			}
			out.W = &v
		case 17:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(code, 17, err)
			}
			out.PW = &v
		case 18:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(code, 18, err)
			}
			out.DW = &v
		case 19:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(code, 19, err)
			}
			out.RW = &v
		case 20:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(code, 20, err)
			}
			out.BasicQuorum = &v
		case 21:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(code, 21, err)
			}
			out.NotfoundOK = &v
		case 22:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(code, 22, err)
			}
			out.Backend = v
		case 23:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(code, 23, err)
			}
			out.Search = &v
		case 25:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(code, 25, err)
			}
			out.SearchIndex = v
		case 26:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(code, 26, err)
			}
			out.Datatype = v
		case 27:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(code, 27, err)
			}
			out.Consistent = &v
		case 28:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(code, 28, err)
			}
			out.WriteOnce = &v
		case 29:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(code, 29, err)
			}
			out.HLLPrecision = &v
		case 30:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(code, 30, err)
			}
			out.TTL = &v
		}
	}
	if err := finish(d, code); err != nil {
		return nil, err
	}
	return out, nil
}

func EncodeGetBucketReq(bucketName, bucketType string) ([]byte, error) {
	if bucketName == "" {
		return nil, &RequestError{Op: "get-bucket-props", Reason: "missing bucket"}
	}
	var b []byte
	b = wire.AppendString(b, 1, bucketName)
	if bucketType != "" {
		b = wire.AppendString(b, 2, bucketType)
	}
	return b, nil
}

func DecodeGetBucketResp(payload []byte) (*bucket.Props, error) {
	var props *bucket.Props
	d := wire.NewDecoder(payload)
	for d.Next() {
		if d.Field() == 1 {
			raw, err := d.RawBytes()
			if err != nil {
				return nil, fieldErr(MsgGetBucketResp, 1, err)
			}
			p, err := decodeBucketProps(raw, MsgGetBucketResp)
			if err != nil {
				return nil, err
			}
			props = p
		}
	}
	if err := finish(d, MsgGetBucketResp); err != nil {
		return nil, err
	}
	if props == nil {
		return nil, schemaErr(MsgGetBucketResp, 1, "missing required props")
	}
	return props, nil
}

// EncodeGetBucketResp renders a property response; used by test servers.
func EncodeGetBucketResp(props *bucket.Props) []byte {
	return wire.AppendMessage(nil, 1, encodeBucketProps(props))
}

func EncodeSetBucketReq(bucketName, bucketType string, props *bucket.Props) ([]byte, error) {
	if bucketName == "" {
		return nil, &RequestError{Op: "set-bucket-props", Reason: "missing bucket"}
	}
	if props == nil {
		return nil, &RequestError{Op: "set-bucket-props", Reason: "missing props"}
	}
	var b []byte
	b = wire.AppendString(b, 1, bucketName)
	b = wire.AppendMessage(b, 2, encodeBucketProps(props))
	if bucketType != "" {
		b = wire.AppendString(b, 3, bucketType)
	}
	return b, nil
}

func EncodeResetBucketReq(bucketName, bucketType string) ([]byte, error) {
	if bucketName == "" {
		return nil, &RequestError{Op: "reset-bucket", Reason: "missing bucket"}
	}
	var b []byte
	b = wire.AppendString(b, 1, bucketName)
	if bucketType != "" {
		b = wire.AppendString(b, 2, bucketType)
	}
	return b, nil
}

func EncodeGetBucketTypeReq(bucketType string) ([]byte, error) {
	if bucketType == "" {
		return nil, &RequestError{Op: "get-bucket-type-props", Reason: "missing bucket type"}
	}
	return wire.AppendString(nil, 1, bucketType), nil
}

func EncodeSetBucketTypeReq(bucketType string, props *bucket.Props) ([]byte, error) {
	if bucketType == "" {
		return nil, &RequestError{Op: "set-bucket-type-props", Reason: "missing bucket type"}
	}
	if props == nil {
		return nil, &RequestError{Op: "set-bucket-type-props", Reason: "missing props"}
	}
	var b []byte
	b = wire.AppendString(b, 1, bucketType)
	b = wire.AppendMessage(b, 2, encodeBucketProps(props))
	return b, nil
}
