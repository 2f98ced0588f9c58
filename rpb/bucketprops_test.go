package rpb

import (
	"errors"
	"testing"

	"riak/bucket"
	"riak/internal/wire"
)

func TestBucketPropsRoundTrip(t *testing.T) {
	props := &bucket.Props{
		NVal:          bucket.Uint32(3),
		AllowMult:     bucket.Bool(true),
		LastWriteWins: bucket.Bool(false),
		ChashKeyfun:   &bucket.ModFun{Module: "riak_core_util", Function: "chash_std_keyfun"},
		R:             bucket.Uint32(2),
		W:             bucket.Uint32(2),
		Backend:       "bitcask",
		SearchIndex:   "users_idx",
		HLLPrecision:  bucket.Uint32(14),
	}
	resp := EncodeGetBucketResp(props)
	got, err := DecodeGetBucketResp(resp)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.NVal == nil || *got.NVal != 3 {
		t.Fatalf("n_val: %v", got.NVal)
	}
	if got.AllowMult == nil || !*got.AllowMult {
		t.Fatal("allow_mult lost")
	}
	if got.LastWriteWins == nil || *got.LastWriteWins {
		t.Fatal("last_write_wins=false must survive as false, not absent")
	}
	if got.ChashKeyfun == nil || got.ChashKeyfun.Function != "chash_std_keyfun" {
		t.Fatalf("chash_keyfun: %+v", got.ChashKeyfun)
	}
	if got.Backend != "bitcask" || got.SearchIndex != "users_idx" {
		t.Fatalf("strings: %+v", got)
	}
	if got.HLLPrecision == nil || *got.HLLPrecision != 14 {
		t.Fatalf("hll_precision: %v", got.HLLPrecision)
	}
	if got.TTL != nil {
		t.Fatalf("absent ttl decoded as %v", *got.TTL)
	}
}

func TestBucketPropsUnknownPropertySkipped(t *testing.T) {
	inner := wire.AppendUint32(nil, 1, 3)
	// repl enum and precommit hooks are real properties this client
	// does not model
	inner = wire.AppendUint64(inner, 24, 1)
	inner = wire.AppendBytes(inner, 4, []byte{0x0a})
	payload := wire.AppendMessage(nil, 1, inner)

	got, err := DecodeGetBucketResp(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.NVal == nil || *got.NVal != 3 {
		t.Fatalf("n_val lost next to unknown properties: %v", got.NVal)
	}
}

func TestBucketPropsRawPassthrough(t *testing.T) {
	raw := wire.AppendUint64(nil, 24, 2)
	payload, err := EncodeSetBucketReq("b", "", &bucket.Props{
		NVal: bucket.Uint32(5),
		Raw:  raw,
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// walk the request and pull the props sub-message back out
	var propsRaw []byte
	d := wire.NewDecoder(payload)
	for d.Next() {
		if d.Field() == 2 {
			propsRaw, err = d.RawBytes()
			if err != nil {
				t.Fatalf("props field: %v", err)
			}
		}
	}
	if err := d.Err(); err != nil {
		t.Fatalf("walk: %v", err)
	}

	var sawRepl bool
	pd := wire.NewDecoder(propsRaw)
	for pd.Next() {
		if pd.Field() == 24 {
			v, err := pd.Uint64()
			if err != nil {
				t.Fatalf("repl: %v", err)
			}
			if v != 2 {
				t.Fatalf("repl: got %d, want 2", v)
			}
			sawRepl = true
		}
	}
	if pd.Err() != nil {
		t.Fatalf("props walk: %v", pd.Err())
	}
	if !sawRepl {
		t.Fatal("opaque property dropped on encode")
	}
}

func TestGetBucketRespMissingProps(t *testing.T) {
	_, err := DecodeGetBucketResp(nil)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want SchemaError", err)
	}
	if se.Code != MsgGetBucketResp {
		t.Fatalf("wrong code: %+v", se)
	}
}

func TestBucketRequestValidation(t *testing.T) {
	if _, err := EncodeGetBucketReq("", ""); err == nil {
		t.Fatal("get-bucket without bucket accepted")
	}
	if _, err := EncodeSetBucketReq("b", "", nil); err == nil {
		t.Fatal("set-bucket without props accepted")
	}
	if _, err := EncodeGetBucketTypeReq(""); err == nil {
		t.Fatal("get-bucket-type without type accepted")
	}
	if _, err := EncodeSetBucketTypeReq("t", nil); err == nil {
		t.Fatal("set-bucket-type without props accepted")
	}
	if _, err := EncodeResetBucketReq("", ""); err == nil {
		t.Fatal("reset-bucket without bucket accepted")
	}
}
