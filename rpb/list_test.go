package rpb

import (
	"bytes"
	"errors"
	"testing"
)

func TestListKeysRoundTrip(t *testing.T) {
	payload, err := EncodeListKeysReq(&ListKeysReq{Bucket: "b", Timeout: 1500})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	req, err := DecodeListKeysReq(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.Bucket != "b" || req.Timeout != 1500 {
		t.Fatalf("request: %+v", req)
	}

	page := &ListKeysPage{Keys: [][]byte{[]byte("k1"), []byte("k2")}, Done: false}
	got, err := DecodeListKeysResp(EncodeListKeysResp(page))
	if err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(got.Keys) != 2 || !bytes.Equal(got.Keys[0], []byte("k1")) {
		t.Fatalf("keys: %+v", got.Keys)
	}
	if got.Done {
		t.Fatal("partial page flagged done")
	}
}

func TestListKeysReqRequiresBucket(t *testing.T) {
	_, err := EncodeListKeysReq(&ListKeysReq{})
	var re *RequestError
	if !errors.As(err, &re) {
		t.Fatalf("got %v, want RequestError", err)
	}
	_, err = DecodeListKeysReq(nil)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want SchemaError", err)
	}
}

func TestListBucketsRoundTrip(t *testing.T) {
	payload := EncodeListBucketsReq(&ListBucketsReq{Stream: true, Timeout: 900})
	req, err := DecodeListBucketsReq(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !req.Stream || req.Timeout != 900 {
		t.Fatalf("request: %+v", req)
	}

	page := &ListBucketsPage{Buckets: []string{"a", "b"}, Done: true}
	got, err := DecodeListBucketsResp(EncodeListBucketsResp(page))
	if err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(got.Buckets) != 2 || got.Buckets[1] != "b" {
		t.Fatalf("buckets: %+v", got.Buckets)
	}
	if !got.Done {
		t.Fatal("final page not flagged done")
	}
}

func TestListRespEmptyPage(t *testing.T) {
	// a page may carry zero entries and still advance the stream
	got, err := DecodeListKeysResp(EncodeListKeysResp(&ListKeysPage{Done: true}))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Keys) != 0 || !got.Done {
		t.Fatalf("page: %+v", got)
	}
}
