package rpb

import (
	"bytes"
	"errors"
	"testing"

	"riak/internal/wire"
	"riak/object"
)

func TestGetReqRoundTrip(t *testing.T) {
	req := &object.FetchRequest{
		Bucket:      "accounts",
		Key:         "alice",
		Type:        "strong",
		R:           object.Uint32(2),
		BasicQuorum: object.Bool(true),
		Head:        true,
		Timeout:     5000,
	}
	payload, err := EncodeGetReq(req)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeGetReq(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bucket != req.Bucket || got.Key != req.Key || got.Type != req.Type {
		t.Fatalf("identity fields changed: %+v", got)
	}
	if got.R == nil || *got.R != 2 {
		t.Fatalf("r: got %v, want 2", got.R)
	}
	if got.PR != nil {
		t.Fatalf("pr: absent field decoded as %v", *got.PR)
	}
	if got.BasicQuorum == nil || !*got.BasicQuorum {
		t.Fatal("basic_quorum lost")
	}
	if !got.Head || got.Timeout != 5000 {
		t.Fatalf("head/timeout: %+v", got)
	}
}

func TestGetReqMissingRequired(t *testing.T) {
	if _, err := EncodeGetReq(&object.FetchRequest{Key: "k"}); err == nil {
		t.Fatal("encode accepted request without bucket")
	}
	// a payload carrying only a key is not a valid get request
	payload := wire.AppendString(nil, 2, "k")
	_, err := DecodeGetReq(payload)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want SchemaError", err)
	}
	if se.Code != MsgGetReq || se.Field != 1 {
		t.Fatalf("wrong location: %+v", se)
	}
}

func TestGetRespSiblingsPreserved(t *testing.T) {
	resp := &object.FetchResponse{
		Content: []object.Content{
			{Value: []byte("first"), Vtag: "a"},
			{Value: []byte("second"), Vtag: "b"},
			{Value: []byte("third"), Vtag: "c"},
		},
		Vclock: []byte{0x01, 0x02},
	}
	got, err := DecodeGetResp(EncodeGetResp(resp))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Content) != 3 {
		t.Fatalf("sibling count: got %d, want 3", len(got.Content))
	}
	// arrival order is part of the contract
	for i, want := range []string{"first", "second", "third"} {
		if !bytes.Equal(got.Content[i].Value, []byte(want)) {
			t.Fatalf("sibling %d: got %q, want %q", i, got.Content[i].Value, want)
		}
	}
	if got.NotFound {
		t.Fatal("populated response marked not-found")
	}
}

func TestGetRespNotFound(t *testing.T) {
	got, err := DecodeGetResp(nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.NotFound {
		t.Fatal("empty response not marked not-found")
	}

	// a vclock with zero siblings is a present (tombstoned) key
	withVclock := wire.AppendBytes(nil, 2, []byte{0xaa})
	got, err = DecodeGetResp(withVclock)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.NotFound {
		t.Fatal("vclock-only response marked not-found")
	}
}

func TestGetRespIgnoresUnknownFields(t *testing.T) {
	payload := EncodeGetResp(&object.FetchResponse{
		Content: []object.Content{{Value: []byte("v")}},
		Vclock:  []byte{0x01},
	})
	payload = wire.AppendUint64(payload, 99, 7)
	payload = wire.AppendBytes(payload, 100, []byte("future"))

	got, err := DecodeGetResp(payload)
	if err != nil {
		t.Fatalf("decode with unknown fields: %v", err)
	}
	if len(got.Content) != 1 || !bytes.Equal(got.Content[0].Value, []byte("v")) {
		t.Fatalf("known fields lost: %+v", got)
	}
}

func TestPutReqRoundTrip(t *testing.T) {
	content := object.NewContent([]byte("This is a test!")).
		SetContentType("text/plain").
		AddUserMeta([]byte("origin"), []byte("unit"))
	req := &object.StoreRequest{
		Bucket:     "testbucket",
		Key:        "testkey",
		Content:    *content,
		Vclock:     []byte{0xde, 0xad},
		W:          object.Uint32(3),
		ReturnBody: true,
	}
	payload, err := EncodePutReq(req)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodePutReq(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bucket != "testbucket" || got.Key != "testkey" {
		t.Fatalf("identity fields: %+v", got)
	}
	if !bytes.Equal(got.Content.Value, []byte("This is a test!")) {
		t.Fatalf("value: %q", got.Content.Value)
	}
	if got.Content.ContentType != "text/plain" {
		t.Fatalf("content_type: %q", got.Content.ContentType)
	}
	if len(got.Content.UserMeta) != 1 || !bytes.Equal(got.Content.UserMeta[0].Key, []byte("origin")) {
		t.Fatalf("usermeta: %+v", got.Content.UserMeta)
	}
	if !bytes.Equal(got.Vclock, []byte{0xde, 0xad}) {
		t.Fatalf("vclock not byte-identical: %x", got.Vclock)
	}
	if got.W == nil || *got.W != 3 || !got.ReturnBody {
		t.Fatalf("options: %+v", got)
	}
}

func TestPutReqMissingContent(t *testing.T) {
	_, err := EncodePutReq(&object.StoreRequest{Bucket: "b"})
	var re *RequestError
	if !errors.As(err, &re) {
		t.Fatalf("got %v, want RequestError", err)
	}
}

func TestPutRespServerAssignedKey(t *testing.T) {
	payload := EncodePutResp(&object.StoreResponse{Key: "generated-key"})
	got, err := DecodePutResp(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Key != "generated-key" {
		t.Fatalf("key: %q", got.Key)
	}
	if len(got.Content) != 0 || got.Vclock != nil {
		t.Fatalf("body came back uninvited: %+v", got)
	}
}

func TestDelReqRoundTrip(t *testing.T) {
	req := &object.DeleteRequest{
		Bucket: "b",
		Key:    "k",
		Vclock: []byte{0x09},
		RW:     object.Uint32(1),
	}
	payload, err := EncodeDelReq(req)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeDelReq(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bucket != "b" || got.Key != "k" {
		t.Fatalf("identity fields: %+v", got)
	}
	if got.RW == nil || *got.RW != 1 || !bytes.Equal(got.Vclock, []byte{0x09}) {
		t.Fatalf("options: %+v", got)
	}
}

func TestContentTruncatedField(t *testing.T) {
	good := EncodeGetResp(&object.FetchResponse{
		Content: []object.Content{{Value: []byte("abcdef")}},
		Vclock:  []byte{0x01},
	})
	_, err := DecodeGetResp(good[:len(good)-2])
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want SchemaError", err)
	}
}

func TestErrorRespRoundTrip(t *testing.T) {
	payload := EncodeErrorResp(ServerErrorPayload{Code: 1, Message: "overload"})
	got, err := DecodeErrorResp(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Code != 1 || got.Message != "overload" {
		t.Fatalf("payload: %+v", got)
	}
	if _, err := DecodeErrorResp(nil); err == nil {
		t.Fatal("error response without errmsg accepted")
	}
}
