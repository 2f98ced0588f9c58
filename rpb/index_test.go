package rpb

import (
	"bytes"
	"errors"
	"testing"

	"riak/object"
)

func TestIndexReqExactRoundTrip(t *testing.T) {
	req := &IndexRequest{
		Bucket: "users",
		Index:  "email_bin",
		Exact:  true,
		Key:    []byte("a@example.com"),
	}
	payload, err := EncodeIndexReq(req)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeIndexReq(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Exact || got.Index != "email_bin" || !bytes.Equal(got.Key, req.Key) {
		t.Fatalf("request: %+v", got)
	}
}

func TestIndexReqRangeRoundTrip(t *testing.T) {
	req := &IndexRequest{
		Bucket:      "users",
		Index:       "age_int",
		RangeMin:    []byte("18"),
		RangeMax:    []byte("65"),
		ReturnTerms: true,
		MaxResults:  object.Uint32(100),
	}
	payload, err := EncodeIndexReq(req)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeIndexReq(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Exact {
		t.Fatal("range query decoded as exact")
	}
	if !bytes.Equal(got.RangeMin, []byte("18")) || !bytes.Equal(got.RangeMax, []byte("65")) {
		t.Fatalf("bounds: %+v", got)
	}
	if !got.ReturnTerms || got.MaxResults == nil || *got.MaxResults != 100 {
		t.Fatalf("options: %+v", got)
	}
}

func TestIndexReqValidation(t *testing.T) {
	cases := []struct {
		name string
		req  *IndexRequest
	}{
		{"no bucket", &IndexRequest{Index: "i", Exact: true, Key: []byte("k")}},
		{"no index", &IndexRequest{Bucket: "b", Exact: true, Key: []byte("k")}},
		{"exact without key", &IndexRequest{Bucket: "b", Index: "i", Exact: true}},
		{"range without bounds", &IndexRequest{Bucket: "b", Index: "i", RangeMin: []byte("0")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EncodeIndexReq(tc.req)
			var re *RequestError
			if !errors.As(err, &re) {
				t.Fatalf("got %v, want RequestError", err)
			}
		})
	}
}

func TestIndexRespRoundTrip(t *testing.T) {
	resp := &IndexResponse{
		Keys: [][]byte{[]byte("k1"), []byte("k2")},
		Results: []object.Pair{
			{Key: []byte("25"), Value: []byte("k3")},
		},
		Continuation: []byte("next-page"),
	}
	got, err := DecodeIndexResp(EncodeIndexResp(resp))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Keys) != 2 || len(got.Results) != 1 {
		t.Fatalf("matches: %+v", got)
	}
	if !bytes.Equal(got.Results[0].Key, []byte("25")) {
		t.Fatalf("term: %q", got.Results[0].Key)
	}
	if !bytes.Equal(got.Continuation, []byte("next-page")) {
		t.Fatalf("continuation: %q", got.Continuation)
	}
}

func TestSearchIndexRoundTrip(t *testing.T) {
	indexes := []SearchIndex{
		{Name: "users_idx", Schema: "_yz_default", NVal: object.Uint32(3)},
		{Name: "orders_idx"},
	}
	got, err := DecodeSearchIndexGetResp(EncodeSearchIndexGetResp(indexes))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].Name != "users_idx" || got[0].Schema != "_yz_default" {
		t.Fatalf("indexes: %+v", got)
	}
	if got[1].NVal != nil {
		t.Fatalf("absent n_val decoded as %v", *got[1].NVal)
	}
}

func TestSearchSchemaRoundTrip(t *testing.T) {
	payload := EncodeSearchSchemaGetResp(&SearchSchema{
		Name:    "users_schema",
		Content: []byte("<schema/>"),
	})
	got, err := DecodeSearchSchemaGetResp(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "users_schema" || !bytes.Equal(got.Content, []byte("<schema/>")) {
		t.Fatalf("schema: %+v", got)
	}
}

func TestPreflistRoundTrip(t *testing.T) {
	items := []PreflistItem{
		{Partition: 1415829711164312202, Node: "riak@node1", Primary: true},
		{Partition: 0, Node: "riak@node2", Primary: false},
	}
	got, err := DecodePreflistResp(EncodePreflistResp(items))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("items: %+v", got)
	}
	if got[0].Partition != 1415829711164312202 || !got[0].Primary {
		t.Fatalf("item 0: %+v", got[0])
	}
	if got[1].Node != "riak@node2" || got[1].Primary {
		t.Fatalf("item 1: %+v", got[1])
	}
}
