package riak

import (
	"errors"
	"testing"

	"riak/bucket"
	"riak/internal/frame"
	"riak/rpb"
)

func TestGetSearchIndex(t *testing.T) {
	resp := rpb.EncodeSearchIndexGetResp([]rpb.SearchIndex{
		{Name: "users_idx", Schema: "_yz_default"},
	})
	client, _ := newTestClient(t, frame.Append(nil, rpb.MsgYokozunaIndexGetResp, resp))
	idx, err := client.GetSearchIndex("users_idx")
	if err != nil {
		t.Fatalf("get search index: %v", err)
	}
	if idx.Name != "users_idx" || idx.Schema != "_yz_default" {
		t.Fatalf("index: %+v", idx)
	}
}

func TestGetSearchIndexEmptyListing(t *testing.T) {
	client, _ := newTestClient(t, frame.Append(nil, rpb.MsgYokozunaIndexGetResp, nil))
	_, err := client.GetSearchIndex("nope")
	var se *ServerError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want ServerError", err)
	}
}

func TestPutSearchIndexUsesPutAck(t *testing.T) {
	client, conn := newTestClient(t, frame.Append(nil, rpb.MsgPutResp, nil))
	err := client.PutSearchIndex(rpb.SearchIndex{Name: "orders_idx"}, 0)
	if err != nil {
		t.Fatalf("put search index: %v", err)
	}
	code, _, err := frame.Read(&conn.writes, frame.Limits{})
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if code != rpb.MsgYokozunaIndexPutReq {
		t.Fatalf("request code: %d", code)
	}
}

func TestGetBucketPropsRoundTrip(t *testing.T) {
	resp := rpb.EncodeGetBucketResp(&bucket.Props{
		NVal:      bucket.Uint32(3),
		AllowMult: bucket.Bool(true),
	})
	client, _ := newTestClient(t, frame.Append(nil, rpb.MsgGetBucketResp, resp))
	props, err := client.GetBucketProps("b", "")
	if err != nil {
		t.Fatalf("get bucket props: %v", err)
	}
	if props.NVal == nil || *props.NVal != 3 {
		t.Fatalf("n_val: %v", props.NVal)
	}
	if props.AllowMult == nil || !*props.AllowMult {
		t.Fatal("allow_mult lost")
	}
}

func TestGetBucketTypePropsSharesResponseCode(t *testing.T) {
	resp := rpb.EncodeGetBucketResp(&bucket.Props{Consistent: bucket.Bool(true)})
	client, conn := newTestClient(t, frame.Append(nil, rpb.MsgGetBucketResp, resp))
	props, err := client.GetBucketTypeProps("strong")
	if err != nil {
		t.Fatalf("get bucket type props: %v", err)
	}
	if props.Consistent == nil || !*props.Consistent {
		t.Fatalf("consistent: %+v", props)
	}
	code, _, err := frame.Read(&conn.writes, frame.Limits{})
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if code != rpb.MsgGetBucketTypeReq {
		t.Fatalf("request code: %d", code)
	}
}

func TestIndexQueryExchange(t *testing.T) {
	resp := rpb.EncodeIndexResp(&rpb.IndexResponse{
		Keys:         [][]byte{[]byte("k1")},
		Continuation: []byte("more"),
	})
	client, _ := newTestClient(t, frame.Append(nil, rpb.MsgIndexResp, resp))
	got, err := client.IndexQuery(&rpb.IndexRequest{
		Bucket: "users",
		Index:  "email_bin",
		Exact:  true,
		Key:    []byte("a@example.com"),
	})
	if err != nil {
		t.Fatalf("index query: %v", err)
	}
	if len(got.Keys) != 1 || string(got.Continuation) != "more" {
		t.Fatalf("response: %+v", got)
	}
}

func TestFetchPreflist(t *testing.T) {
	resp := rpb.EncodePreflistResp([]rpb.PreflistItem{
		{Partition: 42, Node: "riak@node1", Primary: true},
	})
	client, _ := newTestClient(t, frame.Append(nil, rpb.MsgGetBucketKeyPreflistResp, resp))
	items, err := client.FetchPreflist("b", "k", "")
	if err != nil {
		t.Fatalf("preflist: %v", err)
	}
	if len(items) != 1 || items[0].Node != "riak@node1" || !items[0].Primary {
		t.Fatalf("items: %+v", items)
	}
}
