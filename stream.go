package riak

import (
	"riak/internal/observability"
	"riak/rpb"
)

// A streaming listing owns the connection until its final page arrives:
// the server sends pages on its own schedule and nothing else may travel
// on the session in between. Other operations fail with ErrSessionBusy
// while a stream is open.

// KeyStream delivers the keys of one bucket in server-chosen pages.
type KeyStream struct {
	c        *Client
	finished bool
}

// StreamKeys starts a key listing. The caller must drain the stream with
// Next until ErrStreamDone (or an error) before using the client again.
func (c *Client) StreamKeys(req *rpb.ListKeysReq) (*KeyStream, error) {
	r := *req
	if r.Timeout == 0 {
		r.Timeout = c.cfg.RequestTimeoutMS
	}
	body, err := rpb.EncodeListKeysReq(&r)
	if err != nil {
		return nil, err
	}
	if err := c.send("list-keys", rpb.MsgListKeysReq, body); err != nil {
		return nil, err
	}
	c.busy = true
	return &KeyStream{c: c}, nil
}

// Next returns the next page of keys. A page may be empty. After the
// final page, Next returns ErrStreamDone and the session is free again.
func (s *KeyStream) Next() ([][]byte, error) {
	if s.finished {
		return nil, ErrStreamDone
	}
	payload, err := s.c.streamReceive("list-keys", rpb.MsgListKeysResp)
	if err != nil {
		s.finished = true
		return nil, err
	}
	page, err := rpb.DecodeListKeysResp(payload)
	if err != nil {
		// schema failure mid-stream: later pages are still in flight and
		// cannot be skipped reliably
		s.c.markStreamDead()
		s.finished = true
		return nil, err
	}
	observability.RecordStreamPage("list-keys")
	if page.Done {
		s.finished = true
		s.c.busy = false
	}
	return page.Keys, nil
}

// Close releases the stream. Closing before the final page breaks the
// session: undelivered pages would corrupt the next exchange.
func (s *KeyStream) Close() error {
	if s.finished {
		return nil
	}
	s.c.markStreamDead()
	s.finished = true
	return nil
}

// BucketStream delivers bucket names in server-chosen pages.
type BucketStream struct {
	c        *Client
	finished bool
}

// StreamBuckets starts a streaming bucket listing. The stream flag is
// forced on; the caller must drain the stream before reusing the client.
func (c *Client) StreamBuckets(req *rpb.ListBucketsReq) (*BucketStream, error) {
	r := *req
	r.Stream = true
	if r.Timeout == 0 {
		r.Timeout = c.cfg.RequestTimeoutMS
	}
	body := rpb.EncodeListBucketsReq(&r)
	if err := c.send("list-buckets", rpb.MsgListBucketsReq, body); err != nil {
		return nil, err
	}
	c.busy = true
	return &BucketStream{c: c}, nil
}

// Next returns the next page of bucket names; ErrStreamDone after the
// final page.
func (s *BucketStream) Next() ([]string, error) {
	if s.finished {
		return nil, ErrStreamDone
	}
	payload, err := s.c.streamReceive("list-buckets", rpb.MsgListBucketsResp)
	if err != nil {
		s.finished = true
		return nil, err
	}
	page, err := rpb.DecodeListBucketsResp(payload)
	if err != nil {
		s.c.markStreamDead()
		s.finished = true
		return nil, err
	}
	observability.RecordStreamPage("list-buckets")
	if page.Done {
		s.finished = true
		s.c.busy = false
	}
	return page.Buckets, nil
}

// Close releases the stream, breaking the session if pages remain.
func (s *BucketStream) Close() error {
	if s.finished {
		return nil
	}
	s.c.markStreamDead()
	s.finished = true
	return nil
}

// streamReceive reads one page frame for an open stream, bypassing the
// busy check that guards ordinary exchanges.
func (c *Client) streamReceive(op string, respCode byte) ([]byte, error) {
	if c.broken {
		return nil, ErrBroken
	}
	payload, err := c.receive(op, respCode)
	if err != nil {
		// an error frame ends the stream cleanly; everything else has
		// already broken the session inside receive
		c.busy = false
		return nil, err
	}
	return payload, nil
}

func (c *Client) markStreamDead() {
	c.broken = true
	c.busy = false
}

// ListKeys drains a whole key listing into memory, in arrival order.
func (c *Client) ListKeys(bucketName string) ([][]byte, error) {
	return c.ListKeysIn(bucketName, "")
}

// ListKeysIn is ListKeys for a typed bucket.
func (c *Client) ListKeysIn(bucketName, bucketType string) ([][]byte, error) {
	stream, err := c.StreamKeys(&rpb.ListKeysReq{Bucket: bucketName, Type: bucketType})
	if err != nil {
		return nil, err
	}
	var keys [][]byte
	for {
		page, err := stream.Next()
		if err == ErrStreamDone {
			return keys, nil
		}
		if err != nil {
			return nil, err
		}
		keys = append(keys, page...)
	}
}

// ListBuckets drains a whole bucket listing into memory, in arrival
// order. Listing buckets walks every key on the server; production use
// is discouraged there, not here.
func (c *Client) ListBuckets() ([]string, error) {
	return c.ListBucketsIn("")
}

// ListBucketsIn is ListBuckets for a bucket type.
func (c *Client) ListBucketsIn(bucketType string) ([]string, error) {
	stream, err := c.StreamBuckets(&rpb.ListBucketsReq{Type: bucketType})
	if err != nil {
		return nil, err
	}
	var buckets []string
	for {
		page, err := stream.Next()
		if err == ErrStreamDone {
			return buckets, nil
		}
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, page...)
	}
}
