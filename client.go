package riak

import (
	"bufio"
	"context"
	"errors"
	"net"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"riak/bucket"
	"riak/internal/frame"
	"riak/internal/observability"
	"riak/object"
	"riak/rpb"
)

// Client is one protocol session over one TCP connection. Requests and
// responses strictly alternate on it, so a Client is not safe for
// concurrent use; open one Client per goroutine or serialize access.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
	cfg    Config
	limits frame.Limits
	logger zerolog.Logger

	broken bool
	busy   bool
}

// Dial connects to addr with DefaultConfig.
func Dial(addr string) (*Client, error) {
	return DialConfig(context.Background(), addr, DefaultConfig())
}

// DialConfig connects to addr. Zero-valued timeouts in cfg are filled
// from DefaultConfig.
func DialConfig(ctx context.Context, addr string, cfg Config) (*Client, error) {
	cfg = cfg.WithDefaults()
	dialer := net.Dialer{Timeout: cfg.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &ConnectionError{Op: "dial", Err: err}
	}
	c := NewClient(conn, cfg)
	c.logger = c.logger.With().Str("addr", addr).Logger()
	c.logger.Debug().Msg("connected")
	return c, nil
}

// NewClient wraps an established connection. Useful for tests and for
// callers that manage their own dialing or TLS.
func NewClient(conn net.Conn, cfg Config) *Client {
	return &Client{
		conn:   conn,
		reader: bufio.NewReader(conn),
		cfg:    cfg,
		limits: frame.Limits{MaxMessageBytes: cfg.MaxMessageBytes},
		logger: log.With().Str("component", "riak.client").Logger(),
	}
}

// Close tears down the connection. The client is unusable afterwards.
func (c *Client) Close() error {
	c.broken = true
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Broken reports whether the session has been marked unusable.
func (c *Client) Broken() bool { return c.broken }

func (c *Client) setWriteDeadline() {
	if c.cfg.WriteTimeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	}
}

func (c *Client) setReadDeadline() {
	if c.cfg.ReadTimeout > 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
	}
}

func isFramingErr(err error) bool {
	return errors.Is(err, frame.ErrShortHeader) ||
		errors.Is(err, frame.ErrShortBody) ||
		errors.Is(err, frame.ErrZeroLength) ||
		errors.Is(err, frame.ErrMessageTooLarge)
}

// send writes one request frame. On failure the session is broken.
func (c *Client) send(op string, reqCode byte, payload []byte) error {
	if c.broken {
		return ErrBroken
	}
	if c.busy {
		return ErrSessionBusy
	}
	c.setWriteDeadline()
	if err := frame.Write(c.conn, reqCode, payload, c.limits); err != nil {
		c.broken = true
		if isFramingErr(err) {
			observability.RecordExchange(op, observability.OutcomeFramingErr, 0)
			return &FramingError{Op: op, Err: err}
		}
		observability.RecordExchange(op, observability.OutcomeConnErr, 0)
		return &ConnectionError{Op: op, Err: err}
	}
	observability.RecordBytes(op, len(payload)+5, 0)
	return nil
}

// receive reads one response frame and enforces the response contract:
// the frame must carry either the expected code or the error code. Any
// other code means the stream can no longer be trusted.
func (c *Client) receive(op string, respCode byte) ([]byte, error) {
	c.setReadDeadline()
	code, payload, err := frame.Read(c.reader, c.limits)
	if err != nil {
		c.broken = true
		if isFramingErr(err) {
			observability.RecordExchange(op, observability.OutcomeFramingErr, 0)
			return nil, &FramingError{Op: op, Err: err}
		}
		observability.RecordExchange(op, observability.OutcomeConnErr, 0)
		return nil, &ConnectionError{Op: op, Err: err}
	}
	observability.RecordBytes(op, 0, len(payload)+5)

	switch code {
	case respCode:
		return payload, nil
	case rpb.MsgErrorResp:
		se, err := rpb.DecodeErrorResp(payload)
		if err != nil {
			return nil, err
		}
		c.logger.Debug().
			Str("op", op).
			Uint32("errcode", se.Code).
			Str("errmsg", se.Message).
			Msg("server error")
		return nil, &ServerError{Code: se.Code, Message: se.Message}
	default:
		c.broken = true
		c.logger.Error().
			Str("op", op).
			Str("want_code", observability.FormatCode(respCode)).
			Str("got_code", observability.FormatCode(code)).
			Msg("response code mismatch")
		observability.RecordExchange(op, observability.OutcomeFramingErr, 0)
		return nil, &FramingError{Op: op, Err: errors.New("unexpected response message code")}
	}
}

// exchange runs one full request/response cycle.
func (c *Client) exchange(op string, reqCode, respCode byte, payload []byte) ([]byte, error) {
	start := time.Now()
	if err := c.send(op, reqCode, payload); err != nil {
		return nil, err
	}
	resp, err := c.receive(op, respCode)
	elapsed := time.Since(start)
	if err != nil {
		var se *ServerError
		if errors.As(err, &se) {
			observability.RecordExchange(op, observability.OutcomeServerErr, elapsed)
		}
		return nil, err
	}
	observability.RecordExchange(op, observability.OutcomeOK, elapsed)
	c.logger.Debug().
		Str("op", op).
		Dur("elapsed", elapsed).
		Int("resp_bytes", len(resp)).
		Msg("exchange")
	return resp, nil
}

// Ping checks liveness. The response carries no payload.
func (c *Client) Ping() error {
	_, err := c.exchange("ping", rpb.MsgPingReq, rpb.MsgPingResp, nil)
	return err
}

// ServerInfo reports the remote node name and server version.
func (c *Client) ServerInfo() (*rpb.ServerInfo, error) {
	payload, err := c.exchange("server-info", rpb.MsgGetServerInfoReq, rpb.MsgGetServerInfoResp, nil)
	if err != nil {
		return nil, err
	}
	return rpb.DecodeServerInfoResp(payload)
}

// Get fetches one object. When the key does not exist the response has
// NotFound set; that is not an error.
func (c *Client) Get(req *object.FetchRequest) (*object.FetchResponse, error) {
	r := *req
	if r.Timeout == 0 {
		r.Timeout = c.cfg.RequestTimeoutMS
	}
	body, err := rpb.EncodeGetReq(&r)
	if err != nil {
		return nil, err
	}
	payload, err := c.exchange("get", rpb.MsgGetReq, rpb.MsgGetResp, body)
	if err != nil {
		return nil, err
	}
	return rpb.DecodeGetResp(payload)
}

// Put stores one object. To update an existing key, pass the vclock from
// the preceding Get unchanged; omitting it on an update creates siblings
// when the bucket allows them.
func (c *Client) Put(req *object.StoreRequest) (*object.StoreResponse, error) {
	r := *req
	if r.Timeout == 0 {
		r.Timeout = c.cfg.RequestTimeoutMS
	}
	body, err := rpb.EncodePutReq(&r)
	if err != nil {
		return nil, err
	}
	payload, err := c.exchange("put", rpb.MsgPutReq, rpb.MsgPutResp, body)
	if err != nil {
		return nil, err
	}
	return rpb.DecodePutResp(payload)
}

// Delete removes one object. Deleting an absent key succeeds.
func (c *Client) Delete(req *object.DeleteRequest) error {
	r := *req
	if r.Timeout == 0 {
		r.Timeout = c.cfg.RequestTimeoutMS
	}
	body, err := rpb.EncodeDelReq(&r)
	if err != nil {
		return err
	}
	_, err = c.exchange("delete", rpb.MsgDelReq, rpb.MsgDelResp, body)
	return err
}

// GetBucketProps reads the properties of a bucket. Pass bucketType ""
// for the default type.
func (c *Client) GetBucketProps(bucketName, bucketType string) (*bucket.Props, error) {
	body, err := rpb.EncodeGetBucketReq(bucketName, bucketType)
	if err != nil {
		return nil, err
	}
	payload, err := c.exchange("get-bucket-props", rpb.MsgGetBucketReq, rpb.MsgGetBucketResp, body)
	if err != nil {
		return nil, err
	}
	return rpb.DecodeGetBucketResp(payload)
}

// SetBucketProps writes bucket properties. Only the fields set in props
// are sent; unmodeled properties travel through props.Raw untouched.
func (c *Client) SetBucketProps(bucketName, bucketType string, props *bucket.Props) error {
	body, err := rpb.EncodeSetBucketReq(bucketName, bucketType, props)
	if err != nil {
		return err
	}
	_, err = c.exchange("set-bucket-props", rpb.MsgSetBucketReq, rpb.MsgSetBucketResp, body)
	return err
}

// ResetBucket restores a bucket's properties to the defaults.
func (c *Client) ResetBucket(bucketName, bucketType string) error {
	body, err := rpb.EncodeResetBucketReq(bucketName, bucketType)
	if err != nil {
		return err
	}
	_, err = c.exchange("reset-bucket", rpb.MsgResetBucketReq, rpb.MsgResetBucketResp, body)
	return err
}

// GetBucketTypeProps reads the properties of a bucket type. The response
// reuses the bucket property response code.
func (c *Client) GetBucketTypeProps(bucketType string) (*bucket.Props, error) {
	body, err := rpb.EncodeGetBucketTypeReq(bucketType)
	if err != nil {
		return nil, err
	}
	payload, err := c.exchange("get-bucket-type-props", rpb.MsgGetBucketTypeReq, rpb.MsgGetBucketResp, body)
	if err != nil {
		return nil, err
	}
	return rpb.DecodeGetBucketResp(payload)
}

// SetBucketTypeProps writes properties on a bucket type. The response
// reuses the set-bucket response code.
func (c *Client) SetBucketTypeProps(bucketType string, props *bucket.Props) error {
	body, err := rpb.EncodeSetBucketTypeReq(bucketType, props)
	if err != nil {
		return err
	}
	_, err = c.exchange("set-bucket-type-props", rpb.MsgSetBucketTypeReq, rpb.MsgSetBucketResp, body)
	return err
}

// IndexQuery runs one secondary index query. Results beyond MaxResults
// are reachable through the returned continuation.
func (c *Client) IndexQuery(req *rpb.IndexRequest) (*rpb.IndexResponse, error) {
	r := *req
	if r.Timeout == 0 {
		r.Timeout = c.cfg.RequestTimeoutMS
	}
	body, err := rpb.EncodeIndexReq(&r)
	if err != nil {
		return nil, err
	}
	payload, err := c.exchange("index", rpb.MsgIndexReq, rpb.MsgIndexResp, body)
	if err != nil {
		return nil, err
	}
	return rpb.DecodeIndexResp(payload)
}

// FetchPreflist reports which partitions hold a bucket/key pair.
func (c *Client) FetchPreflist(bucketName, key, bucketType string) ([]rpb.PreflistItem, error) {
	body, err := rpb.EncodePreflistReq(bucketName, key, bucketType)
	if err != nil {
		return nil, err
	}
	payload, err := c.exchange("preflist",
		rpb.MsgGetBucketKeyPreflistReq, rpb.MsgGetBucketKeyPreflistResp, body)
	if err != nil {
		return nil, err
	}
	return rpb.DecodePreflistResp(payload)
}
