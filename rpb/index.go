package rpb

import (
	"riak/internal/wire"
	"riak/object"
)

// Secondary index query type.
const (
	IndexQueryExact uint64 = 0
	IndexQueryRange uint64 = 1
)

// IndexRequest describes a secondary index query.
//
//	RpbIndexReq: bucket=1 (required), index=2 (required), qtype=3
//	  (required), key=4, range_min=5, range_max=6, return_terms=7,
//	  stream=8, max_results=9, continuation=10, timeout=11, type=12,
//	  term_regex=13, pagination_sort=14
//
// Exact queries match Key; range queries match [RangeMin, RangeMax].
type IndexRequest struct {
	Bucket string
	Index  string
	Exact  bool

	Key      []byte
	RangeMin []byte
	RangeMax []byte

	ReturnTerms    bool
	MaxResults     *uint32
	Continuation   []byte
	Timeout        uint32
	Type           string
	TermRegex      string
	PaginationSort *bool
}

// IndexResponse carries the matches of one index query.
//
//	RpbIndexResp: keys=1, results=2, continuation=3, done=4
//
// Keys is populated for plain queries; Results is populated when the
// request asked for terms, pairing each matched term with its key.
type IndexResponse struct {
	Keys         [][]byte
	Results      []object.Pair
	Continuation []byte
	Done         *bool
}

func EncodeIndexReq(req *IndexRequest) ([]byte, error) {
	if req.Bucket == "" {
		return nil, &RequestError{Op: "index", Reason: "missing bucket"}
	}
	if req.Index == "" {
		return nil, &RequestError{Op: "index", Reason: "missing index"}
	}
	qtype := IndexQueryRange
	if req.Exact {
		qtype = IndexQueryExact
		if len(req.Key) == 0 {
			return nil, &RequestError{Op: "index", Reason: "exact query missing key"}
		}
	} else if len(req.RangeMin) == 0 || len(req.RangeMax) == 0 {
		return nil, &RequestError{Op: "index", Reason: "range query missing bounds"}
	}
	var b []byte
	b = wire.AppendString(b, 1, req.Bucket)
	b = wire.AppendString(b, 2, req.Index)
	b = wire.AppendUint64(b, 3, qtype)
	if len(req.Key) > 0 {
		b = wire.AppendBytes(b, 4, req.Key)
	}
	if len(req.RangeMin) > 0 {
		b = wire.AppendBytes(b, 5, req.RangeMin)
	}
	if len(req.RangeMax) > 0 {
		b = wire.AppendBytes(b, 6, req.RangeMax)
	}
	if req.ReturnTerms {
		b = wire.AppendBool(b, 7, true)
	}
	if req.MaxResults != nil {
		b = wire.AppendUint32(b, 9, *req.MaxResults)
	}
	if len(req.Continuation) > 0 {
		b = wire.AppendBytes(b, 10, req.Continuation)
	}
	if req.Timeout > 0 {
		b = wire.AppendUint32(b, 11, req.Timeout)
	}
	if req.Type != "" {
		b = wire.AppendString(b, 12, req.Type)
	}
	if req.TermRegex != "" {
		b = wire.AppendString(b, 13, req.TermRegex)
	}
	if req.PaginationSort != nil {
		b = wire.AppendBool(b, 14, *req.PaginationSort)
	}
	return b, nil
}

func DecodeIndexReq(payload []byte) (*IndexRequest, error) {
	const code = MsgIndexReq
	out := &IndexRequest{}
	var (
		haveBucket bool
		haveIndex  bool
		haveQtype  bool
	)
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(code, 1, err)
			}
			out.Bucket = v
			haveBucket = true
		case 2:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(code, 2, err)
			}
			out.Index = v
			haveIndex = true
		case 3:
			v, err := d.Uint64()
			if err != nil {
				return nil, fieldErr(code, 3, err)
			}
			out.Exact = v == IndexQueryExact
			haveQtype = true
		case 4:
			v, err := d.Bytes()
			if err != nil {
				return nil, fieldErr(code, 4, err)
			}
			out.Key = v
		case 5:
			v, err := d.Bytes()
			if err != nil {
				return nil, fieldErr(code, 5, err)
			}
			out.RangeMin = v
		case 6:
			v, err := d.Bytes()
			if err != nil {
				return nil, fieldErr(code, 6, err)
			}
			out.RangeMax = v
		case 7:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(code, 7, err)
			}
			out.ReturnTerms = v
		case 9:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(code, 9, err)
			}
			out.MaxResults = &v
		case 10:
			v, err := d.Bytes()
			if err != nil {
				return nil, fieldErr(code, 10, err)
			}
			out.Continuation = v
		case 11:
			v, err := d.Uint32()
			if err != nil {
				return nil, fieldErr(code, 11, err)
			}
			out.Timeout = v
		case 12:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(code, 12, err)
			}
			out.Type = v
		case 13:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(code, 13, err)
			}
			out.TermRegex = v
		case 14:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(code, 14, err)
			}
			out.PaginationSort = &v
		}
	}
	if err := finish(d, code); err != nil {
		return nil, err
	}
	if !haveBucket {
		return nil, schemaErr(code, 1, "missing required bucket")
	}
	if !haveIndex {
		return nil, schemaErr(code, 2, "missing required index")
	}
	if !haveQtype {
		return nil, schemaErr(code, 3, "missing required qtype")
	}
	return out, nil
}

func DecodeIndexResp(payload []byte) (*IndexResponse, error) {
	const code = MsgIndexResp
	out := &IndexResponse{}
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.Bytes()
			if err != nil {
				return nil, fieldErr(code, 1, err)
			}
			out.Keys = append(out.Keys, v)
		case 2:
			raw, err := d.RawBytes()
			if err != nil {
				return nil, fieldErr(code, 2, err)
			}
			p, err := decodePair(raw, code)
			if err != nil {
				return nil, err
			}
			out.Results = append(out.Results, p)
		case 3:
			v, err := d.Bytes()
			if err != nil {
				return nil, fieldErr(code, 3, err)
			}
			out.Continuation = v
		case 4:
			v, err := d.Bool()
			if err != nil {
				return nil, fieldErr(code, 4, err)
			}
			out.Done = &v
		}
	}
	if err := finish(d, code); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeIndexResp renders an index response; used by test servers.
func EncodeIndexResp(resp *IndexResponse) []byte {
	var b []byte
	for _, k := range resp.Keys {
		b = wire.AppendBytes(b, 1, k)
	}
	for _, p := range resp.Results {
		b = wire.AppendMessage(b, 2, encodePair(p))
	}
	if len(resp.Continuation) > 0 {
		b = wire.AppendBytes(b, 3, resp.Continuation)
	}
	if resp.Done != nil {
		b = wire.AppendBool(b, 4, *resp.Done)
	}
	return b
}
