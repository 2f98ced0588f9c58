package rpb

import "riak/internal/wire"

// SearchIndex is a Yokozuna search index definition.
//
//	RpbYokozunaIndex: name=1 (required), schema=2, n_val=3
type SearchIndex struct {
	Name   string
	Schema string
	NVal   *uint32
}

// SearchSchema is a Yokozuna schema document.
//
//	RpbYokozunaSchema: name=1 (required), content=2
type SearchSchema struct {
	Name    string
	Content []byte
}

func encodeSearchIndex(idx SearchIndex) []byte {
	var b []byte
	b = wire.AppendString(b, 1, idx.Name)
	if idx.Schema != "" {
		b = wire.AppendString(b, 2, idx.Schema)
	}
	if idx.NVal != nil {
		b = wire.AppendUint32(b, 3, *idx.NVal)
	}
	return b
}

func decodeSearchIndex(payload []byte, code byte) (SearchIndex, error) {
	var (
		out      SearchIndex
		haveName bool
	)
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.String()
			if err != nil {
				return out, fieldErr(code, 1, err)
			}
			out.Name = v
			haveName = true
		case 2:
			v, err := d.String()
			if err != nil {
				return out, fieldErr(code, 2, err)
			}
			out.Schema = v
		case 3:
			v, err := d.Uint32()
			if err != nil {
				return out, fieldErr(code, 3, err)
			}
			out.NVal = &v
		}
	}
	if err := finish(d, code); err != nil {
		return out, err
	}
	if !haveName {
		return out, schemaErr(code, 1, "search index missing required name")
	}
	return out, nil
}

// EncodeSearchIndexGetReq encodes RpbYokozunaIndexGetReq (name=1).
// An empty name asks the server to list every index.
func EncodeSearchIndexGetReq(name string) []byte {
	if name == "" {
		return nil
	}
	return wire.AppendString(nil, 1, name)
}

// DecodeSearchIndexGetResp decodes RpbYokozunaIndexGetResp (index=1 repeated).
func DecodeSearchIndexGetResp(payload []byte) ([]SearchIndex, error) {
	const code = MsgYokozunaIndexGetResp
	var out []SearchIndex
	d := wire.NewDecoder(payload)
	for d.Next() {
		if d.Field() == 1 {
			raw, err := d.RawBytes()
			if err != nil {
				return nil, fieldErr(code, 1, err)
			}
			idx, err := decodeSearchIndex(raw, code)
			if err != nil {
				return nil, err
			}
			out = append(out, idx)
		}
	}
	if err := finish(d, code); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeSearchIndexGetResp renders an index listing; used by test servers.
func EncodeSearchIndexGetResp(indexes []SearchIndex) []byte {
	var b []byte
	for _, idx := range indexes {
		b = wire.AppendMessage(b, 1, encodeSearchIndex(idx))
	}
	return b
}

// EncodeSearchIndexPutReq encodes RpbYokozunaIndexPutReq
// (index=1 required, timeout=2).
func EncodeSearchIndexPutReq(idx SearchIndex, timeout uint32) ([]byte, error) {
	if idx.Name == "" {
		return nil, &RequestError{Op: "put-search-index", Reason: "missing index name"}
	}
	b := wire.AppendMessage(nil, 1, encodeSearchIndex(idx))
	if timeout > 0 {
		b = wire.AppendUint32(b, 2, timeout)
	}
	return b, nil
}

// EncodeSearchIndexDeleteReq encodes RpbYokozunaIndexDeleteReq (name=1 required).
func EncodeSearchIndexDeleteReq(name string) ([]byte, error) {
	if name == "" {
		return nil, &RequestError{Op: "delete-search-index", Reason: "missing index name"}
	}
	return wire.AppendString(nil, 1, name), nil
}

// EncodeSearchSchemaGetReq encodes RpbYokozunaSchemaGetReq (name=1 required).
func EncodeSearchSchemaGetReq(name string) ([]byte, error) {
	if name == "" {
		return nil, &RequestError{Op: "get-search-schema", Reason: "missing schema name"}
	}
	return wire.AppendString(nil, 1, name), nil
}

// DecodeSearchSchemaGetResp decodes RpbYokozunaSchemaGetResp (schema=1 required).
func DecodeSearchSchemaGetResp(payload []byte) (*SearchSchema, error) {
	const code = MsgYokozunaSchemaGetResp
	var out *SearchSchema
	d := wire.NewDecoder(payload)
	for d.Next() {
		if d.Field() == 1 {
			raw, err := d.RawBytes()
			if err != nil {
				return nil, fieldErr(code, 1, err)
			}
			s, err := decodeSearchSchema(raw, code)
			if err != nil {
				return nil, err
			}
			out = s
		}
	}
	if err := finish(d, code); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, schemaErr(code, 1, "missing required schema")
	}
	return out, nil
}

func decodeSearchSchema(payload []byte, code byte) (*SearchSchema, error) {
	out := &SearchSchema{}
	var haveName bool
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(code, 1, err)
			}
			out.Name = v
			haveName = true
		case 2:
			v, err := d.Bytes()
			if err != nil {
				return nil, fieldErr(code, 2, err)
			}
			out.Content = v
		}
	}
	if err := finish(d, code); err != nil {
		return nil, err
	}
	if !haveName {
		return nil, schemaErr(code, 1, "search schema missing required name")
	}
	return out, nil
}

// EncodeSearchSchemaGetResp renders a schema response; used by test servers.
func EncodeSearchSchemaGetResp(s *SearchSchema) []byte {
	var inner []byte
	inner = wire.AppendString(inner, 1, s.Name)
	if len(s.Content) > 0 {
		inner = wire.AppendBytes(inner, 2, s.Content)
	}
	return wire.AppendMessage(nil, 1, inner)
}

// EncodeSearchSchemaPutReq encodes RpbYokozunaSchemaPutReq (schema=1 required).
func EncodeSearchSchemaPutReq(s SearchSchema) ([]byte, error) {
	if s.Name == "" {
		return nil, &RequestError{Op: "put-search-schema", Reason: "missing schema name"}
	}
	var inner []byte
	inner = wire.AppendString(inner, 1, s.Name)
	if len(s.Content) > 0 {
		inner = wire.AppendBytes(inner, 2, s.Content)
	}
	return wire.AppendMessage(nil, 1, inner), nil
}
