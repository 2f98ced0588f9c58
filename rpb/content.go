package rpb

import (
	"riak/internal/wire"
	"riak/object"
)

// Sub-message schemas shared by the KV operations:
//
//	RpbContent: value=1 bytes (required), content_type=2, charset=3,
//	  content_encoding=4, vtag=5, links=6 repeated RpbLink, last_mod=7,
//	  last_mod_usecs=8, usermeta=9 repeated RpbPair,
//	  indexes=10 repeated RpbPair, deleted=11 bool
//	RpbLink: bucket=1, key=2, tag=3
//	RpbPair: key=1 bytes (required), value=2 bytes

func encodePair(p object.Pair) []byte {
	var b []byte
	b = wire.AppendBytes(b, 1, p.Key)
	if len(p.Value) > 0 {
		b = wire.AppendBytes(b, 2, p.Value)
	}
	return b
}

func decodePair(payload []byte, code byte) (object.Pair, error) {
	var (
		out     object.Pair
		haveKey bool
	)
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.Bytes()
			if err != nil {
				return out, fieldErr(code, 1, err)
			}
			out.Key = v
			haveKey = true
		case 2:
			v, err := d.Bytes()
			if err != nil {
				return out, fieldErr(code, 2, err)
			}
			out.Value = v
		}
	}
	if err := finish(d, code); err != nil {
		return out, err
	}
	if !haveKey {
		return out, schemaErr(code, 1, "pair missing required key")
	}
	return out, nil
}

func encodeLink(l object.Link) []byte {
	var b []byte
	if l.Bucket != "" {
		b = wire.AppendString(b, 1, l.Bucket)
	}
	if l.Key != "" {
		b = wire.AppendString(b, 2, l.Key)
	}
	if l.Tag != "" {
		b = wire.AppendString(b, 3, l.Tag)
	}
	return b
}

func decodeLink(payload []byte, code byte) (object.Link, error) {
	var out object.Link
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.String()
			if err != nil {
				return out, fieldErr(code, 1, err)
			}
			out.Bucket = v
		case 2:
			v, err := d.String()
			if err != nil {
				return out, fieldErr(code, 2, err)
			}
			out.Key = v
		case 3:
			v, err := d.String()
			if err != nil {
				return out, fieldErr(code, 3, err)
			}
			out.Tag = v
		}
	}
	if err := finish(d, code); err != nil {
		return out, err
	}
	return out, nil
}

func encodeContent(c object.Content) []byte {
	var b []byte
	b = wire.AppendBytes(b, 1, c.Value)
	if c.ContentType != "" {
		b = wire.AppendString(b, 2, c.ContentType)
	}
	if c.Charset != "" {
		b = wire.AppendString(b, 3, c.Charset)
	}
	if c.ContentEncoding != "" {
		b = wire.AppendString(b, 4, c.ContentEncoding)
	}
	if c.Vtag != "" {
		b = wire.AppendString(b, 5, c.Vtag)
	}
	for _, l := range c.Links {
		b = wire.AppendMessage(b, 6, encodeLink(l))
	}
	if c.LastMod != nil {
		b = wire.AppendUint32(b, 7, *c.LastMod)
	}
	if c.LastModUsecs != nil {
		b = wire.AppendUint32(b, 8, *c.LastModUsecs)
	}
	for _, p := range c.UserMeta {
		b = wire.AppendMessage(b, 9, encodePair(p))
	}
	for _, p := range c.Indexes {
		b = wire.AppendMessage(b, 10, encodePair(p))
	}
	if c.Deleted != nil {
		b = wire.AppendBool(b, 11, *c.Deleted)
	}
	return b
}

func decodeContent(payload []byte, code byte) (object.Content, error) {
	var (
		out       object.Content
		haveValue bool
	)
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.Bytes()
			if err != nil {
				return out, fieldErr(code, 1, err)
			}
			out.Value = v
			haveValue = true
		case 2:
			v, err := d.String()
			if err != nil {
				return out, fieldErr(code, 2, err)
			}
			out.ContentType = v
		case 3:
			v, err := d.String()
			if err != nil {
				return out, fieldErr(code, 3, err)
			}
			out.Charset = v
		case 4:
			v, err := d.String()
			if err != nil {
				return out, fieldErr(code, 4, err)
			}
			out.ContentEncoding = v
		case 5:
			v, err := d.String()
			if err != nil {
				return out, fieldErr(code, 5, err)
			}
			out.Vtag = v
		case 6:
			raw, err := d.RawBytes()
			if err != nil {
				return out, fieldErr(code, 6, err)
			}
			link, err := decodeLink(raw, code)
			if err != nil {
				return out, err
			}
			out.Links = append(out.Links, link)
		case 7:
			v, err := d.Uint32()
			if err != nil {
				return out, fieldErr(code, 7, err)
			}
			out.LastMod = &v
		case 8:
			v, err := d.Uint32()
			if err != nil {
				return out, fieldErr(code, 8, err)
			}
			out.LastModUsecs = &v
		case 9:
			raw, err := d.RawBytes()
			if err != nil {
				return out, fieldErr(code, 9, err)
			}
			pair, err := decodePair(raw, code)
			if err != nil {
				return out, err
			}
			out.UserMeta = append(out.UserMeta, pair)
		case 10:
			raw, err := d.RawBytes()
			if err != nil {
				return out, fieldErr(code, 10, err)
			}
			pair, err := decodePair(raw, code)
			if err != nil {
				return out, err
			}
			out.Indexes = append(out.Indexes, pair)
		case 11:
			v, err := d.Bool()
			if err != nil {
				return out, fieldErr(code, 11, err)
			}
			out.Deleted = &v
		}
	}
	if err := finish(d, code); err != nil {
		return out, err
	}
	if !haveValue {
		return out, schemaErr(code, 1, "content missing required value")
	}
	return out, nil
}
