package rpb

import "riak/internal/wire"

// ServerInfo reports the node name and server version of the
// remote end.
//
//	RpbGetServerInfoResp: node=1, server_version=2
type ServerInfo struct {
	Node          string
	ServerVersion string
}

func DecodeServerInfoResp(payload []byte) (*ServerInfo, error) {
	const code = MsgGetServerInfoResp
	out := &ServerInfo{}
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(code, 1, err)
			}
			out.Node = v
		case 2:
			v, err := d.String()
			if err != nil {
				return nil, fieldErr(code, 2, err)
			}
			out.ServerVersion = v
		}
	}
	if err := finish(d, code); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeServerInfoResp renders a server info response; used by test servers.
func EncodeServerInfoResp(info *ServerInfo) []byte {
	var b []byte
	if info.Node != "" {
		b = wire.AppendString(b, 1, info.Node)
	}
	if info.ServerVersion != "" {
		b = wire.AppendString(b, 2, info.ServerVersion)
	}
	return b
}

// PreflistItem names one partition in a key's preference list.
//
//	RpbGetBucketKeyPreflistItem: partition=1 (required), node=2
//	(required), primary=3 (required)
type PreflistItem struct {
	Partition int64
	Node      string
	Primary   bool
}

// EncodePreflistReq encodes RpbGetBucketKeyPreflistReq
// (bucket=1 required, key=2 required, type=3).
func EncodePreflistReq(bucketName, key, bucketType string) ([]byte, error) {
	if bucketName == "" {
		return nil, &RequestError{Op: "preflist", Reason: "missing bucket"}
	}
	if key == "" {
		return nil, &RequestError{Op: "preflist", Reason: "missing key"}
	}
	var b []byte
	b = wire.AppendString(b, 1, bucketName)
	b = wire.AppendString(b, 2, key)
	if bucketType != "" {
		b = wire.AppendString(b, 3, bucketType)
	}
	return b, nil
}

// DecodePreflistResp decodes RpbGetBucketKeyPreflistResp (preflist=1 repeated).
func DecodePreflistResp(payload []byte) ([]PreflistItem, error) {
	const code = MsgGetBucketKeyPreflistResp
	var out []PreflistItem
	d := wire.NewDecoder(payload)
	for d.Next() {
		if d.Field() == 1 {
			raw, err := d.RawBytes()
			if err != nil {
				return nil, fieldErr(code, 1, err)
			}
			item, err := decodePreflistItem(raw, code)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
	}
	if err := finish(d, code); err != nil {
		return nil, err
	}
	return out, nil
}

func decodePreflistItem(payload []byte, code byte) (PreflistItem, error) {
	var (
		out           PreflistItem
		havePartition bool
		haveNode      bool
		havePrimary   bool
	)
	d := wire.NewDecoder(payload)
	for d.Next() {
		switch d.Field() {
		case 1:
			v, err := d.Int64()
			if err != nil {
				return out, fieldErr(code, 1, err)
			}
			out.Partition = v
			havePartition = true
		case 2:
			v, err := d.String()
			if err != nil {
				return out, fieldErr(code, 2, err)
			}
			out.Node = v
			haveNode = true
		case 3:
			v, err := d.Bool()
			if err != nil {
				return out, fieldErr(code, 3, err)
			}
			out.Primary = v
			havePrimary = true
		}
	}
	if err := finish(d, code); err != nil {
		return out, err
	}
	if !havePartition || !haveNode || !havePrimary {
		return out, schemaErr(code, 1, "preflist item missing required field")
	}
	return out, nil
}

// EncodePreflistResp renders a preflist response; used by test servers.
func EncodePreflistResp(items []PreflistItem) []byte {
	var b []byte
	for _, item := range items {
		var inner []byte
		inner = wire.AppendInt64(inner, 1, item.Partition)
		inner = wire.AppendString(inner, 2, item.Node)
		inner = wire.AppendBool(inner, 3, item.Primary)
		b = wire.AppendMessage(b, 1, inner)
	}
	return b
}
