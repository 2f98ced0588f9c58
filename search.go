package riak

import "riak/rpb"

// Search administration: Yokozuna index and schema management. These
// exchanges ride the same session as the KV operations.

// ListSearchIndexes returns every search index on the server.
func (c *Client) ListSearchIndexes() ([]rpb.SearchIndex, error) {
	payload, err := c.exchange("list-search-indexes",
		rpb.MsgYokozunaIndexGetReq, rpb.MsgYokozunaIndexGetResp, rpb.EncodeSearchIndexGetReq(""))
	if err != nil {
		return nil, err
	}
	return rpb.DecodeSearchIndexGetResp(payload)
}

// GetSearchIndex fetches one search index by name. The server answers an
// unknown name with an error response.
func (c *Client) GetSearchIndex(name string) (*rpb.SearchIndex, error) {
	if name == "" {
		return nil, &rpb.RequestError{Op: "get-search-index", Reason: "missing index name"}
	}
	payload, err := c.exchange("get-search-index",
		rpb.MsgYokozunaIndexGetReq, rpb.MsgYokozunaIndexGetResp, rpb.EncodeSearchIndexGetReq(name))
	if err != nil {
		return nil, err
	}
	indexes, err := rpb.DecodeSearchIndexGetResp(payload)
	if err != nil {
		return nil, err
	}
	if len(indexes) == 0 {
		return nil, &ServerError{Message: "index " + name + " not found"}
	}
	return &indexes[0], nil
}

// PutSearchIndex creates or updates a search index. Index creation is
// asynchronous on the server; timeout bounds how long it may take before
// the server reports failure, in milliseconds.
func (c *Client) PutSearchIndex(idx rpb.SearchIndex, timeout uint32) error {
	if timeout == 0 {
		timeout = c.cfg.RequestTimeoutMS
	}
	body, err := rpb.EncodeSearchIndexPutReq(idx, timeout)
	if err != nil {
		return err
	}
	_, err = c.exchange("put-search-index",
		rpb.MsgYokozunaIndexPutReq, rpb.MsgPutResp, body)
	return err
}

// DeleteSearchIndex removes a search index.
func (c *Client) DeleteSearchIndex(name string) error {
	body, err := rpb.EncodeSearchIndexDeleteReq(name)
	if err != nil {
		return err
	}
	_, err = c.exchange("delete-search-index",
		rpb.MsgYokozunaIndexDeleteReq, rpb.MsgDelResp, body)
	return err
}

// GetSearchSchema fetches one schema document by name.
func (c *Client) GetSearchSchema(name string) (*rpb.SearchSchema, error) {
	body, err := rpb.EncodeSearchSchemaGetReq(name)
	if err != nil {
		return nil, err
	}
	payload, err := c.exchange("get-search-schema",
		rpb.MsgYokozunaSchemaGetReq, rpb.MsgYokozunaSchemaGetResp, body)
	if err != nil {
		return nil, err
	}
	return rpb.DecodeSearchSchemaGetResp(payload)
}

// PutSearchSchema uploads a schema document.
func (c *Client) PutSearchSchema(schema rpb.SearchSchema) error {
	body, err := rpb.EncodeSearchSchemaPutReq(schema)
	if err != nil {
		return err
	}
	_, err = c.exchange("put-search-schema",
		rpb.MsgYokozunaSchemaPutReq, rpb.MsgPutResp, body)
	return err
}
