// Package object holds the value types for stored objects: content with
// metadata, sibling sets, and the requests and responses that move them.
// It is pure data; encoding and network logic live elsewhere.
package object

// Pair is one key/value metadata entry.
type Pair struct {
	Key   []byte
	Value []byte
}

// Link is one typed link from an object to another bucket/key.
type Link struct {
	Bucket string
	Key    string
	Tag    string
}

// Content is a single stored value and its metadata. A fetched object may
// carry several Content entries when concurrent writes produced siblings;
// that is a first-class state, not an error.
//
// Optional scalars are pointers so "absent" and "zero" stay distinct.
type Content struct {
	Value []byte

	ContentType     string
	Charset         string
	ContentEncoding string
	Vtag            string

	Links    []Link
	UserMeta []Pair
	Indexes  []Pair

	LastMod      *uint32
	LastModUsecs *uint32
	Deleted      *bool
}

// NewContent constructs a Content carrying value and no metadata.
func NewContent(value []byte) *Content {
	return &Content{Value: value}
}

func (c *Content) SetContentType(ct string) *Content {
	c.ContentType = ct
	return c
}

func (c *Content) SetCharset(cs string) *Content {
	c.Charset = cs
	return c
}

func (c *Content) AddUserMeta(key, value []byte) *Content {
	c.UserMeta = append(c.UserMeta, Pair{Key: key, Value: value})
	return c
}

func (c *Content) AddLink(bucket, key, tag string) *Content {
	c.Links = append(c.Links, Link{Bucket: bucket, Key: key, Tag: tag})
	return c
}

// FetchRequest asks for one object by bucket and key.
type FetchRequest struct {
	Bucket string
	Key    string
	Type   string // bucket type, optional

	R             *uint32
	PR            *uint32
	BasicQuorum   *bool
	NotfoundOK    *bool
	IfModified    []byte // vclock: only return the object if it changed
	Head          bool
	DeletedVclock bool
	SloppyQuorum  *bool
	NVal          *uint32
	Timeout       uint32 // ms, 0 = server default
}

// FetchResponse is everything the server returned for a fetch: the sibling
// set, the causal token, and whether the key was absent. NotFound is set
// when the response carried neither content nor vclock, which is distinct
// from a present object with zero siblings.
type FetchResponse struct {
	Content   []Content
	Vclock    []byte
	Unchanged *bool
	NotFound  bool
}

// StoreRequest writes one object. Key may be empty, in which case the
// server assigns one and reports it in the StoreResponse.
type StoreRequest struct {
	Bucket  string
	Content Content
	Key     string
	Type    string

	// Vclock must be the token from the preceding fetch, byte for byte,
	// or absent for a first write.
	Vclock []byte

	W    *uint32
	DW   *uint32
	PW   *uint32
	NVal *uint32

	ReturnBody    bool
	ReturnHead    bool
	IfNotModified bool
	IfNoneMatch   bool
	Asis          bool
	SloppyQuorum  *bool
	Timeout       uint32
}

// StoreResponse reports the outcome of a store. Content and Vclock are only
// populated when the request asked for the body back.
type StoreResponse struct {
	Content []Content
	Vclock  []byte
	Key     string // server-assigned when the request omitted one
}

// DeleteRequest removes one object by bucket and key.
type DeleteRequest struct {
	Bucket string
	Key    string
	Type   string
	Vclock []byte

	RW           *uint32
	R            *uint32
	W            *uint32
	PR           *uint32
	PW           *uint32
	DW           *uint32
	NVal         *uint32
	SloppyQuorum *bool
	Timeout      uint32
}

// Uint32 returns a pointer-optional for request options.
func Uint32(v uint32) *uint32 { return &v }

// Bool returns a pointer-optional for request options.
func Bool(v bool) *bool { return &v }
