// Package bucket holds the typed bucket property set. Properties the client
// does not model are carried opaquely in Raw so a set round-trips them
// untouched.
package bucket

// ModFun names an Erlang module/function pair used for commit hooks and
// key hashing properties.
type ModFun struct {
	Module   string
	Function string
}

// Props is the property set of a bucket or bucket type. All fields are
// optional; a nil pointer (or empty string) means "leave unchanged" on set
// and "not reported" on get.
type Props struct {
	NVal          *uint32
	AllowMult     *bool
	LastWriteWins *bool

	ChashKeyfun *ModFun

	OldVclock   *uint32
	YoungVclock *uint32
	BigVclock   *uint32
	SmallVclock *uint32

	PR *uint32
	R  *uint32
	W  *uint32
	PW *uint32
	DW *uint32
	RW *uint32

	BasicQuorum *bool
	NotfoundOK  *bool

	Backend     string
	Search      *bool
	SearchIndex string
	Datatype    string
	Consistent  *bool
	WriteOnce   *bool

	HLLPrecision *uint32
	TTL          *uint32

	// Raw is pre-encoded property fields this client does not model,
	// appended verbatim when the props are sent back to the server.
	Raw []byte
}

// Uint32 returns a pointer-optional for property values.
func Uint32(v uint32) *uint32 { return &v }

// Bool returns a pointer-optional for property values.
func Bool(v bool) *bool { return &v }
