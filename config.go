package riak

import "time"

// Config defines transport and session defaults for a client connection.
type Config struct {
	// DialTimeout bounds the TCP connect.
	DialTimeout time.Duration

	// ReadTimeout and WriteTimeout bound each frame read and write. They
	// are applied per exchange, not per connection lifetime. Zero disables
	// the deadline.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MaxMessageBytes caps the declared length of any single frame, in
	// either direction. Zero means no cap.
	MaxMessageBytes uint32

	// RequestTimeoutMS, when nonzero, is stamped into requests that carry
	// a server-side timeout field and did not set one themselves.
	RequestTimeoutMS uint32
}

// DefaultConfig returns the defaults used by Dial.
func DefaultConfig() Config {
	return Config{
		DialTimeout:     5 * time.Second,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		MaxMessageBytes: 64 << 20,
	}
}

// WithDefaults fills zero-valued timeouts from DefaultConfig. Explicit
// zero limits stay zero: a caller that wants no frame cap keeps none.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.DialTimeout == 0 {
		c.DialTimeout = d.DialTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	return c
}
