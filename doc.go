// Package riak is a client for the Riak protocol-buffers API. One Client
// holds one TCP connection and runs strictly alternating request/response
// exchanges on it; streaming listings deliver their pages on the same
// connection.
//
// Framing, field codecs, and message schemas live in internal/frame,
// internal/wire, and rpb. Value types live in object and bucket.
//
// A connection that loses its transport or its frame alignment is marked
// broken and refuses further I/O; server-reported errors and schema
// violations leave it usable.
package riak
