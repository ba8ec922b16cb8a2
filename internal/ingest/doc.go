// Package ingest receives raw telemetry samples and hands them to a Sink.
//
// Two transports share the Sample wire type: a UDP listener decoding
// msgpack frames (one datagram may hold several back-to-back samples), and
// the JSON body of POST /api/v1/ingest served by internal/api. Decode and
// Encode are exported so senders and tests use the same framing.
package ingest
