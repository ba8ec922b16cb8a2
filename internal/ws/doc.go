// Package ws provides the WebSocket streaming endpoint. A Hub broadcasts the
// current fleet snapshot to every connected client on a fixed interval, and
// sends one snapshot immediately on connect.
package ws
