// Package api serves the JSON API over the live snapshot store, the alert
// engine and the optional history backend, plus the HTTP ingest endpoint
// and the Prometheus /metrics handler.
//
// All read endpoints are GET; POST /api/v1/ingest optionally requires an
// X-API-Key header. Responses for vehicles use the same VehicleResponse
// shape the WebSocket hub broadcasts.
package api
