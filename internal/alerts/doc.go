// Package alerts evaluates threshold rules against derived snapshots.
//
// Conditions are simple "field op value" expressions over snapshot fields
// (engine_rpm, speed_mph, slip_pct, state, ...). A rule that fires enters
// the active set, respects a per-rule cooldown, and resolves automatically
// when a later snapshot no longer matches. Fire and resolve events are
// delivered to slack or generic HTTP webhooks asynchronously.
package alerts
