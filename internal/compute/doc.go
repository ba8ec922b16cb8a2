// Package compute derives vehicle state from raw drivetrain telemetry.
//
// derive.go provides the pure Derive(Profile, Input) function: road speed
// from output shaft speed through tire and axle geometry, horsepower from
// torque × rpm / 5250, gear estimation from the observed rpm/oss ratio, and
// torque converter slip.
//
// engine.go provides the stateful Engine that tracks the previous reading
// per vehicle and derives acceleration from consecutive speed samples.
// Engine.Process accepts an injectable time.Time so tests are deterministic.
//
// Engine states: redline at or above the profile's redline rpm, high at 90%
// of it, normal below, unknown when the engine reports 0 rpm.
package compute
