// Package config loads, validates and hot-reloads the drivelined YAML
// configuration: listener ports, vehicle drivetrain profiles, alert rules
// and history settings.
//
// Secrets (ingest API key, webhook URLs) are never stored in the file;
// the config names environment variables and resolves them at read time.
// Watch uses fsnotify to re-Load the file on write and hands the validated
// result to the caller; a failed reload keeps the previous config.
package config
