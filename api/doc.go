// Package api serves preset listing and configuration resolution over HTTP.
//
// Routes:
//
//	GET  /presets         every preset available by name
//	GET  /presets/{name}  the preset document with inheritance applied
//	POST /resolve         a validated configuration for a project
//
// Presets are looked up by name only; file paths are never read on behalf of
// a client. Errors use the envelope written by middleware.WriteError.
package api
