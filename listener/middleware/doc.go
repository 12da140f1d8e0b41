// Package middleware holds the HTTP middleware of the presetkit API. Every
// error response written here uses the same JSON envelope as the API
// handlers, see WriteError.
package middleware
