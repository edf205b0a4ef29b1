// Package api provides the HTTP handlers for the service review API and
// the single translation layer from internal errors to HTTP responses.
package api
