// Package api exposes the print service over HTTP. Handlers decode and
// validate JSON requests, run one print job each, and translate the outcome
// into a JSON status or error body.
package api
