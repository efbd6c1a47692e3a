// Package http implements the local control bridge of the chat client.
//
// The bridge lets the host platform report lifecycle transitions and read
// the observable chat state over HTTP. Request tracing, access logging and
// an optional bearer token check run as middleware before the handlers
// reach the chat service.
package http
