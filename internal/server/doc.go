// Package server runs the local bridge HTTP server and shuts it down
// gracefully when the client app stops.
package server
