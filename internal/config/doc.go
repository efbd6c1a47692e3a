// Package config loads, merges and validates the chat client configuration.
//
// Sources, later non-zero values winning:
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// The main entry points are [GetClientConfig] and [LoadClientConfig].
package config
