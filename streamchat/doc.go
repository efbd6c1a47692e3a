// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package streamchat is the entry point of the chat SDK.
//
// A [Client] connects one user to the chat backend and exposes the
// connection status, the unread counters and the current user as
// [livedata.LiveData] holders a UI can observe. Platform lifecycle
// transitions (foreground/background) pause and resume the socket once a
// user has been connected.
//
// Hosts that prefer explicit wiring build a client with [NewClient] and pass
// it around. Hosts that want a process-wide client call [Init] once and
// fetch it later with [Instance] or [MustInstance].
//
//	streamchat.Init("api-key", streamchat.Options{}, streamchat.SignalPlatform())
//	client := streamchat.MustInstance()
//	res := <-client.ConnectUser(ctx, models.User{ID: "jc"}, token)
package streamchat
