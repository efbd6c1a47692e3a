// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package livedata provides observable value holders used to expose SDK
// state (connection status, unread counters, current user) to a UI layer.
//
// A [Mutable] holds the latest posted value and notifies observers on every
// Post. UI code only sees the read-only [LiveData] view. Observers may be
// plain callbacks ([LiveData.Observe]) or channels ([LiveData.Subscribe]).
package livedata
