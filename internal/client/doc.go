// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the chat client application runtime.
//
// It connects the configured user, restores the persisted sync state and
// runs the dashboard, the optional control bridge and the background sync
// job as one group of workers sharing a single context.
package client
