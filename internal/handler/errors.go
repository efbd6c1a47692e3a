// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// ErrNoHandlersAreCreated is returned by NewHandlers when the bridge has no
// listen address configured. The client app treats it as "bridge disabled".
var ErrNoHandlersAreCreated = errors.New("no handlers are created")
