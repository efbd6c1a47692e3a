// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks chat domain values before they reach the
// backend or the local store.
//
// A Validator validates one value, optionally restricted to a subset of
// field names:
//
//	v := validators.NewChatValidator()
//	err := v.Validate(ctx, user, validators.FieldUserID)
package validators

import "context"

// Validator validates the provided input and optionally restricts
// validation to specific named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
