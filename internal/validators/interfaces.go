// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request models before they reach the services.
//
// A single [Validator] dispatches on the dynamic type of its input and can be
// scoped to a subset of fields, so one model can be checked differently in
// different flows (registration and login share [models.Credentials]).
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
