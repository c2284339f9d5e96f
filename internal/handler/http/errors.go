// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrNoToken is returned by the auth middleware when neither the
	// "Authorization" header nor the "token" cookie carries a token.
	ErrNoToken = errors.New("no token")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrAccessDenied is returned when an authenticated caller lacks the
	// role required by a route.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidMultipart is returned when an upload is not a readable
	// multipart form.
	ErrInvalidMultipart = errors.New("invalid multipart form")

	// ErrIntegrityCheckFailed is returned when the HashSHA256 header does not
	// match the uploaded bytes.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	// ErrInvalidUserID is returned for non-numeric user id path parameters.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrRouteNotFound is returned for unknown paths and unsupported methods.
	ErrRouteNotFound = errors.New("route not found")
)
