// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sheet-viz command-line client.
//
// The command tree is built with cobra. Every command talks to the server
// through an [adapter.ServerAdapter] created from the client configuration
// and the global flags, and prints JSON (or plain text for scalars) to
// stdout. Diagnostics go to stderr through the console logger.
package client
