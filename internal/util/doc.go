// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the other packages.
//
// # Key Functions
//
//   - StringWidth, TruncateWidth, PadRight: display-width aware text
//   - IntToString: numeric to string conversion
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
package util
