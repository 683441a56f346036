// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console exposes the properties and actions of an object tree
// through a text command interface.
//
// Objects implement Visitor and report their nodes to a callback on every
// traversal. Nothing is registered ahead of time: the tree is rediscovered
// for each command, so it always reflects the objects as they are.
//
// # Key Types
//
//   - Node: *Property, *Action or *List
//   - Visitor: enumerates nodes; VisitFunc adapts a closure
//   - Result: success text or an *Error
//   - Sink: output for actions; Buffer collects colored TextSpans
//
// # Commands
//
// A line is a name followed by arguments separated by single spaces.
// Dispatch decides what to do from the node the name resolves to:
//
//	arena.width          get the property
//	arena.width 150      set it
//	color_test           call the action
//	arena                describe the list's contents
//
// # Usage
//
//	type Arena struct{ Width float64 }
//
//	func (a *Arena) Visit(f func(console.Node), out console.Sink) {
//	    f(console.Prop("width", "Arena width", &a.Width, 100))
//	}
//
//	buf := console.NewBuffer()
//	cmd := console.Parse("width 150")
//	console.Exec(arena, cmd.Name, cmd.Args, buf)
package console
