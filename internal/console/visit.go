// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import "strings"

// Visitor is implemented by anything that exposes nodes to the console.
// Visit calls f once per property, action or list it owns and passes f and
// out unchanged to child visitors. It must not retain f or out.
type Visitor interface {
	Visit(f func(Node), out Sink)
}

// VisitFunc lets a closure act as a Visitor, so a tree can be extended with
// extra nodes without changing the types it is built from.
type VisitFunc func(f func(Node), out Sink)

// Visit calls fn.
func (fn VisitFunc) Visit(f func(Node), out Sink) { fn(f, out) }

// Nodes is a fixed set of nodes.
type Nodes []Node

// Visit emits every node in order.
func (ns Nodes) Visit(f func(Node), _ Sink) {
	for _, n := range ns {
		f(n)
	}
}

// Chain visits each visitor in turn as one tree.
func Chain(vs ...Visitor) Visitor {
	return VisitFunc(func(f func(Node), out Sink) {
		for _, v := range vs {
			if v != nil {
				v.Visit(f, out)
			}
		}
	})
}

// =============================================================================
// TRAVERSAL
// =============================================================================

// walkFunc is called with each node's canonical path. For lists, the return
// value decides whether the walk descends into the children.
type walkFunc func(path string, n Node) bool

func walk(v Visitor, prefix string, out Sink, fn walkFunc) {
	v.Visit(func(n Node) {
		path := prefix + n.Name()
		descend := fn(path, n)
		if l, ok := n.(*List); ok && descend && l.children != nil {
			walk(l.children, path+".", out, fn)
		}
	}, out)
}

// Walk calls fn for every node reachable from root, depth first in emission
// order. A list is reported before its children.
func Walk(root Visitor, out Sink, fn func(path string, n Node)) {
	walk(root, "", out, func(path string, n Node) bool {
		fn(path, n)
		return true
	})
}

// Lookup finds the node whose path is exactly path. Lists are only entered
// when path lies beneath them, and the first match wins.
func Lookup(root Visitor, path string, out Sink) (Node, bool) {
	var found Node
	walk(root, "", out, func(p string, n Node) bool {
		if found != nil {
			return false
		}
		if p == path {
			found = n
			return false
		}
		return strings.HasPrefix(path, p+".")
	})
	return found, found != nil
}

// Paths lists every node path in traversal order.
func Paths(root Visitor) []string {
	var paths []string
	Walk(root, Discard, func(path string, _ Node) {
		paths = append(paths, path)
	})
	return paths
}

// Duplicates returns paths emitted more than once, in the order they were
// first seen. Lookup resolves a duplicate to its first occurrence.
func Duplicates(root Visitor) []string {
	seen := make(map[string]int)
	var dups []string
	Walk(root, Discard, func(path string, _ Node) {
		seen[path]++
		if seen[path] == 2 {
			dups = append(dups, path)
		}
	})
	return dups
}

// inNamespace reports whether path lies beneath name.
func inNamespace(path, name string) bool {
	return strings.HasPrefix(path, name+".")
}
