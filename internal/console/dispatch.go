// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"strings"
)

// =============================================================================
// DETAILS FORMAT
// =============================================================================

// Details appends the help entry for n to sb. Properties render as
//
//	path: current (Default: default)
//		description
//
// and actions as "path args:" followed by the description. Lists write
// nothing; their children carry the full path.
func Details(sb *strings.Builder, path string, n Node) {
	switch n := n.(type) {
	case *Property:
		sb.WriteString(path + ": " + n.Get() + " (Default: " + n.Default() + ")\n\t" + n.Description() + "\n")
	case *Action:
		args, text := n.Usage()
		sb.WriteString(path)
		if args != "" {
			sb.WriteString(" " + args)
		}
		sb.WriteString(":\n\t" + text + "\n")
	case *List:
	}
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Get formats the property at path.
func Get(root Visitor, path string, out Sink) Result {
	if p, ok := lookupProperty(root, path, out); ok {
		return Ok(p.Get())
	}
	return Fail(ErrUnknownProperty)
}

// Set parses val into the property at path. A value that does not parse
// leaves the property unchanged.
func Set(root Visitor, path, val string, out Sink) Result {
	p, ok := lookupProperty(root, path, out)
	if !ok {
		return Fail(ErrUnknownProperty)
	}
	return set(p, val)
}

func set(p *Property, val string) Result {
	if err := p.Set(val); err != nil {
		return Fail(Invalid(err.Error()))
	}
	return Ok("")
}

// Call invokes the action at path with args.
func Call(root Visitor, path string, args []string, out Sink) Result {
	n, ok := Lookup(root, path, out)
	if !ok {
		return Fail(ErrUnknownCommand)
	}
	a, ok := n.(*Action)
	if !ok {
		return Fail(ErrUnknownCommand)
	}
	return a.invoke(path, args, out)
}

// Reset restores the property at path to its default.
func Reset(root Visitor, path string, out Sink) Result {
	p, ok := lookupProperty(root, path, out)
	if !ok {
		return Fail(ErrUnknownProperty)
	}
	p.Reset()
	return Ok("")
}

// ResetAll restores every property in the tree.
func ResetAll(root Visitor, out Sink) Result {
	Walk(root, out, func(_ string, n Node) {
		if p, ok := n.(*Property); ok {
			p.Reset()
		}
	})
	return Ok("OK")
}

// Find reports every node whose path satisfies filter. The walk is never
// cut short, so every match is listed.
func Find(root Visitor, filter func(path string) bool, out Sink) Result {
	var sb strings.Builder
	Walk(root, out, func(path string, n Node) {
		if filter(path) {
			Details(&sb, path, n)
		}
	})
	if sb.Len() == 0 {
		return Fail(ErrNoResults)
	}
	return Ok(sb.String())
}

// Help describes the node at name. For a list, all of its contents are
// described.
func Help(root Visitor, name string, out Sink) Result {
	n, ok := Lookup(root, name, out)
	if !ok {
		return Fail(ErrUnknownProperty)
	}
	if _, isList := n.(*List); isList {
		return listing(root, name, out)
	}
	var sb strings.Builder
	Details(&sb, name, n)
	return Ok(sb.String())
}

// Classify returns what Dispatch would do with name. A name with no node of
// its own but with nodes beneath it, such as "a" for a flat "a.b", is a list.
func Classify(root Visitor, name string, out Sink) Kind {
	n, namespace := resolve(root, name, out)
	switch {
	case n != nil:
		return n.Kind()
	case namespace:
		return KindList
	}
	return KindNotFound
}

// =============================================================================
// DISPATCH
// =============================================================================

// Dispatch resolves name and runs the matching operation:
//
//	property, no args   get
//	property, args      set from the first argument
//	action              call with args
//	list / namespace    describe everything beneath it
//	nothing             Unknown command
func Dispatch(root Visitor, name string, args []string, out Sink) Result {
	n, namespace := resolve(root, name, out)
	if n == nil {
		if namespace {
			return listing(root, name, out)
		}
		return Fail(ErrUnknownCommand)
	}

	switch n := n.(type) {
	case *Property:
		if len(args) == 0 {
			return Ok(n.Get())
		}
		return set(n, args[0])
	case *Action:
		return n.invoke(name, args, out)
	case *List:
		return listing(root, name, out)
	}
	return Fail(ErrUnknownCommand)
}

// Exec dispatches and writes the result to out.
func Exec(root Visitor, name string, args []string, out Sink) Result {
	res := Dispatch(root, name, args, out)
	out.WriteResult(res)
	return res
}

// =============================================================================
// HELPERS
// =============================================================================

func lookupProperty(root Visitor, path string, out Sink) (*Property, bool) {
	n, ok := Lookup(root, path, out)
	if !ok {
		return nil, false
	}
	p, ok := n.(*Property)
	return p, ok
}

func listing(root Visitor, name string, out Sink) Result {
	return Find(root, func(path string) bool { return inNamespace(path, name) }, out)
}

// resolve finds the node at name in a single walk. When there is none it
// also reports whether any path lies beneath name. An exact match wins over
// a namespace seen earlier.
func resolve(root Visitor, name string, out Sink) (found Node, namespace bool) {
	if name == "" {
		return nil, false
	}
	walk(root, "", out, func(path string, n Node) bool {
		if found != nil {
			return false
		}
		if path == name {
			found = n
			return false
		}
		if inNamespace(path, name) {
			namespace = true
			return false
		}
		return strings.HasPrefix(name, path+".")
	})
	return found, namespace
}
