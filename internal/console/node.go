// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"fmt"
	"strings"
)

// =============================================================================
// NODE KINDS
// =============================================================================

// Kind classifies what a command name resolves to.
type Kind int

const (
	KindNotFound Kind = iota // Nothing matches the name
	KindProperty             // Gettable/settable value
	KindAction               // Invokable command
	KindList                 // Namespace of further nodes
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindAction:
		return "action"
	case KindList:
		return "list"
	default:
		return "not found"
	}
}

// Node is the unit emitted by a Visitor. The concrete type is always one of
// *Property, *Action or *List; callers switch on it.
type Node interface {
	Name() string
	Description() string
	Kind() Kind

	sealed()
}

// =============================================================================
// PROPERTY
// =============================================================================

// Property is a named value that can be read, parsed from text and reset to
// the default it was constructed with.
type Property struct {
	name        string
	description string

	get   func() string
	def   func() string
	set   func(string) error
	reset func()
}

// NewProperty binds ptr to a property. def is the value Reset restores and
// is captured by the caller, normally when the owner was constructed.
func NewProperty[T any](name, description string, ptr *T, def T, codec Codec[T]) *Property {
	return &Property{
		name:        name,
		description: description,
		get:         func() string { return codec.Format(*ptr) },
		def:         func() string { return codec.Format(def) },
		set: func(s string) error {
			v, err := codec.Parse(s)
			if err != nil {
				return err
			}
			*ptr = v
			return nil
		},
		reset: func() { *ptr = def },
	}
}

// Prop binds a scalar field using the built-in codec for its type.
func Prop[T Scalar](name, description string, ptr *T, def T) *Property {
	return NewProperty(name, description, ptr, def, ScalarCodec[T]())
}

// TextProp binds a field whose pointer implements encoding.TextUnmarshaler.
func TextProp[T any, P TextPointer[T]](name, description string, ptr P, def T) *Property {
	return NewProperty(name, description, (*T)(ptr), def, TextCodec[T, P]())
}

// VarProp binds a flag.Value style value. Reset sets def again; a def the
// value rejects leaves it unchanged.
func VarProp(name, description string, v Value, def string) *Property {
	return &Property{
		name:        name,
		description: description,
		get:         v.String,
		def:         func() string { return def },
		set:         v.Set,
		reset:       func() { _ = v.Set(def) },
	}
}

func (p *Property) Name() string        { return p.name }
func (p *Property) Description() string { return p.description }
func (p *Property) Kind() Kind          { return KindProperty }
func (p *Property) sealed()             {}

// Get formats the current value.
func (p *Property) Get() string { return p.get() }

// Default formats the value Reset restores.
func (p *Property) Default() string { return p.def() }

// Set parses s and stores it. On error the stored value is untouched.
func (p *Property) Set(s string) error { return p.set(s) }

// Reset restores the default.
func (p *Property) Reset() { p.reset() }

// =============================================================================
// ACTION
// =============================================================================

// ActionFunc runs an action. out is the sink for any text the action writes
// while it runs; the returned Result is rendered after it.
type ActionFunc func(args []string, out Sink) Result

// Action is a named command taking string arguments.
type Action struct {
	name        string
	description string
	fn          ActionFunc
}

// NewAction creates an action. When description has more than one line the
// first line is shown as the argument hint, e.g. "<name>\nGreet someone".
func NewAction(name, description string, fn ActionFunc) *Action {
	return &Action{name: name, description: description, fn: fn}
}

func (a *Action) Name() string        { return a.name }
func (a *Action) Description() string { return a.description }
func (a *Action) Kind() Kind          { return KindAction }
func (a *Action) sealed()             {}

// Usage splits the description into the argument hint and the help text.
func (a *Action) Usage() (args, text string) {
	first, rest, ok := strings.Cut(a.description, "\n")
	if !ok || rest == "" {
		return "", first
	}
	return first, rest
}

// invoke runs the action found at path. A panicking handler is reported as
// a Custom error naming path.
func (a *Action) invoke(path string, args []string, out Sink) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Fail(Custom(fmt.Sprintf("panic in %s: %v", path, r)))
		}
	}()
	if a.fn == nil {
		return Fail(ErrUnimplemented)
	}
	return a.fn(args, out)
}

// =============================================================================
// LIST
// =============================================================================

// List is a namespace. Its children are visited with the list name and a dot
// prepended to their paths.
type List struct {
	name        string
	description string
	children    Visitor
}

// NewList wraps a child visitor under name.
func NewList(name, description string, children Visitor) *List {
	return &List{name: name, description: description, children: children}
}

func (l *List) Name() string        { return l.name }
func (l *List) Description() string { return l.description }
func (l *List) Kind() Kind          { return KindList }
func (l *List) sealed()             {}

// Children returns the visitor for the list's contents.
func (l *List) Children() Visitor { return l.children }
