// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package values reads and writes TOML files of console property values.
//
// A values file maps property paths to values. Tables nest the way
// console lists do, so
//
//	[arena]
//	width = 150
//
// sets arena.width. Dotted keys and quoted keys address the same paths.
package values

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/devconsole/internal/console"
	"github.com/jeranaias/devconsole/internal/util"
)

// Assignment is one property value read from a file.
type Assignment struct {
	Path  string
	Value string
}

// =============================================================================
// READING
// =============================================================================

// Decode reads a values document.
func Decode(r io.Reader) ([]Assignment, error) {
	tree := make(map[string]any)
	if _, err := toml.NewDecoder(r).Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	return Flatten(tree)
}

// ReadFile reads a values file.
func ReadFile(path string) ([]Assignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Flatten turns a decoded TOML tree into assignments sorted by path.
// Arrays and inline arrays of tables have no property equivalent and are
// rejected.
func Flatten(tree map[string]any) ([]Assignment, error) {
	var out []Assignment
	if err := flatten("", tree, &out); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func flatten(prefix string, tree map[string]any, out *[]Assignment) error {
	for key, v := range tree {
		path := prefix + key
		switch v := v.(type) {
		case map[string]any:
			if err := flatten(path+".", v, out); err != nil {
				return err
			}
		default:
			text, err := format(v)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			*out = append(*out, Assignment{Path: path, Value: text})
		}
	}
	return nil
}

func format(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	}
	return "", fmt.Errorf("unsupported value type %T", v)
}

// =============================================================================
// APPLYING
// =============================================================================

// Apply sets each assignment on root in order. Failures do not stop the
// rest; each is returned as an error naming its path.
func Apply(root console.Visitor, as []Assignment, out console.Sink) (applied int, errs []error) {
	for _, a := range as {
		res := console.Set(root, a.Path, a.Value, out)
		if err := res.Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a.Path, err))
			continue
		}
		applied++
	}
	return applied, errs
}

// =============================================================================
// WRITING
// =============================================================================

// Snapshot returns the current value of every property under root as a
// nested tree ready for encoding. A path that is both a value and a table,
// such as "a" next to "a.b", is kept as a quoted top-level key instead.
func Snapshot(root console.Visitor) map[string]any {
	var props []Assignment
	console.Walk(root, console.Discard, func(path string, n console.Node) {
		if p, ok := n.(*console.Property); ok {
			props = append(props, Assignment{Path: path, Value: p.Get()})
		}
	})

	tree := make(map[string]any)
	for _, a := range props {
		if insert(tree, strings.Split(a.Path, "."), typed(a.Value)) {
			continue
		}
		if sub, isTable := tree[a.Path].(map[string]any); isTable {
			spill(tree, a.Path, sub)
		}
		tree[a.Path] = typed(a.Value)
	}
	return tree
}

// spill replaces the table at key with quoted top-level keys so key can
// hold a plain value.
func spill(tree map[string]any, key string, sub map[string]any) {
	delete(tree, key)
	as, err := Flatten(sub)
	if err != nil {
		return
	}
	for _, a := range as {
		tree[key+"."+a.Path] = typed(a.Value)
	}
}

// insert places v at keys, refusing to overwrite an existing value or
// table of the other shape.
func insert(tree map[string]any, keys []string, v any) bool {
	for i, k := range keys {
		if i == len(keys)-1 {
			if _, exists := tree[k]; exists {
				return false
			}
			tree[k] = v
			return true
		}
		next, exists := tree[k]
		if !exists {
			sub := make(map[string]any)
			tree[k] = sub
			tree = sub
			continue
		}
		sub, ok := next.(map[string]any)
		if !ok {
			return false
		}
		tree = sub
	}
	return false
}

// typed converts text back to a TOML number or bool when doing so reads
// back as the same text, so files stay natural to edit.
func typed(text string) any {
	if b, err := strconv.ParseBool(text); err == nil && strconv.FormatBool(b) == text {
		return b
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil && strconv.FormatInt(i, 10) == text {
		return i
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && strconv.FormatFloat(f, 'g', -1, 64) == text {
		return f
	}
	return text
}

// Encode writes a snapshot as TOML.
func Encode(w io.Writer, tree map[string]any) error {
	return toml.NewEncoder(w).Encode(tree)
}

// WriteFile writes the snapshot of root to path atomically.
func WriteFile(path string, root console.Visitor) (int, error) {
	tree := Snapshot(root)
	var sb strings.Builder
	if err := Encode(&sb, tree); err != nil {
		return 0, fmt.Errorf("encode values: %w", err)
	}
	if err := util.AtomicWriteFile(filepath.Clean(path), []byte(sb.String()), 0644); err != nil {
		return 0, err
	}
	return count(tree), nil
}

func count(tree map[string]any) int {
	n := 0
	for _, v := range tree {
		if sub, ok := v.(map[string]any); ok {
			n += count(sub)
			continue
		}
		n++
	}
	return n
}
