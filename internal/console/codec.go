// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Codec converts a property value to and from a single argument token.
type Codec[T any] interface {
	Parse(s string) (T, error)
	Format(v T) string
}

// Value is the flag.Value contract, accepted by VarProp.
type Value interface {
	String() string
	Set(string) error
}

// Scalar lists the types Prop understands without an explicit codec.
type Scalar interface {
	~string | ~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// TextPointer is satisfied by *T when T round-trips through text.
type TextPointer[T any] interface {
	*T
	encoding.TextMarshaler
	encoding.TextUnmarshaler
}

// CodecFunc adapts a pair of functions to Codec.
type CodecFunc[T any] struct {
	ParseFunc  func(string) (T, error)
	FormatFunc func(T) string
}

func (c CodecFunc[T]) Parse(s string) (T, error) { return c.ParseFunc(s) }
func (c CodecFunc[T]) Format(v T) string         { return c.FormatFunc(v) }

// =============================================================================
// SCALAR CODEC
// =============================================================================

var durationType = reflect.TypeOf(time.Duration(0))

type scalarCodec[T Scalar] struct{}

// ScalarCodec returns the codec Prop uses for T. time.Duration is an int64
// underneath and is special-cased to use its own text form.
func ScalarCodec[T Scalar]() Codec[T] {
	var zero T
	if reflect.TypeOf(zero) == durationType {
		return any(durationCodec{}).(Codec[T])
	}
	return scalarCodec[T]{}
}

// Parse converts s by the kind of T, so named types such as
// `type Mode string` work the same as their underlying type.
func (scalarCodec[T]) Parse(s string) (T, error) {
	var v T
	rv := reflect.ValueOf(&v).Elem()

	switch rv.Kind() {
	case reflect.String:
		rv.SetString(s)
	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return v, err
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, rv.Type().Bits())
		if err != nil {
			return v, err
		}
		rv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 10, rv.Type().Bits())
		if err != nil {
			return v, err
		}
		rv.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, rv.Type().Bits())
		if err != nil {
			return v, err
		}
		rv.SetFloat(f)
	default:
		return v, fmt.Errorf("unsupported kind %s", rv.Kind())
	}
	return v, nil
}

// Format uses the shortest representation that parses back to the same
// value, so a float 100.0 displays as "100".
func (scalarCodec[T]) Format(v T) string {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits())
	}
	return fmt.Sprint(v)
}

// parseBool accepts the forms strconv does plus yes/no and on/off.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// =============================================================================
// DURATION AND TEXT CODECS
// =============================================================================

type durationCodec struct{}

func (durationCodec) Parse(s string) (time.Duration, error) { return time.ParseDuration(s) }
func (durationCodec) Format(d time.Duration) string          { return d.String() }

type textCodec[T any, P TextPointer[T]] struct{}

// TextCodec returns a codec built on MarshalText/UnmarshalText.
func TextCodec[T any, P TextPointer[T]]() Codec[T] {
	return textCodec[T, P]{}
}

func (textCodec[T, P]) Parse(s string) (T, error) {
	var v T
	if err := P(&v).UnmarshalText([]byte(s)); err != nil {
		return v, err
	}
	return v, nil
}

func (textCodec[T, P]) Format(v T) string {
	b, err := P(&v).MarshalText()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(b)
}
