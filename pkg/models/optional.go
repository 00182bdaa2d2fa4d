package models

import (
	"bytes"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-json"
)

var (
	jsonNull = []byte("null")

	cborNull      = []byte{0xf6}
	cborUndefined = []byte{0xf7}
)

// Optional is a value that may be absent.
//
// The zero Optional is absent. Decoders mark it present whenever the field appears in the
// input, including explicit false, 0 and "". An explicit null marks it present only when T can
// hold nil (pointers, maps, slices, interfaces); for other types null counts as absent because
// the value cannot be cleared.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the value is present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// IsZero reports whether the value is absent.
func (o Optional[T]) IsZero() bool {
	return !o.set
}

// OrElse returns the value if present and fallback otherwise.
func (o Optional[T]) OrElse(fallback T) T {
	if o.set {
		return o.value
	}
	return fallback
}

// MarshalJSON encodes an absent value as null. Structs holding Optional fields leave absent
// fields out instead, see [UpdateUserInput.MarshalJSON].
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return jsonNull, nil
	}
	return json.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		o.setNull()
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.value, o.set = v, true
	return nil
}

func (o Optional[T]) MarshalCBOR() ([]byte, error) {
	if !o.set {
		return cborNull, nil
	}
	return cbor.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalCBOR(data []byte) error {
	if bytes.Equal(data, cborNull) || bytes.Equal(data, cborUndefined) {
		o.setNull()
		return nil
	}

	var v T
	if err := cbor.Unmarshal(data, &v); err != nil {
		return err
	}
	o.value, o.set = v, true
	return nil
}

func (o *Optional[T]) setNull() {
	var zero T
	o.value = zero
	o.set = canBeNil[T]()
}

func canBeNil[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return true
	default:
		return false
	}
}

// putField adds the value of o to m under key when it is present.
func putField[T any](m map[string]any, key string, o Optional[T]) {
	if v, ok := o.Get(); ok {
		m[key] = v
	}
}
