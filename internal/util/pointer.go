package util

import (
	"errors"
	"reflect"
)

var ErrNilPointer = errors.New("nil pointer encountered")

// UnwrapValue follows pointers until it reaches a non-pointer value.
func UnwrapValue(v reflect.Value) (reflect.Value, error) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, ErrNilPointer
		}
		v = v.Elem()
	}
	return v, nil
}
