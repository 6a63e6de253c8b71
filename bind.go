package docopt

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/napalu/docopt/internal/util"
)

const bindTag = "docopt"

var valueType = reflect.TypeOf(Value{})

// Bind copies the bindings into the struct dst points to. A field is bound to the
// name given in its `docopt:"name"` tag, or else to the name whose words match the
// field name: "--dry-run", "<dry-run>" and "DRY_RUN" all bind field DryRun. When
// several names map to the same field the first in sorted order is used. Fields
// tagged `docopt:"-"`, unexported fields and fields matching no name are left
// untouched, as are fields whose name is bound to an absent value.
//
// Flags and commands bind to bool fields, counted ones to bool or integer fields.
// Text values are converted to the field's type, lists to slices. Pointer fields
// are allocated when a value is bound. Fields of type Value receive the binding
// as is. dst may be a pointer to a pointer to a struct.
func (o Opts) Bind(dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer {
		return fmt.Errorf("%w: got %T", ErrBindTarget, dst)
	}
	target, err := util.UnwrapValue(rv)
	if err != nil || target.Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %T", ErrBindTarget, dst)
	}
	st := target.Type()

	byField := map[string]string{}
	for _, key := range o.Keys() {
		field := FieldName(key)
		if _, taken := byField[field]; !taken {
			byField[field] = key
		}
	}

	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		if !sf.IsExported() {
			continue
		}
		key, tagged := sf.Tag.Lookup(bindTag)
		if key == "-" {
			continue
		}
		if !tagged {
			var found bool
			if key, found = byField[sf.Name]; !found {
				continue
			}
		}
		v, found := o[key]
		if !found {
			return fmt.Errorf("%w: %s (tag of field %s)", ErrKeyNotFound, key, sf.Name)
		}
		if err := assign(target.Field(i), v, key); err != nil {
			return err
		}
	}

	return nil
}

// FieldName converts an option, argument or command name into the Go field name
// Bind matches it with: decorations are stripped and the words camel-cased.
func FieldName(key string) string {
	name := strings.TrimLeft(key, "-")
	name = strings.TrimSuffix(strings.TrimPrefix(name, "<"), ">")

	return strcase.ToCamel(strings.ToLower(name))
}

func assign(field reflect.Value, v Value, key string) error {
	if field.Type() == valueType {
		field.Set(reflect.ValueOf(v))
		return nil
	}
	if v.IsAbsent() {
		return nil
	}
	if field.Kind() == reflect.Pointer {
		elem := reflect.New(field.Type().Elem())
		if err := assign(elem.Elem(), v, key); err != nil {
			return err
		}
		field.Set(elem)
		return nil
	}

	ptr := field.Addr().Interface()
	if field.Kind() == reflect.Slice {
		switch v.Kind() {
		case List, Text:
			return util.ConvertList(v.AsList(), ptr, key)
		}
		return wrongType(key, v, field.Type().String())
	}

	var text string
	switch v.Kind() {
	case Text:
		text = v.AsText()
	case Boolean:
		text = strconv.FormatBool(v.AsBool())
	case Count:
		if field.Kind() == reflect.Bool {
			text = strconv.FormatBool(v.AsBool())
		} else {
			text = strconv.Itoa(v.AsCount())
		}
	case List:
		return wrongType(key, v, field.Type().String())
	}

	return util.ConvertString(text, ptr, key)
}
