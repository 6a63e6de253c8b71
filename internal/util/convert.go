package util

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

var (
	ErrUnsupportedTypeConversion = errors.New("unsupported type conversion")
	ErrConversion                = errors.New("conversion failed")
)

// ConvertString parses value into the variable data points to. name is only used
// to describe failures.
func ConvertString(value string, data any, name string) error {
	switch t := data.(type) {
	case *string:
		*(t) = value
	case *bool:
		val, err := strconv.ParseBool(value)
		if err != nil {
			return conversionError(name, value, "bool")
		}
		*(t) = val
	case *int:
		val, err := strconv.Atoi(value)
		if err != nil {
			return conversionError(name, value, "int")
		}
		*(t) = val
	case *int64:
		val, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return conversionError(name, value, "int64")
		}
		*(t) = val
	case *uint:
		val, err := strconv.ParseUint(value, 10, strconv.IntSize)
		if err != nil {
			return conversionError(name, value, "uint")
		}
		*(t) = uint(val)
	case *uint64:
		val, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return conversionError(name, value, "uint64")
		}
		*(t) = val
	case *float64:
		val, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return conversionError(name, value, "float64")
		}
		*(t) = val
	case *float32:
		val, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return conversionError(name, value, "float32")
		}
		*(t) = float32(val)
	case *time.Time:
		val, err := dateparse.ParseLocal(value)
		if err != nil {
			return conversionError(name, value, "time")
		}
		*(t) = val
	case *time.Duration:
		val, err := time.ParseDuration(value)
		if err != nil {
			return conversionError(name, value, "duration")
		}
		*(t) = val
	default:
		return fmt.Errorf("%w: %T for %s", ErrUnsupportedTypeConversion, t, name)
	}

	return nil
}

// ConvertList parses every element of values into the slice data points to.
func ConvertList(values []string, data any, name string) error {
	switch t := data.(type) {
	case *[]string:
		*(t) = append([]string{}, values...)
	case *[]int:
		return convertEach(values, t, name)
	case *[]int64:
		return convertEach(values, t, name)
	case *[]float64:
		return convertEach(values, t, name)
	case *[]bool:
		return convertEach(values, t, name)
	case *[]time.Time:
		return convertEach(values, t, name)
	case *[]time.Duration:
		return convertEach(values, t, name)
	default:
		return fmt.Errorf("%w: %T for %s", ErrUnsupportedTypeConversion, t, name)
	}

	return nil
}

func convertEach[T any](values []string, dst *[]T, name string) error {
	temp := make([]T, len(values))
	for i, v := range values {
		if err := ConvertString(v, &temp[i], name); err != nil {
			return err
		}
	}
	*dst = temp

	return nil
}

func conversionError(name, value, typeName string) error {
	return fmt.Errorf("%w: %s value '%s' is not a valid %s", ErrConversion, name, value, typeName)
}
