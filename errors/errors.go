// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is returned on the encode path when no serializer claims the value.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnknownTypeTag is returned on the decode path when the Data type tag has no registered decoder.
	ErrUnknownTypeTag = errors.New("unknown type tag")

	// ErrCorruptPayload is returned when the payload bytes are inconsistent with the resolved decoder,
	// including trailing bytes left after a complete decode.
	ErrCorruptPayload = errors.New("corrupt payload")

	// ErrEndOfInput is returned when a stream is exhausted before the required bytes were read.
	ErrEndOfInput = errors.New("end of input")

	// ErrTypeNotFound is returned when a type name carried by a payload cannot be resolved in this process.
	ErrTypeNotFound = errors.New("type not found")

	// ErrSchemaMismatch is returned when a structured decode asks for a field the schema does not declare,
	// or when the payload was written for another class.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrFieldTypeMismatch is returned when the field type found at runtime disagrees with the declared schema.
	ErrFieldTypeMismatch = errors.New("field type mismatch")

	// ErrDuplicateTagRegistration is returned at registry construction when two serializers share a type tag.
	ErrDuplicateTagRegistration = errors.New("duplicate type tag registration")

	// ErrReservedTypeID is returned at registry construction when a user serializer uses a tag
	// from the reserved built-in range (<= 0).
	ErrReservedTypeID = errors.New("type tag is reserved for built-in serializers")

	// ErrInvalidSchema is returned when a class definition is malformed (duplicate names, gaps in indexes).
	ErrInvalidSchema = errors.New("invalid class definition")

	// ErrInvalidConfig is returned when the registry configuration does not validate.
	ErrInvalidConfig = errors.New("invalid serialization config")

	// ErrSchemaStoreClosed is returned when a schema store is used after Close.
	ErrSchemaStoreClosed = errors.New("schema store is closed")
)

// NewErrUnsupportedType formats an ErrUnsupportedType for the given value.
func NewErrUnsupportedType(value any) error {
	return fmt.Errorf("(type=%T) %w", value, ErrUnsupportedType)
}

// NewErrUnknownTypeTag formats an ErrUnknownTypeTag for the given tag.
func NewErrUnknownTypeTag(typeID int32) error {
	return fmt.Errorf("(type_id=%d) %w", typeID, ErrUnknownTypeTag)
}

// NewErrCorruptPayload wraps a decode failure with ErrCorruptPayload.
func NewErrCorruptPayload(err error) error {
	if err == nil || errors.Is(err, ErrCorruptPayload) {
		return err
	}
	return errors.Join(ErrCorruptPayload, err)
}

// NewErrTrailingBytes formats an ErrCorruptPayload for a decoder that left bytes unread.
func NewErrTrailingBytes(typeID int32, remaining int) error {
	return fmt.Errorf("(type_id=%d, trailing=%d bytes) %w", typeID, remaining, ErrCorruptPayload)
}

// NewErrEndOfInput formats an ErrEndOfInput with the requested and available byte counts.
func NewErrEndOfInput(wanted, available int) error {
	return fmt.Errorf("(wanted=%d, available=%d) %w", wanted, available, ErrEndOfInput)
}

// NewErrTypeNotFound formats an ErrTypeNotFound for the given type name.
func NewErrTypeNotFound(name string) error {
	return fmt.Errorf("(type=%s) %w", name, ErrTypeNotFound)
}

// NewErrSchemaMismatch formats an ErrSchemaMismatch for a class and field.
func NewErrSchemaMismatch(classID int32, field string) error {
	return fmt.Errorf("(class_id=%d, field=%s) %w", classID, field, ErrSchemaMismatch)
}

// NewErrFieldTypeMismatch formats an ErrFieldTypeMismatch for a field.
func NewErrFieldTypeMismatch(field string, declared, actual fmt.Stringer) error {
	return fmt.Errorf("(field=%s, declared=%s, actual=%s) %w", field, declared, actual, ErrFieldTypeMismatch)
}

// NewErrDuplicateTagRegistration formats an ErrDuplicateTagRegistration for the given tag.
func NewErrDuplicateTagRegistration(typeID int32) error {
	return fmt.Errorf("(type_id=%d) %w", typeID, ErrDuplicateTagRegistration)
}

// NewErrReservedTypeID formats an ErrReservedTypeID for the given tag.
func NewErrReservedTypeID(typeID int32) error {
	return fmt.Errorf("(type_id=%d) %w", typeID, ErrReservedTypeID)
}

// ElementError reports which element of a collection failed to decode.
// It always unwraps to ErrCorruptPayload.
type ElementError struct {
	Index int
	err   error
}

// enforce compilation error
var _ error = (*ElementError)(nil)

// NewElementError returns an instance of ElementError
func NewElementError(index int, err error) *ElementError {
	return &ElementError{
		Index: index,
		err:   NewErrCorruptPayload(err),
	}
}

// Error implements the standard error interface
func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d: %v", e.Index, e.err)
}

func (e *ElementError) Unwrap() error {
	return e.err
}
