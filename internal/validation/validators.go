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

package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	gerrors "github.com/tochemey/goserde/errors"
)

type booleanValidator struct {
	boolCheck  bool
	errMessage string
}

// NewBooleanValidator fails with errMessage when boolCheck is false
func NewBooleanValidator(boolCheck bool, errMessage string) Validator {
	return &booleanValidator{boolCheck: boolCheck, errMessage: errMessage}
}

func (v booleanValidator) Validate() error {
	if !v.boolCheck {
		return errors.New(v.errMessage)
	}
	return nil
}

type typeIDValidator struct {
	typeID int32
}

// NewTypeIDValidator checks that a user supplied type tag is outside the reserved range
func NewTypeIDValidator(typeID int32) Validator {
	return &typeIDValidator{typeID: typeID}
}

func (v typeIDValidator) Validate() error {
	if v.typeID <= 0 {
		return gerrors.NewErrReservedTypeID(v.typeID)
	}
	return nil
}

type oneOfValidator struct {
	field   string
	value   string
	allowed []string
}

// NewOneOfValidator checks that value, case-insensitively, is one of allowed
func NewOneOfValidator(field, value string, allowed ...string) Validator {
	return &oneOfValidator{field: field, value: value, allowed: allowed}
}

func (v oneOfValidator) Validate() error {
	if slices.Contains(v.allowed, strings.ToLower(strings.TrimSpace(v.value))) {
		return nil
	}
	return fmt.Errorf("invalid %s=(%s): expected one of [%s]", v.field, v.value, strings.Join(v.allowed, ", "))
}

type emptyStringValidator struct {
	field string
	value string
}

// NewEmptyStringValidator fails when value is blank
func NewEmptyStringValidator(field, value string) Validator {
	return &emptyStringValidator{field: field, value: value}
}

func (v emptyStringValidator) Validate() error {
	if strings.TrimSpace(v.value) == "" {
		return fmt.Errorf("the [%s] is required", v.field)
	}
	return nil
}
