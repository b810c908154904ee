// Package validator decodes request bodies and checks them against
// go-playground/validator tags. Failures come back as 400s whose message
// names the JSON field, e.g. "service_id is required".
package validator

import (
	"agenda/shared/constant"
	"agenda/shared/failure"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const megabyte = 1 << 20

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	for tag, fn := range map[string]val.Func{
		"mimetypes":   validMimetype,
		"maxfilesize": validFileSize,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
}

// fileHeader unwraps both value and pointer upload fields.
func fileHeader(field val.FieldLevel) (*multipart.FileHeader, bool) {
	switch file := field.Field().Interface().(type) {
	case multipart.FileHeader:
		return &file, true
	case *multipart.FileHeader:
		return file, file != nil
	}

	return nil, false
}

// validMimetype checks the upload's declared content type against a space separated allow list.
func validMimetype(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), file.Header.Get(constant.RequestHeaderContentType))
}

// validFileSize checks the upload size against a limit in megabytes.
func validFileSize(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	limit, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(file.Size) <= limit*megabyte
}

// Validate decodes a JSON body into data and validates it.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err))
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err, ""))
	}

	return nil
}

// ValidateVar validates a single value, such as a query parameter, reported under name.
func ValidateVar(value any, name, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return failure.BadRequestFromString(message(err, name))
	}

	return nil
}
