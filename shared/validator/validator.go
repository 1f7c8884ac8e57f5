package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/model"

	val "github.com/go-playground/validator/v10"
)

var (
	validate *val.Validate

	phonePattern       = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,18}[0-9]$`)
	bookingCodePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_\-]{0,49}$`)
)

func mimetypes(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), file.Header.Get(constant.RequestHeaderContentType))
}

// maxfilesize takes its limit in megabytes.
func maxfilesize(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	maxMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return file.Size <= int64(maxMB*(1<<20))
}

func fileHeader(field val.FieldLevel) (*multipart.FileHeader, bool) {
	switch v := field.Field().Interface().(type) {
	case multipart.FileHeader:
		return &v, true
	case *multipart.FileHeader:
		return v, v != nil
	default:
		return nil, false
	}
}

func phone(field val.FieldLevel) bool {
	return phonePattern.MatchString(field.Field().String())
}

func bookingcode(field val.FieldLevel) bool {
	return bookingCodePattern.MatchString(field.Field().String())
}

// timestamp accepts every local or offset layout model.ParseTime understands.
func timestamp(field val.FieldLevel) bool {
	_, err := model.ParseTime(strings.TrimSpace(field.Field().String()))

	return err == nil
}

// jsonName reports fields by their json name so messages match the request body.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return constant.Empty
	case constant.Empty:
		return field.Name
	default:
		return name
	}
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	rules := map[string]val.Func{
		"mimetypes":   mimetypes,
		"maxfilesize": maxfilesize,
		"phone":       phone,
		"bookingcode": bookingcode,
		"timestamp":   timestamp,
	}

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate decodes a JSON body into data and validates it. Both decode and
// validation failures come back as a 400 failure.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

// ValidateVar checks a single value, typically a path parameter, against tag.
func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
