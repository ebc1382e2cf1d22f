package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"roombook/shared/failure"
	"roombook/shared/model"
	"roombook/shared/weekday"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// registerDayCodesValidation accepts a slice of ints that are all valid day codes.
func registerDayCodesValidation(field val.FieldLevel) bool {
	values, ok := field.Field().Interface().([]int)
	if !ok {
		return false
	}

	_, err := weekday.FromInts(values)

	return err == nil
}

func registerDateValidation(field val.FieldLevel) bool {
	_, err := model.ParseDate(field.Field().String())

	return err == nil
}

func registerClockValidation(field val.FieldLevel) bool {
	_, err := model.ParseClock(field.Field().String())

	return err == nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}

		return name
	})

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("daycodes", registerDayCodesValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("isodate", registerDateValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("clock", registerClockValidation)
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
