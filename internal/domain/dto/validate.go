package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ougirez/agristat/internal/pkg/constants"
)

// NewValidator returns a validator that knows the "region" and "commodity"
// tags. A value passes when it is one of the given catalog entries. The
// "year" tag bounds a year to constants.MinYear..constants.MaxYear.
func NewValidator(regions, commodities []string) (*validator.Validate, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterAlias("year", fmt.Sprintf("gte=%d,lte=%d", constants.MinYear, constants.MaxYear))

	if err := v.RegisterValidation("region", oneOfCatalog(regions)); err != nil {
		return nil, fmt.Errorf("RegisterValidation region: %w", err)
	}
	if err := v.RegisterValidation("commodity", oneOfCatalog(commodities)); err != nil {
		return nil, fmt.Errorf("RegisterValidation commodity: %w", err)
	}

	return v, nil
}

func oneOfCatalog(values []string) validator.Func {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}

	return func(fl validator.FieldLevel) bool {
		_, ok := allowed[fl.Field().String()]
		return ok
	}
}

// ValidationMessage flattens validator errors into one line per field. Aliases
// are reported by the tag that failed, e.g. "year: failed lte=2025".
func ValidationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: failed %s=%s", fe.Field(), fe.ActualTag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: failed %s", fe.Field(), fe.ActualTag()))
		}
	}
	return strings.Join(parts, "; ")
}
