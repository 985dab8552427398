package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ougirez/agristat/internal/domain/dto"
	"github.com/ougirez/agristat/internal/pkg/constants"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator(validate *validator.Validate) *Validator {
	return &Validator{validate: validate}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return fmt.Errorf("%w: %s", constants.ErrBadRequest, dto.ValidationMessage(err))
	}
	return nil
}
