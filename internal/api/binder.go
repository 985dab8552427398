package api

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/agristat/internal/pkg/constants"
)

// Binder reports every bind failure as a bad request.
type Binder struct {
	echo.DefaultBinder
}

func NewBinder() *Binder {
	return &Binder{}
}

func (b *Binder) Bind(i interface{}, c echo.Context) error {
	err := b.DefaultBinder.Bind(i, c)
	if err == nil {
		return nil
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fmt.Errorf("%w: %v", constants.ErrBadRequest, he.Message)
	}
	return fmt.Errorf("%w: %s", constants.ErrBadRequest, err.Error())
}
