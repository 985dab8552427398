package constants

import "net/http"

// CodedError is an error that knows which HTTP status it maps to.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrCommodityNotFound = NewCodedError(http.StatusNotFound, "commodity not found")
	ErrDBNotFound        = NewCodedError(http.StatusNotFound, "not found in db")
	ErrBadRequest        = NewCodedError(http.StatusBadRequest, "bad request")
	ErrInvalidFilter     = NewCodedError(http.StatusBadRequest, "invalid filter")
	ErrImportFailed      = NewCodedError(http.StatusBadGateway, "import failed")
)
