package model

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Response is the success envelope shared by every resource endpoint:
//
//	{"message": "Planet found", "results": {"planet": {...}}}
type Response[T any] struct {
	Message string `json:"message"`
	Results *T     `json:"results,omitempty"`
}

// NewResponse wraps results in the success envelope.
func NewResponse[T any](message string, results T) *Response[T] {
	return &Response[T]{Message: message, Results: &results}
}

// IDRequest addresses a single row through the :id path parameter.
type IDRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
}

func (r *IDRequest) Validate() error {
	return validate.Struct(r)
}

// ListRequest carries no input; it exists so list endpoints share the
// bind-and-validate pipeline.
type ListRequest struct{}

func (r *ListRequest) Validate() error {
	return nil
}
