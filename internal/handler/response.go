package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

// OK writes a 200 success envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, NewSuccessResponse(data))
}

// Created writes a 201 success envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, NewSuccessResponse(data))
}

// Error maps the error to its HTTP status and writes the error envelope.
// Internal errors are logged in full but reported to the client generically.
func Error(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	message := err.Error()
	if kind == apperror.KindInternal {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		message = "internal server error"
	}

	c.JSON(kind.HTTPStatus(), &Response{
		Status: "error",
		Error: &ErrorBody{
			Code:    kind.String(),
			Message: message,
		},
	})
}

// BindError wraps a request-binding failure as a validation error.
func BindError(c *gin.Context, err error) {
	Error(c, apperror.Wrap(apperror.KindValidation, "invalid request body", err))
}
