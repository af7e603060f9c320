// Package common holds the response helpers shared by the gateway routes.
package common

import (
	"errors"
	"strconv"

	"github.com/amirasaad/crowdfund/pkg/domain"
	"github.com/amirasaad/crowdfund/pkg/provider/api"
	"github.com/amirasaad/crowdfund/pkg/syncer"
	"github.com/amirasaad/crowdfund/pkg/validation"
	"github.com/gofiber/fiber/v2"
)

// HeaderDataSource tells whether a read was served by the platform or the local cache.
const HeaderDataSource = "X-Data-Source"

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	// Offline is set when Data came from the local cache.
	Offline bool `json:"offline,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs. Code is the
// error kind, stable across releases.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Code     string `json:"code,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessResponseJSON writes a Response.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ReadResponseJSON writes the value of a sync read and marks its source.
func ReadResponseJSON[T any](c *fiber.Ctx, message string, res syncer.Result[T]) error {
	c.Set(HeaderDataSource, string(res.Source))
	return c.Status(fiber.StatusOK).JSON(Response{
		Status:  fiber.StatusOK,
		Message: message,
		Data:    res.Value,
		Offline: res.Offline(),
	})
}

// ProblemDetailsJSON writes err as problem details. status overrides the
// status derived from the error kind.
func ProblemDetailsJSON(c *fiber.Ctx, err error, status ...int) error {
	kind := domain.KindOf(err)
	pd := ProblemDetails{
		Type:     "about:blank",
		Status:   StatusFor(err),
		Title:    domain.Message(err),
		Instance: c.OriginalURL(),
		Code:     string(kind),
	}
	if len(status) > 0 {
		pd.Status = status[0]
	}

	var verrs validation.Errors
	var apiErr *api.Error
	var fe *fiber.Error
	switch {
	case errors.As(err, &verrs):
		pd.Errors = verrs
	case errors.As(err, &apiErr) && apiErr.StatusCode != 0 && apiErr.Message != "":
		pd.Detail = apiErr.Message
	case errors.As(err, &fe):
		pd.Status = fe.Code
		pd.Title = fe.Message
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(pd.Status).JSON(pd)
}

// StatusFor maps an error to the gateway status code.
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindUnauthorized, domain.KindNoCredential:
		return fiber.StatusUnauthorized
	case domain.KindPaymentFailed:
		return fiber.StatusPaymentRequired
	case domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindAlreadyExists, domain.KindInvalidTransition:
		return fiber.StatusConflict
	case domain.KindNetwork, domain.KindNotCached:
		return fiber.StatusServiceUnavailable
	case domain.KindServer:
		return fiber.StatusBadGateway
	case domain.KindCanceled:
		return fiber.StatusRequestTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// BindJSON parses the request body into a T. A malformed body is reported
// as a validation error.
func BindJSON[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, validation.Errors{{Field: "body", Rule: "json", Message: err.Error()}}
	}
	return &input, nil
}

// ParamID reads a positive integer path parameter.
func ParamID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validation.Errors{{Field: name, Rule: "gt", Message: name + " must be a positive integer"}}
	}
	return id, nil
}

// WithID parses the ":id" path parameter before calling h.
func WithID(h func(c *fiber.Ctx, id int64) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := ParamID(c, "id")
		if err != nil {
			return ProblemDetailsJSON(c, err)
		}
		return h(c, id)
	}
}

// LocalJSON writes the result of a cache-only query.
func LocalJSON(c *fiber.Ctx, message string, data any, err error) error {
	if err != nil {
		return ProblemDetailsJSON(c, err)
	}
	c.Set(HeaderDataSource, string(syncer.SourceCache))
	return SuccessResponseJSON(c, fiber.StatusOK, message, data)
}
