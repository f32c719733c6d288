// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to HTTP responses with {"error": message} bodies

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	coreerrors "shoplist-api/core/errors"
)

// User-facing messages
const (
	msgMissingCredentials = "Email e senha são obrigatórios"
	msgInvalidProducts    = "Produtos inválidos"
	msgInvalidCode        = "Código inválido"
	msgShareNotFound      = "Produtos não encontrados ou código expirado"
	msgShareExpired       = "Código expirado"
	msgListNotFound       = "Lista não encontrada"
	msgProductNotFound    = "Produto não encontrado"
	msgUnauthorized       = "Não autorizado"
	msgFeatureDisabled    = "Funcionalidade indisponível"
	msgNotFound           = "Recurso não encontrado"
	msgNoProductsSelected = "Selecione ao menos um produto"
)

// ErrorBody is the JSON body of every error response
type ErrorBody struct {
	status  int
	Message string `json:"error"`
}

// Error implements the error interface
func (e *ErrorBody) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError
func (e *ErrorBody) GetStatus() int {
	return e.status
}

// NewErrorBody replaces huma's problem+json errors. Schema validation failures
// (422 in huma) are reported as 400. Any failure inside the shared product list
// collapses to msgInvalidProducts, and rejected values are never echoed back.
func NewErrorBody(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	if len(errs) > 0 && status == http.StatusBadRequest {
		details := make([]string, 0, len(errs))
		for _, err := range errs {
			if err == nil {
				continue
			}

			var detail *huma.ErrorDetail
			if !errors.As(err, &detail) {
				details = append(details, err.Error())
				continue
			}
			if strings.HasPrefix(detail.Location, "body.produtos") {
				return &ErrorBody{status: status, Message: msgInvalidProducts}
			}
			details = append(details, detailMessage(detail))
		}
		if len(details) > 0 {
			msg = msg + ": " + strings.Join(details, "; ")
		}
	}

	return &ErrorBody{status: status, Message: msg}
}

// detailMessage formats a schema failure without its offending value
func detailMessage(d *huma.ErrorDetail) string {
	if d.Location == "" {
		return d.Message
	}
	return d.Message + " (" + d.Location + ")"
}

func init() {
	huma.NewError = NewErrorBody
}

// toHumaError converts domain errors to HTTP errors. internal prefixes the
// cause of any 500 so the client sees which operation failed.
func toHumaError(err error, internal string) error {
	if err == nil {
		return nil
	}

	var notFound *coreerrors.NotFoundError
	if errors.As(err, &notFound) {
		return huma.Error404NotFound(notFoundMessage(notFound))
	}

	var invalid *coreerrors.ValidationError
	if errors.As(err, &invalid) {
		return huma.Error400BadRequest(validationMessage(invalid))
	}

	if coreerrors.IsUnauthorized(err) {
		return huma.Error401Unauthorized(msgUnauthorized)
	}

	var apiErr *coreerrors.ExternalAPIError
	if errors.As(err, &apiErr) {
		// The provider's own message is meaningful to the caller
		return huma.Error400BadRequest(apiErr.Message)
	}

	return huma.Error500InternalServerError(internal + err.Error())
}

func notFoundMessage(err *coreerrors.NotFoundError) string {
	switch err.Resource {
	case "share":
		if err.Expired {
			return msgShareExpired
		}
		return msgShareNotFound
	case "shared product":
		return msgShareNotFound
	case "list":
		return msgListNotFound
	case "product":
		return msgProductNotFound
	default:
		return msgNotFound
	}
}

func validationMessage(err *coreerrors.ValidationError) string {
	switch err.Field {
	case "produtos":
		return msgInvalidProducts
	case "code":
		return msgInvalidCode
	case "productIds":
		return msgNoProductsSelected
	default:
		return "Dados inválidos: " + err.Message
	}
}
