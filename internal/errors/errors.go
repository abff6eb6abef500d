package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user row cannot be found.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPlan is returned when an upgrade targets an unknown plan.
	ErrInvalidPlan = errors.New("invalid plan")
	// ErrCityRequired is returned when an advice request carries no city.
	ErrCityRequired = errors.New("city required")
	// ErrNoImages is returned when an outfit request carries no image files.
	ErrNoImages = errors.New("no image files provided")
	// ErrInvalidImage is returned when an uploaded file cannot be decoded as an image.
	ErrInvalidImage = errors.New("invalid image file")
	// ErrTravelDataRequired is returned when the travel assistant request is incomplete.
	ErrTravelDataRequired = errors.New("destination city and travel dates required")
)

// ErrorResponse represents a standardized error response body. The field
// name matches what the frontend expects.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors with the user-facing
// Spanish messages the original frontend expects.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, "Usuario no encontrado")
	case errors.Is(err, ErrInvalidPlan):
		return NewHTTPError(http.StatusBadRequest, "Plan no válido")
	case errors.Is(err, ErrCityRequired):
		return NewHTTPError(http.StatusBadRequest, "Ciudad requerida para el consejo de vestimenta.")
	case errors.Is(err, ErrNoImages):
		return NewHTTPError(http.StatusBadRequest, "No se encontraron archivos de imagen.")
	case errors.Is(err, ErrInvalidImage):
		return NewHTTPError(http.StatusBadRequest, "Error al procesar imagen.")
	case errors.Is(err, ErrTravelDataRequired):
		return NewHTTPError(http.StatusBadRequest, "Se requieren ciudad de destino, fecha de inicio y fecha de fin.")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Error interno del servidor")
	}
}
