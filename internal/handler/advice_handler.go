package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "guardianclima/internal/errors"
	"guardianclima/internal/service"
	"guardianclima/internal/weather"
)

// AdviceHandler handles the three AI advice endpoints.
type AdviceHandler struct {
	adviceService service.AdviceService
}

// NewAdviceHandler creates a new advice handler.
func NewAdviceHandler(adviceService service.AdviceService) *AdviceHandler {
	return &AdviceHandler{adviceService: adviceService}
}

// TravelRequest represents a travel assistant request. Field presence is
// checked by the service after the quota spend, matching the endpoint's
// historical ordering, so there are no validate tags here.
type TravelRequest struct {
	CiudadDestino string `json:"ciudad_destino"`
	FechaInicio   string `json:"fecha_inicio"`
	FechaFin      string `json:"fecha_fin"`
}

// TextAdvice godoc
// @Summary Plain styling advice for a city
// @Tags advice
// @Produce json
// @Security BearerAuth
// @Param ciudad path string true "City name"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /v1/ai-advice/{ciudad} [get]
func (h *AdviceHandler) TextAdvice(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	advice, err := h.adviceService.TextAdvice(c.Request().Context(), claims.UserID, pathCity(c))
	if err != nil {
		var ge *weather.GatewayError
		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, apperrors.ErrorResponse{Error: "Usuario no encontrado para generar consejo."})
		case errors.As(err, &ge):
			return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{
				Error: fmt.Sprintf("No se pudo obtener el clima para la IA. Código: %d", ge.UpstreamStatus),
			})
		}
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "No se pudo generar el consejo de la IA."})
	}

	return c.JSON(http.StatusOK, echo.Map{"consejo": advice})
}

// OutfitAdvice godoc
// @Summary Image-grounded outfit advice
// @Tags advice
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param ciudad formData string true "City name"
// @Param imagenes formData file true "Garment photos"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /v1/ai-outfit [post]
func (h *AdviceHandler) OutfitAdvice(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	city := c.FormValue("ciudad")
	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["imagenes"]
	}

	advice, token, err := h.adviceService.OutfitAdvice(c.Request().Context(), claims.UserID, city, files)
	if err != nil {
		var (
			qe *service.QuotaExceededError
			ge *weather.GatewayError
		)
		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, apperrors.ErrorResponse{Error: "Usuario no encontrado."})
		case errors.As(err, &qe):
			return c.JSON(http.StatusForbidden, apperrors.ErrorResponse{
				Error: fmt.Sprintf("Has alcanzado el límite de %d usos para el consejo de vestimenta. Actualiza a Pro para usos ilimitados.", qe.Limit),
			})
		case errors.Is(err, apperrors.ErrCityRequired),
			errors.Is(err, apperrors.ErrNoImages),
			errors.Is(err, apperrors.ErrInvalidImage):
			httpErr := apperrors.MapErrorToHTTP(err)
			return c.JSON(httpErr.StatusCode, apperrors.ErrorResponse{Error: httpErr.Message})
		case errors.As(err, &ge):
			return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{
				Error: fmt.Sprintf("No se pudo obtener el clima para la IA. Código: %d", ge.UpstreamStatus),
			})
		}
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "No se pudo generar el consejo de IA de vestimenta."})
	}

	resp := echo.Map{"consejo": advice}
	if token != "" {
		resp["access_token"] = token
	}
	return c.JSON(http.StatusOK, resp)
}

// TravelAdvice godoc
// @Summary Packing list for a trip
// @Tags advice
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TravelRequest true "Destination and dates"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /v1/ai-travel-assistant [post]
func (h *AdviceHandler) TravelAdvice(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req TravelRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "Cuerpo de la petición no válido"})
	}

	advice, token, err := h.adviceService.TravelAdvice(c.Request().Context(), claims.UserID, req.CiudadDestino, req.FechaInicio, req.FechaFin)
	if err != nil {
		var (
			qe *service.QuotaExceededError
			ge *weather.GatewayError
		)
		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, apperrors.ErrorResponse{Error: "Usuario no encontrado."})
		case errors.As(err, &qe):
			return c.JSON(http.StatusForbidden, apperrors.ErrorResponse{
				Error: fmt.Sprintf("Has alcanzado el límite de %d uso para el asistente de viaje. Actualiza a Pro para usos ilimitados.", qe.Limit),
			})
		case errors.Is(err, apperrors.ErrTravelDataRequired):
			return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "Se requieren ciudad de destino, fecha de inicio y fecha de fin."})
		case errors.As(err, &ge):
			return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{
				Error: fmt.Sprintf("No se pudo obtener el clima para %s. Código: %d", req.CiudadDestino, ge.UpstreamStatus),
			})
		}
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "No se pudo generar el consejo de viaje de IA."})
	}

	resp := echo.Map{"consejo": advice}
	if token != "" {
		resp["access_token"] = token
	}
	return c.JSON(http.StatusOK, resp)
}
