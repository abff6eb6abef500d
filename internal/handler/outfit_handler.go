package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "guardianclima/internal/errors"
	"guardianclima/internal/service"
)

// OutfitHandler handles the outfit history endpoints.
type OutfitHandler struct {
	historyService service.HistoryService
}

// NewOutfitHandler creates a new outfit handler.
func NewOutfitHandler(historyService service.HistoryService) *OutfitHandler {
	return &OutfitHandler{historyService: historyService}
}

// SaveOutfitRequest represents a client-submitted outfit record.
type SaveOutfitRequest struct {
	City   string `json:"city" validate:"required"`
	Advice string `json:"advice" validate:"required"`
	Date   string `json:"date"`
}

// List godoc
// @Summary Outfit advice history, newest first
// @Tags outfits
// @Produce json
// @Security BearerAuth
// @Success 200 {array} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /v1/outfits [get]
func (h *OutfitHandler) List(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	outfits, err := h.historyService.Outfits(c.Request().Context(), claims.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "No se pudo obtener el historial de outfits"})
	}

	items := make([]echo.Map, 0, len(outfits))
	for _, o := range outfits {
		items = append(items, echo.Map{
			"city":   o.City,
			"advice": o.Advice,
			"date":   o.Date.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, items)
}

// Save godoc
// @Summary Save an outfit record
// @Tags outfits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SaveOutfitRequest true "Outfit record"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /v1/outfits [post]
func (h *OutfitHandler) Save(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req SaveOutfitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "Cuerpo de la petición no válido"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "Ciudad y consejo requeridos"})
	}

	var date *time.Time
	if req.Date != "" {
		parsed, err := parseOutfitDate(req.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "Fecha no válida"})
		}
		date = &parsed
	}

	id, err := h.historyService.SaveOutfit(c.Request().Context(), claims.UserID, req.City, req.Advice, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "No se pudo guardar el outfit"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id})
}

// parseOutfitDate accepts RFC 3339 and the bare ISO form without zone
// that the frontend historically sent.
func parseOutfitDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}
