package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apperrors "guardianclima/internal/errors"
	"guardianclima/internal/service"
)

// UserHandler handles profile mutation endpoints. Both endpoints mutate
// token claims, so both respond with a reissued access token.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// PreferencesRequest represents a preferences update. Omitted fields keep
// their current values.
type PreferencesRequest struct {
	Estilo            string `json:"estilo"`
	Actividad         string `json:"actividad"`
	Sensibilidad      string `json:"sensibilidad"`
	ColoresPreferidos string `json:"colores_preferidos"`
	PreferenciaClima  string `json:"preferencia_clima"`
	FrecuenciaViajes  string `json:"frecuencia_viajes"`
}

// UpgradeRequest represents a plan upgrade request.
type UpgradeRequest struct {
	Plan string `json:"plan" validate:"required"`
}

// SavePreferences godoc
// @Summary Save styling preferences
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PreferencesRequest true "Preference fields"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/preferences [post]
func (h *UserHandler) SavePreferences(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req PreferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "Cuerpo de la petición no válido"})
	}

	token, err := h.userService.SavePreferences(c.Request().Context(), claims.UserID, service.PreferencesUpdate{
		Style:             req.Estilo,
		Activity:          req.Actividad,
		ColdSensitivity:   req.Sensibilidad,
		PreferredColors:   req.ColoresPreferidos,
		ClimatePreference: req.PreferenciaClima,
		TravelFrequency:   req.FrecuenciaViajes,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, apperrors.ErrorResponse{Error: "Usuario no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "No se pudieron guardar las preferencias"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"mensaje":      "Preferencias guardadas con éxito",
		"access_token": token,
	})
}

// UpgradePlan godoc
// @Summary Upgrade to a paid plan
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpgradeRequest true "Target plan (premium or pro)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/upgrade [post]
func (h *UserHandler) UpgradePlan(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req UpgradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "Cuerpo de la petición no válido"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "Plan no válido"})
	}

	user, token, err := h.userService.UpgradePlan(c.Request().Context(), claims.UserID, req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, apperrors.ErrorResponse{Error: "Usuario no encontrado"})
		case errors.Is(err, apperrors.ErrInvalidPlan):
			return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "Plan no válido"})
		}
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "No se pudo actualizar el plan"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"mensaje":      fmt.Sprintf("¡Felicidades! Has actualizado al plan %s", cases.Title(language.Spanish).String(user.Plan)),
		"access_token": token,
	})
}
