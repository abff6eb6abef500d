package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	apperrors "guardianclima/internal/errors"
	"guardianclima/internal/service"
	"guardianclima/internal/weather"
)

// historyDateLayout matches the timestamp format the frontend renders.
const historyDateLayout = "2006-01-02 15:04:05"

// WeatherHandler handles weather lookup and history endpoints.
type WeatherHandler struct {
	weatherService service.WeatherService
	historyService service.HistoryService
}

// NewWeatherHandler creates a new weather handler.
func NewWeatherHandler(weatherService service.WeatherService, historyService service.HistoryService) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
		historyService: historyService,
	}
}

// CurrentWeather godoc
// @Summary Current conditions for a city
// @Tags weather
// @Produce json
// @Security BearerAuth
// @Param ciudad path string true "City name"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /v1/weather/{ciudad} [get]
func (h *WeatherHandler) CurrentWeather(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	city := pathCity(c)
	_, raw, err := h.weatherService.CurrentWeather(c.Request().Context(), claims.UserID, city)
	if err != nil {
		var ge *weather.GatewayError
		if errors.As(err, &ge) {
			return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{
				Error: fmt.Sprintf("No se pudo obtener el clima. Código: %d", ge.UpstreamStatus),
			})
		}
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "No se pudo obtener el clima."})
	}

	// Raw provider payload passes through unchanged.
	return c.JSONBlob(http.StatusOK, raw)
}

// History godoc
// @Summary Weather query history, newest first
// @Tags weather
// @Produce json
// @Security BearerAuth
// @Success 200 {array} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /v1/history [get]
func (h *WeatherHandler) History(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	// Plan comes from the token snapshot; an upgrade shows up here once
	// the client starts sending its reissued token.
	queries, err := h.historyService.WeatherHistory(c.Request().Context(), claims.UserID, claims.Plan)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "No se pudo obtener el historial"})
	}

	items := make([]echo.Map, 0, len(queries))
	for _, q := range queries {
		items = append(items, echo.Map{
			"ciudad":      q.City,
			"temperatura": q.Temperature,
			"descripcion": q.Description,
			"fecha":       q.Timestamp.Format(historyDateLayout),
		})
	}
	return c.JSON(http.StatusOK, items)
}

// pathCity returns the city path parameter, unescaped so names with
// spaces work.
func pathCity(c echo.Context) string {
	city := c.Param("ciudad")
	if unescaped, err := url.PathUnescape(city); err == nil {
		return unescaped
	}
	return city
}
