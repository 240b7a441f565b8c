package handlers

import (
	"errors"
	"net/http"

	"filament_dryer/internal/dashboard"
	"filament_dryer/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK       = "ok"
	statusSent     = "sent"
	statusReloaded = "reloaded"

	errTemperatureInput = "Please enter a valid temperature between 30°C and 80°C"
	errNotConnected     = "Not connected to the dryer. Please refresh the page."
	errUnknownProfile   = "unknown profile"

	// per-command failure alerts
	errStartFailed       = "Failed to start drying."
	errSetTempFailed     = "Failed to set temperature."
	errStopFailed        = "Failed to stop drying. Please try again."
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// commandError maps a command service error to a status code and user message.
// failMsg is the command's own alert for send and unexpected failures.
func (h *Handler) commandError(c *gin.Context, failMsg, logKey string, err error, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrNotConnected):
		h.logAndJSONError(c, http.StatusServiceUnavailable, errNotConnected, logKey, err, kv...)
	case errors.Is(err, service.ErrUnknownProfile):
		h.logAndJSONError(c, http.StatusNotFound, errUnknownProfile, logKey, err, kv...)
	case errors.Is(err, service.ErrTemperatureRange):
		h.logAndJSONError(c, http.StatusBadRequest, errTemperatureInput, logKey, err, kv...)
	case errors.Is(err, service.ErrSendFailed):
		h.logAndJSONError(c, http.StatusBadGateway, failMsg, logKey, err, kv...)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, failMsg, logKey, err, kv...)
	}
}

// Respond with a status and the dashboard as it looks after the change.
func (h *Handler) respondWithStatusAndView(c *gin.Context, status string, extra gin.H) {
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	if h.views != nil {
		resp["view"] = h.views.View()
	}
	c.JSON(http.StatusOK, resp)
}

// SetTemperatureRequest is the manual temperature payload.
type SetTemperatureRequest struct {
	// Target temperature in Celsius, 30 to 80 inclusive
	Temperature float64 `json:"temperature" binding:"required,gte=30,lte=80" example:"55"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Current dashboard
// @Description  Connection indicator, status cards, chart series, timer and profiles
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboard.View
// @Router       /api/v1/view [get]
func (h *Handler) getView(c *gin.Context) {
	c.JSON(http.StatusOK, h.views.View())
}

// @Summary      List profiles
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "source, profiles"
// @Router       /api/v1/profiles [get]
func (h *Handler) listProfiles(c *gin.Context) {
	v := h.views.View()
	profiles := v.Profiles
	if profiles == nil {
		profiles = []dashboard.ProfileView{}
	}
	c.JSON(http.StatusOK, gin.H{
		"source":   v.ProfileSource,
		"profiles": profiles,
	})
}

// @Summary      Reload profiles
// @Description  Runs /debug/profiles, then /profiles, then the built-in list
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/profiles/reload [post]
func (h *Handler) reloadProfiles(c *gin.Context) {
	cat := h.services.Catalog.Load(c.Request.Context())
	h.respondWithStatusAndView(c, statusReloaded, gin.H{
		"source": cat.Source,
		"count":  len(cat.Profiles),
	})
}

// @Summary      Start profile
// @Description  Resolves the profile by name and sends its catalog index to the dryer
// @Tags         commands
// @Produce      json
// @Param        name  path      string  true  "Profile name (URL-escaped)"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/profiles/{name}/start [post]
func (h *Handler) startProfile(c *gin.Context) {
	name := c.Param("name")
	if err := h.services.Commands.StartProfileByName(c.Request.Context(), name); err != nil {
		h.commandError(c, errStartFailed, "start_profile_failed", err, "profile", name)
		return
	}
	h.respondWithStatusAndView(c, statusSent, gin.H{"command": "startProfile", "profile": name})
}

// @Summary      Set manual temperature
// @Tags         commands
// @Accept       json
// @Produce      json
// @Param        body  body      SetTemperatureRequest  true  "Temperature payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/temperature [post]
func (h *Handler) setTemperature(c *gin.Context) {
	var req SetTemperatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errTemperatureInput})
		return
	}
	if err := h.services.Commands.SetTemperature(c.Request.Context(), req.Temperature); err != nil {
		h.commandError(c, errSetTempFailed, "set_temperature_failed", err, "temperature", req.Temperature)
		return
	}
	h.respondWithStatusAndView(c, statusSent, gin.H{"command": "setTemperature", "temperature": req.Temperature})
}

// @Summary      Stop drying
// @Tags         commands
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/stop [post]
func (h *Handler) stopDrying(c *gin.Context) {
	if err := h.services.Commands.StopDrying(c.Request.Context()); err != nil {
		h.commandError(c, errStopFailed, "stop_drying_failed", err)
		return
	}
	h.respondWithStatusAndView(c, statusSent, gin.H{"command": "stopDrying"})
}
