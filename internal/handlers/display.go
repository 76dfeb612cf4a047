package handlers

import (
	"errors"
	"net/http"

	"sundial/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK         = "ok"
	statusPaused     = "paused"
	statusResumed    = "resumed"
	statusOverridden = "overridden"

	errPauseDisplay    = "failed to pause transitions"
	errResumeDisplay   = "failed to resume transitions"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status and include the current state.
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	resp["state"] = h.services.Controller.Snapshot()
	c.JSON(http.StatusOK, resp)
}

// Request DTO for overriding the temperature.
type overrideRequest struct {
	Temperature int `json:"temperature" binding:"required"` // kelvin, must be positive
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Controller.Snapshot())
}

// getNow returns the compact view matching the status file.
func (h *Handler) getNow(c *gin.Context) {
	st := h.services.Controller.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"temp":     st.CurrentTemp,
		"phase":    st.Phase,
		"target":   st.TargetTemp,
		"progress": st.Progress,
	})
}

func (h *Handler) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.cfg)
}

func (h *Handler) pauseDisplay(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Controller.Pause(ctx); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errPauseDisplay, "display_pause_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusPaused, gin.H{})
}

func (h *Handler) resumeDisplay(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Controller.Resume(ctx); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errResumeDisplay, "display_resume_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusResumed, gin.H{})
}

func (h *Handler) setOverride(c *gin.Context) {
	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	if err := h.services.Controller.SetOverride(ctx, req.Temperature); err != nil {
		if errors.Is(err, service.ErrInvalidTemperature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if h.log != nil {
			h.log.Errorw("display_override_failed", "err", err, "temperature", req.Temperature)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set override"})
		return
	}
	h.respondWithStatusAndState(c, statusOverridden, gin.H{"temperature": req.Temperature})
}
