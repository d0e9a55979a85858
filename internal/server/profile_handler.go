package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/margadarshak/margadarshak-api/internal"
	"github.com/margadarshak/margadarshak-api/internal/profile"
	"github.com/margadarshak/margadarshak-api/internal/store"
)

type profileHandler struct {
	profiles *profile.Service
	log      zerolog.Logger
}

func (h *profileHandler) handleCreate(c *gin.Context) {
	var req internal.UserProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}
	p, err := h.profiles.Create(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *profileHandler) handleGet(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *profileHandler) handleUpdate(c *gin.Context) {
	var req internal.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}
	p, err := h.profiles.Update(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *profileHandler) writeError(c *gin.Context, err error) {
	var verr *profile.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	default:
		h.log.Error().Err(err).Str("user_id", c.Param("userId")).Msg("profile operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process profile"})
	}
}
