package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/margadarshak/margadarshak-api/internal"
	"github.com/margadarshak/margadarshak-api/internal/chat"
)

type chatHandler struct {
	resolver Resolver
	log      zerolog.Logger
}

// handleChat answers 200 for every outcome except a missing message, so the
// chat UI keeps flowing.
func (h *chatHandler) handleChat(c *gin.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error().Interface("panic", rec).Msg("chat resolution panicked")
			c.JSON(http.StatusOK, internal.ChatResponse{Response: chat.ApologyMessage})
		}
	}()

	var req internal.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error().Err(err).Msg("chat request could not be decoded")
		c.JSON(http.StatusOK, internal.ChatResponse{Response: chat.ApologyMessage})
		return
	}
	msg, ok := req.Message.(string)
	if !ok || msg == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message"})
		return
	}

	st := h.resolver.Status()
	h.log.Info().
		Bool("has_gemini", st.Gemini).
		Bool("has_huggingface", st.HuggingFace).
		Int("history", len(req.History)).
		Msg("chat api status")

	res := h.resolver.Resolve(c.Request.Context(), req.History, msg)
	c.JSON(http.StatusOK, internal.ChatResponse{Response: res.Text, Source: res.Source})
}

func (h *chatHandler) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.resolver.Status())
}
