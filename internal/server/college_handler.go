package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/margadarshak/margadarshak-api/internal"
	"github.com/margadarshak/margadarshak-api/internal/auth"
	"github.com/margadarshak/margadarshak-api/internal/college"
	"github.com/margadarshak/margadarshak-api/internal/profile"
	"github.com/margadarshak/margadarshak-api/internal/store"
)

const defaultTopN = 50

type collegeHandler struct {
	colleges CollegeBackend
	profiles *profile.Service
	auth     *auth.Verifier
	log      zerolog.Logger
}

func (h *collegeHandler) handlePredict(c *gin.Context) {
	var req internal.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Rank <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "rank must be a positive integer"})
		return
	}
	if req.TopN <= 0 {
		req.TopN = defaultTopN
	}
	req.State = strings.TrimSpace(req.State)

	body, err := h.colleges.Predict(c.Request.Context(), req)
	h.relay(c, body, err)
}

func (h *collegeHandler) handleCompare(c *gin.Context) {
	var req internal.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid compare payload"})
		return
	}

	filled := make([]string, 0, len(req.Colleges))
	for _, name := range req.Colleges {
		if name = strings.TrimSpace(name); name != "" {
			filled = append(filled, name)
		}
	}
	if len(filled) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter at least 2 colleges to compare"})
		return
	}
	req.Colleges = filled

	// A stored profile is only attached for the caller who owns it.
	if req.Personalization == nil && req.UserID != "" && h.profiles != nil &&
		h.auth.Owns(c.GetHeader("Authorization"), req.UserID) {
		p, err := h.profiles.Get(c.Request.Context(), req.UserID)
		switch {
		case err == nil && p.IsProfileComplete:
			factors := profile.ComparisonFactors(p)
			req.Personalization = &factors
		case err != nil && !errors.Is(err, store.ErrNotFound):
			h.log.Warn().Err(err).Str("user_id", req.UserID).Msg("profile lookup failed, comparing without personalization")
		}
	}

	body, err := h.colleges.Compare(c.Request.Context(), req)
	h.relay(c, body, err)
}

func (h *collegeHandler) handleAutocomplete(c *gin.Context) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = college.DefaultAutocompleteLimit
	}

	out, err := h.colleges.Autocomplete(c.Request.Context(), c.Query("query"), limit)
	if err != nil {
		h.relay(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// relay passes backend JSON through, keeping the backend's status on errors.
func (h *collegeHandler) relay(c *gin.Context, body []byte, err error) {
	var berr *college.BackendError
	switch {
	case err == nil:
		c.Data(http.StatusOK, "application/json", body)
	case errors.As(err, &berr):
		c.Data(berr.Status, "application/json", berr.Body)
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to connect to the server"})
	}
}
