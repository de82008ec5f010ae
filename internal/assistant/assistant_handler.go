package assistant

import (
	"net/http"

	"go-grocer-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// Process classifies a voice/text command and returns the resolved intent.
// POST /api/voice-assistant/process
func (h *Handler) Process(ctx *gin.Context) {
	var req ProcessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, h.service.Process(ctx, req.Command))
}
