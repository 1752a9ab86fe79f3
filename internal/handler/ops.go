package handler

import (
	"context"
	"net/http"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/worker"

	"github.com/gin-gonic/gin"
)

// DeadLetterQueue is satisfied by *worker.DeadLetters.
type DeadLetterQueue interface {
	Len(ctx context.Context, queue string) (int64, error)
	Replay(ctx context.Context, queue string, max int) (int, error)
}

// OpsHandler exposes operational actions to managers.
type OpsHandler struct {
	dead DeadLetterQueue
}

func NewOpsHandler(dead DeadLetterQueue) *OpsHandler {
	return &OpsHandler{dead: dead}
}

// ParkedEmails godoc
// @Summary      Count notification e-mails that exhausted their retries
// @Tags         ops
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]int64
// @Router       /v1/ops/emails/parked [get]
func (h *OpsHandler) ParkedEmails(c *gin.Context) {
	n, err := h.dead.Len(c.Request.Context(), worker.QueueEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parked": n})
}

// ReplayEmails godoc
// @Summary      Requeue parked notification e-mails
// @Tags         ops
// @Produce      json
// @Security     BearerAuth
// @Param        max query int false "Maximum entries to replay" default(100)
// @Success      200 {object} map[string]int
// @Router       /v1/ops/emails/replay [post]
func (h *OpsHandler) ReplayEmails(c *gin.Context) {
	max := queryInt(c, "max", 100)
	if max <= 0 || max > 1000 {
		max = 100
	}
	n, err := h.dead.Replay(c.Request.Context(), worker.QueueEmail, max)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"replayed": n})
}
