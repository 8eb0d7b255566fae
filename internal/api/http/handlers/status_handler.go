package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/limonericx/community-bot/internal/lifecycle"
	"github.com/limonericx/community-bot/internal/observability"
)

// StatusHandler exposes the bot's runtime counters.
type StatusHandler struct {
	metrics    *observability.Metrics
	controller *lifecycle.Controller
	queue      *lifecycle.ArchiveQueue
}

// NewStatusHandler returns a new handler instance.
func NewStatusHandler(metrics *observability.Metrics, controller *lifecycle.Controller, queue *lifecycle.ArchiveQueue) *StatusHandler {
	return &StatusHandler{metrics: metrics, controller: controller, queue: queue}
}

// Status reports action counters, error counters and queue depth.
func (h *StatusHandler) Status(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	actions, errCounts := h.metrics.Snapshot()

	pending := int64(-1)
	if h.queue != nil {
		if count, err := h.queue.Pending(ctx); err == nil {
			pending = count
		}
	}

	return c.JSON(fiber.Map{
		"open_items":      h.controller.OpenItems(),
		"pending_archive": pending,
		"actions":         actions,
		"errors":          errCounts,
	})
}
