package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hidingbook/internal/repository"
)

type SnapshotHandler struct {
	Repo repository.SnapshotRepository
}

func (h *SnapshotHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/snapshots/depth", h.listDepth)
}

// @Summary Recent depth snapshots of the open book
// @Tags snapshots
// @Param limit query int false "max rows, newest first" default(96)
// @Param since query string false "only snapshots at or after this time"
// @Success 200 {object} apiResponse
// @Failure 503 {object} apiResponse
// @Router /api/v1/snapshots/depth [get]
func (h *SnapshotHandler) listDepth(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusServiceUnavailable, "snapshot archive not configured", nil)
		return
	}
	params := repository.ListSnapshotsParams{Limit: intQuery(c, "limit", 96)}
	since, err := timeQuery(c, "since")
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if !since.IsZero() {
		params.Since = &since
	}
	items, err := h.Repo.ListDepthSnapshots(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, items, listMeta(len(items)))
}
