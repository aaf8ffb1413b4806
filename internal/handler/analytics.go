package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hidingbook/internal/analytics"
	"hidingbook/internal/service"
)

type AnalyticsHandler struct {
	Orders *service.OrderService
}

func (h *AnalyticsHandler) Register(r *gin.Engine) {
	open := r.Group("/api/v1/analytics/open")
	open.GET("/sizes", h.openSizes)
	open.GET("/depth", h.openDepth)

	history := r.Group("/api/v1/analytics/history")
	history.GET("/sizes", h.historySizes)
	history.GET("/timeline", h.historyTimeline)
	history.GET("/fill-levels", h.historyFillLevels)
}

// @Summary Open orders by size bucket
// @Tags analytics
// @Success 200 {object} apiResponse
// @Router /api/v1/analytics/open/sizes [get]
func (h *AnalyticsHandler) openSizes(c *gin.Context) {
	res, err := h.Orders.Open(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, analytics.SizeBuckets(res.Orders), listMeta(len(res.Orders)))
}

// @Summary Open order book depth in USD
// @Tags analytics
// @Param mode query string false "token|pair" default(token)
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/analytics/open/depth [get]
func (h *AnalyticsHandler) openDepth(c *gin.Context) {
	mode := strings.ToLower(strings.TrimSpace(c.DefaultQuery("mode", "token")))
	if mode != "token" && mode != "pair" {
		Error(c, http.StatusBadRequest, "mode must be token or pair", nil)
		return
	}
	res, err := h.Orders.Open(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	meta := listMeta(len(res.Orders))
	meta["mode"] = mode
	if mode == "pair" {
		Ok(c, analytics.DepthByPair(res.Orders), meta)
		return
	}
	rows := analytics.DepthByToken(res.Orders)
	maker, taker := analytics.DepthTotals(rows)
	meta["total_maker_usd"] = maker
	meta["total_taker_usd"] = taker
	Ok(c, rows, meta)
}

func (h *AnalyticsHandler) history(c *gin.Context) (service.OrderResult, bool) {
	res, err := h.Orders.History(c.Request.Context(), c.QueryArray("address")...)
	if err != nil {
		Fail(c, err)
		return service.OrderResult{}, false
	}
	return res, true
}

// @Summary Historical orders of a wallet by size bucket
// @Tags analytics
// @Param address query string true "wallet address(es)"
// @Success 200 {object} apiResponse
// @Router /api/v1/analytics/history/sizes [get]
func (h *AnalyticsHandler) historySizes(c *gin.Context) {
	res, ok := h.history(c)
	if !ok {
		return
	}
	Ok(c, analytics.SizeBuckets(res.Orders), listMeta(len(res.Orders)))
}

// @Summary Historical orders of a wallet over time
// @Tags analytics
// @Param address query string true "wallet address(es)"
// @Success 200 {object} apiResponse
// @Router /api/v1/analytics/history/timeline [get]
func (h *AnalyticsHandler) historyTimeline(c *gin.Context) {
	res, ok := h.history(c)
	if !ok {
		return
	}
	points := analytics.Timeline(res.Orders)
	Ok(c, points, listMeta(len(points)))
}

// @Summary Historical orders of a wallet by fill level
// @Tags analytics
// @Param address query string true "wallet address(es)"
// @Success 200 {object} apiResponse
// @Router /api/v1/analytics/history/fill-levels [get]
func (h *AnalyticsHandler) historyFillLevels(c *gin.Context) {
	res, ok := h.history(c)
	if !ok {
		return
	}
	Ok(c, analytics.FillLevels(res.Orders), listMeta(len(res.Orders)))
}
