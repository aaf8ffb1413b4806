package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hidingbook/internal/models"
	"hidingbook/internal/service"
)

type OrderHandler struct {
	Orders   *service.OrderService
	Fills    *service.FillService
	Auctions *service.AuctionService
}

func (h *OrderHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/orders")
	group.GET("/open", h.listOpen)
	group.GET("/history", h.listHistory)
	group.GET("/:hash/fills", h.listFills)
	group.GET("/:hash/auctions", h.listAuctions)
}

func orderMeta(res service.OrderResult) map[string]any {
	meta := dropMeta(len(res.Orders), res.DroppedTotal(), res.Dropped)
	meta["pages"] = res.Pages
	return meta
}

// dropMeta reports rows the upstream sent but that could not be shown, so an
// empty list with drops is not mistaken for "none found".
func dropMeta(n, dropped int, byReason map[string]int) map[string]any {
	meta := listMeta(n)
	meta["dropped"] = dropped
	meta["dropped_by_reason"] = byReason
	return meta
}

// @Summary List open Hiding Book orders
// @Tags orders
// @Param type query string false "MarketMaker|AutoFill|LimitOrder"
// @Success 200 {object} apiResponse
// @Failure 502 {object} apiResponse
// @Router /api/v1/orders/open [get]
func (h *OrderHandler) listOpen(c *gin.Context) {
	res, err := h.Orders.Open(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	res.Orders = filterOrderType(res.Orders, c.Query("type"))
	Ok(c, res.Orders, orderMeta(res))
}

// @Summary List historical orders of one or more maker wallets
// @Tags orders
// @Param address query string true "wallet address(es), comma separated"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Failure 502 {object} apiResponse
// @Router /api/v1/orders/history [get]
func (h *OrderHandler) listHistory(c *gin.Context) {
	res, err := h.Orders.History(c.Request.Context(), c.QueryArray("address")...)
	if err != nil {
		Fail(c, err)
		return
	}
	res.Orders = filterOrderType(res.Orders, c.Query("type"))
	Ok(c, res.Orders, orderMeta(res))
}

// @Summary List fills of an order
// @Tags orders
// @Param hash path string true "order hash"
// @Success 200 {object} apiResponse
// @Router /api/v1/orders/{hash}/fills [get]
func (h *OrderHandler) listFills(c *gin.Context) {
	res, err := h.Fills.Fills(c.Request.Context(), c.Param("hash"))
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, res.Fills, dropMeta(len(res.Fills), res.DroppedTotal(), res.Dropped))
}

// @Summary List keeper auction bids for an order
// @Tags orders
// @Param hash path string true "order hash"
// @Success 200 {object} apiResponse
// @Router /api/v1/orders/{hash}/auctions [get]
func (h *OrderHandler) listAuctions(c *gin.Context) {
	res, err := h.Auctions.Bids(c.Request.Context(), c.Param("hash"))
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, res.Bids, dropMeta(len(res.Bids), res.DroppedTotal(), res.Dropped))
}

func filterOrderType(orders []models.Order, typ string) []models.Order {
	if typ == "" {
		return orders
	}
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if strings.EqualFold(string(o.OrderType), typ) {
			out = append(out, o)
		}
	}
	return out
}
