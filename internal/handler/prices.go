package handler

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"hidingbook/internal/service"
)

type PriceHandler struct {
	Prices   *service.PriceService
	Balances *service.BalanceService
}

func (h *PriceHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1")
	group.GET("/prices/cross", h.crossRate)
	group.GET("/balances", h.balance)
}

// @Summary Cross-rate price series for an order's pair
// @Tags prices
// @Param base query string true "base token symbol (maker token)"
// @Param quote query string true "quote token symbol (taker token)"
// @Param lookback query string false "1D|1W|1M|1Y|MAX" default(1M)
// @Param target query string false "order limit price"
// @Param created query string false "order creation time (RFC3339 or unix seconds)"
// @Param expiry query string false "order expiry time (RFC3339 or unix seconds)"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/prices/cross [get]
func (h *PriceHandler) crossRate(c *gin.Context) {
	q := service.CrossRateQuery{
		Base:     c.Query("base"),
		Quote:    c.Query("quote"),
		Lookback: c.DefaultQuery("lookback", "1M"),
	}
	if q.Base == "" || q.Quote == "" {
		Error(c, http.StatusBadRequest, "base and quote are required", map[string]any{"lookbacks": lookbackKeys()})
		return
	}
	var err error
	if q.Target, err = decimalQuery(c, "target"); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if q.CreatedAt, err = timeQuery(c, "created"); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if q.ExpiresAt, err = timeQuery(c, "expiry"); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	series, err := h.Prices.CrossRate(c.Request.Context(), q)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, series, listMeta(len(series.Points)))
}

// @Summary ERC-20 balance of a wallet
// @Tags prices
// @Param token query string true "token symbol or contract address"
// @Param wallet query string true "wallet address"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Failure 503 {object} apiResponse
// @Router /api/v1/balances [get]
func (h *PriceHandler) balance(c *gin.Context) {
	if h.Balances == nil {
		Error(c, http.StatusServiceUnavailable, "balance lookup not configured", nil)
		return
	}
	bal, err := h.Balances.TokenBalance(c.Request.Context(), c.Query("token"), c.Query("wallet"))
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, bal, nil)
}

func lookbackKeys() []string {
	keys := make([]string, 0, len(service.Lookbacks))
	for k := range service.Lookbacks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
