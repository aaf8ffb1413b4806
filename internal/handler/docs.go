package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterDocs serves a short route overview next to the swagger UI.
func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, `# Hiding Book Viewer

Read-only views over Hiding Book orders. Every API response uses the envelope
{code, message, data, meta}. Empty lists answer 200 with meta.empty = true.

## Reference
- GET /api/v1/tokens
- GET /api/v1/registry

## Orders
- GET /api/v1/orders/open
- GET /api/v1/orders/history?address=0x...
- GET /api/v1/orders/{hash}/fills
- GET /api/v1/orders/{hash}/auctions

## Analytics
- GET /api/v1/analytics/open/sizes
- GET /api/v1/analytics/open/depth?mode=token|pair
- GET /api/v1/analytics/history/sizes?address=0x...
- GET /api/v1/analytics/history/timeline?address=0x...
- GET /api/v1/analytics/history/fill-levels?address=0x...

## Prices
- GET /api/v1/prices/cross?base=WETH&quote=USDC&lookback=1M
- GET /api/v1/balances?token=USDC&wallet=0x...

## Archive
- GET /api/v1/snapshots/depth?limit=96

## Ops
- GET /healthz
- GET /readyz
- GET /metrics
- GET /swagger/index.html
`)
	})
}
