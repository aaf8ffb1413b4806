package handler

import (
	"github.com/gin-gonic/gin"

	"hidingbook/internal/models"
	"hidingbook/internal/service"
)

type ReferenceHandler struct {
	Tokens   *service.TokenService
	Registry *service.RegistryService
}

func (h *ReferenceHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1")
	group.GET("/tokens", h.listTokens)
	group.GET("/registry", h.listRegistry)
}

// @Summary List reference tokens
// @Tags reference
// @Param symbol query string false "filter by symbol (case-insensitive)"
// @Success 200 {object} apiResponse
// @Router /api/v1/tokens [get]
func (h *ReferenceHandler) listTokens(c *gin.Context) {
	table, err := h.Tokens.Load(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	items := table.All()
	if sym := c.Query("symbol"); sym != "" {
		items = items[:0]
		if tok, ok := table.BySymbol(sym); ok {
			items = append(items, tok)
		}
	}
	Ok(c, items, listMeta(len(items)))
}

// @Summary List known addresses (market makers, keepers, curated wallets)
// @Tags reference
// @Param type query string false "MarketMaker|Keeper|User|AppUser"
// @Success 200 {object} apiResponse
// @Router /api/v1/registry [get]
func (h *ReferenceHandler) listRegistry(c *gin.Context) {
	reg, err := h.Registry.Load(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	items := reg.All()
	if typ := c.Query("type"); typ != "" {
		filtered := items[:0]
		want := models.ParseAddressType(typ)
		for _, item := range items {
			if item.Type == want {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}
	Ok(c, items, listMeta(len(items)))
}
