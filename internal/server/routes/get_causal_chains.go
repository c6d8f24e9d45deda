package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"papergraph/internal/server/middleware"
	"papergraph/pkg/store"
)

const (
	defaultQueryLimit = 20
	maxQueryLimit     = 100
)

func GetCausalChainsHandler(c echo.Context) error {
	type getCausalChainsParams struct {
		Limit int `query:"limit"`
	}

	type getCausalChainsResponse struct {
		Message string              `json:"message"`
		Chains  []store.CausalChain `json:"data"`
	}

	params := new(getCausalChainsParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getCausalChainsResponse{
			Message: "Invalid request params",
		})
	}
	limit := clampLimit(params.Limit)

	ctx := c.Request().Context()
	graphStore := c.(*middleware.AppContext).App.Store

	chains, err := graphStore.CausalChains(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, getCausalChainsResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getCausalChainsResponse{
		Message: "Causal chains found",
		Chains:  chains,
	})
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultQueryLimit
	}
	if limit > maxQueryLimit {
		return maxQueryLimit
	}
	return limit
}
