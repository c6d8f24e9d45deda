package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"papergraph/internal/server/middleware"
	"papergraph/pkg/store"
)

func GetSharedEffectsHandler(c echo.Context) error {
	type getSharedEffectsParams struct {
		Limit int `query:"limit"`
	}

	type getSharedEffectsResponse struct {
		Message string               `json:"message"`
		Effects []store.SharedEffect `json:"data"`
	}

	params := new(getSharedEffectsParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getSharedEffectsResponse{
			Message: "Invalid request params",
		})
	}
	limit := clampLimit(params.Limit)

	ctx := c.Request().Context()
	graphStore := c.(*middleware.AppContext).App.Store

	effects, err := graphStore.SharedEffects(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, getSharedEffectsResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getSharedEffectsResponse{
		Message: "Shared effects found",
		Effects: effects,
	})
}
