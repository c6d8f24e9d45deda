package middleware

import (
	"github.com/labstack/echo/v4"

	"papergraph/pkg/store"
)

type App struct {
	Store store.GraphStore
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(store store.GraphStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			app := &App{
				Store: store,
			}
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
