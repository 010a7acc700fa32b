package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/placebook/internal/interface/http"
	"github.com/oksasatya/placebook/internal/interface/middleware"
)

type PlaceModule struct {
	Handler *handlers.PlaceHandler
	Guard   Guard
}

func NewPlaceModule(h *handlers.PlaceHandler, g Guard) *PlaceModule {
	return &PlaceModule{Handler: h, Guard: g}
}

func (m *PlaceModule) Register(rg *gin.RouterGroup) {
	places := rg.Group("/places")
	places.GET("/search", m.Handler.SearchPlaces)
	places.GET("/user/:uid", m.Handler.PlacesByUser)
	places.GET("/:pid", m.Handler.GetPlace)

	auth := places.Group("")
	auth.Use(m.Guard.Auth())
	{
		auth.POST("", m.Handler.CreatePlace)
		auth.PATCH("/:pid", m.Handler.UpdatePlace)
		auth.DELETE("/:pid", m.Handler.DeletePlace)
		auth.PUT("/:pid/image", m.Guard.Limit(20, time.Minute, middleware.KeyByUserID()), m.Handler.UploadImage)
	}
}
