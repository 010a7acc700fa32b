package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/placebook/internal/interface/http"
)

type ProfileModule struct {
	Handler *handlers.ProfileHandler
	Guard   Guard
}

func NewProfileModule(h *handlers.ProfileHandler, g Guard) *ProfileModule {
	return &ProfileModule{Handler: h, Guard: g}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	profiles := rg.Group("/profiles")
	profiles.GET("", m.Handler.ListProfiles)
	profiles.GET("/user/:uid", m.Handler.ProfileByUser)

	auth := profiles.Group("")
	auth.Use(m.Guard.Auth())
	{
		auth.GET("/me", m.Handler.MyProfile)
		auth.POST("", m.Handler.CreateProfile)
		auth.PATCH("/:pid", m.Handler.UpdateProfile)
		auth.DELETE("/:pid", m.Handler.DeleteProfile)
		auth.PUT("/experience", m.Handler.AddExperience)
		auth.DELETE("/experience/:exp_id", m.Handler.RemoveExperience)
		auth.PUT("/education", m.Handler.AddEducation)
		auth.DELETE("/education/:edu_id", m.Handler.RemoveEducation)
	}
}
