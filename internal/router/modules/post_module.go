package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/placebook/internal/interface/http"
)

// PostModule registers the post feed. Every route requires a token.
type PostModule struct {
	Handler *handlers.PostHandler
	Guard   Guard
}

func NewPostModule(h *handlers.PostHandler, g Guard) *PostModule {
	return &PostModule{Handler: h, Guard: g}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	posts := rg.Group("/posts")
	posts.Use(m.Guard.Auth())
	{
		posts.POST("", m.Handler.CreatePost)
		posts.GET("", m.Handler.ListPosts)
		posts.GET("/:pid", m.Handler.GetPost)
		posts.DELETE("/:pid", m.Handler.DeletePost)
		posts.PUT("/like/:pid", m.Handler.LikePost)
		posts.PUT("/unlike/:pid", m.Handler.UnlikePost)
		posts.POST("/comment/:pid", m.Handler.AddComment)
		posts.DELETE("/comment/:pid/:comment_id", m.Handler.DeleteComment)
	}
}
