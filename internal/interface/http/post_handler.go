package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/placebook/internal/application"
	"github.com/oksasatya/placebook/pkg/response"
)

type PostHandler struct {
	Svc *application.PostService
}

func NewPostHandler(svc *application.PostService) *PostHandler {
	return &PostHandler{Svc: svc}
}

type textRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req textRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.CreatePost(c.Request.Context(), callerID(c), req.Text)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusCreated, "post", p)
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.Svc.ListPosts(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "posts", posts)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	p, err := h.Svc.GetPost(c.Request.Context(), c.Param("pid"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "post", p)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.Svc.DeletePost(c.Request.Context(), callerID(c), c.Param("pid")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Post removed")
}

func (h *PostHandler) LikePost(c *gin.Context) {
	likes, err := h.Svc.LikePost(c.Request.Context(), callerID(c), c.Param("pid"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "likes", likes)
}

func (h *PostHandler) UnlikePost(c *gin.Context) {
	likes, err := h.Svc.UnlikePost(c.Request.Context(), callerID(c), c.Param("pid"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "likes", likes)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	var req textRequest
	if !bindJSON(c, &req) {
		return
	}
	comments, err := h.Svc.AddComment(c.Request.Context(), callerID(c), c.Param("pid"), req.Text)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "comments", comments)
}

func (h *PostHandler) DeleteComment(c *gin.Context) {
	comments, err := h.Svc.DeleteComment(c.Request.Context(), callerID(c), c.Param("pid"), c.Param("comment_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "comments", comments)
}
