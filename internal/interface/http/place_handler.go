package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/placebook/internal/application"
	"github.com/oksasatya/placebook/pkg/apperror"
	"github.com/oksasatya/placebook/pkg/response"
)

const maxImageBytes = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type PlaceHandler struct {
	Svc *application.PlaceService
}

func NewPlaceHandler(svc *application.PlaceService) *PlaceHandler {
	return &PlaceHandler{Svc: svc}
}

type createPlaceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required,min=5"`
	Address     string `json:"address" binding:"required"`
}

type updatePlaceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required,min=5"`
}

func (h *PlaceHandler) GetPlace(c *gin.Context) {
	p, err := h.Svc.GetPlace(c.Request.Context(), c.Param("pid"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "place", p)
}

func (h *PlaceHandler) PlacesByUser(c *gin.Context) {
	places, err := h.Svc.PlacesByUser(c.Request.Context(), c.Param("uid"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "places", places)
}

func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	var req createPlaceRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.CreatePlace(c.Request.Context(), callerID(c), application.CreatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusCreated, "place", p)
}

func (h *PlaceHandler) UpdatePlace(c *gin.Context) {
	var req updatePlaceRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.UpdatePlace(c.Request.Context(), callerID(c), c.Param("pid"), application.UpdatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "place", p)
}

func (h *PlaceHandler) DeletePlace(c *gin.Context) {
	if err := h.Svc.DeletePlace(c.Request.Context(), callerID(c), c.Param("pid")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Deleted place.")
}

// UploadImage accepts a multipart "image" field (jpeg, png, webp or gif, at most 5 MiB).
func (h *PlaceHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		_ = c.Error(apperror.Validation(apperror.InvalidInput).WithDetails(map[string]string{"image": "is required"}))
		return
	}
	if fh.Size > maxImageBytes {
		_ = c.Error(apperror.Validation(apperror.InvalidInput).WithDetails(map[string]string{"image": "must be at most 5 MiB"}))
		return
	}
	f, err := fh.Open()
	if err != nil {
		_ = c.Error(apperror.Validation(apperror.InvalidInput).WithDetails(map[string]string{"image": "could not be read"}))
		return
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		_ = c.Error(apperror.Validation(apperror.InvalidInput).WithDetails(map[string]string{"image": "could not be read"}))
		return
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	if !allowedImageTypes[contentType] {
		_ = c.Error(apperror.Validation(apperror.InvalidInput).WithDetails(map[string]string{"image": "must be a jpeg, png, webp or gif image"}))
		return
	}

	body := io.MultiReader(bytes.NewReader(head), f)
	p, err := h.Svc.UploadImage(c.Request.Context(), callerID(c), c.Param("pid"), fh.Filename, contentType, body)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "place", p)
}

func (h *PlaceHandler) SearchPlaces(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	places, err := h.Svc.SearchPlaces(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "places", places)
}
