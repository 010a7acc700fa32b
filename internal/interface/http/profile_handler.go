package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/placebook/internal/application"
	"github.com/oksasatya/placebook/internal/domain/entity"
	"github.com/oksasatya/placebook/pkg/response"
	"github.com/oksasatya/placebook/pkg/validation"
)

type ProfileHandler struct {
	Svc *application.ProfileService
}

func NewProfileHandler(svc *application.ProfileService) *ProfileHandler {
	return &ProfileHandler{Svc: svc}
}

type profileRequest struct {
	Company   string `json:"company"`
	Location  string `json:"location"`
	Website   string `json:"website"`
	Bio       string `json:"bio"`
	Status    string `json:"status" binding:"required"`
	Skills    string `json:"skills"` // comma-separated
	YouTube   string `json:"youtube"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
	Facebook  string `json:"facebook"`
}

func (r profileRequest) input() application.ProfileInput {
	return application.ProfileInput{
		Company:  r.Company,
		Location: r.Location,
		Website:  r.Website,
		Bio:      r.Bio,
		Status:   r.Status,
		Skills:   splitSkills(r.Skills),
		Social: entity.Social{
			YouTube:   r.YouTube,
			Twitter:   r.Twitter,
			Instagram: r.Instagram,
			LinkedIn:  r.LinkedIn,
			Facebook:  r.Facebook,
		},
	}
}

func splitSkills(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type experienceRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required,ymd"`
	To          string `json:"to" binding:"omitempty,ymd"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"fieldofstudy" binding:"required"`
	From         string `json:"from" binding:"required,ymd"`
	To           string `json:"to" binding:"omitempty,ymd"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// dates parses from/to already checked by the ymd validator.
func dates(from, to string) (time.Time, *time.Time) {
	f, _ := time.Parse(validation.DateLayout, from)
	if to == "" {
		return f, nil
	}
	t, _ := time.Parse(validation.DateLayout, to)
	return f, &t
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.Svc.ListProfiles(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "profiles", profiles)
}

func (h *ProfileHandler) ProfileByUser(c *gin.Context) {
	p, err := h.Svc.ProfileByUser(c.Request.Context(), c.Param("uid"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "profile", p)
}

func (h *ProfileHandler) MyProfile(c *gin.Context) {
	p, err := h.Svc.MyProfile(c.Request.Context(), callerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "profile", p)
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req profileRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.CreateProfile(c.Request.Context(), callerID(c), req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusCreated, "profile", p)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.UpdateProfile(c.Request.Context(), callerID(c), c.Param("pid"), req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "profile", p)
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	if err := h.Svc.DeleteProfile(c.Request.Context(), callerID(c), c.Param("pid")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Deleted profile.")
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	var req experienceRequest
	if !bindJSON(c, &req) {
		return
	}
	from, to := dates(req.From, req.To)
	p, err := h.Svc.AddExperience(c.Request.Context(), callerID(c), application.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "profile", p)
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	p, err := h.Svc.RemoveExperience(c.Request.Context(), callerID(c), c.Param("exp_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "profile", p)
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	var req educationRequest
	if !bindJSON(c, &req) {
		return
	}
	from, to := dates(req.From, req.To)
	p, err := h.Svc.AddEducation(c.Request.Context(), callerID(c), application.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "profile", p)
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	p, err := h.Svc.RemoveEducation(c.Request.Context(), callerID(c), c.Param("edu_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Resource(c, http.StatusOK, "profile", p)
}
