package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/services"
)

type AboutHandler struct {
	svc services.AboutService
}

func NewAboutHandler(svc services.AboutService) *AboutHandler {
	return &AboutHandler{svc: svc}
}

func (h *AboutHandler) List(c *gin.Context) {
	page, limit, paged, ok := pageQuery(c, "AboutHandler.List")
	if !ok {
		return
	}
	if paged {
		p, err := h.svc.Page(c.Request.Context(), page, limit)
		if err != nil {
			writeError(c, err)
			return
		}
		respond(c, http.StatusOK, p)
		return
	}

	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, list)
}

func (h *AboutHandler) Current(c *gin.Context) {
	a, err := h.svc.Current(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, a)
}

func (h *AboutHandler) Get(c *gin.Context) {
	a, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, a)
}

func (h *AboutHandler) Create(c *gin.Context) {
	var in models.About
	if !bindJSON(c, "AboutHandler.Create", &in) {
		return
	}
	a, err := h.svc.Create(c.Request.Context(), &in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, a)
}

// Update serves both PUT and PATCH; either way only the fields present are written.
func (h *AboutHandler) Update(c *gin.Context) {
	var patch models.AboutPatch
	if !bindJSON(c, "AboutHandler.Update", &patch) {
		return
	}
	a, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, a)
}

func (h *AboutHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, deleted{ID: id, Deleted: true})
}

func (h *AboutHandler) SetActive(c *gin.Context) {
	h.setActive(c, c.Param("id"))
}

// Activate is PUT /about/activate {"id": ...}.
func (h *AboutHandler) Activate(c *gin.Context) {
	var req ActivateRequest
	if !bindJSON(c, "AboutHandler.Activate", &req) {
		return
	}
	h.setActive(c, req.ID)
}

func (h *AboutHandler) setActive(c *gin.Context, id string) {
	a, err := h.svc.SetActive(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, a)
}

func (h *AboutHandler) AddSkill(c *gin.Context) {
	var in models.Skill
	if !bindJSON(c, "AboutHandler.AddSkill", &in) {
		return
	}
	h.reply(c)(h.svc.AddSkill(c.Request.Context(), c.Param("id"), in))
}

func (h *AboutHandler) RemoveSkill(c *gin.Context) {
	h.reply(c)(h.svc.RemoveSkill(c.Request.Context(), c.Param("id"), c.Param("subId")))
}

func (h *AboutHandler) AddEducation(c *gin.Context) {
	var in models.Education
	if !bindJSON(c, "AboutHandler.AddEducation", &in) {
		return
	}
	h.reply(c)(h.svc.AddEducation(c.Request.Context(), c.Param("id"), in))
}

func (h *AboutHandler) RemoveEducation(c *gin.Context) {
	h.reply(c)(h.svc.RemoveEducation(c.Request.Context(), c.Param("id"), c.Param("subId")))
}

func (h *AboutHandler) AddExperience(c *gin.Context) {
	var in models.Experience
	if !bindJSON(c, "AboutHandler.AddExperience", &in) {
		return
	}
	h.reply(c)(h.svc.AddExperience(c.Request.Context(), c.Param("id"), in))
}

func (h *AboutHandler) RemoveExperience(c *gin.Context) {
	h.reply(c)(h.svc.RemoveExperience(c.Request.Context(), c.Param("id"), c.Param("subId")))
}

func (h *AboutHandler) reply(c *gin.Context) func(*models.About, error) {
	return func(a *models.About, err error) {
		if err != nil {
			writeError(c, err)
			return
		}
		respond(c, http.StatusOK, a)
	}
}
