package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/services"
)

type ProjectHandler struct {
	svc services.ProjectService
}

func NewProjectHandler(svc services.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func (h *ProjectHandler) List(c *gin.Context) {
	page, limit, paged, ok := pageQuery(c, "ProjectHandler.List")
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

func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, p)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var in models.Project
	if !bindJSON(c, "ProjectHandler.Create", &in) {
		return
	}
	p, err := h.svc.Create(c.Request.Context(), &in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, p)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var patch models.ProjectPatch
	if !bindJSON(c, "ProjectHandler.Update", &patch) {
		return
	}
	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, p)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, deleted{ID: id, Deleted: true})
}
