package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/services"
	"github.com/yoockh/folio/internal/utils"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) List(c *gin.Context) {
	page, limit, paged, ok := pageQuery(c, "ProfileHandler.List")
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

func (h *ProfileHandler) Active(c *gin.Context) {
	h.reply(c, http.StatusOK)(h.svc.Active(c.Request.Context()))
}

func (h *ProfileHandler) Get(c *gin.Context) {
	h.reply(c, http.StatusOK)(h.svc.Get(c.Request.Context(), c.Param("id")))
}

func (h *ProfileHandler) Create(c *gin.Context) {
	var in models.ProfileInput
	if !bindJSON(c, "ProfileHandler.Create", &in) {
		return
	}
	h.reply(c, http.StatusCreated)(h.svc.Create(c.Request.Context(), in))
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var patch models.ProfilePatch
	if !bindJSON(c, "ProfileHandler.Update", &patch) {
		return
	}
	h.reply(c, http.StatusOK)(h.svc.Update(c.Request.Context(), c.Param("id"), patch))
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, deleted{ID: id, Deleted: true})
}

func (h *ProfileHandler) SetActive(c *gin.Context) {
	h.reply(c, http.StatusOK)(h.svc.SetActive(c.Request.Context(), c.Param("id")))
}

// Activate is PUT /profile/activate {"id": ...}.
func (h *ProfileHandler) Activate(c *gin.Context) {
	var req ActivateRequest
	if !bindJSON(c, "ProfileHandler.Activate", &req) {
		return
	}
	h.reply(c, http.StatusOK)(h.svc.SetActive(c.Request.Context(), req.ID))
}

func (h *ProfileHandler) AddSocialLink(c *gin.Context) {
	var in models.SocialLinkInput
	if !bindJSON(c, "ProfileHandler.AddSocialLink", &in) {
		return
	}
	h.reply(c, http.StatusOK)(h.svc.AddSocialLink(c.Request.Context(), c.Param("id"), in))
}

func (h *ProfileHandler) UpdateSocialLink(c *gin.Context) {
	const op = "ProfileHandler.UpdateSocialLink"

	index, ok := linkIndex(c, op)
	if !ok {
		return
	}
	var patch models.SocialLinkPatch
	if !bindJSON(c, op, &patch) {
		return
	}
	h.reply(c, http.StatusOK)(h.svc.UpdateSocialLink(c.Request.Context(), c.Param("id"), index, patch))
}

func (h *ProfileHandler) RemoveSocialLink(c *gin.Context) {
	index, ok := linkIndex(c, "ProfileHandler.RemoveSocialLink")
	if !ok {
		return
	}
	h.reply(c, http.StatusOK)(h.svc.RemoveSocialLink(c.Request.Context(), c.Param("id"), index))
}

func (h *ProfileHandler) UpdateSocialLinkByID(c *gin.Context) {
	var patch models.SocialLinkPatch
	if !bindJSON(c, "ProfileHandler.UpdateSocialLinkByID", &patch) {
		return
	}
	h.reply(c, http.StatusOK)(h.svc.UpdateSocialLinkByID(c.Request.Context(), c.Param("id"), c.Param("linkId"), patch))
}

func (h *ProfileHandler) RemoveSocialLinkByID(c *gin.Context) {
	h.reply(c, http.StatusOK)(h.svc.RemoveSocialLinkByID(c.Request.Context(), c.Param("id"), c.Param("linkId")))
}

func (h *ProfileHandler) reply(c *gin.Context, status int) func(*models.Profile, error) {
	return func(p *models.Profile, err error) {
		if err != nil {
			writeError(c, err)
			return
		}
		respond(c, status, p)
	}
}

func linkIndex(c *gin.Context, op string) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "index must be an integer", err))
		return 0, false
	}
	return i, true
}
