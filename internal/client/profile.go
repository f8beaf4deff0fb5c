package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/services"
)

type ProfileAPI struct {
	*Resource[models.Profile, models.ProfileInput, models.ProfilePatch]
	svc services.ProfileService
}

func newProfileAPI(c *Client, svc services.ProfileService) *ProfileAPI {
	return &ProfileAPI{
		Resource: newResource(c, "/profile", offlineOps[models.Profile, models.ProfileInput, models.ProfilePatch]{
			list:   svc.List,
			page:   svc.Page,
			get:    svc.Get,
			create: svc.Create,
			update: svc.Update,
			delete: svc.Delete,
		}),
		svc: svc,
	}
}

func (p *ProfileAPI) Active(ctx context.Context) (*models.Profile, error) {
	return run(&p.state,
		func() (*models.Profile, error) { return p.send(ctx, http.MethodGet, p.path+"/active", nil) },
		func() (*models.Profile, error) { return p.svc.Active(ctx) },
	)
}

func (p *ProfileAPI) SetActive(ctx context.Context, id string) (*models.Profile, error) {
	return run(&p.state,
		func() (*models.Profile, error) { return p.send(ctx, http.MethodPatch, p.idPath(id, "set-active"), nil) },
		func() (*models.Profile, error) { return p.svc.SetActive(ctx, id) },
	)
}

func (p *ProfileAPI) AddSocialLink(ctx context.Context, id string, in models.SocialLinkInput) (*models.Profile, error) {
	return run(&p.state,
		func() (*models.Profile, error) { return p.send(ctx, http.MethodPost, p.idPath(id, "social"), in) },
		func() (*models.Profile, error) { return p.svc.AddSocialLink(ctx, id, in) },
	)
}

func (p *ProfileAPI) UpdateSocialLink(ctx context.Context, id string, index int, patch models.SocialLinkPatch) (*models.Profile, error) {
	return run(&p.state,
		func() (*models.Profile, error) {
			return p.send(ctx, http.MethodPatch, p.idPath(id, "social", strconv.Itoa(index)), patch)
		},
		func() (*models.Profile, error) { return p.svc.UpdateSocialLink(ctx, id, index, patch) },
	)
}

func (p *ProfileAPI) RemoveSocialLink(ctx context.Context, id string, index int) (*models.Profile, error) {
	return run(&p.state,
		func() (*models.Profile, error) {
			return p.send(ctx, http.MethodDelete, p.idPath(id, "social", strconv.Itoa(index)), nil)
		},
		func() (*models.Profile, error) { return p.svc.RemoveSocialLink(ctx, id, index) },
	)
}

func (p *ProfileAPI) UpdateSocialLinkByID(ctx context.Context, id, linkID string, patch models.SocialLinkPatch) (*models.Profile, error) {
	return run(&p.state,
		func() (*models.Profile, error) {
			return p.send(ctx, http.MethodPatch, p.idPath(id, "social-links", linkID), patch)
		},
		func() (*models.Profile, error) { return p.svc.UpdateSocialLinkByID(ctx, id, linkID, patch) },
	)
}

func (p *ProfileAPI) RemoveSocialLinkByID(ctx context.Context, id, linkID string) (*models.Profile, error) {
	return run(&p.state,
		func() (*models.Profile, error) {
			return p.send(ctx, http.MethodDelete, p.idPath(id, "social-links", linkID), nil)
		},
		func() (*models.Profile, error) { return p.svc.RemoveSocialLinkByID(ctx, id, linkID) },
	)
}
