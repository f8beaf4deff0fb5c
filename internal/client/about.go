package client

import (
	"context"
	"net/http"

	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/services"
)

type AboutAPI struct {
	*Resource[models.About, models.About, models.AboutPatch]
	svc services.AboutService
}

func newAboutAPI(c *Client, svc services.AboutService) *AboutAPI {
	return &AboutAPI{
		Resource: newResource(c, "/about", offlineOps[models.About, models.About, models.AboutPatch]{
			list:   svc.List,
			page:   svc.Page,
			get:    svc.Get,
			create: func(ctx context.Context, in models.About) (*models.About, error) { return svc.Create(ctx, &in) },
			update: svc.Update,
			delete: svc.Delete,
		}),
		svc: svc,
	}
}

// Current returns the active About, falling back to the oldest one or a
// placeholder when none is active.
func (a *AboutAPI) Current(ctx context.Context) (*models.About, error) {
	return run(&a.state,
		func() (*models.About, error) { return a.send(ctx, http.MethodGet, a.path+"/current", nil) },
		func() (*models.About, error) { return a.svc.Current(ctx) },
	)
}

func (a *AboutAPI) SetActive(ctx context.Context, id string) (*models.About, error) {
	return run(&a.state,
		func() (*models.About, error) { return a.send(ctx, http.MethodPatch, a.idPath(id, "set-active"), nil) },
		func() (*models.About, error) { return a.svc.SetActive(ctx, id) },
	)
}

func (a *AboutAPI) AddSkill(ctx context.Context, id string, sk models.Skill) (*models.About, error) {
	return run(&a.state,
		func() (*models.About, error) { return a.send(ctx, http.MethodPut, a.idPath(id, "skills", "add"), sk) },
		func() (*models.About, error) { return a.svc.AddSkill(ctx, id, sk) },
	)
}

func (a *AboutAPI) RemoveSkill(ctx context.Context, id, skillID string) (*models.About, error) {
	return run(&a.state,
		func() (*models.About, error) { return a.send(ctx, http.MethodDelete, a.idPath(id, "skills", skillID), nil) },
		func() (*models.About, error) { return a.svc.RemoveSkill(ctx, id, skillID) },
	)
}

func (a *AboutAPI) AddEducation(ctx context.Context, id string, e models.Education) (*models.About, error) {
	return run(&a.state,
		func() (*models.About, error) { return a.send(ctx, http.MethodPut, a.idPath(id, "education", "add"), e) },
		func() (*models.About, error) { return a.svc.AddEducation(ctx, id, e) },
	)
}

func (a *AboutAPI) RemoveEducation(ctx context.Context, id, educationID string) (*models.About, error) {
	return run(&a.state,
		func() (*models.About, error) {
			return a.send(ctx, http.MethodDelete, a.idPath(id, "education", educationID), nil)
		},
		func() (*models.About, error) { return a.svc.RemoveEducation(ctx, id, educationID) },
	)
}

func (a *AboutAPI) AddExperience(ctx context.Context, id string, e models.Experience) (*models.About, error) {
	return run(&a.state,
		func() (*models.About, error) { return a.send(ctx, http.MethodPut, a.idPath(id, "experience", "add"), e) },
		func() (*models.About, error) { return a.svc.AddExperience(ctx, id, e) },
	)
}

func (a *AboutAPI) RemoveExperience(ctx context.Context, id, experienceID string) (*models.About, error) {
	return run(&a.state,
		func() (*models.About, error) {
			return a.send(ctx, http.MethodDelete, a.idPath(id, "experience", experienceID), nil)
		},
		func() (*models.About, error) { return a.svc.RemoveExperience(ctx, id, experienceID) },
	)
}
