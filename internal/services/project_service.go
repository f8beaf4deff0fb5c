package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/repositories"
	"github.com/yoockh/folio/internal/utils"
)

type ProjectService interface {
	List(ctx context.Context) ([]models.Project, error)
	Page(ctx context.Context, page, limit int64) (*models.Page[models.Project], error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, in *models.Project) (*models.Project, error)
	Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

type projectService struct {
	store repositories.DocumentStore[models.Project]
}

func NewProjectService(store repositories.DocumentStore[models.Project]) ProjectService {
	return &projectService{store: store}
}

func (s *projectService) List(ctx context.Context) ([]models.Project, error) {
	const op = "ProjectService.List"

	out, err := s.store.List(ctx)
	if err != nil {
		return nil, storeErr(op, "projects", err)
	}
	return out, nil
}

func (s *projectService) Page(ctx context.Context, page, limit int64) (*models.Page[models.Project], error) {
	const op = "ProjectService.Page"

	items, total, err := s.store.Page(ctx, page, limit)
	if err != nil {
		return nil, storeErr(op, "projects", err)
	}
	return models.NewPage(items, total, page, limit), nil
}

func (s *projectService) Get(ctx context.Context, id string) (*models.Project, error) {
	const op = "ProjectService.Get"

	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeErr(op, "project "+id, err)
	}
	return p, nil
}

func (s *projectService) Create(ctx context.Context, in *models.Project) (*models.Project, error) {
	const op = "ProjectService.Create"

	if in == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "body is required", nil)
	}
	if err := requireText(op, map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"imageUrl":    in.ImageURL,
	}); err != nil {
		return nil, err
	}
	if err := validDate(op, in.CreatedAt); err != nil {
		return nil, err
	}

	in.ID = primitive.NilObjectID
	if err := s.store.Insert(ctx, in); err != nil {
		return nil, storeErr(op, "project", err)
	}
	return in, nil
}

func (s *projectService) Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	const op = "ProjectService.Update"

	texts := map[string]string{}
	if patch.Title != nil {
		texts["title"] = *patch.Title
	}
	if patch.Description != nil {
		texts["description"] = *patch.Description
	}
	if patch.ImageURL != nil {
		texts["imageUrl"] = *patch.ImageURL
	}
	if err := requireText(op, texts); err != nil {
		return nil, err
	}
	if patch.CreatedAt != nil {
		// nothing fills a cleared date back in on update
		if *patch.CreatedAt == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, "createdAt must be YYYY-MM-DD", nil)
		}
		if err := validDate(op, *patch.CreatedAt); err != nil {
			return nil, err
		}
	}

	p, err := s.store.Update(ctx, id, patch.Fields())
	if err != nil {
		return nil, storeErr(op, "project "+id, err)
	}
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	const op = "ProjectService.Delete"

	if err := s.store.Delete(ctx, id); err != nil {
		return storeErr(op, "project "+id, err)
	}
	return nil
}

// validDate accepts an empty value (filled in on insert) or YYYY-MM-DD.
func validDate(op, v string) error {
	if v == "" {
		return nil
	}
	if _, err := time.Parse(models.DateLayout, v); err != nil {
		return utils.E(utils.CodeInvalidArgument, op, "createdAt must be YYYY-MM-DD", err)
	}
	return nil
}
