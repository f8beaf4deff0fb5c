package services

import (
	"context"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yoockh/folio/internal/lock"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/repositories"
	"github.com/yoockh/folio/internal/utils"
)

type AboutService interface {
	List(ctx context.Context) ([]models.About, error)
	Page(ctx context.Context, page, limit int64) (*models.Page[models.About], error)
	Get(ctx context.Context, id string) (*models.About, error)
	Current(ctx context.Context) (*models.About, error)
	Create(ctx context.Context, in *models.About) (*models.About, error)
	Update(ctx context.Context, id string, patch models.AboutPatch) (*models.About, error)
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string) (*models.About, error)

	AddSkill(ctx context.Context, id string, s models.Skill) (*models.About, error)
	RemoveSkill(ctx context.Context, id, skillID string) (*models.About, error)
	AddEducation(ctx context.Context, id string, e models.Education) (*models.About, error)
	RemoveEducation(ctx context.Context, id, educationID string) (*models.About, error)
	AddExperience(ctx context.Context, id string, e models.Experience) (*models.About, error)
	RemoveExperience(ctx context.Context, id, experienceID string) (*models.About, error)
}

// Placeholder content persisted when the about collection is empty.
const (
	DefaultAboutTitle       = "Developer"
	DefaultAboutDescription = "Set up your profile information in the admin dashboard."
)

type aboutService struct {
	store  repositories.DocumentStore[models.About]
	active *Activator[models.About]
}

func NewAboutService(store repositories.DocumentStore[models.About], locker lock.Locker, log *logrus.Logger) AboutService {
	return &aboutService{
		store: store,
		active: NewActivator(store, locker, models.CollectionAbout,
			func(a *models.About) string { return a.ID.Hex() },
			func() *models.About {
				return &models.About{
					Title:       DefaultAboutTitle,
					Description: DefaultAboutDescription,
					Active:      true,
				}
			},
			log,
		),
	}
}

func (s *aboutService) List(ctx context.Context) ([]models.About, error) {
	const op = "AboutService.List"

	out, err := s.store.List(ctx)
	if err != nil {
		return nil, storeErr(op, "about", err)
	}
	return out, nil
}

func (s *aboutService) Page(ctx context.Context, page, limit int64) (*models.Page[models.About], error) {
	const op = "AboutService.Page"

	items, total, err := s.store.Page(ctx, page, limit)
	if err != nil {
		return nil, storeErr(op, "about", err)
	}
	return models.NewPage(items, total, page, limit), nil
}

func (s *aboutService) Get(ctx context.Context, id string) (*models.About, error) {
	const op = "AboutService.Get"

	a, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeErr(op, "about "+id, err)
	}
	return a, nil
}

func (s *aboutService) Current(ctx context.Context) (*models.About, error) {
	const op = "AboutService.Current"

	a, err := s.active.GetCurrent(ctx)
	if err != nil {
		return nil, storeErr(op, "current about", err)
	}
	return a, nil
}

func (s *aboutService) Create(ctx context.Context, in *models.About) (*models.About, error) {
	const op = "AboutService.Create"

	if in == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "body is required", nil)
	}
	if err := requireText(op, map[string]string{"title": in.Title, "description": in.Description}); err != nil {
		return nil, err
	}

	in.ID = primitive.NilObjectID
	if err := s.store.Insert(ctx, in); err != nil {
		return nil, storeErr(op, "about", err)
	}
	return in, nil
}

// Update applies patch. Setting active=true goes through SetActive so the
// other records are switched off.
func (s *aboutService) Update(ctx context.Context, id string, patch models.AboutPatch) (*models.About, error) {
	const op = "AboutService.Update"

	texts := map[string]string{}
	if patch.Title != nil {
		texts["title"] = *patch.Title
	}
	if patch.Description != nil {
		texts["description"] = *patch.Description
	}
	if err := requireText(op, texts); err != nil {
		return nil, err
	}
	if patch.Skills != nil {
		models.AssignSubIDs(*patch.Skills, nil, nil)
	}
	if patch.Education != nil {
		models.AssignSubIDs(nil, *patch.Education, nil)
	}
	if patch.Experience != nil {
		models.AssignSubIDs(nil, nil, *patch.Experience)
	}

	activate := patch.Active != nil && *patch.Active
	fields := patch.Fields()
	if activate {
		delete(fields, "active")
	}

	a, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, storeErr(op, "about "+id, err)
	}
	if activate {
		return s.SetActive(ctx, id)
	}
	return a, nil
}

func (s *aboutService) Delete(ctx context.Context, id string) error {
	const op = "AboutService.Delete"

	if err := s.store.Delete(ctx, id); err != nil {
		return storeErr(op, "about "+id, err)
	}
	return nil
}

func (s *aboutService) SetActive(ctx context.Context, id string) (*models.About, error) {
	const op = "AboutService.SetActive"

	a, err := s.active.SetActive(ctx, id)
	if err != nil {
		return nil, storeErr(op, "about "+id, err)
	}
	return a, nil
}

func (s *aboutService) AddSkill(ctx context.Context, id string, sk models.Skill) (*models.About, error) {
	const op = "AboutService.AddSkill"

	if err := requireText(op, map[string]string{"name": sk.Name}); err != nil {
		return nil, err
	}
	sk.ID = primitive.NewObjectID()
	return s.push(ctx, op, id, "skills", sk)
}

func (s *aboutService) RemoveSkill(ctx context.Context, id, skillID string) (*models.About, error) {
	return s.pull(ctx, "AboutService.RemoveSkill", id, "skills", skillID)
}

func (s *aboutService) AddEducation(ctx context.Context, id string, e models.Education) (*models.About, error) {
	const op = "AboutService.AddEducation"

	if err := requireText(op, map[string]string{"institution": e.Institution}); err != nil {
		return nil, err
	}
	e.ID = primitive.NewObjectID()
	return s.push(ctx, op, id, "education", e)
}

func (s *aboutService) RemoveEducation(ctx context.Context, id, educationID string) (*models.About, error) {
	return s.pull(ctx, "AboutService.RemoveEducation", id, "education", educationID)
}

func (s *aboutService) AddExperience(ctx context.Context, id string, e models.Experience) (*models.About, error) {
	const op = "AboutService.AddExperience"

	if err := requireText(op, map[string]string{"company": e.Company, "position": e.Position}); err != nil {
		return nil, err
	}
	e.ID = primitive.NewObjectID()
	return s.push(ctx, op, id, "experience", e)
}

func (s *aboutService) RemoveExperience(ctx context.Context, id, experienceID string) (*models.About, error) {
	return s.pull(ctx, "AboutService.RemoveExperience", id, "experience", experienceID)
}

func (s *aboutService) push(ctx context.Context, op, id, field string, v any) (*models.About, error) {
	a, err := s.store.Push(ctx, id, field, v)
	if err != nil {
		return nil, storeErr(op, "about "+id, err)
	}
	return a, nil
}

func (s *aboutService) pull(ctx context.Context, op, id, field, subID string) (*models.About, error) {
	a, err := s.store.Pull(ctx, id, field, subID)
	if err != nil {
		return nil, storeErr(op, field+" item "+subID+" on about "+id, err)
	}
	return a, nil
}

// requireText rejects blank values. Keys are reported in sorted order so the
// message is stable.
func requireText(op string, fields map[string]string) error {
	var missing []string
	for k, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return utils.E(utils.CodeInvalidArgument, op, strings.Join(missing, ", ")+" must not be empty", nil)
}
