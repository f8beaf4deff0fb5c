package services

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/folio/internal/lock"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/repositories"
	"github.com/yoockh/folio/internal/utils"
)

type ProfileService interface {
	List(ctx context.Context) ([]models.Profile, error)
	Page(ctx context.Context, page, limit int64) (*models.Page[models.Profile], error)
	Get(ctx context.Context, id string) (*models.Profile, error)
	Active(ctx context.Context) (*models.Profile, error)
	Create(ctx context.Context, in models.ProfileInput) (*models.Profile, error)
	Update(ctx context.Context, id string, patch models.ProfilePatch) (*models.Profile, error)
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string) (*models.Profile, error)

	// Index-addressed link operations. Removing an item shifts every later
	// index down by one, so callers re-fetch before a second index edit.
	AddSocialLink(ctx context.Context, id string, in models.SocialLinkInput) (*models.Profile, error)
	UpdateSocialLink(ctx context.Context, id string, index int, patch models.SocialLinkPatch) (*models.Profile, error)
	RemoveSocialLink(ctx context.Context, id string, index int) (*models.Profile, error)

	UpdateSocialLinkByID(ctx context.Context, id, linkID string, patch models.SocialLinkPatch) (*models.Profile, error)
	RemoveSocialLinkByID(ctx context.Context, id, linkID string) (*models.Profile, error)
}

type profileService struct {
	store  repositories.DocumentStore[models.Profile]
	active *Activator[models.Profile]
}

func NewProfileService(store repositories.DocumentStore[models.Profile], locker lock.Locker, log *logrus.Logger) ProfileService {
	return &profileService{
		store: store,
		active: NewActivator(store, locker, models.CollectionProfile,
			func(p *models.Profile) string { return p.ID.Hex() },
			nil,
			log,
		),
	}
}

func (s *profileService) List(ctx context.Context) ([]models.Profile, error) {
	const op = "ProfileService.List"

	out, err := s.store.List(ctx)
	if err != nil {
		return nil, storeErr(op, "profile", err)
	}
	return out, nil
}

func (s *profileService) Page(ctx context.Context, page, limit int64) (*models.Page[models.Profile], error) {
	const op = "ProfileService.Page"

	items, total, err := s.store.Page(ctx, page, limit)
	if err != nil {
		return nil, storeErr(op, "profile", err)
	}
	return models.NewPage(items, total, page, limit), nil
}

func (s *profileService) Get(ctx context.Context, id string) (*models.Profile, error) {
	const op = "ProfileService.Get"

	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeErr(op, "profile "+id, err)
	}
	return p, nil
}

// Active returns the active profile, promoting the oldest one when none is
// flagged. An empty collection is NOT_FOUND.
func (s *profileService) Active(ctx context.Context) (*models.Profile, error) {
	const op = "ProfileService.Active"

	p, err := s.active.GetCurrent(ctx)
	if err != nil {
		return nil, storeErr(op, "active profile", err)
	}
	return p, nil
}

func (s *profileService) Create(ctx context.Context, in models.ProfileInput) (*models.Profile, error) {
	const op = "ProfileService.Create"

	if err := requireText(op, map[string]string{
		"name":            in.Name,
		"highlightedText": in.HighlightedText,
		"description":     in.Description,
	}); err != nil {
		return nil, err
	}

	p := in.Profile()
	if err := s.store.Insert(ctx, p); err != nil {
		return nil, storeErr(op, "profile", err)
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, id string, patch models.ProfilePatch) (*models.Profile, error) {
	const op = "ProfileService.Update"

	texts := map[string]string{}
	if patch.Name != nil {
		texts["name"] = *patch.Name
	}
	if patch.HighlightedText != nil {
		texts["highlightedText"] = *patch.HighlightedText
	}
	if patch.Description != nil {
		texts["description"] = *patch.Description
	}
	if err := requireText(op, texts); err != nil {
		return nil, err
	}

	activate := patch.Active != nil && *patch.Active
	fields := patch.Fields()
	if activate {
		delete(fields, "active")
	}

	p, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, storeErr(op, "profile "+id, err)
	}
	if activate {
		return s.SetActive(ctx, id)
	}
	return p, nil
}

func (s *profileService) Delete(ctx context.Context, id string) error {
	const op = "ProfileService.Delete"

	if err := s.store.Delete(ctx, id); err != nil {
		return storeErr(op, "profile "+id, err)
	}
	return nil
}

func (s *profileService) SetActive(ctx context.Context, id string) (*models.Profile, error) {
	const op = "ProfileService.SetActive"

	p, err := s.active.SetActive(ctx, id)
	if err != nil {
		return nil, storeErr(op, "profile "+id, err)
	}
	return p, nil
}

func (s *profileService) AddSocialLink(ctx context.Context, id string, in models.SocialLinkInput) (*models.Profile, error) {
	const op = "ProfileService.AddSocialLink"

	if err := requireText(op, map[string]string{"platform": in.Platform, "url": in.URL}); err != nil {
		return nil, err
	}
	p, err := s.store.Push(ctx, id, "socialLinks", in.Link())
	if err != nil {
		return nil, storeErr(op, "profile "+id, err)
	}
	return p, nil
}

func (s *profileService) UpdateSocialLink(ctx context.Context, id string, index int, patch models.SocialLinkPatch) (*models.Profile, error) {
	const op = "ProfileService.UpdateSocialLink"

	if err := validateLinkPatch(op, patch); err != nil {
		return nil, err
	}
	p, err := s.store.SetAt(ctx, id, "socialLinks", index, patch.Fields())
	if err != nil {
		return nil, storeErr(op, linkAt(id, index), err)
	}
	return p, nil
}

func (s *profileService) RemoveSocialLink(ctx context.Context, id string, index int) (*models.Profile, error) {
	const op = "ProfileService.RemoveSocialLink"

	p, err := s.store.RemoveAt(ctx, id, "socialLinks", index)
	if err != nil {
		return nil, storeErr(op, linkAt(id, index), err)
	}
	return p, nil
}

func (s *profileService) UpdateSocialLinkByID(ctx context.Context, id, linkID string, patch models.SocialLinkPatch) (*models.Profile, error) {
	const op = "ProfileService.UpdateSocialLinkByID"

	if err := validateLinkPatch(op, patch); err != nil {
		return nil, err
	}
	p, err := s.store.SetByID(ctx, id, "socialLinks", linkID, patch.Fields())
	if err != nil {
		return nil, storeErr(op, "social link "+linkID+" on profile "+id, err)
	}
	return p, nil
}

func (s *profileService) RemoveSocialLinkByID(ctx context.Context, id, linkID string) (*models.Profile, error) {
	const op = "ProfileService.RemoveSocialLinkByID"

	p, err := s.store.Pull(ctx, id, "socialLinks", linkID)
	if err != nil {
		return nil, storeErr(op, "social link "+linkID+" on profile "+id, err)
	}
	return p, nil
}

func validateLinkPatch(op string, patch models.SocialLinkPatch) error {
	texts := map[string]string{}
	if patch.Platform != nil {
		texts["platform"] = *patch.Platform
	}
	if patch.URL != nil {
		texts["url"] = *patch.URL
	}
	if err := requireText(op, texts); err != nil {
		return err
	}
	if len(patch.Fields()) == 0 {
		return utils.E(utils.CodeInvalidArgument, op, "nothing to update", nil)
	}
	return nil
}

func linkAt(id string, index int) string {
	return "social link " + strconv.Itoa(index) + " on profile " + id
}
