package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/folio/internal/cache"
	"github.com/yoockh/folio/internal/models"
)

// readThrough serves key from c, loading and storing it on a miss. Cache
// failures are logged and never fail the read.
func readThrough[T any](ctx context.Context, c cache.Cache, ttl time.Duration, log *logrus.Logger, key string, load func(context.Context) (*T, error)) (*T, error) {
	var hit T
	ok, err := c.GetJSON(ctx, key, &hit)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("cache read failed")
	}
	if ok {
		return &hit, nil
	}

	v, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.SetJSON(ctx, key, v, ttl); err != nil {
		log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
	return v, nil
}

func dropKey(ctx context.Context, c cache.Cache, log *logrus.Logger, key string) {
	if err := c.Del(ctx, key); err != nil {
		log.WithError(err).WithField("key", key).Warn("cache invalidation failed")
	}
}

type cachedAbout struct {
	AboutService
	c   cache.Cache
	ttl time.Duration
	log *logrus.Logger
}

// WithAboutCache caches Current. Every write drops the cached copy.
func WithAboutCache(svc AboutService, c cache.Cache, ttl time.Duration, log *logrus.Logger) AboutService {
	if c == nil {
		return svc
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &cachedAbout{AboutService: svc, c: c, ttl: ttl, log: log}
}

func (s *cachedAbout) Current(ctx context.Context) (*models.About, error) {
	return readThrough(ctx, s.c, s.ttl, s.log, cache.KeyCurrentAbout, s.AboutService.Current)
}

func (s *cachedAbout) after(ctx context.Context, a *models.About, err error) (*models.About, error) {
	dropKey(ctx, s.c, s.log, cache.KeyCurrentAbout)
	return a, err
}

func (s *cachedAbout) Create(ctx context.Context, in *models.About) (*models.About, error) {
	a, err := s.AboutService.Create(ctx, in)
	return s.after(ctx, a, err)
}

func (s *cachedAbout) Update(ctx context.Context, id string, patch models.AboutPatch) (*models.About, error) {
	a, err := s.AboutService.Update(ctx, id, patch)
	return s.after(ctx, a, err)
}

func (s *cachedAbout) Delete(ctx context.Context, id string) error {
	_, err := s.after(ctx, nil, s.AboutService.Delete(ctx, id))
	return err
}

func (s *cachedAbout) SetActive(ctx context.Context, id string) (*models.About, error) {
	a, err := s.AboutService.SetActive(ctx, id)
	return s.after(ctx, a, err)
}

func (s *cachedAbout) AddSkill(ctx context.Context, id string, sk models.Skill) (*models.About, error) {
	a, err := s.AboutService.AddSkill(ctx, id, sk)
	return s.after(ctx, a, err)
}

func (s *cachedAbout) RemoveSkill(ctx context.Context, id, skillID string) (*models.About, error) {
	a, err := s.AboutService.RemoveSkill(ctx, id, skillID)
	return s.after(ctx, a, err)
}

func (s *cachedAbout) AddEducation(ctx context.Context, id string, e models.Education) (*models.About, error) {
	a, err := s.AboutService.AddEducation(ctx, id, e)
	return s.after(ctx, a, err)
}

func (s *cachedAbout) RemoveEducation(ctx context.Context, id, educationID string) (*models.About, error) {
	a, err := s.AboutService.RemoveEducation(ctx, id, educationID)
	return s.after(ctx, a, err)
}

func (s *cachedAbout) AddExperience(ctx context.Context, id string, e models.Experience) (*models.About, error) {
	a, err := s.AboutService.AddExperience(ctx, id, e)
	return s.after(ctx, a, err)
}

func (s *cachedAbout) RemoveExperience(ctx context.Context, id, experienceID string) (*models.About, error) {
	a, err := s.AboutService.RemoveExperience(ctx, id, experienceID)
	return s.after(ctx, a, err)
}

type cachedProfile struct {
	ProfileService
	c   cache.Cache
	ttl time.Duration
	log *logrus.Logger
}

// WithProfileCache caches Active. Every write drops the cached copy.
func WithProfileCache(svc ProfileService, c cache.Cache, ttl time.Duration, log *logrus.Logger) ProfileService {
	if c == nil {
		return svc
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &cachedProfile{ProfileService: svc, c: c, ttl: ttl, log: log}
}

func (s *cachedProfile) Active(ctx context.Context) (*models.Profile, error) {
	return readThrough(ctx, s.c, s.ttl, s.log, cache.KeyActiveProfile, s.ProfileService.Active)
}

func (s *cachedProfile) after(ctx context.Context, p *models.Profile, err error) (*models.Profile, error) {
	dropKey(ctx, s.c, s.log, cache.KeyActiveProfile)
	return p, err
}

func (s *cachedProfile) Create(ctx context.Context, in models.ProfileInput) (*models.Profile, error) {
	p, err := s.ProfileService.Create(ctx, in)
	return s.after(ctx, p, err)
}

func (s *cachedProfile) Update(ctx context.Context, id string, patch models.ProfilePatch) (*models.Profile, error) {
	p, err := s.ProfileService.Update(ctx, id, patch)
	return s.after(ctx, p, err)
}

func (s *cachedProfile) Delete(ctx context.Context, id string) error {
	_, err := s.after(ctx, nil, s.ProfileService.Delete(ctx, id))
	return err
}

func (s *cachedProfile) SetActive(ctx context.Context, id string) (*models.Profile, error) {
	p, err := s.ProfileService.SetActive(ctx, id)
	return s.after(ctx, p, err)
}

func (s *cachedProfile) AddSocialLink(ctx context.Context, id string, in models.SocialLinkInput) (*models.Profile, error) {
	p, err := s.ProfileService.AddSocialLink(ctx, id, in)
	return s.after(ctx, p, err)
}

func (s *cachedProfile) UpdateSocialLink(ctx context.Context, id string, index int, patch models.SocialLinkPatch) (*models.Profile, error) {
	p, err := s.ProfileService.UpdateSocialLink(ctx, id, index, patch)
	return s.after(ctx, p, err)
}

func (s *cachedProfile) RemoveSocialLink(ctx context.Context, id string, index int) (*models.Profile, error) {
	p, err := s.ProfileService.RemoveSocialLink(ctx, id, index)
	return s.after(ctx, p, err)
}

func (s *cachedProfile) UpdateSocialLinkByID(ctx context.Context, id, linkID string, patch models.SocialLinkPatch) (*models.Profile, error) {
	p, err := s.ProfileService.UpdateSocialLinkByID(ctx, id, linkID, patch)
	return s.after(ctx, p, err)
}

func (s *cachedProfile) RemoveSocialLinkByID(ctx context.Context, id, linkID string) (*models.Profile, error) {
	p, err := s.ProfileService.RemoveSocialLinkByID(ctx, id, linkID)
	return s.after(ctx, p, err)
}
