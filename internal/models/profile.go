package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Profile struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	HighlightedText string             `bson:"highlightedText" json:"highlightedText"`
	Description     string             `bson:"description" json:"description"`
	SocialLinks     []SocialLink       `bson:"socialLinks" json:"socialLinks" binding:"dive"`

	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SocialLink is a free-form platform link. Active is a display toggle and has
// nothing to do with Profile.Active.
type SocialLink struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Platform string             `bson:"platform" json:"platform"`
	URL      string             `bson:"url" json:"url"`
	Active   bool               `bson:"active" json:"active"`
}

func (p *Profile) BeforeInsert(now time.Time) {
	ensureID(&p.ID)
	p.CreatedAt, p.UpdatedAt = now, now
	if p.SocialLinks == nil {
		p.SocialLinks = []SocialLink{}
	}
	AssignLinkIDs(p.SocialLinks)
}

func AssignLinkIDs(links []SocialLink) {
	for i := range links {
		ensureID(&links[i].ID)
	}
}

// ProfileInput is the create payload. A nil Active means DefaultProfileActive.
type ProfileInput struct {
	Name            string            `json:"name"`
	HighlightedText string            `json:"highlightedText"`
	Description     string            `json:"description"`
	SocialLinks     []SocialLinkInput `json:"socialLinks" binding:"dive"`
	Active          *bool             `json:"active,omitempty"`
}

func (in ProfileInput) Profile() *Profile {
	p := &Profile{
		Name:            in.Name,
		HighlightedText: in.HighlightedText,
		Description:     in.Description,
		SocialLinks:     Links(in.SocialLinks),
		Active:          DefaultProfileActive,
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	return p
}

// SocialLinkInput is one link as sent by a client; the link is shown unless
// Active is explicitly false.
type SocialLinkInput struct {
	Platform string `json:"platform" binding:"required"`
	URL      string `json:"url" binding:"required"`
	Active   *bool  `json:"active,omitempty"`
}

func (in SocialLinkInput) Link() SocialLink {
	l := SocialLink{ID: primitive.NewObjectID(), Platform: in.Platform, URL: in.URL, Active: true}
	if in.Active != nil {
		l.Active = *in.Active
	}
	return l
}

func Links(in []SocialLinkInput) []SocialLink {
	out := make([]SocialLink, 0, len(in))
	for _, l := range in {
		out = append(out, l.Link())
	}
	return out
}

type ProfilePatch struct {
	Name            *string            `json:"name,omitempty"`
	HighlightedText *string            `json:"highlightedText,omitempty"`
	Description     *string            `json:"description,omitempty"`
	SocialLinks     *[]SocialLinkInput `json:"socialLinks,omitempty"`
	Active          *bool              `json:"active,omitempty"`
}

func (p ProfilePatch) Fields() bson.M {
	m := bson.M{}
	if p.Name != nil {
		m["name"] = *p.Name
	}
	if p.HighlightedText != nil {
		m["highlightedText"] = *p.HighlightedText
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.SocialLinks != nil {
		m["socialLinks"] = Links(*p.SocialLinks)
	}
	if p.Active != nil {
		m["active"] = *p.Active
	}
	return m
}

// SocialLinkPatch updates one embedded link in place.
type SocialLinkPatch struct {
	Platform *string `json:"platform,omitempty"`
	URL      *string `json:"url,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

func (p SocialLinkPatch) Fields() bson.M {
	m := bson.M{}
	if p.Platform != nil {
		m["platform"] = *p.Platform
	}
	if p.URL != nil {
		m["url"] = *p.URL
	}
	if p.Active != nil {
		m["active"] = *p.Active
	}
	return m
}
