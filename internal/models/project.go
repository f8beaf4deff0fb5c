package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	ImageURL     string             `bson:"imageUrl" json:"imageUrl"`
	Technologies []string           `bson:"technologies" json:"technologies"` // order kept, no dedup
	GithubURL    string             `bson:"githubUrl,omitempty" json:"githubUrl,omitempty"`
	LiveURL      string             `bson:"liveUrl,omitempty" json:"liveUrl,omitempty"`

	CreatedAt string    `bson:"createdAt" json:"createdAt"` // YYYY-MM-DD
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (p *Project) BeforeInsert(now time.Time) {
	ensureID(&p.ID)
	if p.CreatedAt == "" {
		p.CreatedAt = today(now)
	}
	p.UpdatedAt = now
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
}

type ProjectPatch struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	Technologies *[]string `json:"technologies,omitempty"`
	GithubURL    *string   `json:"githubUrl,omitempty"`
	LiveURL      *string   `json:"liveUrl,omitempty"`
	CreatedAt    *string   `json:"createdAt,omitempty"`
}

func (p ProjectPatch) Fields() bson.M {
	m := bson.M{}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.ImageURL != nil {
		m["imageUrl"] = *p.ImageURL
	}
	if p.Technologies != nil {
		m["technologies"] = nonNil(*p.Technologies)
	}
	if p.GithubURL != nil {
		m["githubUrl"] = *p.GithubURL
	}
	if p.LiveURL != nil {
		m["liveUrl"] = *p.LiveURL
	}
	if p.CreatedAt != nil {
		m["createdAt"] = *p.CreatedAt
	}
	return m
}
