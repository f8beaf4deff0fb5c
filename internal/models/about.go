package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type About struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`

	Skills     []Skill      `bson:"skills" json:"skills" binding:"dive"`
	Education  []Education  `bson:"education" json:"education" binding:"dive"`
	Experience []Experience `bson:"experience" json:"experience" binding:"dive"`

	Avatar      string       `bson:"avatar,omitempty" json:"avatar,omitempty"`
	SocialLinks *SocialLinks `bson:"socialLinks,omitempty" json:"socialLinks,omitempty"`

	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Skill struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Level    int                `bson:"level" json:"level"` // usually 0-100
	Category string             `bson:"category,omitempty" json:"category,omitempty"`
}

type Education struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Institution string             `bson:"institution" json:"institution"`
	Degree      string             `bson:"degree" json:"degree"`
	Field       string             `bson:"field" json:"field"`
	StartDate   string             `bson:"startDate" json:"startDate"`
	EndDate     string             `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

type Experience struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Company      string             `bson:"company" json:"company"`
	Position     string             `bson:"position" json:"position"`
	StartDate    string             `bson:"startDate" json:"startDate"`
	EndDate      string             `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Current      bool               `bson:"current,omitempty" json:"current,omitempty"`
	Description  string             `bson:"description" json:"description"`
	Technologies []string           `bson:"technologies,omitempty" json:"technologies,omitempty"`
}

// SocialLinks are the fixed profile links shown on the about page.
type SocialLinks struct {
	GitHub    string `bson:"github,omitempty" json:"github,omitempty" binding:"omitempty,url"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty" binding:"omitempty,url"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty" binding:"omitempty,url"`
	Website   string `bson:"website,omitempty" json:"website,omitempty" binding:"omitempty,url"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty" binding:"omitempty,url"`
}

// BeforeInsert assigns ids and timestamps and makes the embedded lists
// non-null so later $push operations have an array to append to.
func (a *About) BeforeInsert(now time.Time) {
	ensureID(&a.ID)
	a.CreatedAt, a.UpdatedAt = now, now
	if a.Skills == nil {
		a.Skills = []Skill{}
	}
	if a.Education == nil {
		a.Education = []Education{}
	}
	if a.Experience == nil {
		a.Experience = []Experience{}
	}
	AssignSubIDs(a.Skills, a.Education, a.Experience)
}

// AssignSubIDs gives every embedded item without an id a fresh one.
func AssignSubIDs(skills []Skill, education []Education, experience []Experience) {
	for i := range skills {
		ensureID(&skills[i].ID)
	}
	for i := range education {
		ensureID(&education[i].ID)
	}
	for i := range experience {
		ensureID(&experience[i].ID)
	}
}

// AboutPatch is a partial update. Lists are replaced wholesale.
type AboutPatch struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Skills      *[]Skill      `json:"skills,omitempty"`
	Education   *[]Education  `json:"education,omitempty"`
	Experience  *[]Experience `json:"experience,omitempty"`
	Avatar      *string       `json:"avatar,omitempty"`
	SocialLinks *SocialLinks  `json:"socialLinks,omitempty" binding:"omitempty"`
	Active      *bool         `json:"active,omitempty"`
}

func (p AboutPatch) Fields() bson.M {
	m := bson.M{}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.Skills != nil {
		m["skills"] = nonNil(*p.Skills)
	}
	if p.Education != nil {
		m["education"] = nonNil(*p.Education)
	}
	if p.Experience != nil {
		m["experience"] = nonNil(*p.Experience)
	}
	if p.Avatar != nil {
		m["avatar"] = *p.Avatar
	}
	if p.SocialLinks != nil {
		m["socialLinks"] = *p.SocialLinks
	}
	if p.Active != nil {
		m["active"] = *p.Active
	}
	return m
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
