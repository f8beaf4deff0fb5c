package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names in the document store.
const (
	CollectionAbout   = "about"
	CollectionProfile = "profile"
	CollectionProject = "project"
)

// Default value of the record-level active flag when a create request omits it.
const (
	DefaultAboutActive   = false
	DefaultProfileActive = true
)

func ensureID(id *primitive.ObjectID) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
}

// DateLayout is the calendar-date format used by Project.CreatedAt.
const DateLayout = "2006-01-02"

func today(now time.Time) string { return now.UTC().Format(DateLayout) }
