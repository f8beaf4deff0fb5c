package mongo

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/repositories"
)

func NewAboutRepo(db *mongo.Database) repositories.DocumentStore[models.About] {
	return NewCollection[models.About](db, models.CollectionAbout)
}

func NewProfileRepo(db *mongo.Database) repositories.DocumentStore[models.Profile] {
	return NewCollection[models.Profile](db, models.CollectionProfile)
}

func NewProjectRepo(db *mongo.Database) repositories.DocumentStore[models.Project] {
	return NewCollection[models.Project](db, models.CollectionProject)
}
