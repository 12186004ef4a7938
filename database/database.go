package database

import (
	"gorm.io/gorm"
)

type Database struct {
	tagRepo            *TagRepo
	tagAssociationRepo *TagAssociationRepo
	entityRepo         *EntityRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		tagRepo:            NewTagRepo(db),
		tagAssociationRepo: NewTagAssociationRepo(db),
		entityRepo:         NewEntityRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) TagAssociationRepo() *TagAssociationRepo {
	return d.tagAssociationRepo
}

func (d Database) EntityRepo() *EntityRepo {
	return d.entityRepo
}
