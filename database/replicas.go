package database

import (
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// RegisterReplicas routes read queries to the given replicas; writes stay on the primary.
// Every query issued by the matching engine is a read, so with replicas configured the
// primary only serves migrations and admin writes.
func RegisterReplicas(db *gorm.DB, replicas ...gorm.Dialector) error {
	if len(replicas) == 0 {
		return nil
	}

	return db.Use(dbresolver.Register(dbresolver.Config{
		Replicas:          replicas,
		Policy:            dbresolver.RandomPolicy{},
		TraceResolverMode: true,
	}))
}
