package database

import (
	// Registers the "postgres" database/sql driver, selectable with DB_DRIVER=postgres
	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

// PQDriverName is the database/sql name lib/pq registers under
const PQDriverName = "postgres"

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	Init() error
	Close() error
	HealthCheck() error
	GetDB() *gorm.DB
}

var _ Storage = (*GORMStore)(nil)
