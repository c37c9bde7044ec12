package notification

import (
	"database/sql"
	"time"
)

// Accessor persists inbox entries.
type Accessor struct {
	db  *sql.DB
	now func() time.Time
}

func NewAccessor(db *sql.DB) *Accessor {
	return &Accessor{db: db, now: time.Now}
}
