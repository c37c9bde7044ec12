package appointment

import "database/sql"

// Accessor owns persistence of appointment records.
type Accessor struct {
	db *sql.DB
}

func NewAccessor(db *sql.DB) *Accessor {
	return &Accessor{db: db}
}
