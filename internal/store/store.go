package store

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/shulsoft/gabbai/internal/hebdate"
)

func newID() string {
	return uuid.NewString()
}

// dateArgs flattens a Hebrew date into its three column values. The zero
// date maps to NULLs so an unset birth date round-trips as unset.
func dateArgs(d hebdate.Date) (any, any, any) {
	if d.IsZero() {
		return nil, nil, nil
	}
	return d.Year(), d.Month(), d.Day()
}

func dateFromCols(year, month, day sql.NullInt64) hebdate.Date {
	if !year.Valid || !month.Valid || !day.Valid {
		return hebdate.Date{}
	}
	return hebdate.New(int(year.Int64), int(month.Int64), int(day.Int64))
}
