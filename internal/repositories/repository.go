package repositories

import (
	"database/sql"
	"errors"
	"time"

	intconfig "commuteai/internal/config"

	"github.com/go-sql-driver/mysql"
)

var errNoDB = errors.New("database connection not available")

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// pickDB falls back to the shared connection when a repository has none.
func pickDB(db *sql.DB) (*sql.DB, error) {
	if db != nil {
		return db, nil
	}
	if intconfig.DB != nil {
		return intconfig.DB, nil
	}
	return nil, errNoDB
}

func isDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

func nullTimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
