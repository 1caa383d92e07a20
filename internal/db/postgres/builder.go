package postgres

import (
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

// psql builds statements with $n placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// pqForeignKeyViolation is the SQLSTATE of a missing referenced row
const pqForeignKeyViolation = "23503"

// likedColumn selects whether viewer liked the row aliased as alias.
// Anonymous viewers never see a liked row, so no subquery is issued.
func likedColumn(subjectType, alias, viewer string) sq.Sqlizer {
	if viewer == "" {
		return sq.Expr("FALSE AS liked")
	}
	return sq.Expr(
		"EXISTS (SELECT 1 FROM likes l WHERE l.subject_type = '"+subjectType+"' AND l.subject_id = "+alias+".id AND l.username = ?) AS liked",
		viewer,
	)
}

// pqCode returns the SQLSTATE and constraint of a driver error
func pqCode(err error) (code, constraint string, ok bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}
	return "", "", false
}

func nullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
