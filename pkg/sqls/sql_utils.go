package sqls

import (
	"database/sql"

	"studyhub/pkg/strs"
)

func SqlNullString(value string) sql.NullString {
	return sql.NullString{
		String: value,
		Valid:  strs.IsNotBlank(value),
	}
}
