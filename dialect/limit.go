package dialect

import "fmt"

// Paginate rewrites sql to return at most limit rows starting after offset.
// Servers with native row limiting get OFFSET/FETCH appended; older ones
// get the classic nested select that numbers rows with ROWNUM and filters
// on the numbered range. limit < 0 means no limit.
func (t Translator) Paginate(sql string, limit, offset int) string {
	if limit < 0 && offset <= 0 {
		return sql
	}

	if t.UseFetchFirst {
		return paginateFetchFirst(sql, limit, offset)
	}
	return paginateRowNum(sql, limit, offset)
}

func paginateFetchFirst(sql string, limit, offset int) string {
	if offset > 0 {
		sql = fmt.Sprintf("%s OFFSET %d ROWS", sql, offset)
	}
	if limit >= 0 {
		sql = fmt.Sprintf("%s FETCH NEXT %d ROWS ONLY", sql, limit)
	}
	return sql
}

func paginateRowNum(sql string, limit, offset int) string {
	if offset <= 0 {
		return fmt.Sprintf("SELECT * FROM (%s) WHERE ROWNUM <= %d", sql, limit)
	}

	if limit < 0 {
		return fmt.Sprintf(
			"SELECT * FROM (SELECT raw_sql_.*, ROWNUM raw_rnum_ FROM (%s) raw_sql_) WHERE raw_rnum_ > %d",
			sql, offset)
	}

	// ROWNUM is assigned before ORDER BY is complete, so the row numbering
	// must happen in its own query block around the ordered inner query.
	return fmt.Sprintf(
		"SELECT * FROM (SELECT raw_sql_.*, ROWNUM raw_rnum_ FROM (%s) raw_sql_ WHERE ROWNUM <= %d) WHERE raw_rnum_ > %d",
		sql, offset+limit, offset)
}
