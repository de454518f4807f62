package dialect

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	orderDirectionRe = regexp.MustCompile(`(?i)\s+(ASC|DESC)\s*`)
	nullsOrderRe     = regexp.MustCompile(`(?i)\s*NULLS\s+(FIRST|LAST)\s*`)
)

// ColumnsForDistinct extends a DISTINCT column list with the ORDER BY
// columns the select list is missing. Adding them to DISTINCT directly
// would change the result cardinality, so each order column is projected
// through FIRST_VALUE partitioned by the original distinct columns and
// given a stable alias the outer ORDER BY can reference.
func ColumnsForDistinct(columns []string, orders []string) string {
	partition := strings.Join(columns, ", ")

	projected := make([]string, 0, len(columns)+len(orders))
	projected = append(projected, columns...)

	i := 0
	for _, order := range orders {
		col := StripOrderModifiers(order)
		if col == "" || contains(columns, col) {
			continue
		}
		window := fmt.Sprintf("ORDER BY %s", col)
		if partition != "" {
			window = fmt.Sprintf("PARTITION BY %s ORDER BY %s", partition, col)
		}
		projected = append(projected,
			fmt.Sprintf("FIRST_VALUE(%s) OVER (%s) AS alias_%d__", col, window, i))
		i++
	}

	return strings.Join(projected, ", ")
}

// StripOrderModifiers removes ASC/DESC and NULLS FIRST/LAST from an ORDER
// BY expression so it can serve as a partition or window order key.
func StripOrderModifiers(order string) string {
	order = nullsOrderRe.ReplaceAllString(order, " ")
	order = orderDirectionRe.ReplaceAllString(order, " ")
	return strings.TrimSpace(order)
}

func contains(columns []string, col string) bool {
	for _, c := range columns {
		if strings.EqualFold(strings.TrimSpace(c), col) {
			return true
		}
	}
	return false
}
