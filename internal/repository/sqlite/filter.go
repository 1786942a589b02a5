package sqlite

import (
	"sort"
	"strings"

	"stockyard/internal/repository"
)

// colKind selects how a filter value is matched against its column.
type colKind int

const (
	colText   colKind = iota // case-insensitive substring (LIKE)
	colNumber                // exact match
	colExact                 // exact match on text (ids)
	colBool                  // "Yes"/"No" mapped to 1/0
)

type filterColumn struct {
	column string
	kind   colKind
}

// querySpec is a repository's allow-list for dynamic query building.
// Filter keys and sort keys outside the allow-list are ignored; only
// column expressions enumerated here ever reach query text.
type querySpec struct {
	columns     map[string]filterColumn
	global      []string          // columns searched by the global key
	sorts       map[string]string // sort key -> ORDER BY expression
	defaultSort string
}

// whereClause builds " WHERE ..." (or "") plus its arguments from an
// untrusted filter map. Values are always bound parameters.
func (qs querySpec) whereClause(f repository.Filter) (string, []any) {
	var conds []string
	var args []any

	if term := strings.TrimSpace(f[repository.GlobalKey]); term != "" && len(qs.global) > 0 {
		like := "%" + term + "%"
		parts := make([]string, len(qs.global))
		for i, col := range qs.global {
			parts[i] = col + " LIKE ?"
			args = append(args, like)
		}
		conds = append(conds, "("+strings.Join(parts, " OR ")+")")
	}

	keys := make([]string, 0, len(f))
	for key := range f {
		if key != repository.GlobalKey {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := f[key]
		if value == "" {
			continue
		}
		fc, ok := qs.columns[key]
		if !ok {
			continue
		}
		switch fc.kind {
		case colBool:
			conds = append(conds, fc.column+" = ?")
			args = append(args, boolToInt(strings.EqualFold(value, "yes")))
		case colNumber, colExact:
			conds = append(conds, fc.column+" = ?")
			args = append(args, value)
		default:
			conds = append(conds, fc.column+" LIKE ?")
			args = append(args, "%"+value+"%")
		}
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause builds " ORDER BY ..." from an untrusted sort key,
// falling back to the default column for unknown keys.
func (qs querySpec) orderClause(key string, desc bool) string {
	expr, ok := qs.sorts[key]
	if !ok {
		expr = qs.defaultSort
	}
	dir := " ASC"
	if desc {
		dir = " DESC"
	}
	return " ORDER BY " + expr + dir
}
