// Package schema derives Postgres DDL from resolved integration tables.
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"indexConfig/internal/model"
)

// reserved lists Postgres reserved key words that must be quoted as identifiers.
var reserved = map[string]struct{}{
	"all": {}, "analyse": {}, "analyze": {}, "and": {}, "any": {}, "array": {},
	"as": {}, "asc": {}, "asymmetric": {}, "authorization": {}, "binary": {},
	"both": {}, "case": {}, "cast": {}, "check": {}, "collate": {}, "collation": {},
	"column": {}, "concurrently": {}, "constraint": {}, "create": {}, "cross": {},
	"current_catalog": {}, "current_date": {}, "current_role": {},
	"current_schema": {}, "current_time": {}, "current_timestamp": {},
	"current_user": {}, "default": {}, "deferrable": {}, "desc": {}, "distinct": {},
	"do": {}, "else": {}, "end": {}, "except": {}, "false": {}, "fetch": {},
	"for": {}, "foreign": {}, "freeze": {}, "from": {}, "full": {}, "grant": {},
	"group": {}, "having": {}, "ilike": {}, "in": {}, "initially": {}, "inner": {},
	"intersect": {}, "into": {}, "is": {}, "isnull": {}, "join": {}, "lateral": {},
	"leading": {}, "left": {}, "like": {}, "limit": {}, "localtime": {},
	"localtimestamp": {}, "natural": {}, "not": {}, "notnull": {}, "null": {},
	"offset": {}, "on": {}, "only": {}, "or": {}, "order": {}, "outer": {},
	"overlaps": {}, "placing": {}, "primary": {}, "references": {}, "returning": {},
	"right": {}, "select": {}, "session_user": {}, "similar": {}, "some": {},
	"symmetric": {}, "system_user": {}, "table": {}, "tablesample": {}, "then": {},
	"to": {}, "trailing": {}, "true": {}, "union": {}, "unique": {}, "user": {},
	"using": {}, "variadic": {}, "verbose": {}, "when": {}, "where": {},
	"window": {}, "with": {},
}

// Quote double-quotes s when it is a reserved word.
func Quote(s string) string {
	if _, ok := reserved[strings.ToLower(s)]; ok {
		return strconv.Quote(s)
	}
	return s
}

// quoteIndexExpr quotes the column of an index expression such as "from desc"
// and keeps the ordering suffix.
func quoteIndexExpr(expr string) string {
	col, rest, found := strings.Cut(strings.TrimSpace(expr), " ")
	if !found {
		return Quote(col)
	}
	return Quote(col) + " " + strings.TrimSpace(rest)
}

// TableDDL returns the statements creating t, its schema and its indexes.
// A table without columns yields nothing.
func TableDDL(t model.ResolvedTable) []string {
	if len(t.Columns) == 0 {
		return nil
	}
	var res []string

	if s, ok := t.Schema.Get(); ok && s != "" {
		res = append(res, fmt.Sprintf("create schema if not exists %s", s))
	}

	name := t.QualifiedName()
	cols := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		cols = append(cols, fmt.Sprintf("%s %s", Quote(col.Name), col.Type))
	}
	res = append(res, fmt.Sprintf("create table if not exists %s(%s)", name, strings.Join(cols, ", ")))

	if unique, ok := t.Unique.Get(); ok && !t.DisableUnique {
		for _, spec := range unique {
			if len(spec) == 0 {
				continue
			}
			suffix, exprs := indexParts(spec)
			res = append(res, fmt.Sprintf(
				"create unique index if not exists u_%s_%s on %s (%s)",
				t.Name,
				suffix,
				name,
				exprs,
			))
		}
	}

	for _, spec := range t.Index {
		if len(spec) == 0 {
			continue
		}
		suffix, exprs := indexParts(spec)
		res = append(res, fmt.Sprintf(
			"create index if not exists shovel_%s on %s (%s)",
			suffix,
			name,
			exprs,
		))
	}
	return res
}

// indexParts returns the index name suffix and the quoted column list for spec.
func indexParts(spec []string) (string, string) {
	parts := make([]string, 0, len(spec))
	exprs := make([]string, 0, len(spec))
	for _, expr := range spec {
		parts = append(parts, strings.ReplaceAll(strings.TrimSpace(expr), " ", "_"))
		exprs = append(exprs, quoteIndexExpr(expr))
	}
	return strings.Join(parts, "_"), strings.Join(exprs, ", ")
}

// Tables unions the integration tables of cfg by qualified name, in first-seen
// order. Columns are merged by name, index and unique specs without
// duplicates. Unique indexes are disabled when any integration disables them.
func Tables(cfg model.ResolvedConfig) []model.ResolvedTable {
	var (
		out   []model.ResolvedTable
		byKey = make(map[string]int)
	)
	for _, ig := range cfg.Integrations {
		t := ig.Table
		key := t.QualifiedName()
		i, ok := byKey[key]
		if !ok {
			byKey[key] = len(out)
			merged := model.ResolvedTable{
				Name:          t.Name,
				Schema:        t.Schema,
				Columns:       append([]model.Column{}, t.Columns...),
				Index:         appendIndexes(nil, t.Index),
				DisableUnique: t.DisableUnique,
			}
			if unique, ok := t.Unique.Get(); ok {
				merged.Unique = model.Some(appendIndexes(nil, unique))
			}
			out = append(out, merged)
			continue
		}
		merged := &out[i]
		for _, col := range t.Columns {
			if !hasColumn(merged.Columns, col.Name) {
				merged.Columns = append(merged.Columns, col)
			}
		}
		merged.Index = appendIndexes(merged.Index, t.Index)
		merged.DisableUnique = merged.DisableUnique || t.DisableUnique
		if unique, ok := t.Unique.Get(); ok {
			merged.Unique = model.Some(appendIndexes(merged.Unique.OrElse(nil), unique))
		}
	}
	return out
}

// DDL returns the statements for every table in cfg with schemas created once.
func DDL(cfg model.ResolvedConfig) []string {
	var (
		res     []string
		schemas = make(map[string]struct{})
	)
	for _, t := range Tables(cfg) {
		for _, stmt := range TableDDL(t) {
			if strings.HasPrefix(stmt, "create schema ") {
				if _, ok := schemas[stmt]; ok {
					continue
				}
				schemas[stmt] = struct{}{}
			}
			res = append(res, stmt)
		}
	}
	return res
}

func hasColumn(cols []model.Column, name string) bool {
	for _, c := range cols {
		if c.Name == name {
			return true
		}
	}
	return false
}

func appendIndexes(dst [][]string, src [][]string) [][]string {
	if dst == nil {
		dst = [][]string{}
	}
	for _, spec := range src {
		key := strings.Join(spec, "\x00")
		var dup bool
		for _, existing := range dst {
			if strings.Join(existing, "\x00") == key {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, append([]string{}, spec...))
		}
	}
	return dst
}
