// Package query builds parameterized PostgreSQL SELECT statements from projection maps.
package query

import (
	"fmt"
	"strings"
)

// SortField names a projected field and its direction.
type SortField struct {
	Field      string
	Descending bool
}

type condition struct {
	clause string
	args   []any
}

// Builder assembles a SELECT with numbered placeholders.
type Builder struct {
	projection *ProjectionMap
	includes   []*ProjectionMap
	joins      []string
	conditions []condition
	sort       []SortField
}

// NewBuilder starts a query over projection ordered by defaultSort.
func NewBuilder(projection *ProjectionMap, defaultSort SortField) *Builder {
	return &Builder{
		projection: projection,
		sort:       []SortField{defaultSort},
	}
}

// Join adds a joined projection. Its columns follow the base columns in
// the select list, and on is the join condition.
func (b *Builder) Join(pm *ProjectionMap, on string) *Builder {
	b.includes = append(b.includes, pm)
	b.joins = append(b.joins, fmt.Sprintf("JOIN %s ON %s", pm.Table(), on))
	return b
}

// OrderBy replaces the sort order. An empty list keeps the default.
func (b *Builder) OrderBy(fields ...SortField) *Builder {
	if len(fields) > 0 {
		b.sort = fields
	}
	return b
}

// WhereEquals adds an equality condition. Nil values are ignored.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if value == nil {
		return b
	}
	b.conditions = append(b.conditions, condition{
		clause: b.column(field) + " = $%d",
		args:   []any{value},
	})
	return b
}

// WhereIn adds an IN condition. Empty slices are ignored.
func (b *Builder) WhereIn(field string, values []any) *Builder {
	if len(values) == 0 {
		return b
	}
	placeholders := make([]string, len(values))
	for i := range values {
		placeholders[i] = "$%d"
	}
	b.conditions = append(b.conditions, condition{
		clause: fmt.Sprintf("%s IN (%s)", b.column(field), strings.Join(placeholders, ", ")),
		args:   values,
	})
	return b
}

// Build returns the SELECT statement and its arguments.
func (b *Builder) Build() (string, []any) {
	cols := []string{b.projection.Columns()}
	for _, pm := range b.includes {
		cols = append(cols, pm.Columns())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(cols, ", "), b.projection.Table())
	for _, j := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}

	where, args := b.buildWhere()
	sb.WriteString(where)
	sb.WriteString(b.buildOrderBy())

	return sb.String(), args
}

func (b *Builder) column(field string) string {
	if col := b.projection.Column(field); col != field {
		return col
	}
	for _, pm := range b.includes {
		if col := pm.Column(field); col != field {
			return col
		}
	}
	return field
}

func (b *Builder) buildOrderBy() string {
	parts := make([]string, 0, len(b.sort))
	for _, s := range b.sort {
		if s.Field == "" {
			continue
		}
		dir := "ASC"
		if s.Descending {
			dir = "DESC"
		}
		parts = append(parts, b.column(s.Field)+" "+dir)
	}
	if len(parts) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

func (b *Builder) buildWhere() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(b.conditions))
	var args []any
	idx := 1

	for _, cond := range b.conditions {
		clause := cond.clause
		for _, arg := range cond.args {
			clause = strings.Replace(clause, "$%d", fmt.Sprintf("$%d", idx), 1)
			args = append(args, arg)
			idx++
		}
		clauses = append(clauses, clause)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}
