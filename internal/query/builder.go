// Package query builds parameterized SQL for the catalogue tables from
// whitelisted filter keys, so caller input never reaches the statement text.
package query

import (
	"fmt"
	"strings"

	contextutils "ecoatlas/internal/utils"
)

type predicate struct {
	column string
	value  interface{}
}

// Builder accumulates equality predicates and ordering for one Schema.
type Builder struct {
	schema Schema
	preds  []predicate
	order  []OrderTerm
}

// New returns a Builder for schema.
func New(schema Schema) *Builder {
	return &Builder{schema: schema}
}

// Where adds "column = value" for a public filter key. Unknown keys and
// empty values are ignored.
func (b *Builder) Where(key string, value interface{}) *Builder {
	column, ok := b.schema.Filters[key]
	if !ok || isEmpty(value) {
		return b
	}
	b.preds = append(b.preds, predicate{column: column, value: value})
	return b
}

// OrderBy replaces the default ordering. Terms naming unknown columns are dropped.
func (b *Builder) OrderBy(terms ...OrderTerm) *Builder {
	for _, t := range terms {
		if b.schema.isColumn(t.Column) && (t.Direction == Asc || t.Direction == Desc) {
			b.order = append(b.order, t)
		}
	}
	return b
}

// Select renders "SELECT cols FROM table [WHERE ...] ORDER BY ..." and its args.
func (b *Builder) Select() (string, []interface{}) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(b.schema.Columns, ", "), b.schema.Table)

	where, args := b.where()
	sb.WriteString(where)

	order := b.order
	if len(order) == 0 {
		order = b.schema.DefaultOrder
	}
	if len(order) > 0 {
		parts := make([]string, len(order))
		for i, t := range order {
			parts[i] = fmt.Sprintf("%s %s", t.Column, t.Direction)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(parts, ", "))
	}
	return sb.String(), args
}

// Count renders "SELECT COUNT(*) FROM table [WHERE ...]" and its args.
func (b *Builder) Count() (string, []interface{}) {
	where, args := b.where()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.schema.Table, where), args
}

func (b *Builder) where() (string, []interface{}) {
	if len(b.preds) == 0 {
		return "", nil
	}
	conds := make([]string, len(b.preds))
	args := make([]interface{}, len(b.preds))
	for i, p := range b.preds {
		conds[i] = fmt.Sprintf("%s = $%d", p.column, i+1)
		args[i] = p.value
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func isEmpty(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case int:
		return val == 0
	}
	return false
}

// Update accumulates assignments for a partial row update.
type Update struct {
	schema  Schema
	columns []string
	values  []interface{}
}

// NewUpdate returns an Update for schema.
func NewUpdate(schema Schema) *Update {
	return &Update{schema: schema}
}

// Set assigns column = value. Columns outside the schema's Mutable list are ignored.
func (u *Update) Set(column string, value interface{}) *Update {
	if u.schema.isMutable(column) {
		u.columns = append(u.columns, column)
		u.values = append(u.values, value)
	}
	return u
}

// Empty reports whether no assignments were made.
func (u *Update) Empty() bool {
	return len(u.columns) == 0
}

// Build renders "UPDATE table SET ... WHERE id = $n RETURNING cols". An update
// with no assignments fails with ErrNothingToUpdate rather than only touching
// the timestamp.
func (u *Update) Build(id int) (string, []interface{}, error) {
	if u.Empty() {
		return "", nil, contextutils.ErrNothingToUpdate
	}

	sets := make([]string, 0, len(u.columns)+1)
	args := make([]interface{}, 0, len(u.values)+1)
	for i, c := range u.columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+1))
		args = append(args, u.values[i])
	}
	if u.schema.Touch != "" {
		sets = append(sets, u.schema.Touch+" = CURRENT_TIMESTAMP")
	}
	args = append(args, id)

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		u.schema.Table, strings.Join(sets, ", "), len(args), strings.Join(u.schema.Columns, ", "))
	return sql, args, nil
}
