package querybuilder

import (
	"strings"

	"github.com/cockroachdb/errors"
)

type assignment struct {
	column string
	value  any
	expr   string
	raw    bool
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a raw expression such as NOW(); '?' binds args.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr, value: args, raw: true})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses an UPDATE without a WHERE clause.
func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errors.New("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, errors.New("update sets are required")
	}
	if len(b.where) == 0 {
		return "", nil, errors.Newf("update of %s has no where clause", b.table)
	}

	var s statement
	s.write("UPDATE ", b.table, " SET ")
	for i, a := range b.sets {
		if i > 0 {
			s.write(", ")
		}
		s.write(a.column, " = ")
		if a.raw {
			args, _ := a.value.([]any)
			s.writeExpr(a.expr, args)
			continue
		}
		s.bind(a.value)
	}
	s.writeConditions(" WHERE ", b.where)
	return s.result()
}
