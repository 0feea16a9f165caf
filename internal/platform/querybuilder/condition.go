package querybuilder

import "strings"

// Condition is one predicate of a WHERE or HAVING clause. Conditions are
// joined with AND.
type Condition interface {
	appendTo(s *statement)
}

type conditionFunc func(s *statement)

func (f conditionFunc) appendTo(s *statement) { f(s) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(s *statement) {
		s.write(column, " = ")
		s.bind(value)
	})
}

// EqLiteral inlines value as a quoted literal. Use it for constants only.
func EqLiteral(column, value string) Condition {
	return conditionFunc(func(s *statement) {
		s.write(column, " = '", strings.ReplaceAll(value, "'", "''"), "'")
	})
}

func IsNull(column string) Condition {
	return conditionFunc(func(s *statement) {
		s.write(column, " IS NULL")
	})
}

// Expr embeds a raw predicate; each '?' binds the next arg.
func Expr(expr string, args ...any) Condition {
	return conditionFunc(func(s *statement) {
		s.writeExpr(expr, args)
	})
}

// In matches no row when values is empty.
func In(column string, values []any) Condition {
	return membership(column, values, false)
}

// NotIn matches every row when values is empty.
func NotIn(column string, values []any) Condition {
	return membership(column, values, true)
}

func membership(column string, values []any, negate bool) Condition {
	return conditionFunc(func(s *statement) {
		if len(values) == 0 {
			if negate {
				s.write("1=1")
			} else {
				s.write("1=0")
			}
			return
		}
		op := " IN ("
		if negate {
			op = " NOT IN ("
		}
		s.write(column, op)
		for i, v := range values {
			if i > 0 {
				s.write(", ")
			}
			s.bind(v)
		}
		s.write(")")
	})
}
