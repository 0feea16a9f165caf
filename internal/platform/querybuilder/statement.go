package querybuilder

import (
	"strconv"
	"strings"
)

// statement accumulates SQL text and its bind values. Placeholders are
// numbered in the order values are bound, postgres style.
type statement struct {
	sql  strings.Builder
	args []any
}

func (s *statement) write(parts ...string) {
	for _, p := range parts {
		s.sql.WriteString(p)
	}
}

func (s *statement) bind(value any) {
	s.args = append(s.args, value)
	s.sql.WriteString("$")
	s.sql.WriteString(strconv.Itoa(len(s.args)))
}

// writeExpr copies expr, binding one value for each '?'. Extra '?' with no
// value left are written as-is.
func (s *statement) writeExpr(expr string, values []any) {
	if len(values) == 0 {
		s.sql.WriteString(expr)
		return
	}
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] != '?' || next >= len(values) {
			s.sql.WriteByte(expr[i])
			continue
		}
		s.bind(values[next])
		next++
	}
}

func (s *statement) writeConditions(keyword string, conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	s.write(keyword)
	for i, c := range conditions {
		if i > 0 {
			s.write(" AND ")
		}
		c.appendTo(s)
	}
}

func (s *statement) writeList(keyword string, parts []string) {
	if len(parts) == 0 {
		return
	}
	s.write(keyword, strings.Join(parts, ", "))
}

func (s *statement) result() (string, []any, error) {
	return s.sql.String(), s.args, nil
}
