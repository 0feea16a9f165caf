package querybuilder

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
)

// Conflict renders an ON CONFLICT clause for upserts.
type Conflict struct {
	target  []string
	nothing bool
	sets    []conflictSet
}

type conflictSet struct {
	column string
	render func(table string) string
}

// OnConflict targets the unique columns that identify an existing row.
func OnConflict(columns ...string) *Conflict {
	return &Conflict{target: append([]string(nil), columns...)}
}

func (c *Conflict) DoNothing() *Conflict {
	c.nothing = true
	return c
}

// Update overwrites each column with the incoming value.
func (c *Conflict) Update(columns ...string) *Conflict {
	for _, col := range columns {
		c.sets = append(c.sets, conflictSet{column: col, render: func(string) string {
			return "EXCLUDED." + col
		}})
	}
	return c
}

// KeepExisting overwrites each column unless the incoming value is NULL.
func (c *Conflict) KeepExisting(columns ...string) *Conflict {
	for _, col := range columns {
		c.sets = append(c.sets, conflictSet{column: col, render: func(table string) string {
			return "COALESCE(EXCLUDED." + col + ", " + table + "." + col + ")"
		}})
	}
	return c
}

// UpdateExpr assigns a raw expression that may reference EXCLUDED and the
// target table.
func (c *Conflict) UpdateExpr(column, expr string) *Conflict {
	c.sets = append(c.sets, conflictSet{column: column, render: func(string) string {
		return expr
	}})
	return c
}

// Touch stamps column with NOW() on every conflicting write.
func (c *Conflict) Touch(column string) *Conflict {
	c.sets = append(c.sets, conflictSet{column: column, render: func(string) string {
		return "NOW()"
	}})
	return c
}

func (c *Conflict) appendTo(s *statement, table string) error {
	if c == nil {
		return nil
	}
	if len(c.target) == 0 {
		return errors.New("conflict target is required")
	}
	s.write(" ON CONFLICT (", strings.Join(c.target, ", "), ")")
	if c.nothing || len(c.sets) == 0 {
		s.write(" DO NOTHING")
		return nil
	}
	s.write(" DO UPDATE SET ")
	for i, set := range c.sets {
		if i > 0 {
			s.write(", ")
		}
		s.write(set.column, " = ", set.render(table))
	}
	return nil
}

// InsertModel builds a single-row insert from a db-tagged struct.
func InsertModel(table string, model any, conflict *Conflict) (string, []any, error) {
	return insertRows(table, []any{model}, conflict)
}

// InsertModels builds one multi-row insert from a slice of db-tagged
// structs. Every model must expose the same columns.
func InsertModels[T any](table string, models []T, conflict *Conflict) (string, []any, error) {
	rows := make([]any, len(models))
	for i := range models {
		rows[i] = models[i]
	}
	return insertRows(table, rows, conflict)
}

func insertRows(table string, models []any, conflict *Conflict) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, errors.New("insert table is required")
	}
	if len(models) == 0 {
		return "", nil, errors.New("insert models are required")
	}

	var (
		s       statement
		columns []string
	)
	for i, model := range models {
		cols, vals, err := columnsAndValues(model)
		if err != nil {
			return "", nil, errors.Wrapf(err, "model %d", i)
		}
		if i == 0 {
			columns = cols
			s.write("INSERT INTO ", table, " (", strings.Join(cols, ", "), ") VALUES ")
		} else {
			if len(cols) != len(columns) {
				return "", nil, errors.Newf("model %d has %d columns, expected %d", i, len(cols), len(columns))
			}
			s.write(", ")
		}
		s.write("(")
		for j, v := range vals {
			if j > 0 {
				s.write(", ")
			}
			s.bind(v)
		}
		s.write(")")
	}
	if err := conflict.appendTo(&s, table); err != nil {
		return "", nil, err
	}
	return s.result()
}

// columnsAndValues reads exported fields tagged `db:"name"`, following
// embedded structs.
func columnsAndValues(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, errors.New("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, errors.Newf("model must be struct, got %s", value.Kind())
	}

	var (
		cols []string
		vals []any
	)
	collectFields(value, &cols, &vals)
	if len(cols) == 0 {
		return nil, nil, errors.New("model has no db columns")
	}
	return cols, vals, nil
}

func collectFields(value reflect.Value, cols *[]string, vals *[]any) {
	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct && field.Tag.Get("db") == "" {
			collectFields(value.Field(i), cols, vals)
			continue
		}
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		*cols = append(*cols, name)
		*vals = append(*vals, value.Field(i).Interface())
	}
}
