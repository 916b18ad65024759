package querybuilder

import (
	"fmt"
	"strings"
)

// QueryBuilder assembles parameterized SQL for the postgres adapters
type QueryBuilder interface {
	Select(cols ...string) QueryBuilder
	From(table string) QueryBuilder
	Where(clause string, args ...interface{}) QueryBuilder
	And(clause string, args ...interface{}) QueryBuilder
	OrderBy(col string, asc bool) QueryBuilder
	Limit(n int) QueryBuilder

	Into(table string) QueryBuilder
	Insert(cols ...string) QueryBuilder
	Values(values ...interface{}) QueryBuilder

	Build() (string, []interface{})
}

type queryBuilder struct {
	table      string
	cols       []string
	conditions []Condition
	orderBy    []string
	limit      int
	isInsert   bool
	values     []interface{}
}

// New creates an empty query builder
func New() QueryBuilder {
	return &queryBuilder{limit: -1}
}

func (q *queryBuilder) Select(cols ...string) QueryBuilder {
	q.cols = append(q.cols, cols...)
	return q
}

func (q *queryBuilder) From(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Where(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, Condition{condType: CondTypeAnd, clause: clause, args: args})
	return q
}

func (q *queryBuilder) And(clause string, args ...interface{}) QueryBuilder {
	return q.Where(clause, args...)
}

func (q *queryBuilder) OrderBy(col string, asc bool) QueryBuilder {
	dir := "DESC"
	if asc {
		dir = "ASC"
	}
	q.orderBy = append(q.orderBy, fmt.Sprintf("%s %s", col, dir))
	return q
}

func (q *queryBuilder) Limit(n int) QueryBuilder {
	q.limit = n
	return q
}

func (q *queryBuilder) Into(table string) QueryBuilder {
	q.table = table
	q.isInsert = true
	return q
}

func (q *queryBuilder) Insert(cols ...string) QueryBuilder {
	q.cols = append(q.cols, cols...)
	q.isInsert = true
	return q
}

func (q *queryBuilder) Values(values ...interface{}) QueryBuilder {
	q.values = append(q.values, values...)
	return q
}

// Build renders the statement with $n placeholders and the ordered args
func (q *queryBuilder) Build() (string, []interface{}) {
	if q.isInsert {
		return q.buildInsert()
	}
	return q.buildSelect()
}

func (q *queryBuilder) buildSelect() (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(q.cols, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(q.table)

	placeholder := 1
	for i, cond := range q.conditions {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(fmt.Sprintf(" %s ", cond.condType.ToString()))
		}
		clause := cond.clause
		for range cond.args {
			clause = strings.Replace(clause, "?", fmt.Sprintf("$%d", placeholder), 1)
			placeholder++
		}
		sb.WriteString(clause)
		args = append(args, cond.args...)
	}

	if len(q.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(q.orderBy, ", "))
	}
	if q.limit >= 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", placeholder))
		args = append(args, q.limit)
	}

	return sb.String(), args
}

func (q *queryBuilder) buildInsert() (string, []interface{}) {
	placeholders := make([]string, len(q.values))
	for i := range q.values {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		q.table,
		strings.Join(q.cols, ", "),
		strings.Join(placeholders, ", "),
	)
	return query, q.values
}
