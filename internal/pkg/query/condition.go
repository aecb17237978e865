package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
type Condition interface {
	// SQL returns the fragment and its parameters. Parameter names start
	// at @p<paramIndex> and are numbered consecutively.
	SQL(paramIndex int) (string, map[string]interface{})
}

type compareCondition struct {
	field string
	op    string
	value interface{}
}

// Eq generates "field = @pN".
func Eq(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "=", value: value}
}

// Lt generates "field < @pN".
func Lt(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "<", value: value}
}

func (c *compareCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, name), map[string]interface{}{name: c.value}
}

type isNullCondition struct {
	field string
}

// IsNull generates "field IS NULL".
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

func (c *isNullCondition) SQL(int) (string, map[string]interface{}) {
	return c.field + " IS NULL", map[string]interface{}{}
}

type groupCondition struct {
	sep        string
	conditions []Condition
}

// And joins conditions with AND inside parentheses.
func And(conditions ...Condition) Condition {
	return &groupCondition{sep: " AND ", conditions: conditions}
}

// Or joins conditions with OR inside parentheses.
func Or(conditions ...Condition) Condition {
	return &groupCondition{sep: " OR ", conditions: conditions}
}

func (c *groupCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	params := make(map[string]interface{})
	return "(" + joinConditions(c.conditions, c.sep, paramIndex, params) + ")", params
}

// joinConditions renders conditions joined by sep, numbering parameters
// from paramIndex and collecting them into params.
func joinConditions(conditions []Condition, sep string, paramIndex int, params map[string]interface{}) string {
	parts := make([]string, 0, len(conditions))
	for _, condition := range conditions {
		fragment, condParams := condition.SQL(paramIndex)
		parts = append(parts, fragment)
		for k, v := range condParams {
			params[k] = v
		}
		paramIndex += len(condParams)
	}
	return strings.Join(parts, sep)
}
