// Package queryHelper builds parameterized SQL fragments. Values are never
// interpolated into the SQL text, they are carried alongside as bind arguments.
package queryHelper

import "strings"

// Filter accumulates AND-ed conditions with their bind arguments
type Filter struct {
	conditions []string
	args       []interface{}
}

// NewFilter returns an empty filter
func NewFilter() *Filter {
	return &Filter{}
}

// Where adds a condition. Placeholders in cond use gorm's "?" syntax.
func (f *Filter) Where(cond string, args ...interface{}) *Filter {
	f.conditions = append(f.conditions, cond)
	f.args = append(f.args, args...)
	return f
}

// Empty reports whether no condition was added
func (f *Filter) Empty() bool {
	return len(f.conditions) == 0
}

// Conditions returns the conditions joined with AND, without a leading keyword
func (f *Filter) Conditions() string {
	return strings.Join(f.conditions, " AND ")
}

// WhereClause returns "WHERE a AND b" or an empty string
func (f *Filter) WhereClause() string {
	if f.Empty() {
		return ""
	}
	return "WHERE " + f.Conditions()
}

// AndClause returns "AND a AND b" for appending to an existing WHERE or ON, or an empty string
func (f *Filter) AndClause() string {
	if f.Empty() {
		return ""
	}
	return "AND " + f.Conditions()
}

// Args returns a copy of the bind arguments in condition order
func (f *Filter) Args() []interface{} {
	out := make([]interface{}, len(f.args))
	copy(out, f.args)
	return out
}

// ArgsWith returns the bind arguments followed by extra
func (f *Filter) ArgsWith(extra ...interface{}) []interface{} {
	return append(f.Args(), extra...)
}
