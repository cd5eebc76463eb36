package repository

import (
	"strings"

	"gorm.io/gorm/clause"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// ListQuery carries optional search and paging parameters for list reads.
// Page is 1-based.
type ListQuery struct {
	Search string
	Page   int
	Limit  int
}

// Normalize clamps paging to sane values.
func (q ListQuery) Normalize() ListQuery {
	q.Search = strings.TrimSpace(q.Search)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultListLimit
	}
	if q.Limit > maxListLimit {
		q.Limit = maxListLimit
	}
	return q
}

// Offset returns the row offset for the query's page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// TeamFilter narrows ListTeams.
type TeamFilter struct {
	ListQuery
	OpenOnly bool
}

func eq(column string, value interface{}) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: column}, Value: value}
}

// containsFold matches rows whose column contains term, ignoring case.
func containsFold(column, term string) clause.Expression {
	return clause.Expr{
		SQL:  "LOWER(?) LIKE ?",
		Vars: []interface{}{clause.Column{Name: column}, "%" + strings.ToLower(term) + "%"},
	}
}

// unorderedPair matches the edge between a and b stored in either orientation.
func unorderedPair(colA, colB, a, b string) clause.Expression {
	return clause.Or(
		clause.And(eq(colA, a), eq(colB, b)),
		clause.And(eq(colA, b), eq(colB, a)),
	)
}

// involving matches edges where username sits in either column.
func involving(colA, colB, username string) clause.Expression {
	return clause.Or(eq(colA, username), eq(colB, username))
}

// counterpartMatches matches edges of username whose other end contains term.
func counterpartMatches(colA, colB, username, term string) clause.Expression {
	return clause.Or(
		clause.And(eq(colA, username), containsFold(colB, term)),
		clause.And(eq(colB, username), containsFold(colA, term)),
	)
}

func clauseDirected(sender, receiver string) clause.Expression {
	return clause.And(eq("sender_name", sender), eq("receiver_name", receiver))
}
