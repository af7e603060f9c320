package repository

import (
	"strings"
)

// LikeClause matches column against a case-insensitive substring pattern
// built by ContainsPattern.
func LikeClause(column string) string {
	return "LOWER(" + column + `) LIKE ? ESCAPE '\'`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern returns a LIKE pattern matching any value that contains s,
// ignoring case. LIKE wildcards in s match literally.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
