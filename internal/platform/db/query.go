package db

import "strings"

// LikeEscape is the ESCAPE clause to pair with patterns built by ContainsPattern.
const LikeEscape = ` ESCAPE '\'`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a lower-cased LIKE pattern matching s anywhere in a column.
// Wildcards in s are escaped. Compare against LOWER(column).
func ContainsPattern(s string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}
