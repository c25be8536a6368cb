package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern that matches term anywhere, with
// LIKE wildcards in term taken literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
