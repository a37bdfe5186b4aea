package store

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchCondition builds a case-insensitive "contains" match over name, city
// and state. ok is false for a blank term, which matches everything.
func searchCondition(term string) (cond string, args []any, ok bool) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", nil, false
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	cond = `(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(city) LIKE ? ESCAPE '\' OR LOWER(state) LIKE ? ESCAPE '\')`
	return cond, []any{pattern, pattern, pattern}, true
}
