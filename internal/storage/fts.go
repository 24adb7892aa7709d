package storage

import "strings"

// SanitizeFTSQuery makes free text safe for an FTS5 MATCH expression.
// Every whitespace-separated token is quoted and embedded quotes are doubled,
// so FTS5 operators in user input are matched literally. A blank query
// yields "".
func SanitizeFTSQuery(query string) string {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return ""
	}

	quoted := make([]string, len(tokens))
	for i, token := range tokens {
		quoted[i] = quote(token)
	}
	return strings.Join(quoted, " ")
}

// prefixQuery builds an FTS5 prefix query for a literal prefix.
func prefixQuery(prefix string) string {
	return quote(prefix) + "*"
}

func quote(token string) string {
	return `"` + strings.ReplaceAll(token, `"`, `""`) + `"`
}
