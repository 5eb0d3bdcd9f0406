package store

import "strings"

// LikeEscapeChar is the ESCAPE character used with ContainsPattern.
const LikeEscapeChar = `\`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns free text into a LIKE pattern matching it as a
// literal substring. Wildcards in the input are escaped with LikeEscapeChar.
func ContainsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}
