package httpapi

import "strings"

const teamsUsage = `GET \\teams\\all or GET \\teams\\division\\<division_name>`

// buildHelpDocument renders the usage document returned by /teams/help and on
// every invalid /teams path. The \r and \t between members are part of the
// published format; the document is still valid JSON.
func buildHelpDocument(divisionNames []string) string {
	var b strings.Builder
	b.WriteString("{\r\"Usage\":\"")
	b.WriteString(teamsUsage)
	b.WriteString("\",\r\t\"divisions\":[")
	for i, name := range divisionNames {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(name)
		b.WriteByte('"')
	}
	b.WriteString("]\r}")
	return b.String()
}
