package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// formatTable renders rows as a tagged block that survives chunking intact.
// The first row is treated as the header. Content tags describing what the
// table holds are appended so retrieval can match table chunks by topic.
func formatTable(title string, rows [][]string) string {
	rows = pruneEmptyRows(rows)
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("=== TABLE ===\n")
	if title != "" {
		b.WriteString("TITLE: ")
		b.WriteString(title)
		b.WriteString("\n")
	}

	b.WriteString("HEADERS: ")
	b.WriteString(strings.Join(rows[0], " | "))
	b.WriteString("\n")

	for i, row := range rows[1:] {
		b.WriteString("Row ")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(": ")
		b.WriteString(strings.Join(row, " | "))
		b.WriteString("\n")
	}

	if tags := tableContentTags(rows); len(tags) > 0 {
		b.WriteString("METADATA: ")
		b.WriteString(strings.Join(tags, " "))
		b.WriteString("\n")
	}
	b.WriteString("=== END TABLE ===")
	return b.String()
}

var (
	amountRe  = regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)\s*[\d,]+|\d+\s*(?:lakhs?|crores?)`)
	percentRe = regexp.MustCompile(`\d+\s*%`)
	periodRe  = regexp.MustCompile(`(?i)\d+\s*(?:days?|months?|years?)`)
)

// tableContentTags inspects cell text for numeric content worth flagging.
func tableContentTags(rows [][]string) []string {
	joined := ""
	for _, row := range rows {
		joined += strings.Join(row, " ") + " "
	}

	var tags []string
	if amountRe.MatchString(joined) {
		tags = append(tags, "CONTAINS_AMOUNTS")
	}
	if percentRe.MatchString(joined) {
		tags = append(tags, "CONTAINS_PERCENTAGES")
	}
	if periodRe.MatchString(joined) {
		tags = append(tags, "CONTAINS_TIME_PERIODS")
	}
	return tags
}

func pruneEmptyRows(rows [][]string) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}
