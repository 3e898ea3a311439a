package discord

import (
	"regexp"
	"strings"
)

var (
	// Regex patterns compiled once at startup
	headerPattern           = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
	tableSeparatorPattern   = regexp.MustCompile(`^\|(\s*:?-+:?\s*\|)+$`)
	multipleNewlinesPattern = regexp.MustCompile(`\n{3,}`)
)

// FormatReport converts a Markdown report to Discord markdown
//
// Conversions performed:
//   - Headers (# Header) → Bold (**Header**)
//   - Pipe tables → aligned text inside ``` code blocks
//   - Lists (- item) → Discord list format (• item)
//
// Discord renders neither headers nor tables in bot messages.
func FormatReport(content string) string {
	content = formatTables(content)
	content = protectCodeBlocks(content, func(text string) string {
		text = headerPattern.ReplaceAllString(text, "**$1**")
		text = formatLists(text)
		return text
	})
	return multipleNewlinesPattern.ReplaceAllString(content, "\n\n")
}

// protectCodeBlocks applies processor to everything outside ``` fences
func protectCodeBlocks(content string, processor func(string) string) string {
	parts := strings.Split(content, "```")
	for i := 0; i < len(parts); i += 2 {
		parts[i] = processor(parts[i])
	}
	return strings.Join(parts, "```")
}

// formatLists rewrites "- item" lines as "• item"
func formatLists(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "- ") {
			lines[i] = "• " + line[2:]
		}
	}
	return strings.Join(lines, "\n")
}

// formatTables replaces every pipe table with a padded code block
func formatTables(content string) string {
	lines := strings.Split(content, "\n")
	var out []string
	for i := 0; i < len(lines); {
		if !isTableRow(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}
		var rows [][]string
		for ; i < len(lines) && isTableRow(lines[i]); i++ {
			if tableSeparatorPattern.MatchString(strings.TrimSpace(lines[i])) {
				continue
			}
			rows = append(rows, tableCells(lines[i]))
		}
		out = append(out, "```")
		out = append(out, alignRows(rows)...)
		out = append(out, "```")
	}
	return strings.Join(out, "\n")
}

func isTableRow(line string) bool {
	line = strings.TrimSpace(line)
	return len(line) > 1 && strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|")
}

func tableCells(line string) []string {
	line = strings.TrimSpace(line)
	cells := strings.Split(line[1:len(line)-1], "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// alignRows pads cells so columns line up in a monospace font. The first
// column is left-aligned, the others right-aligned.
func alignRows(rows [][]string) []string {
	var widths []int
	for _, row := range rows {
		for j, c := range row {
			if j >= len(widths) {
				widths = append(widths, 0)
			}
			widths[j] = max(widths[j], len([]rune(c)))
		}
	}

	out := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, c := range row {
			pad := strings.Repeat(" ", widths[j]-len([]rune(c)))
			if j == 0 {
				cells[j] = c + pad
			} else {
				cells[j] = pad + c
			}
		}
		out[i] = strings.TrimRight(strings.Join(cells, "  "), " ")
	}
	return out
}
