package extract

import "strings"

// SubtitleText flattens SRT or WebVTT cues into one line of spoken text.
func SubtitleText(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")

	var parts []string
	skipBlock := false
	for i, line := range lines {
		line = strings.TrimSpace(line)

		if line == "" {
			skipBlock = false
			continue
		}
		if skipBlock {
			continue
		}

		// WebVTT header and NOTE/STYLE/REGION blocks
		if i == 0 && strings.HasPrefix(strings.TrimPrefix(line, "\ufeff"), "WEBVTT") {
			skipBlock = true
			continue
		}
		if line == "NOTE" || strings.HasPrefix(line, "NOTE ") || line == "STYLE" || line == "REGION" {
			skipBlock = true
			continue
		}

		// Sequence numbers
		if isDigitOnly(line) {
			continue
		}

		// Timing lines (start --> end)
		if strings.Contains(line, "-->") {
			continue
		}

		parts = append(parts, stripTags(line))
	}

	return strings.Join(parts, " ")
}

// stripTags removes inline markup such as <i> or <c.yellow>.
func stripTags(line string) string {
	if !strings.Contains(line, "<") {
		return line
	}
	var sb strings.Builder
	inTag := false
	for _, r := range line {
		switch {
		case r == '<':
			inTag = true
		case r == '>' && inTag:
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}

func isDigitOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
