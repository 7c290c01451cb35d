package llm

import "strings"

const fence = "```"

// StripFences removes a markdown code fence wrapped around model output,
// including an optional language tag such as ```json. Text without fences is
// returned trimmed, so applying it twice is the same as applying it once.
func StripFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, fence) {
		text = strings.TrimPrefix(text, fence)
		// drop the info string up to the first line break or JSON opener
		if i := strings.IndexAny(text, "\n{["); i >= 0 {
			if text[i] == '\n' {
				text = text[i+1:]
			} else {
				text = text[i:]
			}
		} else {
			text = ""
		}
	}

	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, fence)

	return strings.TrimSpace(text)
}
