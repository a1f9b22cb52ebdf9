package ui

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	boldPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	inlineCodeRe  = regexp.MustCompile("`([^`]*)`")
	bulletPattern = regexp.MustCompile(`^[-*]\s+`)
	blankRunsRe   = regexp.MustCompile(`\n{3,}`)
)

// FormatAnswerMarkdown normalizes backend answer text so the rich text widget
// renders it consistently: uniform "- " bullets, at most one blank line
// between paragraphs, trimmed edges.
func FormatAnswerMarkdown(answer string) string {
	answer = strings.ReplaceAll(answer, "\r\n", "\n")

	lines := strings.Split(answer, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if bulletPattern.MatchString(trimmed) {
			lines[i] = "- " + bulletPattern.ReplaceAllString(trimmed, "")
		}
	}

	normalized := strings.Join(lines, "\n")
	normalized = blankRunsRe.ReplaceAllString(normalized, "\n\n")
	return strings.TrimSpace(normalized)
}

// AnswerPlainText converts answer markdown into plain text suitable for the
// clipboard: bold and code markers stripped, bullets rendered as "• ".
func AnswerPlainText(answer string) string {
	text := FormatAnswerMarkdown(answer)
	text = boldPattern.ReplaceAllString(text, "$1")
	text = inlineCodeRe.ReplaceAllString(text, "$1")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "- ") {
			lines[i] = "• " + strings.TrimPrefix(line, "- ")
		}
	}
	return strings.Join(lines, "\n")
}

// chunkCountText renders the retrieval depth note shown under an answer.
func chunkCountText(n int) string {
	if n == 1 {
		return "1 knowledge base chunk used"
	}
	return fmt.Sprintf("%d knowledge base chunks used", n)
}
