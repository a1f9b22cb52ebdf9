package ui

import "testing"

func TestFormatAnswerMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"trims edges",
			"  hello world  \n",
			"hello world",
		},
		{
			"normalizes star bullets",
			"* first\n* second",
			"- first\n- second",
		},
		{
			"normalizes indented bullets",
			"  - first\n\t* second",
			"- first\n- second",
		},
		{
			"collapses blank runs",
			"one\n\n\n\ntwo",
			"one\n\ntwo",
		},
		{
			"windows line endings",
			"one\r\ntwo",
			"one\ntwo",
		},
		{
			"keeps bold markers for rendering",
			"**important** detail",
			"**important** detail",
		},
	}

	for _, test := range tests {
		result := FormatAnswerMarkdown(test.input)
		if result != test.expected {
			t.Errorf("%s: FormatAnswerMarkdown(%q) = %q, expected %q",
				test.name, test.input, result, test.expected)
		}
	}
}

func TestAnswerPlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"strips bold",
			"**important** detail",
			"important detail",
		},
		{
			"strips inline code",
			"run `make build` now",
			"run make build now",
		},
		{
			"renders bullets",
			"* first\n* second",
			"• first\n• second",
		},
		{
			"plain text untouched",
			"just a sentence",
			"just a sentence",
		},
	}

	for _, test := range tests {
		result := AnswerPlainText(test.input)
		if result != test.expected {
			t.Errorf("%s: AnswerPlainText(%q) = %q, expected %q",
				test.name, test.input, result, test.expected)
		}
	}
}
