package model

import (
	"fmt"
	"strings"
	"time"
)

// Report section headers
const (
	ReportTitle         = "IMAGE ANALYSIS REPORT"
	ReportExtractedHead = "EXTRACTED TEXT"
	ReportAnswerHead    = "ANSWER"
	ReportRuleWidth     = 60
)

// Report is the downloadable plain-text summary of an image analysis.
type Report struct {
	ImageName   string
	Analysis    ImageAnalysis
	GeneratedAt time.Time
}

// NewReport builds a report for the given source image and analysis result.
func NewReport(imageName string, analysis ImageAnalysis) *Report {
	return &Report{
		ImageName:   imageName,
		Analysis:    analysis,
		GeneratedAt: time.Now(),
	}
}

// Render assembles the report body: header, extracted text, and answer,
// separated by horizontal rules.
func (r *Report) Render() string {
	rule := strings.Repeat("=", ReportRuleWidth)
	thin := strings.Repeat("-", ReportRuleWidth)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(ReportTitle + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Image: %s\n", r.ImageName))
	b.WriteString(fmt.Sprintf("Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05")))
	b.WriteString("\n")

	b.WriteString(ReportExtractedHead + "\n")
	b.WriteString(thin + "\n")
	if text := strings.TrimSpace(r.Analysis.ExtractedText); text != "" {
		b.WriteString(text + "\n")
	} else {
		b.WriteString(NoTextFound + "\n")
	}
	b.WriteString("\n")

	b.WriteString(ReportAnswerHead + "\n")
	b.WriteString(thin + "\n")
	if answer := strings.TrimSpace(r.Analysis.Answer); answer != "" {
		b.WriteString(answer + "\n")
	} else {
		b.WriteString("No answer generated.\n")
	}

	if r.Analysis.ChunksUsed > 0 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Knowledge base chunks used: %d\n", r.Analysis.ChunksUsed))
	}

	return b.String()
}

// SuggestedFilename returns a filesystem-safe name for the saved report.
func (r *Report) SuggestedFilename() string {
	base := strings.TrimSpace(r.ImageName)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	base = sanitizeFilename(base)
	if base == "" {
		base = "analysis"
	}
	return fmt.Sprintf("%s-report-%s.txt", base, r.GeneratedAt.Format("20060102-150405"))
}

// sanitizeFilename strips path separators and characters that are unsafe in
// filenames on common platforms.
func sanitizeFilename(name string) string {
	unsafe := func(r rune) bool {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return true
		}
		return r < 0x20
	}
	cleaned := strings.Map(func(r rune) rune {
		if unsafe(r) {
			return '_'
		}
		return r
	}, name)
	cleaned = strings.Trim(cleaned, " .")
	return cleaned
}
