package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// RawBlock is one detected segment of the resume: a header line plus the
// content lines that followed it.
type RawBlock struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

var (
	allCapsHeaderRe   = regexp.MustCompile(`^[A-Z][A-Z\s]+$`)
	titleCaseHeaderRe = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*:?$`)
	separatorRe       = regexp.MustCompile(`^[-=]{3,}$`)
	numberedHeaderRe  = regexp.MustCompile(`^\d+\.\s+[A-Z]`)
	paragraphSplitRe  = regexp.MustCompile(`\n\s*\n`)
)

// DetectSections scans text line by line and groups it into raw blocks using
// header heuristics. Non-empty input always yields at least one block; empty
// or whitespace-only input yields none.
func DetectSections(text string) []RawBlock {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var blocks []RawBlock
	var currentTitle string
	var content []string
	sawHeader := false

	flush := func() {
		for len(content) > 0 && content[len(content)-1] == "" {
			content = content[:len(content)-1]
		}
		if currentTitle == "" && len(content) == 0 {
			return
		}
		blocks = append(blocks, RawBlock{
			Title:   currentTitle,
			Content: strings.Join(content, "\n"),
		})
		content = content[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// Blank lines never carry header information but entry parsers
			// split on them, so interior blanks stay in the content.
			if len(content) > 0 {
				content = append(content, "")
			}
			continue
		}
		if isHeaderLine(trimmed) {
			flush()
			currentTitle = trimmed
			sawHeader = true
			continue
		}
		content = append(content, trimmed)
	}

	if sawHeader {
		flush()
		return blocks
	}
	return fallbackSegmentation(text)
}

func isHeaderLine(line string) bool {
	if len(line) >= 2 && allCapsHeaderRe.MatchString(line) {
		return true
	}
	if titleCaseHeaderRe.MatchString(line) {
		return true
	}
	if separatorRe.MatchString(line) {
		return true
	}
	if numberedHeaderRe.MatchString(line) {
		return true
	}
	lower := strings.ToLower(line)
	for _, kw := range headerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// fallbackSegmentation handles text with no recognizable headers: short texts
// become a single block, longer texts split on blank-line paragraphs.
func fallbackSegmentation(text string) []RawBlock {
	trimmed := strings.TrimSpace(text)
	if len(strings.Fields(trimmed)) < 50 {
		return []RawBlock{{Title: "Content", Content: trimmed}}
	}

	var paragraphs []string
	for _, p := range paragraphSplitRe.Split(trimmed, -1) {
		if clean := strings.TrimSpace(p); clean != "" {
			paragraphs = append(paragraphs, clean)
		}
	}
	if len(paragraphs) <= 1 {
		return []RawBlock{{Title: "Resume Content", Content: trimmed}}
	}

	blocks := make([]RawBlock, 0, len(paragraphs))
	for i, p := range paragraphs {
		blocks = append(blocks, RawBlock{
			Title:   fmt.Sprintf("Section %d", i+1),
			Content: p,
		})
	}
	return blocks
}
