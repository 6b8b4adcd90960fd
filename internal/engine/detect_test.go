package engine

import (
	"reflect"
	"strings"
	"testing"
)

const sampleResume = "CONTACT\njohn@example.com\n555-123-4567\n\nEXPERIENCE\nSoftware Engineer at Acme\n2020-2023\n• Increased throughput by 30%\n"

func TestDetectSectionsHeaders(t *testing.T) {
	blocks := DetectSections(sampleResume)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %+v", len(blocks), blocks)
	}
	if blocks[0].Title != "CONTACT" {
		t.Fatalf("expected first title CONTACT, got %q", blocks[0].Title)
	}
	if blocks[1].Title != "EXPERIENCE" {
		t.Fatalf("expected second title EXPERIENCE, got %q", blocks[1].Title)
	}
	if !strings.Contains(blocks[0].Content, "john@example.com") {
		t.Fatalf("expected contact content to keep email, got %q", blocks[0].Content)
	}
	if !strings.Contains(blocks[1].Content, "Software Engineer at Acme") {
		t.Fatalf("expected experience content kept, got %q", blocks[1].Content)
	}
}

func TestDetectSectionsHeaderStyles(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"all_caps", "EDUCATION"},
		{"title_case_colon", "Education:"},
		{"numbered", "2. Education History"},
		{"keyword", "my education"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			blocks := DetectSections(tc.header + "\nBS Computer Science 2019\n")
			if len(blocks) != 1 {
				t.Fatalf("expected 1 block, got %d", len(blocks))
			}
			if blocks[0].Title != tc.header {
				t.Fatalf("expected title %q, got %q", tc.header, blocks[0].Title)
			}
		})
	}
}

func TestDetectSectionsEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\t\n  "} {
		if blocks := DetectSections(input); len(blocks) != 0 {
			t.Fatalf("expected no blocks for %q, got %d", input, len(blocks))
		}
	}
}

func TestDetectSectionsFallbackShortText(t *testing.T) {
	blocks := DetectSections("just a few plain words here\n")
	if len(blocks) != 1 {
		t.Fatalf("expected 1 fallback block, got %d", len(blocks))
	}
	if blocks[0].Title != "Content" {
		t.Fatalf("expected fallback title Content, got %q", blocks[0].Title)
	}
}

func TestDetectSectionsFallbackParagraphs(t *testing.T) {
	para := strings.Repeat("plain lowercase filler words without any heading cues whatsoever ", 5)
	blocks := DetectSections(para + "\n\n" + para)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 paragraph blocks, got %d", len(blocks))
	}
	if blocks[0].Title != "Section 1" || blocks[1].Title != "Section 2" {
		t.Fatalf("unexpected fallback titles: %q, %q", blocks[0].Title, blocks[1].Title)
	}
}

func TestDetectSectionsNeverEmptyForNonEmptyInput(t *testing.T) {
	inputs := []string{
		"x",
		"no headers anywhere just words",
		sampleResume,
		strings.Repeat("lowercase filler text with many words ", 20),
	}
	for _, input := range inputs {
		if blocks := DetectSections(input); len(blocks) == 0 {
			t.Fatalf("expected at least one block for %q", input)
		}
	}
}

func TestDetectSectionsDeterministic(t *testing.T) {
	first := DetectSections(sampleResume)
	second := DetectSections(sampleResume)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected deterministic detection output")
	}
}
