package metrics

import (
	"strings"
	"testing"
)

func TestRenderExposesCountersAndHistogram(t *testing.T) {
	IncParseStarted()
	IncParseCompleted()
	IncSuggestionApplied()
	ObserveParseDurationMs(12.5)

	out := Render()
	for _, metric := range []string{
		"resume_parse_started_total",
		"resume_parse_completed_total",
		"resume_parse_failed_total",
		"suggestion_applied_total",
		"suggestion_dismissed_total",
		"resume_parse_duration_ms_bucket",
		"resume_parse_duration_ms_sum",
		"resume_parse_duration_ms_count",
	} {
		if !strings.Contains(out, metric) {
			t.Fatalf("render missing %q:\n%s", metric, out)
		}
	}
	if !strings.Contains(out, `le="+Inf"`) {
		t.Fatalf("histogram missing +Inf bucket:\n%s", out)
	}
}

func TestObserveNegativeDurationClamped(t *testing.T) {
	// Must not panic or skew the sum negative.
	ObserveParseDurationMs(-5)
	if strings.Contains(Render(), "_sum -") {
		t.Fatal("histogram sum went negative")
	}
}
