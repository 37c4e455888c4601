package internal

import (
	"strings"
	"testing"
)

const sampleVTT = `WEBVTT
Kind: captions
Language: en

00:00:00.000 --> 00:00:02.000 align:start position:0%
we're<00:00:00.320><c> no</c><00:00:00.480><c> strangers</c>

00:00:02.000 --> 00:00:04.000
we're no strangers to love

2
00:00:04.000 --> 00:00:06.000
you know the rules

NOTE this is a comment
00:00:06.000 --> 00:00:08.000
and so do I
`

func TestCleanVTT(t *testing.T) {
	got := CleanVTT(sampleVTT)
	want := "we're no strangers to love you know the rules and so do I"
	if got != want {
		t.Errorf("CleanVTT() = %q, want %q", got, want)
	}
}

func TestCleanVTTStripsStructure(t *testing.T) {
	got := CleanVTT(sampleVTT)

	for _, forbidden := range []string{"-->", "WEBVTT", "NOTE", "<c>", "00:00:0", "align:start"} {
		if strings.Contains(got, forbidden) {
			t.Errorf("CleanVTT() output contains %q: %q", forbidden, got)
		}
	}
	if strings.Contains(got, "  ") {
		t.Errorf("CleanVTT() output contains double spaces: %q", got)
	}
}

func TestCleanVTTIdempotent(t *testing.T) {
	once := CleanVTT(sampleVTT)
	twice := CleanVTT(once)
	if once != twice {
		t.Errorf("CleanVTT not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestCleanVTTDeterministic(t *testing.T) {
	first := CleanVTT(sampleVTT)
	for range 5 {
		if got := CleanVTT(sampleVTT); got != first {
			t.Fatalf("CleanVTT not deterministic: %q vs %q", got, first)
		}
	}
}

func TestCleanVTTDuplicateCollapse(t *testing.T) {
	tests := []struct {
		name  string
		lines string
		want  string
	}{
		{
			"exact repeat",
			"hello world\nhello world\ngoodbye",
			"hello world goodbye",
		},
		{
			"overlapping cues keep longer variant",
			"hello\nhello world\nhello world again",
			"hello world again",
		},
		{
			"distinct lines survive",
			"first line\nsecond line\nthird line",
			"first line second line third line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanVTT(tt.lines); got != tt.want {
				t.Errorf("CleanVTT(%q) = %q, want %q", tt.lines, got, tt.want)
			}
		})
	}
}

func TestParseVTTSegments(t *testing.T) {
	segments := ParseVTTSegments(sampleVTT)
	if len(segments) != 4 {
		t.Fatalf("len(segments) = %d, want 4", len(segments))
	}

	want := []Segment{
		{Start: "00:00:00", End: "00:00:02", Text: "we're no strangers", StartSeconds: 0},
		{Start: "00:00:02", End: "00:00:04", Text: "we're no strangers to love", StartSeconds: 2},
		{Start: "00:00:04", End: "00:00:06", Text: "you know the rules", StartSeconds: 4},
		{Start: "00:00:06", End: "00:00:08", Text: "and so do I", StartSeconds: 6},
	}
	for i, seg := range segments {
		if seg != want[i] {
			t.Errorf("segments[%d] = %+v, want %+v", i, seg, want[i])
		}
	}
}

func TestParseVTTSegmentsEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty document", "", 0},
		{"header only", "WEBVTT\nKind: captions\n", 0},
		{"markup-only cue dropped", "00:01:00.000 --> 00:01:02.000\n<c></c>\n", 0},
		{"back-to-back cues without blank line", "00:00:00.000 --> 00:00:01.000\nfirst\n00:00:01.000 --> 00:00:02.000\nsecond\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseVTTSegments(tt.content); len(got) != tt.want {
				t.Errorf("len(ParseVTTSegments(%q)) = %d, want %d", tt.content, len(got), tt.want)
			}
		})
	}
}

func TestTimeToSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00:00", 0},
		{"00:01:23", 83},
		{"01:02:03", 3723},
	}
	for _, tt := range tests {
		if got := timeToSeconds(tt.in); got != tt.want {
			t.Errorf("timeToSeconds(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCleanVTTEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty document", "", ""},
		{"header only", "WEBVTT\nKind: captions\nLanguage: en\n", ""},
		{"markup only cue", "WEBVTT\n\n00:00:00.000 --> 00:00:01.000\n<c></c>\n", ""},
		{"plain text untouched", "already clean text", "already clean text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanVTT(tt.content); got != tt.want {
				t.Errorf("CleanVTT(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
