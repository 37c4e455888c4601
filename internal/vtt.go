package internal

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	inlineTimestamp = regexp.MustCompile(`<\d{2}:\d{2}:\d{2}\.\d{3}>`)
	cueMarkup       = regexp.MustCompile(`<[^>]+>`)
	cueIndex        = regexp.MustCompile(`^\d+$`)
	segmentTiming   = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2})\.\d{3} --> (\d{2}:\d{2}:\d{2})\.\d{3}`)
)

// CleanVTT converts a timed-caption (WebVTT) document into plain prose:
// headers, cue-timing lines, numeric cue indices, and embedded markup are
// discarded, consecutive duplicate lines are collapsed, and the remaining
// text is joined with single spaces.
//
// The duplicate collapse is a heuristic for auto-generated captions, where
// each cue repeats part of the previous one; it can drop legitimately
// repeated spoken phrases. Idempotent: cleaning already-clean text returns
// it unchanged.
func CleanVTT(content string) string {
	var lines []string
	for line := range strings.SplitSeq(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isVTTNoise(line) {
			continue
		}
		cleaned := cleanCueText(line)
		if cleaned != "" {
			lines = append(lines, cleaned)
		}
	}
	return strings.Join(collapseDuplicates(lines), " ")
}

// isVTTNoise reports whether a line is VTT structure rather than cue text.
func isVTTNoise(line string) bool {
	return strings.HasPrefix(line, "WEBVTT") ||
		strings.HasPrefix(line, "NOTE") ||
		strings.HasPrefix(line, "Kind:") ||
		strings.HasPrefix(line, "Language:") ||
		strings.HasPrefix(line, "STYLE") ||
		strings.Contains(line, "-->") ||
		cueIndex.MatchString(line)
}

// cleanCueText strips inline timestamp markers like <00:00:01.280> and
// markup tags like <c> from cue text, normalizing whitespace.
func cleanCueText(line string) string {
	line = inlineTimestamp.ReplaceAllString(line, "")
	line = cueMarkup.ReplaceAllString(line, "")
	return strings.Join(strings.Fields(line), " ")
}

// Segment is one caption cue with its display timestamps, cleaned text, and
// the start offset in whole seconds for building watch links.
type Segment struct {
	Start        string // "00:01:23"
	End          string
	Text         string
	StartSeconds int
}

// ParseVTTSegments extracts timestamped cues from a WebVTT document: each
// cue-timing line and the cleaned text lines that follow it, up to the next
// blank line or timing line. Cues whose text cleans to nothing are dropped.
func ParseVTTSegments(content string) []Segment {
	lines := strings.Split(content, "\n")
	var segments []Segment

	for i := 0; i < len(lines); i++ {
		m := segmentTiming.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			continue
		}

		var parts []string
		for i++; i < len(lines); i++ {
			text := strings.TrimSpace(lines[i])
			if text == "" {
				break
			}
			if strings.Contains(text, "-->") {
				// Next cue starts without a blank separator.
				i--
				break
			}
			if cleaned := cleanCueText(text); cleaned != "" {
				parts = append(parts, cleaned)
			}
		}

		if len(parts) > 0 {
			segments = append(segments, Segment{
				Start:        m[1],
				End:          m[2],
				Text:         strings.Join(parts, " "),
				StartSeconds: timeToSeconds(m[1]),
			})
		}
	}
	return segments
}

// timeToSeconds converts an "HH:MM:SS" timestamp to whole seconds.
func timeToSeconds(t string) int {
	var h, m, s int
	fmt.Sscanf(t, "%d:%d:%d", &h, &m, &s)
	return h*3600 + m*60 + s
}

// collapseDuplicates eliminates consecutive repeated lines. A line equal to
// or contained in its neighbor counts as a repeat, the usual artifact of
// auto-generated caption cues overlapping.
func collapseDuplicates(lines []string) []string {
	result := make([]string, 0, len(lines))
	prev := ""
	for _, line := range lines {
		duplicate := prev != "" && (strings.Contains(line, prev) || strings.Contains(prev, line))
		if duplicate {
			// Keep the longer variant so no words are lost.
			if len(line) > len(prev) {
				result[len(result)-1] = line
				prev = line
			}
			continue
		}
		result = append(result, line)
		prev = line
	}
	return result
}
