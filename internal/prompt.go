package internal

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

const summarySystem = "You are a helpful assistant that creates concise summaries of video transcripts in markdown format. Always use proper markdown syntax including headers, bullet points, and bold text for emphasis."

const titleSystem = "You are a helpful assistant that creates concise, descriptive filenames from text summaries. Always use underscores instead of spaces and keep it to 5-6 words maximum."

var summaryTemplate = template.Must(template.New("summary").Parse(`Please provide a concise summary of the following YouTube video transcript in markdown format.
Focus on the main points and key takeaways. Use proper markdown formatting including:
- Headers (##, ###) for main sections
- Bullet points (-) for lists
- **Bold text** for emphasis
- Organize the content in a clear, structured way
{{if .Title}}
Video title: {{.Title}}{{end}}{{if .Channel}}
Channel: {{.Channel}}{{end}}

Transcript:
{{.Transcript}}`))

var timestampedSummaryTemplate = template.Must(template.New("timestamped").Parse(`Please provide a concise summary of the following YouTube video transcript in markdown format.
Focus on the main points and key takeaways. Use proper markdown formatting including:
- Headers (##, ###) for main sections
- Bullet points (-) for lists
- **Bold text** for emphasis
- Organize the content in a clear, structured way

IMPORTANT: When referencing specific topics or moments, include relevant timestamps as clickable links.
Use this EXACT format for timestamps: [HH:MM:SS](https://www.youtube.com/watch?v={{.VideoID}}&t=XXXs)
Where XXX is the timestamp in seconds. You MUST use the video ID "{{.VideoID}}" in all timestamp links.

Here are some example timestamp formats that show the correct URL structure with the actual video ID:
{{.Examples}}

Copy the URL format from these examples exactly, only changing the timestamp seconds as needed.
{{if .Title}}
Video title: {{.Title}}{{end}}{{if .Channel}}
Channel: {{.Channel}}{{end}}

Transcript:
{{.Transcript}}`))

var titleTemplate = template.Must(template.New("title").Parse(`Based on this video summary, create a short, descriptive filename of 5-6 words maximum using only letters, numbers, and underscores.
The filename should capture the main topic or key concept. Use underscores to separate words.

Summary: {{.Summary}}

Return only the filename without any explanation.`))

// promptData feeds the summary template; metadata fields are optional.
type promptData struct {
	Title      string
	Channel    string
	Transcript string
}

// buildSummaryPrompt renders the summary instruction with the transcript and
// whatever metadata is available.
func buildSummaryPrompt(transcript string, metadata *VideoMetadata) (string, error) {
	data := promptData{Transcript: transcript}
	if metadata != nil {
		data.Title = metadata.Title
		data.Channel = metadata.Channel
	}

	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing summary template: %w", err)
	}
	return buf.String(), nil
}

// timestampedPromptData feeds the timestamped summary template.
type timestampedPromptData struct {
	VideoID    string
	Examples   string
	Title      string
	Channel    string
	Transcript string
}

// buildTimestampedSummaryPrompt renders the summary instruction that teaches
// the model to embed clickable timestamp links, using sampled caption cues
// as format examples.
func buildTimestampedSummaryPrompt(transcript, videoID string, segments []Segment, metadata *VideoMetadata) (string, error) {
	data := timestampedPromptData{
		VideoID:    videoID,
		Examples:   timestampExamples(videoID, segments),
		Transcript: transcript,
	}
	if metadata != nil {
		data.Title = metadata.Title
		data.Channel = metadata.Channel
	}

	var buf bytes.Buffer
	if err := timestampedSummaryTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing timestamped summary template: %w", err)
	}
	return buf.String(), nil
}

// timestampExamples samples cues evenly across the video and renders them as
// example links: every tenth cue, at most five, text capped for brevity.
func timestampExamples(videoID string, segments []Segment) string {
	stride := len(segments) / 10
	if stride < 1 {
		stride = 1
	}

	var lines []string
	for i := 0; i < len(segments) && len(lines) < 5; i += stride {
		seg := segments[i]
		link := TimestampLink(videoID, seg.StartSeconds)
		lines = append(lines, fmt.Sprintf("[%s](%s): %s...", seg.Start, link, truncateUTF8(seg.Text, 100)))
	}
	return strings.Join(lines, "\n")
}

// buildTitlePrompt renders the filename-title instruction from a summary.
func buildTitlePrompt(summary string) (string, error) {
	var buf bytes.Buffer
	if err := titleTemplate.Execute(&buf, struct{ Summary string }{summary}); err != nil {
		return "", fmt.Errorf("executing title template: %w", err)
	}
	return buf.String(), nil
}
