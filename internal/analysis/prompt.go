package analysis

import (
	"fmt"
	"strings"

	"coursegen/internal/playlist"
	"coursegen/internal/textutil"
)

const analysisSystemPrompt = `You are an instructional designer analyzing an ordered playlist of educational videos.
Classify the content and propose a course structure.
Respond with a single JSON object and nothing else, using exactly these keys:
  subject            string
  themes             array of strings
  audience_level     one of "beginner", "intermediate", "advanced"
  organization       string (e.g. "sequential", "thematic")
  objectives         array of 5-8 learning objective strings
  prerequisites      array of strings
  path               array of {title, description, item_ids} objects grouping the video ids into 3-6 modules
  difficulty         one of "beginner", "intermediate", "advanced"
  estimated_minutes  integer, total study time in minutes
Every video id must appear in exactly one path group. Use only ids from the input.`

const analysisStrictSuffix = `

Your previous reply was not valid JSON. Reply again with ONLY the JSON object described above. No prose, no markdown fences.`

// PromptOptions controls prompt construction.
type PromptOptions struct {
	TargetLevel    string
	Organization   string
	MaxPromptChars int
}

// BuildPrompt summarizes the item sequence into the analysis user prompt. The
// result is capped at opts.MaxPromptChars with whole-item granularity where
// possible.
func BuildPrompt(items []playlist.Item, opts PromptOptions) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Playlist with %d videos, in order:\n\n", len(items)))
	for i, item := range items {
		entry := summarizeItem(i, item)
		builder.WriteString(entry)
	}
	if opts.TargetLevel != "" {
		builder.WriteString(fmt.Sprintf("\nTarget audience level requested by the user: %s.\n", opts.TargetLevel))
	}
	if opts.Organization != "" {
		builder.WriteString(fmt.Sprintf("Preferred organization style: %s.\n", opts.Organization))
	}
	prompt := builder.String()
	if opts.MaxPromptChars > 0 {
		prompt = textutil.Truncate(prompt, opts.MaxPromptChars)
	}
	return prompt
}

func summarizeItem(index int, item playlist.Item) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%d. id=%s title=%q duration=%dmin availability=%s\n",
		index+1, item.ID, item.Title, item.DurationMinutes, item.Availability))
	switch item.Availability {
	case playlist.AvailabilityFull:
		builder.WriteString("   transcript: " + item.Transcript + "\n")
	case playlist.AvailabilityDescriptionOnly:
		builder.WriteString("   description: " + item.Description + "\n")
	}
	return builder.String()
}
