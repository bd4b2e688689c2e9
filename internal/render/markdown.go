package render

import (
	"fmt"
	"strings"

	"coursegen/internal/synthesis"
)

func renderMarkdown(course *synthesis.Course) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", course.Title)
	fmt.Fprintf(&b, "%s\n\n", course.Description)

	b.WriteString("## Course Overview\n\n")
	fmt.Fprintf(&b, "- **Category:** %s\n", course.Category)
	fmt.Fprintf(&b, "- **Level:** %s\n", course.Level)
	fmt.Fprintf(&b, "- **Estimated study time:** %s\n", formatMinutes(course.EstimatedMinutes))
	if len(course.Tags) > 0 {
		fmt.Fprintf(&b, "- **Topics:** %s\n", strings.Join(course.Tags, ", "))
	}
	if course.DegradedAnalysis {
		b.WriteString("- **Note:** content analysis was unavailable; structure was derived from video metadata\n")
	}
	b.WriteString("\n")

	writeList(&b, "## ", "Learning Objectives", course.Objectives)
	writeList(&b, "## ", "Prerequisites", course.Prerequisites)

	b.WriteString("## Modules\n\n")
	for _, module := range course.Modules {
		writeModule(&b, course.Format, module)
	}

	if len(course.Assignments) > 0 {
		b.WriteString("## Assignments\n\n")
		for _, assignment := range course.Assignments {
			fmt.Fprintf(&b, "### %s\n\n%s\n\n", assignment.Title, assignment.Description)
		}
	}
	if course.FinalExam != nil {
		writeExam(&b, course.FinalExam)
	}
	if course.StudyGuide != nil {
		writeStudyGuide(&b, course.StudyGuide)
	}
	return []byte(b.String())
}

func writeModule(b *strings.Builder, format synthesis.Format, module synthesis.Module) {
	fmt.Fprintf(b, "### Module %d: %s\n\n", module.Order, module.Title)
	if module.Description != "" {
		fmt.Fprintf(b, "%s\n\n", module.Description)
	}
	fmt.Fprintf(b, "Estimated time: %s\n\n", formatMinutes(module.EstimatedMinutes))

	if format == synthesis.FormatStandard {
		if len(module.ItemIDs) > 0 {
			b.WriteString("Videos:\n\n")
			for _, id := range module.ItemIDs {
				fmt.Fprintf(b, "- [%s](https://www.youtube.com/watch?v=%s)\n", id, id)
			}
			b.WriteString("\n")
		}
		writeList(b, "#### ", "Objectives", module.Objectives)
		writeList(b, "#### ", "Key Concepts", module.KeyConcepts)
		if len(module.Activities) > 0 {
			b.WriteString("Activities:\n\n")
			for _, activity := range module.Activities {
				fmt.Fprintf(b, "- **%s**: %s\n", activity.Title, activity.Description)
			}
			b.WriteString("\n")
		}
		return
	}

	for _, lesson := range module.Lessons {
		writeLesson(b, lesson)
	}
}

func writeLesson(b *strings.Builder, lesson synthesis.Lesson) {
	fmt.Fprintf(b, "#### Lesson %d: %s (%s)\n\n", lesson.Order, lesson.Title, lesson.Type)
	if lesson.Description != "" {
		fmt.Fprintf(b, "%s\n\n", lesson.Description)
	}
	switch lesson.Type {
	case synthesis.LessonVideo:
		fmt.Fprintf(b, "Watch: [%s](%s)\n\n", lesson.Title, lesson.Video.URL)
		if len(lesson.Video.ReflectionQuestions) > 0 {
			b.WriteString("Reflection questions:\n\n")
			for _, question := range lesson.Video.ReflectionQuestions {
				fmt.Fprintf(b, "- %s\n", question)
			}
			b.WriteString("\n")
		}
	case synthesis.LessonQuiz:
		for i, question := range lesson.Quiz.Questions {
			fmt.Fprintf(b, "%d. %s", i+1, question.Prompt)
			if question.Type == synthesis.QuestionMultipleChoice {
				b.WriteString("\n")
				for _, option := range question.Options {
					fmt.Fprintf(b, "   - %s\n", option)
				}
			} else {
				b.WriteString(" *(essay)*\n")
			}
		}
		b.WriteString("\n")
	case synthesis.LessonText:
		fmt.Fprintf(b, "%s\n\n", lesson.Text.Body)
	}
}

func writeExam(b *strings.Builder, exam *synthesis.FinalExam) {
	fmt.Fprintf(b, "## %s\n\n%s\n\n", exam.Title, exam.Description)
	fmt.Fprintf(b, "Time limit: %d minutes. Passing score: %d%%.\n\n", exam.TimeLimitMinutes, exam.PassingScore)
	for i, question := range exam.Questions {
		fmt.Fprintf(b, "%d. %s *(%s, %d points)*\n", i+1, question.Prompt, question.Type, question.Points)
		if question.Type == synthesis.QuestionMultipleChoice {
			for _, option := range question.Options {
				fmt.Fprintf(b, "   - %s\n", option)
			}
		}
	}
	b.WriteString("\n")
}

func writeStudyGuide(b *strings.Builder, guide *synthesis.StudyGuide) {
	fmt.Fprintf(b, "## %s\n\n", guide.Title)
	for _, section := range guide.Sections {
		fmt.Fprintf(b, "### %s\n\n", section.Title)
		for _, point := range section.Points {
			fmt.Fprintf(b, "- %s\n", point)
		}
		b.WriteString("\n")
	}
}

func writeList(b *strings.Builder, prefix, heading string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(b, "%s%s\n\n", prefix, heading)
	for _, value := range values {
		fmt.Fprintf(b, "- %s\n", value)
	}
	b.WriteString("\n")
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	hours := minutes / 60
	remainder := minutes % 60
	if remainder == 0 {
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d hours %d minutes", hours, remainder)
}
