package render

import (
	"fmt"
	"html"
	"strings"

	"coursegen/internal/synthesis"
)

// renderCombined produces the single self-contained HTML document: a
// human-readable presentation with the canonical JSON embedded inline for
// machine consumers.
func renderCombined(course *synthesis.Course, encoded []byte) []byte {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(course.Title))
	b.WriteString(`<style>
body { font-family: Arial, sans-serif; max-width: 900px; margin: 0 auto; padding: 20px; }
.course-header { background: #f4f4f4; padding: 20px; border-radius: 5px; }
.module { margin: 20px 0; padding: 15px; border: 1px solid #ddd; }
.lesson { margin: 10px 0 10px 20px; }
.exam { margin: 20px 0; padding: 15px; background: #fff8e8; }
pre.course-data { display: none; }
</style>
`)
	b.WriteString("</head>\n<body>\n")

	b.WriteString("<div class=\"course-header\">\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(course.Title))
	fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(course.Description))
	fmt.Fprintf(&b, "<p>Level: %s · Estimated study time: %s</p>\n",
		html.EscapeString(course.Level), formatMinutes(course.EstimatedMinutes))
	b.WriteString("</div>\n")

	for _, module := range course.Modules {
		b.WriteString("<div class=\"module\">\n")
		fmt.Fprintf(&b, "<h2>Module %d: %s</h2>\n", module.Order, html.EscapeString(module.Title))
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(module.Description))
		if course.Format == synthesis.FormatStandard {
			b.WriteString("<ul>\n")
			for _, id := range module.ItemIDs {
				fmt.Fprintf(&b, "<li><a href=\"https://www.youtube.com/watch?v=%s\">%s</a></li>\n",
					html.EscapeString(id), html.EscapeString(id))
			}
			b.WriteString("</ul>\n")
		} else {
			for _, lesson := range module.Lessons {
				fmt.Fprintf(&b, "<div class=\"lesson\"><h3>%s</h3><p>%s lesson, %d minutes</p></div>\n",
					html.EscapeString(lesson.Title), html.EscapeString(string(lesson.Type)), lesson.DurationMinutes)
			}
		}
		b.WriteString("</div>\n")
	}

	if course.FinalExam != nil {
		b.WriteString("<div class=\"exam\">\n")
		fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(course.FinalExam.Title))
		fmt.Fprintf(&b, "<p>%d questions · %d minutes · passing score %d%%</p>\n",
			len(course.FinalExam.Questions), course.FinalExam.TimeLimitMinutes, course.FinalExam.PassingScore)
		b.WriteString("</div>\n")
	}

	b.WriteString("<script type=\"application/json\" id=\"course-data\">\n")
	b.Write(encoded)
	b.WriteString("\n</script>\n")
	b.WriteString("</body>\n</html>\n")
	return []byte(b.String())
}
