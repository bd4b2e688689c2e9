package synthesis

import (
	"fmt"

	"coursegen/internal/playlist"
)

// enhancedStrategy produces the lesson-based course schema: video lessons per
// source item, one quiz lesson per module, assignments derived from the
// course objectives, and a single final exam sized by course duration.
type enhancedStrategy struct {
	opts Options
}

func (s *enhancedStrategy) Name() Format { return FormatEnhanced }

func (s *enhancedStrategy) Synthesize(input Input) (*Course, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: empty item sequence", ErrSynthesisImpossible)
	}

	groups := partition(input.Items, input.Analysis.Path, s.opts.MinModules, s.opts.MaxModules)
	course := courseShell(input, FormatEnhanced)

	course.Modules = make([]Module, 0, len(groups))
	for i, g := range groups {
		concepts := sliceAcross(input.Analysis.Themes, len(groups), i)
		module := Module{
			ID:               fmt.Sprintf("module-%d", i+1),
			Title:            g.Title,
			Description:      g.Description,
			Order:            i + 1,
			EstimatedMinutes: groupMinutes(g.Items) + quizMinutes,
			Lessons:          s.moduleLessons(i+1, g.Items, concepts),
		}
		course.Modules = append(course.Modules, module)
	}

	course.Assignments = s.assignments(course.Title, course.Modules, input.Analysis.Objectives)
	course.FinalExam = s.finalExam(course, input)
	course.StudyGuide = studyGuide(input, course.Title)
	course.Progress = progressTracker(course.Modules)
	return &course, nil
}

const (
	quizMinutes            = 10
	defaultExamTimeLimit   = 120
	defaultExamPassingPct  = 75
	minExamQuestions       = 3
	maxExamQuestions       = 10
	essayQuestionPoints    = 20
	multipleChoicePoints   = 10
	quizQuestionPoints     = 5
	reflectionQuestionsCap = 3
)

func (s *enhancedStrategy) moduleLessons(moduleOrder int, items []playlist.Item, concepts []string) []Lesson {
	lessons := make([]Lesson, 0, len(items)+1)
	for i, item := range items {
		lessons = append(lessons, Lesson{
			ID:              fmt.Sprintf("lesson-%d-%d", moduleOrder, i+1),
			Title:           item.Title,
			Description:     item.Description,
			Type:            LessonVideo,
			Order:           i + 1,
			DurationMinutes: item.DurationMinutes,
			Video: &VideoContent{
				ItemID:              item.ID,
				URL:                 item.URL,
				Source:              "youtube",
				ReflectionQuestions: reflectionQuestions(item),
			},
		})
	}
	lessons = append(lessons, Lesson{
		ID:              fmt.Sprintf("lesson-%d-quiz", moduleOrder),
		Title:           fmt.Sprintf("Module %d Knowledge Check", moduleOrder),
		Description:     "Test your understanding of this module",
		Type:            LessonQuiz,
		Order:           len(items) + 1,
		DurationMinutes: quizMinutes,
		Quiz:            &QuizContent{Questions: quizQuestions(moduleOrder, concepts)},
	})
	return lessons
}

func reflectionQuestions(item playlist.Item) []string {
	questions := []string{
		"What are the main takeaways from this video?",
		"How does this content connect to what you already know?",
	}
	if item.Availability == playlist.AvailabilityFull {
		questions = append(questions, fmt.Sprintf("Summarize %q in your own words.", item.Title))
	}
	if len(questions) > reflectionQuestionsCap {
		questions = questions[:reflectionQuestionsCap]
	}
	return questions
}

// quizQuestions derives one question per key concept. A module with no
// concepts still gets exactly one placeholder question so the quiz lesson is
// never empty.
func quizQuestions(moduleOrder int, concepts []string) []Question {
	if len(concepts) == 0 {
		return []Question{{
			ID:          fmt.Sprintf("q%d-1", moduleOrder),
			Prompt:      "What is the main topic covered in this module?",
			Type:        QuestionMultipleChoice,
			Options:     []string{"Review the module videos to answer", "Skip this module", "Not covered", "None of the above"},
			Explanation: "Review the module content for the answer.",
			Points:      quizQuestionPoints,
		}}
	}
	questions := make([]Question, 0, len(concepts))
	for i, concept := range concepts {
		questions = append(questions, Question{
			ID:     fmt.Sprintf("q%d-%d", moduleOrder, i+1),
			Prompt: fmt.Sprintf("Explain the concept of %s and its significance.", concept),
			Type:   QuestionEssay,
			Points: quizQuestionPoints,
		})
	}
	return questions
}

func (s *enhancedStrategy) assignments(courseTitle string, modules []Module, objectives []string) []Assignment {
	count := len(modules)
	if count > s.opts.MaxAssignments {
		count = s.opts.MaxAssignments
	}
	assignments := make([]Assignment, 0, count)
	for i := 0; i < count; i++ {
		assignment := Assignment{
			ID:       fmt.Sprintf("assignment-%d", i+1),
			ModuleID: modules[i].ID,
		}
		if i < len(objectives) {
			assignment.Title = fmt.Sprintf("Assignment %d: %s", i+1, modules[i].Title)
			assignment.Description = fmt.Sprintf("Produce a practical deliverable demonstrating that you can %s.",
				lowerFirst(objectives[i]))
		} else {
			assignment.Title = fmt.Sprintf("Assignment %d: %s", i+1, modules[i].Title)
			assignment.Description = fmt.Sprintf("Apply the material of %s in a short practical exercise for %s.",
				modules[i].Title, courseTitle)
		}
		assignments = append(assignments, assignment)
	}
	return assignments
}

// finalExam sizes the question set at one question per configured block of
// study minutes, clamped to a fixed range. Question prompts rotate between
// essay questions on themes and multiple-choice checks on objectives.
func (s *enhancedStrategy) finalExam(course Course, input Input) *FinalExam {
	questionCount := course.EstimatedMinutes / s.opts.ExamMinutesPerQuestion
	if questionCount < minExamQuestions {
		questionCount = minExamQuestions
	}
	if questionCount > maxExamQuestions {
		questionCount = maxExamQuestions
	}

	exam := &FinalExam{
		Title:            course.Title + " Final Exam",
		Description:      "Comprehensive exam covering all course topics and modules.",
		TimeLimitMinutes: defaultExamTimeLimit,
		PassingScore:     defaultExamPassingPct,
		Questions:        make([]Question, 0, questionCount),
	}

	themes := input.Analysis.Themes
	objectives := input.Analysis.Objectives
	for i := 0; i < questionCount; i++ {
		id := fmt.Sprintf("final-q%d", i+1)
		if i%2 == 0 {
			prompt := fmt.Sprintf("Explain the key concepts covered in %s and how they relate to each other.", course.Title)
			if len(themes) > 0 {
				prompt = fmt.Sprintf("Discuss %s in depth, with examples from the course material.", themes[(i/2)%len(themes)])
			}
			exam.Questions = append(exam.Questions, Question{
				ID:     id,
				Prompt: prompt,
				Type:   QuestionEssay,
				Points: essayQuestionPoints,
			})
			continue
		}
		prompt := "Which of the following best describes the main focus of this course?"
		options := []string{course.Category, "Unrelated topic A", "Unrelated topic B", "Unrelated topic C"}
		if len(objectives) > 0 {
			objective := objectives[(i/2)%len(objectives)]
			prompt = fmt.Sprintf("Which statement best matches the objective %q?", objective)
			options = []string{objective, "A different course outcome", "A prerequisite, not an outcome", "None of the above"}
		}
		exam.Questions = append(exam.Questions, Question{
			ID:          id,
			Prompt:      prompt,
			Type:        QuestionMultipleChoice,
			Options:     options,
			Explanation: "Review the course overview and objectives.",
			Points:      multipleChoicePoints,
		})
	}
	return exam
}

func lowerFirst(value string) string {
	if value == "" {
		return value
	}
	runes := []rune(value)
	if runes[0] >= 'A' && runes[0] <= 'Z' {
		runes[0] += 'a' - 'A'
	}
	return string(runes)
}
