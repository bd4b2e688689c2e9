package synthesis

// Format selects which course schema a synthesis run produces.
type Format string

const (
	// FormatStandard produces modules that reference source items directly.
	FormatStandard Format = "standard"
	// FormatEnhanced produces lesson/quiz/assignment/exam structured modules.
	FormatEnhanced Format = "enhanced"
)

// LessonType tags the content payload carried by an enhanced lesson.
type LessonType string

const (
	LessonVideo   LessonType = "video"
	LessonText    LessonType = "text"
	LessonQuiz    LessonType = "quiz"
	LessonProject LessonType = "project"
)

// Course is the synthesized course model. Exactly one of the two schema
// variants is populated, selected by Format: standard modules carry item
// references and free-text annotations, enhanced modules carry lessons and
// the course additionally carries assignments and a final exam.
type Course struct {
	Format           Format   `json:"format"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Level            string   `json:"level"`
	Tags             []string `json:"tags"`
	EstimatedMinutes int      `json:"estimated_minutes"`
	Prerequisites    []string `json:"prerequisites"`
	Objectives       []string `json:"objectives"`
	DegradedAnalysis bool     `json:"degraded_analysis"`

	Modules []Module `json:"modules"`

	// Enhanced variant only.
	Assignments []Assignment `json:"assignments,omitempty"`
	FinalExam   *FinalExam   `json:"final_exam,omitempty"`

	StudyGuide *StudyGuide      `json:"study_guide,omitempty"`
	Progress   *ProgressTracker `json:"progress,omitempty"`
}

// Module is one ordered unit of the course.
type Module struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Order            int    `json:"order"`
	EstimatedMinutes int    `json:"estimated_minutes"`

	// Standard variant.
	ItemIDs     []string   `json:"item_ids,omitempty"`
	Objectives  []string   `json:"objectives,omitempty"`
	KeyConcepts []string   `json:"key_concepts,omitempty"`
	Activities  []Activity `json:"activities,omitempty"`

	// Enhanced variant.
	Lessons []Lesson `json:"lessons,omitempty"`
}

// Activity is a suggested study activity attached to a standard module.
type Activity struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Lesson is one ordered entry of an enhanced module. Content fields are
// populated according to Type.
type Lesson struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Type            LessonType `json:"type"`
	Order           int        `json:"order"`
	DurationMinutes int        `json:"duration_minutes"`

	Video *VideoContent `json:"video,omitempty"`
	Text  *TextContent  `json:"text,omitempty"`
	Quiz  *QuizContent  `json:"quiz,omitempty"`
}

// VideoContent references a source item; it never copies item text.
type VideoContent struct {
	ItemID              string   `json:"item_id"`
	URL                 string   `json:"url"`
	Source              string   `json:"source"`
	ReflectionQuestions []string `json:"reflection_questions,omitempty"`
}

// TextContent is a synthesized reading section.
type TextContent struct {
	Body string `json:"body"`
}

// QuizContent holds the question set of a quiz lesson.
type QuizContent struct {
	Questions []Question `json:"questions"`
}

// QuestionType enumerates the supported quiz and exam question kinds.
type QuestionType string

const (
	QuestionEssay          QuestionType = "essay"
	QuestionMultipleChoice QuestionType = "multiple-choice"
)

// Question is one quiz or exam question.
type Question struct {
	ID            string       `json:"id"`
	Prompt        string       `json:"prompt"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer int          `json:"correct_answer"`
	Explanation   string       `json:"explanation,omitempty"`
	Points        int          `json:"points"`
}

// Assignment is a practical task derived from the course objectives.
type Assignment struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ModuleID    string `json:"module_id"`
}

// FinalExam is the single end-of-course exam of an enhanced course.
type FinalExam struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	TimeLimitMinutes int        `json:"time_limit_minutes"`
	PassingScore     int        `json:"passing_score"`
	Questions        []Question `json:"questions"`
}

// StudyGuide aggregates cross-module study material.
type StudyGuide struct {
	Title    string              `json:"title"`
	Sections []StudyGuideSection `json:"sections"`
}

// StudyGuideSection is one titled block of the study guide.
type StudyGuideSection struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

// ProgressTracker is an empty per-module completion skeleton consumers can
// fill in.
type ProgressTracker struct {
	Modules []ProgressEntry `json:"modules"`
}

// ProgressEntry tracks completion of one module.
type ProgressEntry struct {
	ModuleID  string `json:"module_id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}
