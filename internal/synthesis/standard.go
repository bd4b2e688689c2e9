package synthesis

import (
	"fmt"
)

// standardStrategy produces the module-based course schema: each module
// references its member source items and carries objectives, key concepts,
// and study activities sliced from the analysis result.
type standardStrategy struct {
	opts Options
}

func (s *standardStrategy) Name() Format { return FormatStandard }

func (s *standardStrategy) Synthesize(input Input) (*Course, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: empty item sequence", ErrSynthesisImpossible)
	}

	groups := partition(input.Items, input.Analysis.Path, s.opts.MinModules, s.opts.MaxModules)
	course := courseShell(input, FormatStandard)

	course.Modules = make([]Module, 0, len(groups))
	for i, g := range groups {
		module := Module{
			ID:               fmt.Sprintf("module-%d", i+1),
			Title:            g.Title,
			Description:      g.Description,
			Order:            i + 1,
			EstimatedMinutes: groupMinutes(g.Items),
			Objectives:       sliceAcross(input.Analysis.Objectives, len(groups), i),
			KeyConcepts:      sliceAcross(input.Analysis.Themes, len(groups), i),
			Activities:       moduleActivities(i),
		}
		for _, item := range g.Items {
			module.ItemIDs = append(module.ItemIDs, item.ID)
		}
		course.Modules = append(course.Modules, module)
	}

	course.StudyGuide = studyGuide(input, course.Title)
	course.Progress = progressTracker(course.Modules)
	return &course, nil
}

// moduleActivities rotates through a fixed activity pool so consecutive
// modules suggest different study work.
func moduleActivities(moduleIndex int) []Activity {
	pool := []Activity{
		{Title: "Take Detailed Notes", Description: "Create comprehensive notes while watching each video"},
		{Title: "Create Concept Maps", Description: "Draw connections between key concepts covered"},
		{Title: "Apply Concepts", Description: "Practice applying the concepts learned in real scenarios"},
		{Title: "Discuss with Peers", Description: "Discuss key concepts with classmates or study groups"},
	}
	first := pool[moduleIndex%len(pool)]
	second := pool[(moduleIndex+1)%len(pool)]
	return []Activity{first, second}
}
