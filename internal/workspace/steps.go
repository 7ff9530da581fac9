package workspace

// Step describes one stage of the upload, instruct, share progression.
type Step struct {
	Number      int
	Title       string
	Description string
	// Active is true for the current step and every step before it.
	Active bool
	// Current is true for exactly one step.
	Current bool
	// Done marks the connector after this step as completed.
	Done bool
}

var stepInfo = [...]struct{ title, description string }{
	{"Upload", "Add your transcript"},
	{"Instruct", "Define summary style"},
	{"Share", "Send to stakeholders"},
}

// currentStep derives the progress position from what the user has so far.
func currentStep(hasTranscript, hasSummary bool) int {
	switch {
	case !hasTranscript:
		return 1
	case !hasSummary:
		return 2
	default:
		return 3
	}
}

func buildSteps(current int) []Step {
	steps := make([]Step, len(stepInfo))
	for i, info := range stepInfo {
		n := i + 1
		steps[i] = Step{
			Number:      n,
			Title:       info.title,
			Description: info.description,
			Active:      current >= n,
			Current:     current == n,
			Done:        current > n,
		}
	}
	return steps
}
