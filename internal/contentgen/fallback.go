package contentgen

import (
	"github.com/google/uuid"

	"github.com/nikhilr/prepmock/internal/exam"
)

// fallbackQuestions is the pre-authored set served when the provider is
// unavailable or its output cannot be parsed.
var fallbackQuestions = []exam.Question{
	{
		Prompt:      "A body of mass 2 kg is acted upon by a net force of 10 N. What is its acceleration?",
		Options:     []string{"5 m/s^2", "10 m/s^2", "20 m/s^2", "0.2 m/s^2"},
		AnswerIndex: 0,
		Subject:     exam.SubjectPhysics,
		Topic:       "Laws of Motion",
		Difficulty:  exam.DifficultyEasy,
		Explanation: "From F = ma, a = F/m = 10/2 = 5 m/s^2.",
	},
	{
		Prompt:      "The SI unit of electric charge is the",
		Options:     []string{"ampere", "coulomb", "volt", "farad"},
		AnswerIndex: 1,
		Subject:     exam.SubjectPhysics,
		Topic:       "Electrostatics",
		Difficulty:  exam.DifficultyEasy,
		Explanation: "Charge is measured in coulombs; the ampere is the unit of current.",
	},
	{
		Prompt:      "Which of the following is an intensive property of a system?",
		Options:     []string{"Volume", "Enthalpy", "Temperature", "Internal energy"},
		AnswerIndex: 2,
		Subject:     exam.SubjectChemistry,
		Topic:       "Thermodynamics",
		Difficulty:  exam.DifficultyMedium,
		Explanation: "Temperature does not depend on the amount of substance; the others are extensive.",
	},
	{
		Prompt:      "The hybridization of carbon in methane is",
		Options:     []string{"sp", "sp2", "sp3", "dsp2"},
		AnswerIndex: 2,
		Subject:     exam.SubjectChemistry,
		Topic:       "Chemical Bonding",
		Difficulty:  exam.DifficultyEasy,
		Explanation: "Methane has four equivalent sigma bonds arranged tetrahedrally, so carbon is sp3 hybridized.",
	},
	{
		Prompt:      "Which organelle is known as the powerhouse of the cell?",
		Options:     []string{"Ribosome", "Mitochondrion", "Golgi apparatus", "Lysosome"},
		AnswerIndex: 1,
		Subject:     exam.SubjectBiology,
		Topic:       "Cell Biology",
		Difficulty:  exam.DifficultyEasy,
		Explanation: "Mitochondria produce most of the cell's ATP by oxidative phosphorylation.",
	},
	{
		Prompt:      "In humans, oxygenated blood is carried from the lungs to the heart by the",
		Options:     []string{"pulmonary artery", "pulmonary vein", "aorta", "vena cava"},
		AnswerIndex: 1,
		Subject:     exam.SubjectBiology,
		Topic:       "Human Physiology",
		Difficulty:  exam.DifficultyMedium,
		Explanation: "The pulmonary veins are the only veins that carry oxygenated blood.",
	},
}

// fallbackBatch returns up to batchSize fallback questions matching the
// configured subject filter, each with a fresh id and the fallback tag.
// Prompts already seen in this session are skipped so repeated provider
// failures do not serve duplicates.
func fallbackBatch(cfg exam.TestConfig, batchSize int, priorPrompts []string) []exam.Question {
	seen := make(map[string]bool, len(priorPrompts))
	for _, p := range priorPrompts {
		seen[p] = true
	}

	var out []exam.Question
	for _, q := range fallbackQuestions {
		if len(out) == batchSize {
			break
		}
		if len(cfg.Subjects) > 0 && !cfg.HasSubject(q.Subject) {
			continue
		}
		if seen[q.Prompt] {
			continue
		}
		q.ID = uuid.NewString()
		q.SourceTag = SourceTagFallback
		out = append(out, q)
	}
	return out
}

// FallbackApology is served in place of hints and doubt answers when
// the provider cannot produce text. Callers must not treat it as real
// content worth persisting.
const FallbackApology = "Sorry, I can't help with that right now. Please check your connection or API key and try again."

// fallbackAnalysis is the canned review used when the provider cannot
// produce one.
func fallbackAnalysis(result *exam.TestResult) exam.Analysis {
	summary := "Detailed AI analysis is unavailable right now. "
	switch {
	case result.Attempted == 0:
		summary += "You did not attempt any questions this time; try answering the ones you feel surest about first."
	case result.Accuracy >= 75:
		summary += "Your accuracy was strong; focus next on attempting more questions within the time limit."
	default:
		summary += "Work on accuracy before speed: review every wrong answer and note the concept it tested."
	}
	return exam.Analysis{
		Summary: summary,
		Suggestions: []string{
			"Review the explanations of all incorrectly answered questions.",
			"Re-attempt skipped questions without the timer to find knowledge gaps.",
		},
	}
}
