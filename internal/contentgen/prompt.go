package contentgen

import (
	"fmt"
	"strings"

	"github.com/nikhilr/prepmock/internal/exam"
)

const questionSystemPrompt = `You are an exam setter creating multiple-choice questions for a medical entrance mock test (NEET level).

Rules:
- Generate exactly the requested number of questions for the given subjects and topic.
- Use plain ASCII text. No LaTeX, no Unicode symbols. Use / for fractions and standard operators.
- Each question has exactly 4 options with exactly one correct answer.
- Distractors must reflect common student mistakes, not random values.
- The explanation should justify the correct answer in two or three sentences.
- Assess the difficulty of each question honestly as easy, medium or hard.
- Do not repeat any question from the "already asked" list.`

const hintSystemPrompt = `You are a patient exam coach. Given a question, give a single short hint that nudges the student toward the answer without revealing it. Two sentences at most. Plain text only.`

const doubtSystemPrompt = `You are a subject tutor. The student is reviewing a solved question and has a doubt about it. Answer their doubt directly and concisely, referencing the question and its correct answer. Plain text only.`

const flashcardSystemPrompt = `You are preparing revision flashcards. For each given topic, write one or two cards with a short question or term on the front and a crisp factual answer on the back. Plain ASCII text.`

const analysisSystemPrompt = `You are an exam mentor reviewing a mock-test attempt. Based on the subject-wise numbers, write an honest, encouraging review: a short summary, the strengths, the weak areas, and concrete suggestions for the next attempt.`

// buildQuestionMessage assembles the generation request for one batch.
func buildQuestionMessage(cfg exam.TestConfig, batchSize int, priorPrompts []string, maxPrior int) string {
	var b strings.Builder

	names := make([]string, len(cfg.Subjects))
	for i, s := range cfg.Subjects {
		names[i] = s.Display()
	}

	fmt.Fprintf(&b, "Number of questions: %d\n", batchSize)
	fmt.Fprintf(&b, "Subjects: %s\n", strings.Join(names, ", "))
	if cfg.Topic != "" {
		fmt.Fprintf(&b, "Restrict to topic: %s\n", cfg.Topic)
	}

	b.WriteString("\nAlready asked in this session:\n")
	b.WriteString(buildPriorList(priorPrompts, maxPrior))

	return b.String()
}

// buildPriorList formats already-asked prompts for deduplication,
// keeping only the most recent max entries.
func buildPriorList(prompts []string, max int) string {
	if len(prompts) == 0 {
		return "None"
	}

	if max > 0 && len(prompts) > max {
		prompts = prompts[len(prompts)-max:]
	}

	var b strings.Builder
	for i, p := range prompts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}

// buildHintMessage describes the question for hint generation.
func buildHintMessage(q exam.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\nTopic: %s\n\nQuestion: %s\n", q.Subject.Display(), q.Topic, q.Prompt)
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%c. %s\n", 'A'+i, opt)
	}
	return b.String()
}

// buildDoubtMessage describes the question, its answer and the
// student's doubt.
func buildDoubtMessage(q exam.Question, userText string) string {
	var b strings.Builder
	b.WriteString(buildHintMessage(q))
	if q.AnswerIndex >= 0 && q.AnswerIndex < len(q.Options) {
		fmt.Fprintf(&b, "\nCorrect answer: %c. %s\n", 'A'+q.AnswerIndex, q.Options[q.AnswerIndex])
	}
	if q.Explanation != "" {
		fmt.Fprintf(&b, "Explanation: %s\n", q.Explanation)
	}
	fmt.Fprintf(&b, "\nStudent's doubt: %s\n", userText)
	return b.String()
}

// buildAnalysisMessage summarizes the attempt for the analysis call.
func buildAnalysisMessage(result *exam.TestResult, stats []exam.SubjectStat) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total questions: %d\n", result.TotalQuestions)
	fmt.Fprintf(&b, "Attempted: %d\n", result.Attempted)
	fmt.Fprintf(&b, "Correct: %d\n", result.Correct)
	fmt.Fprintf(&b, "Wrong: %d\n", result.Wrong)
	fmt.Fprintf(&b, "Score: %.2f\n", result.Score)
	fmt.Fprintf(&b, "Accuracy: %.2f%%\n", result.Accuracy)
	fmt.Fprintf(&b, "Time taken: %d minutes\n", result.ElapsedSeconds/60)

	b.WriteString("\nSubject-wise:\n")
	for _, st := range stats {
		fmt.Fprintf(&b, "- %s: %d/%d attempted, %d correct\n",
			st.Subject.Display(), st.Attempted, st.Total, st.Correct)
	}
	return b.String()
}
