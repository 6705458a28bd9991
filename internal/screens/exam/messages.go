package exam

import (
	"time"

	core "github.com/nikhilr/prepmock/internal/exam"
)

// examReadyMsg is sent when the initial question batch (or the resumed
// snapshot) is ready and the session can start.
type examReadyMsg struct {
	batch  []core.Question
	resume bool
}

// batchLoadedMsg carries a background batch from the progressive loader.
type batchLoadedMsg struct {
	batch []core.Question
}

// loaderTickMsg fires after the inter-batch delay to schedule the next
// fetch.
type loaderTickMsg struct{}

// timerTickMsg is sent every second to drive the countdown.
type timerTickMsg time.Time

// hintReadyMsg carries a generated hint for one question.
type hintReadyMsg struct {
	questionID string
	hint       string
}
