package editor

import (
	"errors"
	"sync"
	"time"

	"matrixdesk/internal/api"
)

// SubmitTimeout is how long a submission may go unanswered before the user
// is warned. The request itself is not cancelled.
const SubmitTimeout = 2000 * time.Millisecond

// FadeDelay is the pause between a successful submission and leaving the
// input screen.
const FadeDelay = 300 * time.Millisecond

// Phase is where a submission stands.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseValidationFailed
	PhaseCollecting
	PhaseCollectionFailed
	PhaseSending
	PhaseTimedOut
	PhaseSucceeded
	PhaseNavigating
	PhaseFailed
)

var phaseNames = map[Phase]string{
	PhaseIdle:             "idle",
	PhaseValidating:       "validating",
	PhaseValidationFailed: "validation failed",
	PhaseCollecting:       "collecting",
	PhaseCollectionFailed: "collection failed",
	PhaseSending:          "sending",
	PhaseTimedOut:         "timed out",
	PhaseSucceeded:        "succeeded",
	PhaseNavigating:       "navigating",
	PhaseFailed:           "failed",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// Outcome is a terminal result of one exchange.
type Outcome int

const (
	OutcomeSucceeded Outcome = iota
	OutcomeFailed
	OutcomeTimedOut
)

// Phase maps the outcome to the phase it leaves the submission in.
func (o Outcome) Phase() Phase {
	switch o {
	case OutcomeSucceeded:
		return PhaseSucceeded
	case OutcomeTimedOut:
		return PhaseTimedOut
	default:
		return PhaseFailed
	}
}

// TimeoutWarning is shown when SubmitTimeout passes without an answer.
const TimeoutWarning = "The service has not answered yet; the submission may still complete"

// Classify turns a Submit result into its outcome and the alert text the
// user sees for it.
func Classify(resp api.Response, err error) (Outcome, string) {
	if err == nil {
		msg := resp.Message
		if msg == "" {
			msg = "Matrix saved"
		}
		return OutcomeSucceeded, msg
	}
	var se *api.ServiceError
	if errors.As(err, &se) {
		return OutcomeFailed, "Submit failed: " + se.Error()
	}
	var ne *api.NetworkError
	if errors.As(err, &ne) {
		return OutcomeFailed, "Network error: " + ne.Err.Error()
	}
	return OutcomeFailed, "Network error: " + err.Error()
}

// completionPaths is the number of callbacks every exchange eventually
// receives: the timer and the network answer.
const completionPaths = 2

type exchange struct {
	resolved bool
	outcome  Outcome
	arrived  int
}

// Tracker guards the user-visible outcome of submissions. Each exchange
// shows at most one terminal outcome no matter how many completion paths
// report back.
type Tracker struct {
	mu        sync.Mutex
	next      int
	exchanges map[int]*exchange
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{exchanges: make(map[int]*exchange)}
}

// Begin opens an exchange and returns its sequence number.
func (t *Tracker) Begin() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.exchanges[t.next] = &exchange{}
	return t.next
}

// Resolve records o for exchange seq and reports whether it is the first
// terminal outcome, which is the only one the user should see. It also
// counts as one arrival.
func (t *Tracker) Resolve(seq int, o Outcome) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	x, ok := t.exchanges[seq]
	if !ok {
		return false
	}
	first := !x.resolved
	if first {
		x.resolved = true
		x.outcome = o
	}
	t.arriveLocked(seq, x)
	return first
}

// Outcome returns the shown outcome of seq, if it is still tracked and
// resolved.
func (t *Tracker) Outcome(seq int) (Outcome, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	x, ok := t.exchanges[seq]
	if !ok || !x.resolved {
		return 0, false
	}
	return x.outcome, true
}

// Pending returns the number of exchanges still waiting on a path.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.exchanges)
}

func (t *Tracker) arriveLocked(seq int, x *exchange) {
	x.arrived++
	if x.arrived >= completionPaths {
		delete(t.exchanges, seq)
	}
}
