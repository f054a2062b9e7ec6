// Package task implements the hypertask decision core.
//
// A Task carries scheduling properties and tags. Queries select tasks,
// mutations edit them, and Score ranks them:
//   - Generate creates a task from a clock and an ID source
//   - SatisfiesQueries filters
//   - ApplyMutation and ApplyMutations edit in place
//   - Score and Finalise rank
package task

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Task is a single actionable record. Optional fields are nil when unset and
// are omitted from the JSON encoding.
type Task struct {
	CreatedAt   time.Time   `json:"created_at"`
	Blocked     *ID         `json:"blocked,omitempty"`
	Description *string     `json:"description,omitempty"`
	Done        *time.Time  `json:"done,omitempty"`
	Due         *time.Time  `json:"due,omitempty"`
	ID          ID          `json:"id"`
	Recur       *Recurrence `json:"recur,omitempty"`
	Snooze      *time.Time  `json:"snooze,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Wait        *time.Time  `json:"wait,omitempty"`
	Tags        Tags        `json:"tags,omitempty"`
}

// Generate returns a new task stamped with the clock's time.
func Generate(clock Clock, ids IDSource) Task {
	now := clock.Now()
	return Task{
		ID:        ids.NewID(),
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      Tags{},
	}
}

// SatisfiesQueries reports whether the task passes the OR-combined queries.
//
// Queries are scanned in order. A matching ID or Plus tag includes the task
// immediately; a Minus tag the task carries excludes it immediately. A Minus
// tag the task lacks makes the task included by default, unless a later query
// decides otherwise. An empty list matches nothing.
func (t *Task) SatisfiesQueries(queries []Query) bool {
	matcher := queryMatcher{task: t}
	included := false
	for _, q := range queries {
		switch VisitQuery[verdict](q, matcher) {
		case verdictInclude:
			return true
		case verdictExclude:
			return false
		case verdictDefault:
			included = true
		}
	}
	return included
}

type verdict int

const (
	verdictSkip verdict = iota
	verdictInclude
	verdictExclude
	verdictDefault
)

type queryMatcher struct {
	task *Task
}

func (m queryMatcher) ByID(q ByID) verdict {
	if q.ID.Matches(m.task.ID) {
		return verdictInclude
	}
	return verdictSkip
}

func (m queryMatcher) ByTag(q ByTag) verdict {
	has := m.task.Tags.Has(q.Tag.Name)
	switch {
	case q.Tag.Sign == Plus && has:
		return verdictInclude
	case q.Tag.Sign == Minus && has:
		return verdictExclude
	case q.Tag.Sign == Minus:
		return verdictDefault
	default:
		return verdictSkip
	}
}

// ApplyMutations applies each mutation in order with the same now.
func (t *Task) ApplyMutations(mutations []Mutation, now time.Time) {
	for _, m := range mutations {
		t.ApplyMutation(m, now)
	}
}

// ApplyMutation edits the task in place and stamps UpdatedAt with now, even
// when the mutation leaves the task unchanged.
func (t *Task) ApplyMutation(m Mutation, now time.Time) {
	VisitMutation(m, mutationApplier{task: t})
	t.UpdatedAt = now
}

type mutationApplier struct {
	task *Task
}

func (a mutationApplier) SetTag(m SetTag) {
	if a.task.Tags == nil {
		a.task.Tags = Tags{}
	}
	switch m.Tag.Sign {
	case Plus:
		a.task.Tags[m.Tag.Name] = struct{}{}
	case Minus:
		delete(a.task.Tags, m.Tag.Name)
	}
}

func (a mutationApplier) SetProp(m SetProp) {
	VisitProp(m.Prop, a)
}

func (a mutationApplier) Description(p Description) {
	description := string(p)
	a.task.Description = &description
}

func (a mutationApplier) Blocked(p Blocked) {
	a.task.Blocked = p.ID
}

// Done completes the task, unless it recurs: then due and wait (when set)
// move forward by the rule's offset and done stays unset.
func (a mutationApplier) Done(p Done) {
	if a.task.Recur == nil {
		done := p.At
		a.task.Done = &done
		return
	}

	offset := a.task.Recur.Offset()
	if a.task.Due != nil {
		due := a.task.Due.Add(offset)
		a.task.Due = &due
	}
	if a.task.Wait != nil {
		wait := a.task.Wait.Add(offset)
		a.task.Wait = &wait
	}
}

func (a mutationApplier) Due(p Due) {
	a.task.Due = p.At
}

func (a mutationApplier) Recur(p Recur) {
	a.task.Recur = p.Rule
}

func (a mutationApplier) Snooze(p Snooze) {
	a.task.Snooze = p.Until
}

func (a mutationApplier) Wait(p Wait) {
	a.task.Wait = p.Until
}
