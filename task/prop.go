package task

import (
	"fmt"
	"time"
)

// Prop is a settable task field.
//
// The set of props is closed. Consumers handle props through VisitProp, so a
// new prop fails to compile until every PropVisitor implements it.
type Prop interface {
	prop()
}

// Description replaces the task description.
type Description string

// Blocked sets or clears (nil) the ID of the task this one waits on.
type Blocked struct{ ID *ID }

// Done marks the task completed at At, or reschedules a recurring task.
type Done struct{ At time.Time }

// Due sets or clears the due date.
type Due struct{ At *time.Time }

// Recur sets or clears the recurrence rule.
type Recur struct{ Rule *Recurrence }

// Snooze hides the task until the given time, or clears the snooze.
type Snooze struct{ Until *time.Time }

// Wait hides the task until the given time, or clears the wait.
type Wait struct{ Until *time.Time }

func (Description) prop() {}
func (Blocked) prop()     {}
func (Done) prop()        {}
func (Due) prop()         {}
func (Recur) prop()       {}
func (Snooze) prop()      {}
func (Wait) prop()        {}

// PropVisitor handles each kind of Prop.
type PropVisitor interface {
	Description(Description)
	Blocked(Blocked)
	Done(Done)
	Due(Due)
	Recur(Recur)
	Snooze(Snooze)
	Wait(Wait)
}

// VisitProp dispatches p to the matching visitor method.
func VisitProp(p Prop, v PropVisitor) {
	switch p := p.(type) {
	case Description:
		v.Description(p)
	case Blocked:
		v.Blocked(p)
	case Done:
		v.Done(p)
	case Due:
		v.Due(p)
	case Recur:
		v.Recur(p)
	case Snooze:
		v.Snooze(p)
	case Wait:
		v.Wait(p)
	default:
		panic(fmt.Sprintf("task: unknown prop %T", p))
	}
}
