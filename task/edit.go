package task

import "fmt"

// Query is a filter criterion. A list of queries is OR-combined; see
// Task.SatisfiesQueries.
type Query interface {
	query()
}

// ByID matches tasks whose ID contains, or is contained in, ID.
type ByID struct{ ID ID }

// ByTag matches on the presence (Plus) or absence (Minus) of a tag.
type ByTag struct{ Tag Tag }

func (ByID) query()  {}
func (ByTag) query() {}

// QueryVisitor handles each kind of Query.
type QueryVisitor[T any] interface {
	ByID(ByID) T
	ByTag(ByTag) T
}

// VisitQuery dispatches q to the matching visitor method.
func VisitQuery[T any](q Query, v QueryVisitor[T]) T {
	switch q := q.(type) {
	case ByID:
		return v.ByID(q)
	case ByTag:
		return v.ByTag(q)
	default:
		panic(fmt.Sprintf("task: unknown query %T", q))
	}
}

// Mutation is an edit instruction.
type Mutation interface {
	mutation()
}

// SetProp overwrites a property.
type SetProp struct{ Prop Prop }

// SetTag adds (Plus) or removes (Minus) a tag.
type SetTag struct{ Tag Tag }

func (SetProp) mutation() {}
func (SetTag) mutation()  {}

// MutationVisitor handles each kind of Mutation.
type MutationVisitor interface {
	SetProp(SetProp)
	SetTag(SetTag)
}

// VisitMutation dispatches m to the matching visitor method.
func VisitMutation(m Mutation, v MutationVisitor) {
	switch m := m.(type) {
	case SetProp:
		v.SetProp(m)
	case SetTag:
		v.SetTag(m)
	default:
		panic(fmt.Sprintf("task: unknown mutation %T", m))
	}
}
