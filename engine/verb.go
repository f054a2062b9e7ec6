package engine

import (
	"fmt"

	"github.com/amonks/hypertask/task"
)

// Verb is one engine operation.
//
// The set of verbs is closed: Engine.Run dispatches through VisitVerb, so a
// new verb fails to compile until every VerbVisitor handles it.
type Verb interface {
	verb()
}

// Create generates a new task and applies Mutations to it.
type Create struct {
	Mutations []task.Mutation
}

// Read returns the stored tasks satisfying Queries.
type Read struct {
	Queries []task.Query
}

// Update applies Mutations to every stored task satisfying Queries.
type Update struct {
	Queries   []task.Query
	Mutations []task.Mutation
}

// Delete removes every stored task satisfying Queries.
type Delete struct {
	Queries []task.Query
}

// List returns every stored task.
type List struct{}

func (Create) verb() {}
func (Read) verb()   {}
func (Update) verb() {}
func (Delete) verb() {}
func (List) verb()   {}

// VerbVisitor handles each kind of Verb.
type VerbVisitor interface {
	Create(Create) ([]task.Task, error)
	Read(Read) ([]task.Task, error)
	Update(Update) ([]task.Task, error)
	Delete(Delete) ([]task.Task, error)
	List(List) ([]task.Task, error)
}

// VisitVerb dispatches v to the matching visitor method.
func VisitVerb(v Verb, visitor VerbVisitor) ([]task.Task, error) {
	switch v := v.(type) {
	case Create:
		return visitor.Create(v)
	case Read:
		return visitor.Read(v)
	case Update:
		return visitor.Update(v)
	case Delete:
		return visitor.Delete(v)
	case List:
		return visitor.List(v)
	default:
		panic(fmt.Sprintf("engine: unknown verb %T", v))
	}
}

// Name returns the lowercase verb name for logs.
func Name(v Verb) string {
	switch v.(type) {
	case Create:
		return "create"
	case Read:
		return "read"
	case Update:
		return "update"
	case Delete:
		return "delete"
	case List:
		return "list"
	default:
		return "unknown"
	}
}
