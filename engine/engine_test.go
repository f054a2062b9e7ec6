package engine

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/amonks/hypertask/task"
)

var t0 = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

type memoryWriter struct {
	put  []task.Task
	fail map[task.ID]error
}

func (w *memoryWriter) Put(t task.Task) error {
	if err := w.fail[t.ID]; err != nil {
		return err
	}
	w.put = append(w.put, t)
	return nil
}

type memoryRemover struct {
	removed []task.ID
	fail    map[task.ID]error
}

func (r *memoryRemover) Remove(id task.ID) error {
	if err := r.fail[id]; err != nil {
		return err
	}
	r.removed = append(r.removed, id)
	return nil
}

type loadResult struct {
	task task.Task
	err  error
}

func sequence(results ...loadResult) Tasks {
	return func(yield func(task.Task, error) bool) {
		for _, r := range results {
			if !yield(r.task, r.err) {
				return
			}
		}
	}
}

func stored(id task.ID, tags ...string) loadResult {
	return loadResult{task: task.Task{ID: id, CreatedAt: t0, UpdatedAt: t0, Tags: task.NewTags(tags...)}}
}

func newEngine(w *memoryWriter, r *memoryRemover) Engine {
	return Engine{
		Clock:   task.ClockFunc(func() time.Time { return t0 }),
		IDs:     task.IDSourceFunc(func() task.ID { return "abcdefghkmnpqrst" }),
		Writer:  w,
		Remover: r,
	}
}

func ids(tasks []task.Task) []task.ID {
	out := make([]task.ID, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestCreate(t *testing.T) {
	w := &memoryWriter{}
	e := newEngine(w, nil)

	got, err := e.Run(Create{Mutations: []task.Mutation{
		task.SetProp{Prop: task.Description("buy milk")},
	}}, sequence(loadResult{err: errors.New("ignored")}))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected one task, got %d", len(got))
	}
	created := got[0]
	if len(created.ID) != task.IDLength {
		t.Errorf("expected %d-character ID, got %q", task.IDLength, created.ID)
	}
	if !created.CreatedAt.Equal(t0) || !created.UpdatedAt.Equal(t0) {
		t.Errorf("expected timestamps %v, got %v / %v", t0, created.CreatedAt, created.UpdatedAt)
	}
	if created.Description == nil || *created.Description != "buy milk" {
		t.Errorf("expected description, got %v", created.Description)
	}
	if len(created.Tags) != 0 {
		t.Errorf("expected no tags, got %v", created.Tags)
	}
	if score := created.Finalise(t0).Score; score != 0 {
		t.Errorf("expected score 0, got %d", score)
	}
	if len(w.put) != 1 || w.put[0].ID != created.ID {
		t.Errorf("expected created task to be persisted, got %v", ids(w.put))
	}
}

func TestCreate_ReadsClockOnce(t *testing.T) {
	w := &memoryWriter{}
	e := newEngine(w, nil)
	tick := t0
	e.Clock = task.ClockFunc(func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	})

	got, err := e.Run(Create{Mutations: []task.Mutation{
		task.SetProp{Prop: task.Description("buy milk")},
	}}, sequence())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	created := got[0]
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("expected created_at == updated_at, got %v / %v", created.CreatedAt, created.UpdatedAt)
	}
	if !created.CreatedAt.Equal(t0.Add(time.Second)) {
		t.Fatalf("expected a single clock read, got %v", created.CreatedAt)
	}
}

func TestCreate_PersistFailure(t *testing.T) {
	w := &memoryWriter{fail: map[task.ID]error{"abcdefghkmnpqrst": errors.New("disk full")}}
	e := newEngine(w, nil)

	_, err := e.Run(Create{}, sequence())

	var taskErr *TaskError
	if !errors.As(err, &taskErr) || taskErr.ID != "abcdefghkmnpqrst" {
		t.Fatalf("expected TaskError for new task, got %v", err)
	}
}

func TestCreate_MissingWriter(t *testing.T) {
	e := newEngine(nil, nil)
	e.Writer = nil

	if _, err := e.Run(Create{}, sequence()); !errors.Is(err, ErrMissingWriter) {
		t.Fatalf("expected ErrMissingWriter, got %v", err)
	}
}

func TestRead(t *testing.T) {
	e := newEngine(&memoryWriter{}, nil)
	tasks := sequence(stored("aaaa", "home"), stored("bbbb"), stored("cccc", "home", "work"))

	got, err := e.Run(Read{Queries: []task.Query{task.ByTag{Tag: task.PlusTag("home")}}}, tasks)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if strings.Join(idStrings(got), ",") != "aaaa,cccc" {
		t.Fatalf("expected aaaa,cccc in scan order, got %v", ids(got))
	}
}

func TestRead_EmptyQueriesMatchNothing(t *testing.T) {
	e := newEngine(&memoryWriter{}, nil)

	got, err := e.Run(Read{}, sequence(stored("aaaa"), stored("bbbb")))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no tasks, got %v", ids(got))
	}
}

func TestRead_LoadFailureAborts(t *testing.T) {
	e := newEngine(&memoryWriter{}, nil)
	loadErr := errors.New("bad json")
	tasks := sequence(stored("aaaa"), loadResult{err: loadErr}, stored("bbbb"))

	got, err := e.Run(Read{Queries: []task.Query{task.ByID{ID: "aaaa"}}}, tasks)
	if !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no results, got %v", ids(got))
	}
}

func TestList(t *testing.T) {
	e := newEngine(&memoryWriter{}, nil)

	got, err := e.Run(List{}, sequence(stored("aaaa"), stored("bbbb")))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two tasks, got %v", ids(got))
	}
}

func TestUpdate(t *testing.T) {
	w := &memoryWriter{}
	e := newEngine(w, nil)
	tasks := sequence(stored("aaaa", "home"), stored("bbbb"))

	got, err := e.Run(Update{
		Queries:   []task.Query{task.ByTag{Tag: task.PlusTag("home")}},
		Mutations: []task.Mutation{task.SetTag{Tag: task.PlusTag("urgent")}},
	}, tasks)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if len(got) != 1 || got[0].ID != "aaaa" || !got[0].Tags.Has("urgent") {
		t.Fatalf("expected aaaa to gain urgent, got %+v", got)
	}
	if len(w.put) != 1 || w.put[0].ID != "aaaa" {
		t.Fatalf("expected aaaa to be persisted, got %v", ids(w.put))
	}
}

func TestUpdate_ContinuesPastPersistFailure(t *testing.T) {
	persistErr := errors.New("read-only file")
	w := &memoryWriter{fail: map[task.ID]error{"aaaa": persistErr}}
	e := newEngine(w, nil)
	tasks := sequence(stored("aaaa", "x"), stored("bbbb", "x"))

	got, err := e.Run(Update{
		Queries:   []task.Query{task.ByTag{Tag: task.PlusTag("x")}},
		Mutations: []task.Mutation{task.SetProp{Prop: task.Description("edited")}},
	}, tasks)

	if !errors.Is(err, persistErr) {
		t.Fatalf("expected persist error, got %v", err)
	}
	var taskErr *TaskError
	if !errors.As(err, &taskErr) || taskErr.ID != "aaaa" || taskErr.Op != "update" {
		t.Fatalf("expected TaskError for aaaa, got %v", err)
	}
	if len(got) != 1 || got[0].ID != "bbbb" {
		t.Fatalf("expected bbbb to be updated, got %v", ids(got))
	}
}

func TestUpdate_LoadFailureWritesNothing(t *testing.T) {
	w := &memoryWriter{}
	e := newEngine(w, nil)
	tasks := sequence(stored("aaaa", "x"), loadResult{err: errors.New("truncated")})

	if _, err := e.Run(Update{
		Queries:   []task.Query{task.ByTag{Tag: task.PlusTag("x")}},
		Mutations: []task.Mutation{task.SetTag{Tag: task.PlusTag("y")}},
	}, tasks); err == nil {
		t.Fatal("expected load error")
	}
	if len(w.put) != 0 {
		t.Fatalf("expected nothing to be written, got %v", ids(w.put))
	}
}

func TestDelete(t *testing.T) {
	r := &memoryRemover{}
	e := newEngine(&memoryWriter{}, r)

	got, err := e.Run(Delete{Queries: []task.Query{task.ByID{ID: "bbb"}}}, sequence(stored("aaaa"), stored("bbbb")))
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "bbbb" {
		t.Fatalf("expected bbbb to be deleted, got %v", ids(got))
	}
	if len(r.removed) != 1 || r.removed[0] != "bbbb" {
		t.Fatalf("expected remover to see bbbb, got %v", r.removed)
	}
}

func TestDelete_ReportsPerTaskFailure(t *testing.T) {
	r := &memoryRemover{fail: map[task.ID]error{"aaaa": errors.New("busy")}}
	e := newEngine(&memoryWriter{}, r)

	got, err := e.Run(Delete{Queries: []task.Query{task.ByTag{Tag: task.MinusTag("keep")}}}, sequence(stored("aaaa"), stored("bbbb")))

	var taskErr *TaskError
	if !errors.As(err, &taskErr) || taskErr.ID != "aaaa" {
		t.Fatalf("expected TaskError for aaaa, got %v", err)
	}
	if len(got) != 1 || got[0].ID != "bbbb" {
		t.Fatalf("expected bbbb to be deleted, got %v", ids(got))
	}
}

func TestDelete_MissingRemover(t *testing.T) {
	e := newEngine(&memoryWriter{}, nil)
	e.Remover = nil

	if _, err := e.Run(Delete{}, sequence()); !errors.Is(err, ErrMissingRemover) {
		t.Fatalf("expected ErrMissingRemover, got %v", err)
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		verb Verb
		name string
	}{
		{Create{}, "create"},
		{Read{}, "read"},
		{Update{}, "update"},
		{Delete{}, "delete"},
		{List{}, "list"},
	}

	for _, tt := range tests {
		if got := Name(tt.verb); got != tt.name {
			t.Errorf("Name(%T) = %q, want %q", tt.verb, got, tt.name)
		}
	}
}

func idStrings(tasks []task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, string(t.ID))
	}
	return out
}
