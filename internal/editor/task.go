package editor

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/amonks/hypertask/internal/args"
	internalstrings "github.com/amonks/hypertask/internal/strings"
	"github.com/amonks/hypertask/task"
)

// TaskData represents the data used to render the TOML template.
type TaskData struct {
	ID          string
	Description string
	Due         string
	Wait        string
	Snooze      string
	Recur       string
	Blocked     string
	Tags        []string
}

// DataFromTask creates TaskData from an existing task for editing.
func DataFromTask(t task.Task) TaskData {
	data := TaskData{
		ID:     string(t.ID),
		Due:    formatTime(t.Due),
		Wait:   formatTime(t.Wait),
		Snooze: formatTime(t.Snooze),
		Tags:   t.Tags.Sorted(),
	}
	if t.Description != nil {
		data.Description = *t.Description
	}
	if t.Recur != nil {
		data.Recur = t.Recur.String()
	}
	if t.Blocked != nil {
		data.Blocked = string(*t.Blocked)
	}
	return data
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

var taskTemplate = template.Must(template.New("task").Parse(`# task {{ .ID }}
due = {{ printf "%q" .Due }} # RFC 3339, 2006-01-02, or relative like 3d
wait = {{ printf "%q" .Wait }}
snooze = {{ printf "%q" .Snooze }}
recur = {{ printf "%q" .Recur }} # <n><d|w|m|y>
blocked = {{ printf "%q" .Blocked }} # id of the blocking task
tags = [{{ range $i, $tag := .Tags }}{{ if $i }}, {{ end }}{{ printf "%q" $tag }}{{ end }}]
---
{{ .Description }}
`))

// RenderTaskTOML renders the task data as a TOML string for editing.
func RenderTaskTOML(data TaskData) (string, error) {
	var buf bytes.Buffer
	if err := taskTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask represents the parsed result from the TOML editor output.
type ParsedTask struct {
	Due         string   `toml:"due"`
	Wait        string   `toml:"wait"`
	Snooze      string   `toml:"snooze"`
	Recur       string   `toml:"recur"`
	Blocked     string   `toml:"blocked"`
	Tags        []string `toml:"tags"`
	Description string
}

// ParseTaskTOML parses the TOML content from the editor.
func ParseTaskTOML(content string) (*ParsedTask, error) {
	frontmatter, body := splitFrontmatter(internalstrings.NormalizeNewlines(content))

	var parsed ParsedTask
	meta, err := toml.Decode(frontmatter, &parsed)
	if err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse TOML: %w: %q", args.ErrUnknownKey, undecoded[0].String())
	}
	parsed.Description = strings.TrimSpace(body)
	return &parsed, nil
}

// Mutations diffs the parsed fields against existing and returns the
// mutations that turn one into the other. Tags are diffed; every
// property is set explicitly.
func (p *ParsedTask) Mutations(existing task.Task, now time.Time) ([]task.Mutation, error) {
	values := []struct {
		key   args.Key
		value string
	}{
		{args.KeyDescription, p.Description},
		{args.KeyDue, p.Due},
		{args.KeyWait, p.Wait},
		{args.KeySnooze, p.Snooze},
		{args.KeyRecur, p.Recur},
		{args.KeyBlocked, p.Blocked},
	}

	mutations := make([]task.Mutation, 0, len(values)+len(p.Tags))
	for _, v := range values {
		prop, err := args.ParseProp(v.key, v.value, now)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.key, err)
		}
		mutations = append(mutations, task.SetProp{Prop: prop})
	}

	wanted := make([]string, 0, len(p.Tags))
	for _, name := range p.Tags {
		name = strings.TrimSpace(strings.TrimPrefix(name, "+"))
		if name == "" {
			continue
		}
		if strings.ContainsAny(name, " \t\n") {
			return nil, fmt.Errorf("%w: %q", task.ErrInvalidTag, name)
		}
		wanted = append(wanted, name)
	}
	for _, name := range existing.Tags.Sorted() {
		if !slices.Contains(wanted, name) {
			mutations = append(mutations, task.SetTag{Tag: task.MinusTag(name)})
		}
	}
	for _, name := range wanted {
		if !existing.Tags.Has(name) {
			mutations = append(mutations, task.SetTag{Tag: task.PlusTag(name)})
		}
	}
	return mutations, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

func createTaskTempFile() (*os.File, error) {
	return os.CreateTemp("", "ht-task-*.toml")
}

// EditTask opens command on a file pre-populated with t and returns the
// parsed result.
func EditTask(t task.Task, command string) (*ParsedTask, error) {
	content, err := RenderTaskTOML(DataFromTask(t))
	if err != nil {
		return nil, err
	}

	tmpfile, err := createTaskTempFile()
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Open(command, tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTaskTOML(string(edited))
}
