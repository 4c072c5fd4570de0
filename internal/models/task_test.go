package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestTaskValidate(t *testing.T) {
	task := &Task{Title: "Buy milk"}
	if err := task.Validate(); err != nil {
		t.Errorf("expected valid task, got %v", err)
	}
}

func TestTaskValidate_MissingTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		task := &Task{Title: title}
		err := task.Validate()
		if !errors.Is(err, ErrTitleRequired) {
			t.Errorf("title %q: expected ErrTitleRequired, got %v", title, err)
		}
	}
}

func TestTaskJSONShape(t *testing.T) {
	task := Task{ID: "42", Title: "Buy milk"}

	encoded, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(encoded, &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	// Wire contract: exactly one id field, of type string.
	id, ok := m["id"].(string)
	if !ok {
		t.Fatalf("expected string id field, got %T", m["id"])
	}
	if id != "42" {
		t.Errorf("expected id %q, got %q", "42", id)
	}
	for _, key := range []string{"title", "description", "complete", "createdAt", "updatedAt"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected %q field in JSON output", key)
		}
	}
}
