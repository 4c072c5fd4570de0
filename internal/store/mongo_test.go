package store

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTaskDocNormalization(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := taskDoc{ID: oid, Title: "Buy milk", Complete: true}

	task := doc.toTask()

	if task.ID != oid.Hex() {
		t.Errorf("expected id %q, got %q", oid.Hex(), task.ID)
	}
	if task.Title != "Buy milk" {
		t.Errorf("expected title %q, got %q", "Buy milk", task.Title)
	}
	if !task.Complete {
		t.Error("expected task to be complete")
	}
}

func TestParseObjectID_Invalid(t *testing.T) {
	for _, id := range []string{"", "123", "not-hex", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := parseObjectID(id)
		if !errors.Is(err, ErrInvalidID) {
			t.Errorf("parseObjectID(%q): expected ErrInvalidID, got %v", id, err)
		}
	}
}

func TestParseObjectID_Valid(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := parseObjectID(oid.Hex())
	if err != nil {
		t.Fatalf("parseObjectID failed: %v", err)
	}
	if got != oid {
		t.Errorf("expected %v, got %v", oid, got)
	}
}
