package registry

import (
	"context"
	"testing"
)

type stubBackend struct{ id string }

func (b stubBackend) ID() string                          { return b.id }
func (b stubBackend) Title() string                       { return "Stub " + b.id }
func (b stubBackend) Run(context.Context, *Session) error { return nil }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-b", func() Backend { return stubBackend{"stub-b"} })
	Register("stub-a", func() Backend { return stubBackend{"stub-a"} })

	if !Exists("stub-a") {
		t.Fatal("stub-a should exist")
	}
	if Exists("nope") {
		t.Error("nope should not exist")
	}

	b, err := Create("stub-b")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if b.ID() != "stub-b" {
		t.Errorf("ID() = %q, expected stub-b", b.ID())
	}

	if _, err := Create("nope"); err == nil {
		t.Error("Create(nope) should fail")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.ID == "stub-a" && info.Title != "Stub stub-a" {
			t.Errorf("title = %q", info.Title)
		}
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List() not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Backend { return stubBackend{"stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("stub-dup", func() Backend { return stubBackend{"stub-dup"} })
}
