package core_test

import (
	"reflect"
	"testing"

	"statement-engine/internal/core"
)

func TestNotesFor(t *testing.T) {
	svc := core.NewNoteService()

	normal := svc.NotesFor(core.SystemNormal)
	if len(normal) != 10 {
		t.Errorf("normal system: expected 10 notes, got %d", len(normal))
	}
	minimal := svc.NotesFor(core.SystemMinimal)
	if len(minimal) != 8 {
		t.Errorf("minimal system: expected 8 notes, got %d", len(minimal))
	}

	for _, notes := range [][]core.AnnexNote{normal, minimal} {
		if notes[0].Title != core.NoteTitlePolicies {
			t.Errorf("first note must be %q, got %q", core.NoteTitlePolicies, notes[0].Title)
		}
		if last := notes[len(notes)-1]; last.Title != core.NoteTitleSubsequentEvents {
			t.Errorf("last note must be %q, got %q", core.NoteTitleSubsequentEvents, last.Title)
		}
		for i, n := range notes {
			if n.DisplayOrder != i+1 {
				t.Errorf("note %d has display order %d", i, n.DisplayOrder)
			}
			if n.Content == "" {
				t.Errorf("note %q has no content", n.Title)
			}
		}
	}

	t.Run("deterministic", func(t *testing.T) {
		if !reflect.DeepEqual(svc.NotesFor(core.SystemNormal), svc.NotesFor(core.SystemNormal)) {
			t.Error("note generation must be deterministic")
		}
	})
}
