package schedule

import (
	"testing"

	"timeboxer/internal/model"
)

func TestMerge(t *testing.T) {
	t.Run("existing first, imported after, order untouched", func(t *testing.T) {
		existing := []model.Task{
			{ID: "a", OrderID: 1, Name: "A"},
			{ID: "b", OrderID: 2, Name: "B"},
		}
		imported := []model.Task{
			{ID: "c", OrderID: 1, Name: "C"},
			{ID: "d", OrderID: 2, Name: "D"},
		}

		merged := Merge(existing, imported)

		wantIDs := []string{"a", "b", "c", "d"}
		if len(merged) != len(wantIDs) {
			t.Fatalf("merged length = %d, want %d", len(merged), len(wantIDs))
		}
		for i, id := range wantIDs {
			if merged[i].ID != id {
				t.Errorf("merged[%d].ID = %q, want %q", i, merged[i].ID, id)
			}
		}
	})

	t.Run("order ids are not deduplicated across inputs", func(t *testing.T) {
		existing := []model.Task{{ID: "a", OrderID: 1}}
		imported := []model.Task{{ID: "b", OrderID: 1}}
		merged := Merge(existing, imported)
		if merged[0].OrderID != 1 || merged[1].OrderID != 1 {
			t.Errorf("cross-input order ids changed: %d, %d", merged[0].OrderID, merged[1].OrderID)
		}
	})

	t.Run("does not alias its inputs", func(t *testing.T) {
		existing := []model.Task{{ID: "a"}}
		merged := Merge(existing, nil)
		merged[0].Name = "changed"
		if existing[0].Name == "changed" {
			t.Error("merge result shares backing array with input")
		}
	})

	t.Run("nil inputs", func(t *testing.T) {
		if got := Merge(nil, nil); len(got) != 0 {
			t.Errorf("Merge(nil, nil) length = %d, want 0", len(got))
		}
	})
}
