package bank

import (
	"context"
	"errors"
	"testing"

	"github.com/mind-engage/qbank/internal/extract"
)

func put(t *testing.T, s Store, id, title string, created int64) {
	t.Helper()
	err := s.PutSet(context.Background(), Set{
		ID:    id,
		Title: title,
		Questions: []extract.Question{
			{Number: 1, Prompt: "q", Choices: []string{"a", "b"}, CorrectAnswers: []string{"A"}},
		},
		CreatedAt: created,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestMemoryStore_GetAndDelete(t *testing.T) {
	s := NewInMemoryStore()
	put(t, s, "a", "Alpha", 1)

	got, err := s.GetSet(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Alpha" || len(got.Questions) != 1 {
		t.Errorf("got = %+v", got)
	}

	if _, err := s.GetSet(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get missing: err = %v, want ErrNotFound", err)
	}

	if err := s.DeleteSet(context.Background(), "a"); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteSet(context.Background(), "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_ListOrderFilterPage(t *testing.T) {
	s := NewInMemoryStore()
	put(t, s, "old", "AWS Associate", 10)
	put(t, s, "new", "AWS Professional", 30)
	put(t, s, "mid", "Azure Fundamentals", 20)

	list, err := s.ListSets(context.Background(), ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[0].ID != "new" || list[2].ID != "old" {
		t.Errorf("order = %v", ids(list))
	}

	list, _ = s.ListSets(context.Background(), ListOpts{Q: "aws"})
	if len(list) != 2 {
		t.Errorf("filter aws: got %v", ids(list))
	}

	list, _ = s.ListSets(context.Background(), ListOpts{Limit: 1, Offset: 1})
	if len(list) != 1 || list[0].ID != "mid" {
		t.Errorf("page limit=1 offset=1: got %v", ids(list))
	}

	list, _ = s.ListSets(context.Background(), ListOpts{Offset: 99})
	if len(list) != 0 {
		t.Errorf("offset past end: got %v", ids(list))
	}

	// Negative offset clamps to 0, matching the SQL store.
	list, _ = s.ListSets(context.Background(), ListOpts{Offset: -1})
	if len(list) != 3 {
		t.Errorf("negative offset: got %v", ids(list))
	}
}

func ids(list []SetSummary) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.ID
	}
	return out
}
