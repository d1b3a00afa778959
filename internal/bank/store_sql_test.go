package bank_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mind-engage/qbank/internal/bank"
	"github.com/mind-engage/qbank/internal/db"
	"github.com/mind-engage/qbank/internal/extract"
	"github.com/mind-engage/qbank/internal/pdftext"
)

func openStore(t *testing.T) *bank.SQLStore {
	t.Helper()
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { dbh.Close() })
	return bank.NewSQLStore(dbh, "sqlite")
}

func TestSQLStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	set := bank.Set{
		ID:     "s1",
		Title:  "SAP EWM Practice",
		Source: "https://cdn.example.com/C_S4EWM_2020.pdf",
		Questions: []extract.Question{
			{Number: 1, Prompt: "What moves stock?", Choices: []string{"Warehouse task", "Wave"}, CorrectAnswers: []string{"A"}},
			{Number: 2, Prompt: "Pick two.", Choices: []string{"x", "y", "z"}, CorrectAnswers: []string{"B", "C"}},
		},
		Quality:   &pdftext.Quality{PageCount: 12, CharsPerPage: 840, PrintableRatio: 0.98},
		CreatedAt: 1700000000,
	}
	if err := store.PutSet(ctx, set); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetSet(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != set.Title || got.Source != set.Source || got.CreatedAt != set.CreatedAt {
		t.Errorf("got = %+v", got)
	}
	if len(got.Questions) != 2 || got.Questions[1].CorrectAnswers[1] != "C" {
		t.Errorf("questions = %+v", got.Questions)
	}
	if got.Quality == nil || got.Quality.PageCount != 12 {
		t.Errorf("quality = %+v", got.Quality)
	}

	// Upsert replaces the payload under the same id.
	set.Title = "SAP EWM Practice v2"
	set.Questions = set.Questions[:1]
	if err := store.PutSet(ctx, set); err != nil {
		t.Fatal(err)
	}
	got, _ = store.GetSet(ctx, "s1")
	if got.Title != "SAP EWM Practice v2" || len(got.Questions) != 1 {
		t.Errorf("after upsert: %+v", got)
	}
}

func TestSQLStore_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	for _, s := range []bank.Set{
		{ID: "a", Title: "AWS Associate", CreatedAt: 10},
		{ID: "b", Title: "AWS Professional", CreatedAt: 30},
		{ID: "c", Title: "Azure Fundamentals", CreatedAt: 20},
	} {
		if err := store.PutSet(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	list, err := store.ListSets(ctx, bank.ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[0].ID != "b" || list[2].ID != "a" {
		t.Errorf("order: %+v", list)
	}

	list, _ = store.ListSets(ctx, bank.ListOpts{Q: "AWS"})
	if len(list) != 2 {
		t.Errorf("filter: %+v", list)
	}

	list, _ = store.ListSets(ctx, bank.ListOpts{Limit: 1, Offset: 1})
	if len(list) != 1 || list[0].ID != "c" {
		t.Errorf("page: %+v", list)
	}

	if err := store.DeleteSet(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetSet(ctx, "a"); !errors.Is(err, bank.ErrNotFound) {
		t.Errorf("get deleted: %v", err)
	}
	if err := store.DeleteSet(ctx, "a"); !errors.Is(err, bank.ErrNotFound) {
		t.Errorf("delete missing: %v", err)
	}
}
