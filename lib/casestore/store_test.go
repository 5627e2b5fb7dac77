package casestore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"umbodsmadur-scraper/lib/casestore/db"
	"umbodsmadur-scraper/lib/telemetry"

	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) Store {
	sqlite, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sqlite.Close() })

	_, err = sqlite.Exec(db.Schema)
	if err != nil {
		t.Fatal(err)
	}
	return NewStore(sqlite)
}

func TestStore(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:casestore")
	defer cleanup()

	store := newTestStore(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		_, ok, err := store.Get(ctx, "F143")
		if err != nil {
			t.Fatal(err)
		}
		require.False(t, ok)
	}

	year := 2023
	first := Case{
		CaseNumber:  "F143",
		Year:        &year,
		Title:       "Álit UA F143/2023",
		Type:        "Álit",
		OriginalUrl: "https://www.umbodsmadur.is/alit-og-bref/mal/nr/11110/skoda/mal/",
		Abstract:    "Kvartað var yfir töfum á afgreiðslu.",
		Content: []Paragraph{
			{Index: 0, ParagraphText: "Fyrsta málsgrein."},
			{Index: 1, ParagraphText: "Önnur málsgrein."},
		},
		FullText: "Álit UA F143/2023\n\nKvartað var yfir töfum á afgreiðslu.",
	}
	second := Case{
		CaseNumber: "12345",
		Title:      "Bréf UA 12345/2022",
		Type:       "Bréf",
		Content:    []Paragraph{},
	}

	err := store.Upsert(ctx, []Case{first, second})
	if err != nil {
		t.Fatal(err)
	}

	got, ok, err := store.Get(ctx, "F143")
	if err != nil {
		t.Fatal(err)
	}
	require.True(t, ok)
	if diff := cmp.Diff(first, got); diff != "" {
		t.Fatal(diff)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.EqualValues(t, 2, count)
}

func TestStoreUpsertOverwrites(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:casestore")
	defer cleanup()

	store := newTestStore(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	original := Case{
		CaseNumber: "F143",
		Title:      "Álit UA F143/2023",
		Type:       "Álit",
		Content:    []Paragraph{},
	}
	err := store.Upsert(ctx, []Case{original})
	if err != nil {
		t.Fatal(err)
	}

	year := 2023
	updated := original
	updated.Year = &year
	updated.Abstract = "Uppfærð reifun."
	err = store.Upsert(ctx, []Case{updated})
	if err != nil {
		t.Fatal(err)
	}

	// the second write wins, there is still exactly one stored row
	count, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.EqualValues(t, 1, count)

	got, ok, err := store.Get(ctx, "F143")
	if err != nil {
		t.Fatal(err)
	}
	require.True(t, ok)
	require.Equal(t, "Uppfærð reifun.", got.Abstract)
	require.NotNil(t, got.Year)
	require.Equal(t, 2023, *got.Year)
}
