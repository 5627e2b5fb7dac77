package umbodsmadur

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"umbodsmadur-scraper/lib/casestore"
	casestoredb "umbodsmadur-scraper/lib/casestore/db"
	"umbodsmadur-scraper/lib/telemetry"

	_ "modernc.org/sqlite"
)

// serves a valid case page for the given ids and 404 for every other id
func newCaseServer(t *testing.T, valid map[int]bool, requests *atomic.Int64) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}

		// /alit-og-bref/mal/nr/<id>/skoda/mal/
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		id, err := strconv.Atoi(parts[3])
		if err != nil {
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if !valid[id] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `
			<div class="page-header"><h1>Álit</h1></div>
			<section class="case">
				<h4>(Mál nr. F%d/2023)</h4>
				<div class="reifun"><p>Reifun máls %d.</p></div>
				<div class="alit"><p>Meginmál máls %d.</p></div>
			</section>
		`, id, id, id)
	}))
	t.Cleanup(server.Close)
	return server
}

func readArtifact(t *testing.T, path string) []Record {
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []Record
	require.NoError(t, json.Unmarshal(raw, &records))
	return records
}

func TestRunStopsAtTargetCount(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/umbodsmadur")
	defer cleanup()

	server := newCaseServer(t, map[int]bool{98: true, 96: true}, nil)
	scraper := newTestScraper(server.URL)

	output := filepath.Join(t.TempDir(), "output", "cases.json")
	sink := &Sink{OutputPath: output}

	ctx, cancelCtx := context.WithTimeout(context.Background(), time.Second*30)
	defer cancelCtx()

	scraper.Run(ctx, RunOptions{StartId: 100, TargetCount: 2}, sink)
	require.NoError(t, sink.Flush(2))

	records := readArtifact(t, output)
	require.Len(t, records, 2)

	var caseNumbers []string
	for _, r := range records {
		caseNumbers = append(caseNumbers, r.CaseNumber)
		require.Equal(t, "Álit", r.Type)
		require.NotNil(t, r.Year)
		require.Equal(t, 2023, *r.Year)
	}
	require.ElementsMatch(t, []string{"F98", "F96"}, caseNumbers)
}

func TestRunTruncatesOvershoot(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/umbodsmadur")
	defer cleanup()

	// every id resolves, so the first batch overshoots the target
	valid := map[int]bool{}
	for id := 0; id <= 60; id++ {
		valid[id] = true
	}
	server := newCaseServer(t, valid, nil)
	scraper := newTestScraper(server.URL)

	output := filepath.Join(t.TempDir(), "cases.json")
	sink := &Sink{OutputPath: output}

	ctx, cancelCtx := context.WithTimeout(context.Background(), time.Second*30)
	defer cancelCtx()

	scraper.Run(ctx, RunOptions{StartId: 60, TargetCount: 3}, sink)
	require.Equal(t, batchSize, sink.Len())

	require.NoError(t, sink.Flush(3))
	require.Len(t, readArtifact(t, output), 3)
}

func TestRunTerminatesWhenIdSpaceExhausted(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/umbodsmadur")
	defer cleanup()

	var requests atomic.Int64
	server := newCaseServer(t, nil, &requests)
	scraper := newTestScraper(server.URL)

	output := filepath.Join(t.TempDir(), "cases.json")
	sink := &Sink{OutputPath: output}

	ctx, cancelCtx := context.WithTimeout(context.Background(), time.Second*30)
	defer cancelCtx()

	scraper.Run(ctx, RunOptions{StartId: 120, TargetCount: 5}, sink)
	require.NoError(t, sink.Flush(5))

	// ids 120 through 0 each probed exactly once, then the scan stopped
	require.EqualValues(t, 121, requests.Load())
	require.Len(t, readArtifact(t, output), 0)
}

func TestRunTargetCountZero(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/umbodsmadur")
	defer cleanup()

	var requests atomic.Int64
	server := newCaseServer(t, nil, &requests)
	scraper := newTestScraper(server.URL)

	output := filepath.Join(t.TempDir(), "cases.json")
	sink := &Sink{OutputPath: output}

	scraper.Run(context.Background(), RunOptions{StartId: 100, TargetCount: 0}, sink)
	require.NoError(t, sink.Flush(0))

	require.EqualValues(t, 0, requests.Load())
	require.Len(t, readArtifact(t, output), 0)
}

func TestRunUpsertsIntoStore(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/umbodsmadur")
	defer cleanup()

	server := newCaseServer(t, map[int]bool{50: true}, nil)
	scraper := newTestScraper(server.URL)

	sqlite, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer sqlite.Close()
	_, err = sqlite.Exec(casestoredb.Schema)
	require.NoError(t, err)
	store := casestore.NewStore(sqlite)

	output := filepath.Join(t.TempDir(), "cases.json")
	sink := &Sink{OutputPath: output, Store: &store}

	ctx, cancelCtx := context.WithTimeout(context.Background(), time.Second*30)
	defer cancelCtx()

	scraper.Run(ctx, RunOptions{StartId: 60, TargetCount: 1}, sink)
	require.NoError(t, sink.Flush(1))

	stored, found, err := store.Get(ctx, "F50")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Álit UA F50/2023", stored.Title)
	require.Equal(t, "Reifun máls 50.", stored.Abstract)
	require.Len(t, stored.Content, 1)
	require.Equal(t, "Meginmál máls 50.", stored.Content[0].ParagraphText)
}
