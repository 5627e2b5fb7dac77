package umbodsmadur

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/progress"

	"umbodsmadur-scraper/lib/casestore"
)

// Sink accumulates the records found during a run and delivers them to the
// configured outputs: always the JSON artifact, optionally a case store.
// It is only ever called by the scan loop between batches, so it needs no
// locking of its own.
type Sink struct {
	// path of the JSON artifact, parent directories are created on flush
	OutputPath string
	// optional keyed store, a failed upsert is logged but never aborts
	// the run
	Store *casestore.Store
	// optional console progress tracker, advanced per extracted record
	Tracker *progress.Tracker

	records []Record
}

func (s *Sink) Len() int {
	return len(s.records)
}

func (s *Sink) Records() []Record {
	return s.records
}

// Persist appends a batch of freshly found records and upserts them into
// the store when one is configured. The in-memory copy is kept either way,
// the artifact written at flush time never loses records to store errors.
func (s *Sink) Persist(ctx context.Context, batch []Record) {
	ctx, span := tracer.Start(ctx, "sink:Persist")
	defer span.End()

	s.records = append(s.records, batch...)
	if s.Tracker != nil {
		s.Tracker.Increment(int64(len(batch)))
	}

	if s.Store == nil || len(batch) == 0 {
		return
	}
	err := s.Store.Upsert(ctx, storeCases(batch))
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(
			ctx, "failed to upsert batch into case store",
			"count", len(batch),
			"err", err,
		)
	}
}

// Flush truncates the accumulated records to at most limit entries (the
// final batch may overshoot the target) and writes the JSON artifact.
func (s *Sink) Flush(limit int) error {
	if limit >= 0 && len(s.records) > limit {
		s.records = s.records[:limit]
	}

	err := os.MkdirAll(filepath.Dir(s.OutputPath), 0o755)
	if err != nil {
		return err
	}

	f, err := os.Create(s.OutputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	records := s.records
	if records == nil {
		records = []Record{}
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	// keep icelandic characters readable in the artifact
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}

func storeCases(batch []Record) []casestore.Case {
	cases := make([]casestore.Case, len(batch))
	for i, r := range batch {
		content := make([]casestore.Paragraph, len(r.Content))
		for j, p := range r.Content {
			content[j] = casestore.Paragraph{
				Index:         p.Index,
				ParagraphText: p.ParagraphText,
			}
		}
		cases[i] = casestore.Case{
			CaseNumber:  r.CaseNumber,
			Year:        r.Year,
			Title:       r.Title,
			Type:        r.Type,
			OriginalUrl: r.OriginalUrl,
			Abstract:    r.Abstract,
			Content:     content,
			FullText:    r.FullText,
		}
	}
	return cases
}
