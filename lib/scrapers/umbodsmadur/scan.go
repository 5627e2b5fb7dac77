package umbodsmadur

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
)

// how many candidate ids are dispatched before the cursor advances
const batchSize = 50

type RunOptions struct {
	// inclusive upper bound of the backward scan
	StartId int
	// how many valid cases to find before stopping
	TargetCount int
}

// Run scans candidate ids downward from StartId in batches until
// TargetCount records have been found or the id space is exhausted.
// Batches run strictly one after another, only the fetches inside a batch
// are concurrent. Each batch is handed to the sink before the next one is
// dispatched.
func (s *Scraper) Run(ctx context.Context, opts RunOptions, sink *Sink) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(
		attribute.Int("start_id", opts.StartId),
		attribute.Int("target_count", opts.TargetCount),
	)

	cursor := opts.StartId
	for sink.Len() < opts.TargetCount && cursor >= 0 {
		if ctx.Err() != nil {
			slog.InfoContext(ctx, "scan interrupted", "cursor", cursor, "found", sink.Len())
			return
		}

		batch := s.scanBatch(ctx, cursor)
		cursor -= batchSize
		sink.Persist(ctx, batch)
	}
}

// scanBatch probes ids cursor..cursor-batchSize+1 (floored at zero)
// concurrently and returns the records found, in completion order.
func (s *Scraper) scanBatch(ctx context.Context, cursor int) []Record {
	ctx, span := tracer.Start(ctx, "scanBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("cursor", cursor))

	var (
		mu      sync.Mutex
		records []Record
	)
	wg := sync.WaitGroup{}

	for id := cursor; id > cursor-batchSize && id >= 0; id-- {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			// the gate is held for all attempts of this id
			select {
			case s.gate <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-s.gate }()

			record, ok := s.scrapeId(ctx, id)
			if !ok {
				return
			}

			mu.Lock()
			records = append(records, record)
			mu.Unlock()
		}(id)
	}

	wg.Wait()
	return records
}

func (s *Scraper) scrapeId(ctx context.Context, id int) (Record, bool) {
	outcome := s.fetch(ctx, id)
	switch outcome.Status {
	case FetchNotFound:
		// expected gap in the id space, not worth logging
		return Record{}, false
	case FetchTransientFailure:
		slog.WarnContext(ctx, "giving up on case id", "id", id, "err", outcome.Reason)
		return Record{}, false
	}

	record, err := Extract(outcome.Markup, s.caseUrl(id))
	if err != nil {
		slog.WarnContext(ctx, "failed to read case page markup", "id", id, "err", err)
		return Record{}, false
	}
	return record, true
}
