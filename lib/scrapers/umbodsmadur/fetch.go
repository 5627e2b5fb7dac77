package umbodsmadur

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type FetchStatus int

const (
	// the page exists and its markup was retrieved
	FetchSuccess FetchStatus = iota
	// the id has no case behind it, this is the expected gap signal
	FetchNotFound
	// the source kept failing after all attempts were exhausted
	FetchTransientFailure
)

// FetchOutcome is the final result of all fetch attempts for one id.
type FetchOutcome struct {
	Status FetchStatus
	Markup []byte
	Reason error
}

// fetch issues a GET for one candidate id. A 404 returns immediately,
// anything else that isn't a 200 is retried up to maxAttempts times with
// retryWait between attempts. The caller is expected to hold an admission
// gate slot for the whole call, retries included.
func (s *Scraper) fetch(ctx context.Context, id int) FetchOutcome {
	link := s.caseUrl(id)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return FetchOutcome{Status: FetchTransientFailure, Reason: ctx.Err()}
			case <-time.After(s.retryWait):
			}
		}

		res, err := s.http.R().
			SetContext(ctx).
			Get(link)
		if err != nil {
			if ctx.Err() != nil {
				return FetchOutcome{Status: FetchTransientFailure, Reason: ctx.Err()}
			}
			lastErr = err
			continue
		}

		switch res.StatusCode() {
		case http.StatusOK:
			return FetchOutcome{Status: FetchSuccess, Markup: res.Body()}
		case http.StatusNotFound:
			return FetchOutcome{Status: FetchNotFound}
		default:
			lastErr = fmt.Errorf("unexpected status %d", res.StatusCode())
		}
	}

	return FetchOutcome{Status: FetchTransientFailure, Reason: lastErr}
}
