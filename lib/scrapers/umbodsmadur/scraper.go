package umbodsmadur

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"

	"umbodsmadur-scraper/lib/telemetry"
)

var tracer = otel.Tracer("scrapers/umbodsmadur")

// DefaultBaseUrl is the case page url prefix, the full page url is
// <base>/<id>/skoda/mal/
const DefaultBaseUrl = "https://www.umbodsmadur.is/alit-og-bref/mal/nr"

const (
	defaultConcurrency = 10
	maxAttempts        = 3
	requestTimeout     = time.Second * 10
)

type Options struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// ceiling on in-flight fetches, defaults to 10
	Concurrency int
	// delay between fetch attempts for one id, defaults to 1s
	RetryWait time.Duration
}

// Scraper probes candidate case ids against the source site and turns the
// pages that exist into Records. It holds the only shared state of a run:
// the HTTP client and the admission gate.
type Scraper struct {
	http      *resty.Client
	gate      chan struct{}
	baseUrl   string
	retryWait time.Duration
}

func NewScraper(opts Options) *Scraper {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = time.Second
	}

	client := resty.New()
	client.SetHeader("user-agent", "Umbodsmadur Scraper/1.0")
	client.SetTimeout(requestTimeout)
	telemetry.InstrumentResty(client, "scrapers/umbodsmadur/http")

	return &Scraper{
		http:      client,
		gate:      make(chan struct{}, opts.Concurrency),
		baseUrl:   strings.TrimSuffix(opts.BaseUrl, "/"),
		retryWait: opts.RetryWait,
	}
}

func (s *Scraper) caseUrl(id int) string {
	return fmt.Sprintf("%s/%d/skoda/mal/", s.baseUrl, id)
}
