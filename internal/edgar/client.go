// Package edgar is the client for the SEC EDGAR data services: the company
// submissions index, filing documents under Archives, the full-text search
// service, and the browse-EDGAR Atom feed.
//
// EDGAR needs no API key but requires a User-Agent identifying the caller
// and caps traffic at 10 requests per second per user agent.
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"

	"github.com/avikram/filingscope/internal/config"
	"github.com/avikram/filingscope/internal/infra"
	"github.com/avikram/filingscope/pkg/models"
	"github.com/avikram/filingscope/pkg/utils"
)

// Client talks to EDGAR with rate limiting, response caching, and a circuit
// breaker around the upstream.
type Client struct {
	httpClient *http.Client
	cfg        config.EDGARConfig
	company    config.CompanyConfig
	cache      *infra.Cache
	limiter    *infra.RateLimiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

// ListOptions narrow the filing index. A zero Since means no lower date
// bound; a zero Limit means no cap.
type ListOptions struct {
	FormTypes []string
	Since     time.Time
	Limit     int
}

// SearchOptions narrow a remote full-text search. Dates are YYYY-MM-DD.
type SearchOptions struct {
	FormTypes []string
	StartDate string
	EndDate   string
}

func NewClient(cfg config.EDGARConfig, company config.CompanyConfig) *Client {
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "edgar",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
		cfg:        cfg,
		company:    company,
		cache:      infra.NewCache(time.Duration(cfg.CacheTTL) * time.Second),
		limiter:    infra.NewRateLimiter(cfg.RateLimitRPS),
		breaker:    breaker,
	}
}

// ListFilings reads the company's submissions index and returns its recent
// filings, newest first, filtered by form type and date.
func (c *Client) ListFilings(ctx context.Context, opts ListOptions) ([]models.FilingSummary, error) {
	u := fmt.Sprintf("%s/submissions/CIK%s.json", strings.TrimRight(c.cfg.SubmissionsURL, "/"), padCIK(c.company.CIK))

	var resp submissionsResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("list filings: %w", err)
	}

	allowed := make(map[string]bool, len(opts.FormTypes))
	for _, f := range opts.FormTypes {
		allowed[f] = true
	}

	ticker := c.company.Ticker
	if len(resp.Tickers) > 0 {
		ticker = resp.Tickers[0]
	}

	recent := resp.Filings.Recent
	var filings []models.FilingSummary
	for i := range recent.AccessionNumber {
		form := recent.Form[i]
		if len(allowed) > 0 && !allowed[form] {
			continue
		}
		if !opts.Since.IsZero() {
			d, err := utils.ParseDate(recent.FilingDate[i])
			if err != nil || d.Before(opts.Since) {
				continue
			}
		}

		accNo := recent.AccessionNumber[i]
		doc := ""
		if i < len(recent.PrimaryDocument) {
			doc = recent.PrimaryDocument[i]
		}
		period := ""
		if i < len(recent.ReportDate) {
			period = recent.ReportDate[i]
		}

		filings = append(filings, models.FilingSummary{
			ID:             accNo,
			FormType:       form,
			FilingDate:     recent.FilingDate[i],
			PeriodOfReport: period,
			CompanyName:    resp.Name,
			Ticker:         ticker,
			FilingURL: fmt.Sprintf("%s/Archives/edgar/data/%s/%s/%s",
				strings.TrimRight(c.cfg.BaseURL, "/"), resp.CIK,
				strings.ReplaceAll(accNo, "-", ""), doc),
		})

		if opts.Limit > 0 && len(filings) >= opts.Limit {
			break
		}
	}

	return filings, nil
}

// FetchContent downloads the primary document of a filing.
func (c *Client) FetchContent(ctx context.Context, filingURL string) (string, error) {
	body, err := c.get(ctx, filingURL)
	if err != nil {
		return "", fmt.Errorf("fetch filing content: %w", err)
	}
	return string(body), nil
}

// SearchRemote runs the query against the EDGAR full-text search service,
// scoped to the configured company.
func (c *Client) SearchRemote(ctx context.Context, query string, opts SearchOptions) ([]models.FilingSummary, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("ciks", padCIK(c.company.CIK))
	if len(opts.FormTypes) > 0 {
		params.Set("forms", strings.Join(opts.FormTypes, ","))
	}
	if opts.StartDate != "" {
		params.Set("startdt", opts.StartDate)
	}
	if opts.EndDate != "" {
		params.Set("enddt", opts.EndDate)
	}

	var resp searchResponse
	if err := c.getJSON(ctx, c.cfg.FullTextURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("remote search: %w", err)
	}

	var filings []models.FilingSummary
	for _, hit := range resp.Hits.Hits {
		doc := hit.Source
		date := doc.FiledAt
		if date == "" {
			date = doc.FileDate
		}
		ticker := ""
		if len(doc.Tickers) > 0 {
			ticker = doc.Tickers[0]
		}
		filings = append(filings, models.FilingSummary{
			ID:             hit.ID,
			FormType:       doc.FormType,
			FilingDate:     date,
			PeriodOfReport: doc.Period,
			CompanyName:    doc.EntityName,
			Ticker:         ticker,
		})
	}

	return filings, nil
}

// RecentFilings reads the company's browse-EDGAR Atom feed and returns the
// newest entries. A zero limit means the feed's default page.
func (c *Client) RecentFilings(ctx context.Context, limit int) ([]models.FilingSummary, error) {
	params := url.Values{}
	params.Set("action", "getcompany")
	params.Set("CIK", padCIK(c.company.CIK))
	params.Set("output", "atom")
	if limit > 0 {
		params.Set("count", strconv.Itoa(limit))
	}

	u := fmt.Sprintf("%s/cgi-bin/browse-edgar?%s", strings.TrimRight(c.cfg.BaseURL, "/"), params.Encode())
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("recent filings feed: %w", err)
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse filings feed: %w", err)
	}

	var filings []models.FilingSummary
	for _, item := range feed.Items {
		if limit > 0 && len(filings) >= limit {
			break
		}
		form := ""
		if len(item.Categories) > 0 {
			form = item.Categories[0]
		}
		date := ""
		if item.UpdatedParsed != nil {
			date = item.UpdatedParsed.Format("2006-01-02")
		} else if item.PublishedParsed != nil {
			date = item.PublishedParsed.Format("2006-01-02")
		}
		filings = append(filings, models.FilingSummary{
			ID:          accessionFromGUID(item.GUID),
			FormType:    form,
			FilingDate:  date,
			CompanyName: c.company.Name,
			Ticker:      c.company.Ticker,
			FilingURL:   item.Link,
		})
	}

	return filings, nil
}

// --- transport ---

// get performs a cached, rate-limited GET through the circuit breaker.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if cached, ok := c.cache.Get(u); ok {
		return cached.([]byte), nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.doGet(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	c.cache.Set(u, body)
	return body, nil
}

func (c *Client) doGet(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("edgar: %s returned %s", u, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) getJSON(ctx context.Context, u string, dest any) error {
	body, err := c.get(ctx, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("parse edgar response: %w", err)
	}
	return nil
}

// --- helpers ---

// padCIK pads a CIK number to 10 digits with leading zeros.
func padCIK(cik string) string {
	for len(cik) < 10 {
		cik = "0" + cik
	}
	return cik
}

// accessionFromGUID extracts the accession number from an Atom entry ID of
// the form "urn:tag:sec.gov,2008:accession-number=0001178670-24-000012".
func accessionFromGUID(guid string) string {
	const marker = "accession-number="
	if i := strings.LastIndex(guid, marker); i >= 0 {
		return guid[i+len(marker):]
	}
	return guid
}
