package discovery

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/MithunXcpu/value-calculator/internal/config"
)

const (
	maxHeadings       = 20
	maxHeadingChars   = 200
	maxFeatures       = 30
	minFeatureChars   = 10
	maxFeatureChars   = 200
	defaultMaxContent = 8000
	defaultMaxBody    = 2 << 20
)

type Scraper struct {
	client    *http.Client
	userAgent string
	maxChars  int
	maxBody   int64
}

func NewScraper(cfg config.Discovery) *Scraper {
	maxChars := cfg.MaxContentChars
	if maxChars <= 0 {
		maxChars = defaultMaxContent
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}

	dialer := &net.Dialer{Timeout: cfg.ScrapeTimeout}
	if !cfg.AllowPrivateHosts {
		dialer.Control = publicOnly
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	return &Scraper{
		client:    &http.Client{Timeout: cfg.ScrapeTimeout, Transport: transport},
		userAgent: cfg.UserAgent,
		maxChars:  maxChars,
		maxBody:   maxBody,
	}
}

// publicOnly runs after DNS resolution, so redirects and rebinding hit it too.
func publicOnly(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidURL, address)
	}
	addr, err := netip.ParseAddr(host)
	if err != nil || !publicAddr(addr) {
		return fmt.Errorf("%w: %s is not a public address", ErrInvalidURL, host)
	}
	return nil
}

func publicAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsGlobalUnicast() && !addr.IsPrivate() && !addr.IsLoopback() && !addr.IsLinkLocalUnicast()
}

// NormalizeURL prefixes bare hosts with https:// and rejects anything without a host.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}

	return u.String(), nil
}

func (s *Scraper) Scrape(ctx context.Context, rawURL string) (ScrapedContent, error) {
	const op = "discovery.Scraper.Scrape"

	target, err := NormalizeURL(rawURL)
	if err != nil {
		return ScrapedContent{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return ScrapedContent{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return ScrapedContent{}, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ScrapedContent{}, fmt.Errorf("%s: %w: %d", op, ErrUpstreamStatus, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, s.maxBody))
	if err != nil {
		return ScrapedContent{}, fmt.Errorf("%s: parse html: %w", op, err)
	}

	content := extract(doc, s.maxChars)
	content.URL = target

	return content, nil
}

func extract(doc *goquery.Document, maxChars int) ScrapedContent {
	doc.Find("script, style, noscript, nav, footer, iframe, svg").Remove()

	title := strings.TrimSpace(doc.Find("title").Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if og := metaContent(doc, `meta[property="og:title"]`); og != "" {
		title = og
	}

	description := metaContent(doc, `meta[property="og:description"]`)
	if description == "" {
		description = metaContent(doc, `meta[name="description"]`)
	}

	main := doc.Find("main, article, [role='main'], .content, #content").First()
	if main.Length() == 0 {
		main = doc.Find("body")
	}

	headings := []string{}
	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" && utf8.RuneCountInString(text) < maxHeadingChars && len(headings) < maxHeadings {
			headings = append(headings, text)
		}
	})

	features := []string{}
	doc.Find("ul li, ol li").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		n := utf8.RuneCountInString(text)
		if n > minFeatureChars && n < maxFeatureChars && len(features) < maxFeatures {
			features = append(features, text)
		}
	})

	return ScrapedContent{
		Title:       title,
		Description: description,
		Content:     truncate(strings.Join(strings.Fields(main.Text()), " "), maxChars),
		Headings:    headings,
		Features:    features,
	}
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

func truncate(s string, maxChars int) string {
	if utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	return string([]rune(s)[:maxChars])
}
