package services

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"pin_share_backend/logger"
)

// PageMeta is the metadata pulled from a linked page.
type PageMeta struct {
	Title       string
	Description string
	Keywords    []string
	Author      string
	Image       string
}

const pageBodyCap = 2 << 20 // read at most 2MB of a linked page

// HTTPPageMetaFetcher resolves og/meta tags from a pin's link. Every failure
// path returns nil so extraction degrades to "no metadata".
type HTTPPageMetaFetcher struct {
	client *http.Client
}

func NewPageMetaFetcher(timeout time.Duration) *HTTPPageMetaFetcher {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        50,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &HTTPPageMetaFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

func (f *HTTPPageMetaFetcher) Fetch(ctx context.Context, rawURL string) *PageMeta {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Debug("page metadata fetch failed", "url", rawURL, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, pageBodyCap))
	if err != nil {
		return nil
	}

	// Decode to UTF-8 if needed before parsing.
	enc, _, _ := charset.DetermineEncoding(data, resp.Header.Get("Content-Type"))
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return nil
		}
		utf8data = data
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
	if err != nil {
		return nil
	}

	meta := &PageMeta{}

	meta.Title = strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	meta.Description = strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	if meta.Description == "" {
		meta.Description = strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	}

	if kw := doc.Find(`meta[name="keywords"]`).AttrOr("content", ""); kw != "" {
		for _, k := range strings.Split(kw, ",") {
			trim := strings.ToLower(strings.TrimSpace(k))
			if trim != "" {
				meta.Keywords = append(meta.Keywords, trim)
			}
		}
	}

	meta.Author = strings.TrimSpace(doc.Find(`meta[name="author"]`).AttrOr("content", ""))
	meta.Image = strings.TrimSpace(doc.Find(`meta[property="og:image"]`).AttrOr("content", ""))

	if meta.Title == "" && meta.Description == "" && len(meta.Keywords) == 0 {
		return nil
	}
	return meta
}
