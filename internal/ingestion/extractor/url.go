package extractor

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

// fetchURLText downloads the page and returns its visible text, one line per
// text node. Every failure mode returns empty text: the pipeline then hits
// the regular no-content check instead of failing the job on a flaky URL.
func (e *Extractor) fetchURLText(ctx context.Context, url string) string {
	if url == "" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		e.log.Warn("URL source rejected", "url", url, "error", err)
		return ""
	}
	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.log.Warn("URL source fetch failed", "url", url, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e.log.Warn("URL source returned non-2xx", "url", url, "status", resp.StatusCode)
		return ""
	}

	root, err := html.Parse(resp.Body)
	if err != nil {
		e.log.Warn("URL source parse failed", "url", url, "error", err)
		return ""
	}
	return visibleText(root)
}

func visibleText(root *html.Node) string {
	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				lines = append(lines, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
