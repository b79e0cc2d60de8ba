// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// MetaName is the name attribute of the tag carrying the identifier.
const MetaName = "session-id"

// maxPageBytes bounds how much of the chat page is parsed.
const maxPageBytes = 2 << 20

// ErrNotFound is returned when no session identifier could be found.
var ErrNotFound = errors.New("session id not found")

// Discover GETs pageURL and returns the content of its session-id meta tag.
func Discover(ctx context.Context, client *http.Client, pageURL string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", errors.Wrap(err, "build page request")
	}
	req.Header.Set("Accept", "text/html")

	resp, err := client.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "fetch %s", pageURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Errorf("fetch %s: %s", pageURL, resp.Status)
	}

	id, err := FromHTML(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", errors.Wrapf(err, "parse %s", pageURL)
	}
	return id, nil
}

// FromHTML parses an HTML document and returns the session-id meta content.
func FromHTML(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	if id, ok := findMeta(doc, 0); ok && id != "" {
		return id, nil
	}
	return "", ErrNotFound
}

// findMeta returns the content of the first session-id meta tag.
func findMeta(n *html.Node, depth int) (string, bool) {
	if depth > 64 {
		return "", false
	}

	if n.Type == html.ElementNode && n.Data == "meta" &&
		strings.EqualFold(getAttr(n, "name"), MetaName) {
		return strings.TrimSpace(getAttr(n, "content")), true
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if id, ok := findMeta(c, depth+1); ok {
			return id, true
		}
	}
	return "", false
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
