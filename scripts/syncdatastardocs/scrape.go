package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// section is the markdown rendering of one <h1> block of the docs article.
type section struct {
	ID       string
	Title    string
	Markdown string
}

var errNoArticle = errors.New("no <article> element in page")

func fetch(ctx context.Context, url string, timeout time.Duration) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("User-Agent", "shopdash-docs-sync/1.0")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	return &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

// parseSections splits the docs <article> at every <h1 id> and converts each
// part to markdown. Content before the first heading is dropped.
func parseSections(r io.Reader) ([]section, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	article := find(doc, func(n *html.Node) bool { return n.DataAtom == atom.Article })
	if article == nil {
		return nil, errNoArticle
	}

	var sections []section
	var current *section
	var buf strings.Builder

	flush := func() error {
		if current == nil {
			return nil
		}
		md, err := htmltomarkdown.ConvertString(buf.String())
		if err != nil {
			return fmt.Errorf("convert %s: %w", current.ID, err)
		}
		current.Markdown = cleanMarkdown(md)
		sections = append(sections, *current)
		buf.Reset()
		return nil
	}

	for n := range headingSiblings(article) {
		if n.DataAtom == atom.H1 && attr(n, "id") != "" {
			if err := flush(); err != nil {
				return nil, err
			}
			current = &section{
				ID:    attr(n, "id"),
				Title: strings.TrimSpace(strings.TrimRight(text(n), "#")),
			}
		}
		if current == nil {
			continue
		}
		if err := html.Render(&buf, n); err != nil {
			return nil, err
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return sections, nil
}

// headingSiblings yields the children of the element that holds the first
// <h1>, which is where the page keeps its section headings.
func headingSiblings(article *html.Node) func(yield func(*html.Node) bool) {
	parent := article
	if h1 := find(article, func(n *html.Node) bool { return n.DataAtom == atom.H1 }); h1 != nil {
		parent = h1.Parent
	}
	return func(yield func(*html.Node) bool) {
		for c := parent.FirstChild; c != nil; c = c.NextSibling {
			if !yield(c) {
				return
			}
		}
	}
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
