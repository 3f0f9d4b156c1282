package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docsFixture = `<!doctype html>
<html><body>
<nav><a href="/docs">Docs</a></nav>
<article>
  <p>Preface that belongs to no section.</p>
  <h1 id="guide">Guide<a href="#guide">#</a></h1>
  <p>Datastar keeps backend state in charge of the page through server-sent events.</p>
  <h1 id="attributes">Attributes</h1>
  <p>Attributes are the declarative half of Datastar and live in your markup.</p>
  <h3><code>data-bind</code></h3>
  <p>Creates a two-way binding between a signal and an input element.</p>
  <h3><code>data-on</code> <a href="/pro">Pro</a></h3>
  <p>Attaches an event listener that runs an expression.</p>
  <h1 id="empty">Empty</h1>
</article>
</body></html>`

func TestParseSections(t *testing.T) {
	sections, err := parseSections(strings.NewReader(docsFixture))
	require.NoError(t, err)
	require.Len(t, sections, 3)

	assert.Equal(t, "guide", sections[0].ID)
	assert.Equal(t, "Guide", sections[0].Title)
	assert.Contains(t, sections[0].Markdown, "server-sent events")
	assert.NotContains(t, sections[0].Markdown, "Preface")
	assert.NotContains(t, sections[0].Markdown, "[#]")

	assert.Equal(t, "Attributes", sections[1].Title)
	assert.Contains(t, sections[1].Markdown, "### `data-bind`")
}

func TestParseSections_NoArticle(t *testing.T) {
	_, err := parseSections(strings.NewReader("<html><body><h1 id=x>X</h1></body></html>"))
	assert.ErrorIs(t, err, errNoArticle)
}

func TestPlanPages(t *testing.T) {
	sections, err := parseSections(strings.NewReader(docsFixture))
	require.NoError(t, err)

	pages := planPages(sections, toSet([]string{"Attributes"}), slog.New(slog.DiscardHandler))

	paths := make([]string, 0, len(pages))
	for _, p := range pages {
		paths = append(paths, p.Path)
	}
	assert.Equal(t, []string{
		"guide.md",
		filepath.Join("attributes", "index.md"),
		filepath.Join("attributes", "data-bind.md"),
		filepath.Join("attributes", "data-on.md"),
	}, paths)

	assert.True(t, strings.HasPrefix(pages[1].Content, "# Attributes"))
	assert.True(t, strings.HasPrefix(pages[2].Content, "# `data-bind`"))
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Getting Started":  "getting-started",
		"data_on__click":   "data-on-click",
		"  SSE Events!  ":  "sse-events",
		"@get() / @post()": "get-post",
	}
	for in, want := range tests {
		assert.Equal(t, want, slugify(in), in)
	}
}

func TestCleanMarkdown(t *testing.T) {
	in := "## Signals [#](#signals)   \n\n\n\n\n```js\n1const a = 1\n2let b\n```\n12 is a number outside code\n"

	got := cleanMarkdown(in)

	assert.Equal(t, "## Signals\n\n\n```js\nconst a = 1\nlet b\n```\n12 is a number outside code", got)
}

func TestWritePages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "datastar")

	require.NoError(t, writePages(context.Background(), dir, []page{
		{Path: "guide.md", Content: "# Guide"},
		{Path: filepath.Join("actions", "get.md"), Content: "# @get()"},
	}, 2))

	data, err := os.ReadFile(filepath.Join(dir, "actions", "get.md"))
	require.NoError(t, err)
	assert.Equal(t, "# @get()\n", string(data))

	require.NoError(t, writePages(context.Background(), dir, []page{{Path: "guide.md", Content: "# Guide"}}, 2))
	_, err = os.Stat(filepath.Join(dir, "actions"))
	assert.True(t, os.IsNotExist(err), "stale pages are removed")
}
