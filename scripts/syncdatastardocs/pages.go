package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

// page is one markdown file to write, relative to the output directory.
type page struct {
	Path    string
	Content string
}

// minPageLen drops navigation stubs that carry no real content.
const minPageLen = 50

var (
	reNonWord    = regexp.MustCompile(`[^\w\s-]`)
	reSeparators = regexp.MustCompile(`[\s_]+`)
	reHyphens    = regexp.MustCompile(`-+`)
	reAnchorLink = regexp.MustCompile(`\s*\[#\]\(#[\w-]*\)`)
	reLineNumber = regexp.MustCompile(`^(\s*)\d{1,4}(.*)$`)
	reBlankRuns  = regexp.MustCompile(`\n{4,}`)
	reH3         = regexp.MustCompile(`(?m)^### .+$`)
	reProBadge   = regexp.MustCompile(`\[Pro\]\([^)]*\)`)
	reSlugNoise  = regexp.MustCompile("[`()\\[\\]]")
)

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = reNonWord.ReplaceAllString(s, "")
	s = reSeparators.ReplaceAllString(s, "-")
	s = reHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// cleanMarkdown strips heading anchors and the line numbers the site renders
// in code blocks, and collapses long blank runs.
func cleanMarkdown(md string) string {
	md = reAnchorLink.ReplaceAllString(md, "")

	lines := strings.Split(md, "\n")
	inCode := false
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "```"):
			inCode = !inCode
		case inCode:
			if m := reLineNumber.FindStringSubmatch(line); m != nil {
				line = m[1] + m[2]
			}
		}
		lines[i] = strings.TrimRight(line, " \t")
	}

	md = reBlankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n\n")
	return strings.TrimSpace(md)
}

// planPages turns sections into files. Sections named in split become a
// directory with an index page plus one page per ### entry.
func planPages(sections []section, split map[string]bool, logger *slog.Logger) []page {
	var pages []page
	for i, s := range sections {
		if len(s.Markdown) < minPageLen {
			logger.Debug("skipping empty section", "title", s.Title)
			continue
		}
		name := slugify(s.ID)
		if name == "" {
			name = slugify(s.Title)
		}
		if name == "" {
			name = fmt.Sprintf("section-%d", i)
		}

		if split[name] {
			if entries := splitEntries(s); len(entries) > 1 {
				for _, e := range entries {
					pages = append(pages, page{Path: filepath.Join(name, e.Path), Content: e.Content})
				}
				continue
			}
		}
		pages = append(pages, page{Path: name + ".md", Content: withTitle(s.Markdown, s.Title)})
	}
	return pages
}

// splitEntries cuts a reference section at its ### headings. Each entry is
// promoted to a top-level heading in its own page.
func splitEntries(s section) []page {
	bodies := reH3.Split(s.Markdown, -1)
	heads := reH3.FindAllString(s.Markdown, -1)

	var out []page
	if intro := strings.TrimSpace(bodies[0]); intro != "" {
		out = append(out, page{Path: "index.md", Content: withTitle(intro, s.Title)})
	}
	for i, head := range heads {
		title := strings.TrimSpace(strings.TrimPrefix(head, "###"))
		slug := slugify(reSlugNoise.ReplaceAllString(reProBadge.ReplaceAllString(title, ""), ""))
		body := strings.TrimSpace(bodies[i+1])
		out = append(out, page{
			Path:    slug + ".md",
			Content: strings.TrimSpace("# " + title + "\n\n" + body),
		})
	}
	return out
}

func withTitle(md, title string) string {
	if strings.HasPrefix(md, "#") {
		return md
	}
	return "# " + title + "\n\n" + md
}

// writePages replaces dir with the given pages.
func writePages(ctx context.Context, dir string, pages []page, workers int) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clean %s: %w", dir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for _, p := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, p.Path)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			return os.WriteFile(path, []byte(p.Content+"\n"), 0o644) //nolint:gosec // docs are world-readable
		})
	}
	return g.Wait()
}
