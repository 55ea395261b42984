// Package content serves the static pages (help, terms, privacy). Pages are
// embedded; a file of the same name under <config dir>/pages overrides the
// embedded copy.
package content

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"noticeboard/internal/logger"
	"noticeboard/internal/paths"

	"gopkg.in/yaml.v3"
)

//go:embed pages/*.yaml
var embeddedFS embed.FS

// Page names.
const (
	HelpSupport = "help_support"
	Terms       = "terms"
	Privacy     = "privacy"
)

// Section is a heading and its text.
type Section struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
}

// Page is a titled list of sections.
type Page struct {
	Title    string    `yaml:"title"`
	Sections []Section `yaml:"sections"`
}

// Text renders the page body as plain text.
func (p Page) Text() string {
	var b strings.Builder
	for i, s := range p.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		if s.Heading != "" {
			b.WriteString(s.Heading)
			b.WriteString("\n")
		}
		b.WriteString(strings.TrimRight(s.Body, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

// OverrideDir is where user copies of the pages are looked up.
func OverrideDir() string {
	return filepath.Join(paths.GetConfigDir(), "pages")
}

// Load returns the named page. A broken override is logged and the
// embedded page is used instead.
func Load(ctx context.Context, name string) (Page, error) {
	file := name + ".yaml"
	override := filepath.Join(OverrideDir(), file)
	if data, err := os.ReadFile(override); err == nil {
		page, err := parse(data)
		if err == nil {
			return page, nil
		}
		logger.Warn(ctx, "Ignoring page override '%s': %v", override, err)
	} else if !errors.Is(err, fs.ErrNotExist) {
		logger.Warn(ctx, "Reading page override '%s': %v", override, err)
	}

	data, err := embeddedFS.ReadFile("pages/" + file)
	if err != nil {
		return Page{}, fmt.Errorf("unknown page %q: %w", name, err)
	}
	return parse(data)
}

func parse(data []byte) (Page, error) {
	var page Page
	if err := yaml.Unmarshal(data, &page); err != nil {
		return Page{}, fmt.Errorf("parsing page: %w", err)
	}
	if page.Title == "" {
		return Page{}, errors.New("parsing page: missing title")
	}
	return page, nil
}
