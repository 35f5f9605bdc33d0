// Package article holds the compiled-in table of long-form articles.
package article

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned for an unknown article id.
var ErrNotFound = errors.New("article not found")

//go:embed articles.yaml
var source []byte

// Article is one entry of the reader view. Body is HTML.
type Article struct {
	ID       string `yaml:"id" json:"id"`
	Category string `yaml:"category" json:"category"`
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
	Author   string `yaml:"author" json:"author"`
	Initial  string `yaml:"initial" json:"initial"`
	Date     string `yaml:"date" json:"date"`
	ReadTime string `yaml:"read_time" json:"readTime"`
	Image    string `yaml:"image" json:"image"`
	PDF      bool   `yaml:"pdf" json:"pdf"`
	Body     string `yaml:"body" json:"body"`
}

// Table is a read-only, ordered set of articles.
type Table struct {
	order []string
	byID  map[string]Article
}

// Default decodes the embedded article table.
func Default() (*Table, error) {
	return Parse(source)
}

// Parse decodes a YAML list of articles. Ids must be present and unique.
func Parse(data []byte) (*Table, error) {
	const op = "article.parse"

	var list []Article
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	t := &Table{byID: make(map[string]Article, len(list))}
	for i, a := range list {
		if a.ID == "" {
			return nil, fmt.Errorf("%s: entry %d has no id", op, i)
		}
		if _, dup := t.byID[a.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate id %q", op, a.ID)
		}
		if a.Initial == "" && a.Author != "" {
			r, _ := utf8.DecodeRuneInString(a.Author)
			a.Initial = string(r)
		}
		t.order = append(t.order, a.ID)
		t.byID[a.ID] = a
	}
	return t, nil
}

// Get returns the article with the given id.
func (t *Table) Get(id string) (Article, error) {
	a, ok := t.byID[id]
	if !ok {
		return Article{}, fmt.Errorf("article.get: %w: %q", ErrNotFound, id)
	}
	return a, nil
}

// List returns all articles in declared order.
func (t *Table) List() []Article {
	out := make([]Article, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.byID[id])
	}
	return out
}

// Len returns the number of articles.
func (t *Table) Len() int { return len(t.order) }

// Text returns the body with markup removed and whitespace collapsed.
func (a Article) Text() string {
	z := html.NewTokenizer(strings.NewReader(a.Body))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
			b.WriteByte(' ')
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			// Block boundaries separate words even without whitespace.
			b.WriteByte(' ')
		}
	}
}

// Excerpt returns the first n characters of the body text, followed by "..."
// when the text is longer.
func (a Article) Excerpt(n int) string {
	text := a.Text()
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return strings.TrimRight(string([]rune(text)[:n]), " ") + "..."
}

// WordCount counts words in the body text.
func (a Article) WordCount() int {
	return len(strings.Fields(a.Text()))
}

// Summary is the list view of an article.
type Summary struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Author   string `json:"author"`
	Initial  string `json:"initial"`
	Date     string `json:"date"`
	ReadTime string `json:"readTime"`
	Image    string `json:"image"`
	PDF      bool   `json:"pdf"`
	Excerpt  string `json:"excerpt"`
	Words    int    `json:"words"`
}

// SummaryExcerptLength is the excerpt size used in list views.
const SummaryExcerptLength = 160

// Summarize returns the list view of a.
func (a Article) Summarize() Summary {
	return Summary{
		ID:       a.ID,
		Category: a.Category,
		Title:    a.Title,
		Subtitle: a.Subtitle,
		Author:   a.Author,
		Initial:  a.Initial,
		Date:     a.Date,
		ReadTime: a.ReadTime,
		Image:    a.Image,
		PDF:      a.PDF,
		Excerpt:  a.Excerpt(SummaryExcerptLength),
		Words:    a.WordCount(),
	}
}
