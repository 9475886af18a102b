// Package catalog loads the poem dataset and serves it read-only.
package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ashureev/scaffolder/internal/domain"
)

// ErrPoemNotFound is returned by Get for an unknown id.
var ErrPoemNotFound = errors.New("poem not found")

// Placeholders for missing cells.
const (
	UntitledPlaceholder = "제목 없음"
	UnknownPoet         = "작가 미상"
)

const (
	colID    = "poem_id"
	colTitle = "title"
	colPoet  = "poet"
	colText  = "text"

	paragraphSep = "\n\n"
	maxLineSize  = 4 * 1024 * 1024
)

// Catalog is the immutable in-memory poem list, ordered by id. It is safe
// for concurrent reads.
type Catalog struct {
	poems []domain.Poem
	index map[int]int
}

// New builds a catalog from poems already ordered by id.
func New(poems []domain.Poem) *Catalog {
	index := make(map[int]int, len(poems))
	for i, p := range poems {
		index[p.ID] = i
	}
	return &Catalog{poems: poems, index: index}
}

// Load reads a tab-separated poem file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open poem data: %w", err)
	}
	defer f.Close()

	poems, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	slog.Info("Poem catalog loaded", "path", path, "poems", len(poems))
	return New(poems), nil
}

// List returns every poem ordered by id.
func (c *Catalog) List() []domain.Poem {
	return slices.Clone(c.poems)
}

// Get returns the poem with id.
func (c *Catalog) Get(id int) (domain.Poem, error) {
	i, ok := c.index[id]
	if !ok {
		return domain.Poem{}, fmt.Errorf("%w: %d", ErrPoemNotFound, id)
	}
	return c.poems[i], nil
}

// Len returns the number of poems.
func (c *Catalog) Len() int {
	return len(c.poems)
}

type draft struct {
	title  string
	author string
	parts  []string
}

// Parse reads tab-separated rows with a header naming poem_id, title,
// poet and text. Quotes are literal text. Rows sharing an id become one
// poem: title and author come from the first row, and the trimmed text
// cells are joined with a blank line in row order. Rows with an
// unparseable id are skipped.
func Parse(r io.Reader) ([]domain.Poem, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, errors.New("empty poem data")
	}
	cols, err := headerIndex(sc.Text())
	if err != nil {
		return nil, err
	}

	drafts := make(map[int]*draft)
	line := 1
	for sc.Scan() {
		line++
		raw := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		fields := strings.Split(raw, "\t")

		id, err := strconv.Atoi(strings.TrimSpace(cell(fields, cols[colID])))
		if err != nil {
			slog.Warn("Skipping poem row with invalid id", "line", line, "error", err)
			continue
		}

		d, ok := drafts[id]
		if !ok {
			d = &draft{
				title:  orDefault(cell(fields, cols[colTitle]), UntitledPlaceholder),
				author: orDefault(cell(fields, cols[colPoet]), UnknownPoet),
			}
			drafts[id] = d
		}
		d.parts = append(d.parts, strings.TrimSpace(cell(fields, cols[colText])))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", line+1, err)
	}

	ids := make([]int, 0, len(drafts))
	for id := range drafts {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	poems := make([]domain.Poem, 0, len(ids))
	for _, id := range ids {
		d := drafts[id]
		poems = append(poems, domain.Poem{
			ID:      id,
			Title:   d.title,
			Author:  d.author,
			Content: strings.Join(d.parts, paragraphSep),
		})
	}
	return poems, nil
}

func headerIndex(header string) (map[string]int, error) {
	header = strings.TrimPrefix(strings.TrimSuffix(header, "\r"), "\ufeff")
	cols := map[string]int{colID: -1, colTitle: -1, colPoet: -1, colText: -1}
	for i, name := range strings.Split(header, "\t") {
		name = strings.TrimSpace(name)
		if idx, ok := cols[name]; ok && idx < 0 {
			cols[name] = i
		}
	}
	if cols[colID] < 0 {
		return nil, fmt.Errorf("header has no %s column", colID)
	}
	return cols, nil
}

// cell returns the i-th field, or "" when the column is absent or the row
// is short.
func cell(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
