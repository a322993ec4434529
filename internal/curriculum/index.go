// Package curriculum holds the static subject/chapter reference data and the
// lookup used to backfill page titles when a quiz URL only carries a topic slug.
package curriculum

import (
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Chapter is one entry in the curriculum: a display title plus the optional
// question-bank table it maps to.
type Chapter struct {
	ChapterTitle string `yaml:"chapter_title"`
	TableID      string `yaml:"table_id"`
}

// Index is the full curriculum for one class level:
// subject -> book/category -> ordered chapters.
type Index struct {
	ClassID  string                          `yaml:"class_id"`
	Subjects map[string]map[string][]Chapter `yaml:"subjects"`

	lookupOnce sync.Once
	lookup     map[string]Match
}

// Match is the result of resolving a topic slug against the index.
type Match struct {
	Subject string
	Title   string
}

// Load parses the embedded curriculum file for the given class level.
func Load(classID string) (*Index, error) {
	raw, err := dataFS.ReadFile(fmt.Sprintf("data/class%s.yaml", classID))
	if err != nil {
		return nil, fmt.Errorf("no curriculum for class %s: %w", classID, err)
	}
	var idx Index
	if err := yaml.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("parsing curriculum: %w", err)
	}
	n := 0
	for _, cats := range idx.Subjects {
		for _, chs := range cats {
			n += len(chs)
		}
	}
	slog.Info("curriculum loaded", "class", idx.ClassID, "subjects", len(idx.Subjects), "chapters", n)
	return &idx, nil
}

// Find resolves a topic slug or chapter title to its subject and display
// title. The lookup map is built once, on first use, keyed by the normalized
// form of every chapter title and table id.
func (idx *Index) Find(topic string) (Match, bool) {
	idx.lookupOnce.Do(idx.buildLookup)
	m, ok := idx.lookup[normalizeKey(topic)]
	return m, ok
}

func (idx *Index) buildLookup() {
	idx.lookup = make(map[string]Match)
	for subject, cats := range idx.Subjects {
		for _, chapters := range cats {
			for _, ch := range chapters {
				m := Match{Subject: subject, Title: ch.ChapterTitle}
				if k := normalizeKey(ch.TableID); k != "" {
					idx.lookup[k] = m
				}
				if k := normalizeKey(ch.ChapterTitle); k != "" {
					idx.lookup[k] = m
				}
			}
		}
	}
}
