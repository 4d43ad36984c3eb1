package analysis

import (
	"cmp"
	"iter"
	"slices"

	"github.com/fulmenhq/techscan/pkg/scanner"
)

// Aggregator folds discovered files into a Report.
type Aggregator struct {
	dir        string
	classifier *Classifier
}

// NewAggregator returns an aggregator that labels its reports with dir.
func NewAggregator(dir string, c *Classifier) *Aggregator {
	if c == nil {
		c = NewClassifier(nil)
	}
	return &Aggregator{dir: dir, classifier: c}
}

// Aggregate consumes files to the end and returns one item per language with
// at least one file. Items are ordered by file count descending, then by
// language name.
func (a *Aggregator) Aggregate(files iter.Seq[scanner.DiscoveredFile]) Report {
	var (
		items []LanguageReportItem
		index = make(map[string]int)
		total int
	)

	for f := range files {
		total++
		lang, ok := a.classifier.Classify(f)
		if !ok {
			continue
		}
		i, seen := index[lang.Name]
		if !seen {
			i = len(items)
			index[lang.Name] = i
			items = append(items, LanguageReportItem{Language: lang})
		}
		items[i].FileCount++
		items[i].FilePaths = append(items[i].FilePaths, f.Path)
	}

	slices.SortStableFunc(items, func(x, y LanguageReportItem) int {
		if c := cmp.Compare(y.FileCount, x.FileCount); c != 0 {
			return c
		}
		return cmp.Compare(x.Language.Name, y.Language.Name)
	})

	if items == nil {
		items = []LanguageReportItem{}
	}

	return Report{
		Dir:            a.dir,
		TotalFileCount: total,
		Languages:      items,
	}
}
