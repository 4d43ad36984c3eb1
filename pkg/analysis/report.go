package analysis

import "github.com/fulmenhq/techscan/pkg/language"

// LanguageReportItem holds the files matched to one language.
type LanguageReportItem struct {
	Language  language.Language `json:"language" yaml:"language" toml:"language"`
	FileCount int               `json:"file_count" yaml:"file_count" toml:"file_count"`
	FilePaths []string          `json:"file_paths" yaml:"file_paths" toml:"file_paths"`
}

// Report is the result of one scan.
type Report struct {
	Dir            string               `json:"dir" yaml:"dir" toml:"dir"`
	TotalFileCount int                  `json:"total_file_count" yaml:"total_file_count" toml:"total_file_count"`
	Languages      []LanguageReportItem `json:"languages" yaml:"languages" toml:"languages"`
}

// ClassifiedFileCount is the number of files attributed to some language.
func (r *Report) ClassifiedFileCount() int {
	n := 0
	for _, item := range r.Languages {
		n += item.FileCount
	}
	return n
}

// UnclassifiedFileCount is the number of discovered files no language claimed.
func (r *Report) UnclassifiedFileCount() int {
	return r.TotalFileCount - r.ClassifiedFileCount()
}
