// Package knowledge implements the keyword lookup over the static JSON
// knowledge file used to augment model prompts.
package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// NoRelevantInformation is returned when no record matches a query.
const NoRelevantInformation = "No relevant information found."

// Record is one entry of the knowledge dataset: a flat object whose values
// are heterogeneous (strings, numbers, nulls).
type Record map[string]interface{}

// Source loads the full record set. It is an interface so tests can
// substitute an in-memory fixture for the on-disk file.
type Source interface {
	Load() ([]Record, error)
}

// FileSource reads a JSON array of records from a fixed path. The file is
// read fresh on every Load, with no caching, so dataset edits take effect
// on the next query.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (f *FileSource) Load() ([]Record, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge file %s: %w", f.Path, err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge file %s: %w", f.Path, err)
	}
	return records, nil
}

// Searcher runs substring queries against a Source.
type Searcher struct {
	source Source
}

func NewSearcher(source Source) *Searcher {
	return &Searcher{source: source}
}

// Search returns the newline-joined "Disease" values of every record with at
// least one non-empty string field containing query as a case-sensitive
// substring. With zero matches it returns NoRelevantInformation.
func (s *Searcher) Search(query string) (string, error) {
	records, err := s.source.Load()
	if err != nil {
		return "", err
	}

	var diseases []string
	for _, record := range records {
		if !recordMatches(record, query) {
			continue
		}
		if disease, ok := record["Disease"].(string); ok {
			diseases = append(diseases, disease)
		}
	}

	if len(diseases) == 0 {
		return NoRelevantInformation, nil
	}
	return strings.Join(diseases, "\n"), nil
}

// recordMatches reports whether any field value is a non-empty string
// containing query. Non-string values never match.
func recordMatches(record Record, query string) bool {
	for _, value := range record {
		str, ok := value.(string)
		if ok && str != "" && strings.Contains(str, query) {
			return true
		}
	}
	return false
}
