package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/lxyhes/flowforge/pkg/domain"
)

// File is one import source: a name for logging and its content.
type File struct {
	Name   string
	Reader io.Reader
}

// Outcome is the aggregate result of an import batch. A batch never
// fails per-candidate; malformed entries are skipped and counted.
// Callers treat Imported == 0 as a user-facing failure even though no
// error is returned.
type Outcome struct {
	Imported int
	Skipped  int
}

// ImportMany imports template files into the custom list.
//
// Files are processed strictly in order, one at a time, so a later
// file sees the id collisions introduced by an earlier file in the
// same batch. Each file may be a version-1 export envelope, a bare
// array of template objects, or a {"templates": [...]} wrapper. A
// candidate is accepted only if its nodes and edges are JSON arrays;
// anything else is skipped, counted and the batch continues. Accepted
// candidates whose id is empty or collides with an existing template
// (built-in or custom, including earlier accepts) get a fresh UUID.
// The whole list is persisted once after all files are processed.
func (s *Service) ImportMany(ctx context.Context, files []File) (Outcome, error) {
	templates, err := s.repo.Load(ctx)
	if err != nil {
		return Outcome{}, err
	}

	taken := make(map[string]bool, len(templates)+len(s.builtins))
	for id := range s.builtins {
		taken[id] = true
	}
	for _, t := range templates {
		taken[t.ID] = true
	}

	var outcome Outcome
	for _, f := range files {
		data, err := io.ReadAll(f.Reader)
		if err != nil {
			s.logger.Warn("import file unreadable", "file", f.Name, "err", err)
			outcome.Skipped++
			continue
		}

		for _, raw := range splitCandidates(data) {
			t, ok := decodeCandidate(raw)
			if !ok {
				outcome.Skipped++
				continue
			}

			if t.ID == "" || taken[t.ID] {
				t.ID = uuid.NewString()
			}
			taken[t.ID] = true
			t.Source = domain.SourceCustom
			if t.CreatedAt == "" {
				t.CreatedAt = s.timestamp()
			}

			templates = append([]domain.Template{t}, templates...)
			outcome.Imported++
		}
	}

	if outcome.Imported > 0 {
		if err := s.repo.Save(ctx, templates); err != nil {
			return Outcome{}, err
		}
	}

	s.logger.Info("import finished", "imported", outcome.Imported, "skipped", outcome.Skipped)
	return outcome, nil
}

// splitCandidates extracts the raw template objects from one file:
// an export envelope, a bare array, or a templates wrapper. Unparsable
// content yields a single unusable candidate so it is counted as
// skipped rather than silently vanishing.
func splitCandidates(data []byte) []json.RawMessage {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err == nil {
			return items
		}
		return []json.RawMessage{nil}
	}

	var wrapper struct {
		Version   int               `json:"version"`
		Template  json.RawMessage   `json:"template"`
		Templates []json.RawMessage `json:"templates"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return []json.RawMessage{nil}
	}
	if len(wrapper.Template) > 0 {
		return []json.RawMessage{wrapper.Template}
	}
	if wrapper.Templates != nil {
		return wrapper.Templates
	}
	return []json.RawMessage{nil}
}

// decodeCandidate accepts a raw object only when its nodes and edges
// are array-typed.
func decodeCandidate(raw json.RawMessage) (domain.Template, bool) {
	var probe struct {
		Nodes json.RawMessage `json:"nodes"`
		Edges json.RawMessage `json:"edges"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return domain.Template{}, false
	}
	if !isJSONArray(probe.Nodes) || !isJSONArray(probe.Edges) {
		return domain.Template{}, false
	}

	var t domain.Template
	if err := json.Unmarshal(raw, &t); err != nil {
		return domain.Template{}, false
	}
	return t, true
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
