package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/docmap"
)

var _ docmap.Inferrer = (*Adapter)(nil)

// Adapter infers module records by prompting a Completer.
type Adapter struct {
	completer docmap.Completer
}

// NewAdapter creates a new Adapter.
func NewAdapter(completer docmap.Completer) *Adapter {
	return &Adapter{completer: completer}
}

// Infer makes one model call for text. A completer error yields a Failed
// inference; a reply that does not parse into valid records yields a
// Malformed inference carrying the raw reply.
func (a *Adapter) Infer(ctx context.Context, text string) (inf docmap.Inference) {
	defer func() {
		if r := recover(); r != nil {
			inf = docmap.Inference{
				Kind: docmap.InferenceFailed,
				Err:  docmap.Errorf(docmap.EINTERNAL, "completer panic: %v", r),
			}
		}
	}()

	raw, err := a.completer.Complete(ctx, BuildPrompt(text))
	if err != nil {
		return docmap.Inference{Kind: docmap.InferenceFailed, Err: err}
	}

	records, err := ParseRecords(raw)
	if err != nil {
		return docmap.Inference{Kind: docmap.InferenceMalformed, Raw: raw, Err: err}
	}
	return docmap.Inference{Kind: docmap.InferenceOK, Records: records}
}

// ParseRecords decodes a model reply into validated module records.
// Code fences and trailing commas are tolerated, a single top-level object
// is accepted as a one-element list, and JSON embedded in prose is found.
// Every record must name its module; confidences are clamped into [0, 1]
// and missing submodule maps become empty.
func ParseRecords(raw string) ([]docmap.ModuleRecord, error) {
	cleaned := CleanJSON(raw)
	records, err := decodeRecords(cleaned)
	if err != nil {
		embedded := extractJSON(cleaned)
		if embedded == "" || embedded == cleaned {
			return nil, err
		}
		if records, err = decodeRecords(embedded); err != nil {
			return nil, err
		}
	}

	for i := range records {
		if err := normalizeRecord(&records[i]); err != nil {
			return nil, docmap.Errorf(docmap.EINVALID, "record %d: %s", i, docmap.ErrorMessage(err))
		}
	}
	return records, nil
}

func decodeRecords(s string) ([]docmap.ModuleRecord, error) {
	data := bytes.TrimSpace([]byte(s))
	if len(data) == 0 {
		return nil, docmap.Errorf(docmap.EINVALID, "empty response")
	}

	switch data[0] {
	case '[':
		var records []docmap.ModuleRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, docmap.Errorf(docmap.EINVALID, "invalid JSON list: %v", err)
		}
		return records, nil
	case '{':
		var record docmap.ModuleRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, docmap.Errorf(docmap.EINVALID, "invalid JSON object: %v", err)
		}
		return []docmap.ModuleRecord{record}, nil
	default:
		return nil, docmap.Errorf(docmap.EINVALID, "response is not JSON: %s", preview(s))
	}
}

func normalizeRecord(r *docmap.ModuleRecord) error {
	r.Module = strings.TrimSpace(r.Module)
	if r.Module == "" {
		return docmap.Errorf(docmap.EINVALID, "module name required")
	}
	r.Confidence = clamp(r.Confidence)
	if r.Submodules == nil {
		r.Submodules = map[string]docmap.SubmoduleInfo{}
	}
	for name, sub := range r.Submodules {
		sub.Confidence = clamp(sub.Confidence)
		r.Submodules[name] = sub
	}
	return nil
}

func clamp(c *float64) *float64 {
	if c == nil {
		return nil
	}
	return docmap.Float64(min(max(*c, 0), 1))
}

// preview shortens s for error messages.
func preview(s string) string {
	const n = 80
	if len(s) <= n {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%q...", s[:n])
}
