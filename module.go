package docmap

import (
	"context"
	"maps"
	"unicode/utf8"
)

// DefaultConfidence is assumed for records that carry no confidence score.
const DefaultConfidence = 0.5

// ErrorModule is the module name of the sentinel record that stands in for
// a failed inference.
const ErrorModule = "Error"

// ModuleRecord is one module inferred by the model from a single chunk.
// JSON keys follow the schema given to the model; decoding is
// case-insensitive so lower-case variants are accepted as well.
type ModuleRecord struct {
	Module      string                   `json:"module"`
	Description string                   `json:"Description"`
	Confidence  *float64                 `json:"Confidence,omitempty"`
	Submodules  map[string]SubmoduleInfo `json:"Submodules"`
}

// SubmoduleInfo describes one submodule of a module.
type SubmoduleInfo struct {
	Description string   `json:"description"`
	Confidence  *float64 `json:"confidence,omitempty"`
}

// MergedModule is the reconciled view of a module across all chunks of a site.
type MergedModule struct {
	Module      string                   `json:"module"`
	Description string                   `json:"Description"`
	Confidence  float64                  `json:"Confidence"`
	Submodules  map[string]SubmoduleInfo `json:"Submodules"`
}

// Float64 returns a pointer to v, for building records with a confidence.
func Float64(v float64) *float64 {
	return &v
}

// ErrorRecord returns the sentinel record describing a failed inference.
func ErrorRecord(message string) ModuleRecord {
	return ModuleRecord{
		Module:      ErrorModule,
		Description: message,
		Submodules:  map[string]SubmoduleInfo{},
	}
}

// InferenceKind tags the outcome of a model call.
type InferenceKind int

const (
	// InferenceOK means the response parsed into valid records.
	InferenceOK InferenceKind = iota
	// InferenceMalformed means the model answered with unusable output.
	InferenceMalformed
	// InferenceFailed means the model could not be called.
	InferenceFailed
)

func (k InferenceKind) String() string {
	switch k {
	case InferenceOK:
		return "ok"
	case InferenceMalformed:
		return "malformed"
	default:
		return "failed"
	}
}

// Inference is the tagged result of inferring modules from one chunk.
type Inference struct {
	Kind    InferenceKind
	Records []ModuleRecord // set for InferenceOK
	Raw     string         // raw response for InferenceMalformed
	Err     error          // reason for InferenceMalformed and InferenceFailed
}

// OK reports whether the inference produced usable records.
func (inf Inference) OK() bool {
	return inf.Kind == InferenceOK
}

// Modules returns the inferred records, or a single sentinel Error record
// when the inference did not succeed.
func (inf Inference) Modules() []ModuleRecord {
	if inf.OK() {
		return inf.Records
	}
	msg := ErrorMessage(inf.Err)
	if msg == "" {
		msg = inf.Kind.String() + " inference"
	}
	return []ModuleRecord{ErrorRecord(msg)}
}

// Completer sends a prompt to a language model and returns its raw reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Inferrer infers module records from a chunk of documentation text.
// Failures are reported through the Inference kind, never as a panic.
type Inferrer interface {
	Infer(ctx context.Context, text string) Inference
}

// Cache stores inference results keyed by a hash of the chunk text.
type Cache interface {
	// Get returns the records stored for text.
	// Returns ENOTFOUND if nothing is stored.
	Get(ctx context.Context, text string) ([]ModuleRecord, error)

	// Put stores records for text, replacing any previous entry.
	Put(ctx context.Context, text string, records []ModuleRecord) error
}

// ModuleWriter persists the merged modules of a site.
type ModuleWriter interface {
	// WriteModules writes modules for siteURL and returns where they went.
	WriteModules(ctx context.Context, siteURL string, modules []MergedModule) (string, error)
}

// MergeModules reduces per-chunk records into one entry per module name,
// in order of first appearance. Submodules are unioned with later records
// overwriting same-named entries, the highest confidence wins, and a
// description is replaced only by a strictly longer one.
func MergeModules(records []ModuleRecord) []MergedModule {
	var merged []MergedModule
	index := make(map[string]int)

	for _, rec := range records {
		if rec.Module == "" {
			continue
		}
		confidence := DefaultConfidence
		if rec.Confidence != nil {
			confidence = *rec.Confidence
		}

		idx, ok := index[rec.Module]
		if !ok {
			subs := maps.Clone(rec.Submodules)
			if subs == nil {
				subs = make(map[string]SubmoduleInfo)
			}
			index[rec.Module] = len(merged)
			merged = append(merged, MergedModule{
				Module:      rec.Module,
				Description: rec.Description,
				Confidence:  confidence,
				Submodules:  subs,
			})
			continue
		}

		m := &merged[idx]
		maps.Copy(m.Submodules, rec.Submodules)
		m.Confidence = max(m.Confidence, confidence)
		if utf8.RuneCountInString(rec.Description) > utf8.RuneCountInString(m.Description) {
			m.Description = rec.Description
		}
	}

	return merged
}
