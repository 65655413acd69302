package docmap

import "strings"

// FallbackSubmoduleTitle names the submodule created for content that
// appears under a module before any submodule heading.
const FallbackSubmoduleTitle = "General"

// Section is one top-level heading (module) of a page with its submodules.
type Section struct {
	Title      string      `json:"title"`
	Submodules []Submodule `json:"submodules"`
}

// Submodule is a finer-grained topic nested under a module.
// Content holds rendered paragraphs, bullet groups and sub-heading markers.
type Submodule struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// SectionExtractor parses a page into modules and submodules.
type SectionExtractor interface {
	// Extract returns the page's sections in document order.
	Extract(html string) ([]Section, error)
}

// BuilderState is the state of a SectionBuilder.
type BuilderState int

const (
	StateNoModule BuilderState = iota
	StateInModule
	StateInSubmodule
)

func (s BuilderState) String() string {
	switch s {
	case StateInModule:
		return "in-module-no-submodule"
	case StateInSubmodule:
		return "in-module-with-submodule"
	default:
		return "no-module"
	}
}

// SectionBuilder assembles sections from headings and content blocks fed
// in document order. Modules are keyed by title: a repeated level-1 title
// clears the earlier module's submodules but keeps its position.
type SectionBuilder struct {
	sections  []Section
	index     map[string]int
	module    int
	submodule int
}

// NewSectionBuilder returns a builder in the no-module state.
func NewSectionBuilder() *SectionBuilder {
	return &SectionBuilder{
		index:     make(map[string]int),
		module:    -1,
		submodule: -1,
	}
}

// State reports the current state.
func (b *SectionBuilder) State() BuilderState {
	switch {
	case b.module < 0:
		return StateNoModule
	case b.submodule < 0:
		return StateInModule
	default:
		return StateInSubmodule
	}
}

// Heading applies a heading of the given level (1-3). Other levels are ignored.
func (b *SectionBuilder) Heading(level int, title string) {
	switch level {
	case 1:
		b.submodule = -1
		if title == "" {
			b.module = -1
			return
		}
		if idx, ok := b.index[title]; ok {
			b.sections[idx].Submodules = nil
			b.module = idx
			return
		}
		b.index[title] = len(b.sections)
		b.module = len(b.sections)
		b.sections = append(b.sections, Section{Title: title})
	case 2:
		if b.module < 0 {
			return
		}
		b.startSubmodule(title, nil)
	case 3:
		if b.module < 0 {
			return
		}
		if b.submodule < 0 {
			b.startSubmodule(title, nil)
			return
		}
		b.appendContent("### " + title)
	}
}

// Content applies a rendered paragraph or list. Content outside a module is
// dropped; content before the first submodule opens a "General" submodule.
func (b *SectionBuilder) Content(text string) {
	if b.module < 0 || text == "" {
		return
	}
	if b.submodule < 0 {
		b.startSubmodule(FallbackSubmoduleTitle, []string{text})
		return
	}
	b.appendContent(text)
}

// Sections returns the sections built so far.
func (b *SectionBuilder) Sections() []Section {
	return b.sections
}

func (b *SectionBuilder) startSubmodule(title string, content []string) {
	sec := &b.sections[b.module]
	sec.Submodules = append(sec.Submodules, Submodule{Title: title, Content: content})
	b.submodule = len(sec.Submodules) - 1
}

func (b *SectionBuilder) appendContent(text string) {
	sub := &b.sections[b.module].Submodules[b.submodule]
	sub.Content = append(sub.Content, text)
}

// FormatSections renders sections as the plain text sent to the model:
// each module title on its own line, then each submodule title followed by
// its content lines and a blank line.
func FormatSections(sections []Section) string {
	var sb strings.Builder
	for _, sec := range sections {
		sb.WriteString(sec.Title)
		sb.WriteString("\n")
		for _, sub := range sec.Submodules {
			sb.WriteString(sub.Title)
			sb.WriteString("\n")
			sb.WriteString(strings.Join(sub.Content, "\n"))
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
