package template

import "fmt"

// Template ID constants.
// Use these instead of string literals for compile-time safety.
const (
	Executive   = "executive"
	Detailed    = "detailed"
	ActionItems = "actionItems"
)

// Template is an immutable instruction preset.
type Template struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
}

// ---------------------------------------------------------------------------
// Name type - represents a validated template ID
// ---------------------------------------------------------------------------

// Name represents a validated template ID.
// Zero value means "no template selected" and must not be used with Template().
// Use ParseName to create from user input, or the pre-parsed constants.
type Name struct {
	id string
}

// Pre-parsed template names for use in code.
var (
	ExecutiveName   = Name{id: Executive}
	DetailedName    = Name{id: Detailed}
	ActionItemsName = Name{id: ActionItems}
)

// ParseName validates and parses a template ID string.
// Matching is case-sensitive. Returns ErrUnknown if the ID is not recognized.
func ParseName(s string) (Name, error) {
	if s == "" {
		return Name{}, fmt.Errorf("template name cannot be empty: %w", ErrUnknown)
	}
	if _, ok := index[s]; !ok {
		return Name{}, fmt.Errorf("unknown template %q (valid: %v): %w", s, IDs(), ErrUnknown)
	}
	return Name{id: s}, nil
}

// MustParseName parses a template ID, panicking if invalid.
// Use only for compile-time constants and tests.
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the template ID. Returns empty string for zero value.
func (n Name) String() string {
	return n.id
}

// IsZero reports whether no template is selected.
func (n Name) IsZero() bool {
	return n.id == ""
}

// Template returns the preset for this name.
// Panics if called on zero value.
func (n Name) Template() Template {
	if n.id == "" {
		panic("template.Name.Template called on zero value")
	}
	return catalog[index[n.id]]
}

// Prompt returns the instruction text for this name.
// Panics if called on zero value.
func (n Name) Prompt() string {
	return n.Template().Prompt
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

// catalog holds the presets in display order.
// Prompts are versioned with the binary; update requires rebuild.
var catalog = []Template{
	{
		ID:          Executive,
		Title:       "Executive Summary",
		Description: "High-level overview for leadership",
		Prompt:      executivePrompt,
	},
	{
		ID:          Detailed,
		Title:       "Detailed Summary",
		Description: "Comprehensive breakdown",
		Prompt:      detailedPrompt,
	},
	{
		ID:          ActionItems,
		Title:       "Action Items",
		Description: "Focus on tasks and next steps",
		Prompt:      actionItemsPrompt,
	},
}

// index maps template IDs to their position in catalog.
var index = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, t := range catalog {
		m[t.ID] = i
	}
	return m
}()

// All returns every preset in display order.
func All() []Template {
	result := make([]Template, len(catalog))
	copy(result, catalog)
	return result
}

// IDs returns the template IDs in display order.
func IDs() []string {
	result := make([]string, len(catalog))
	for i, t := range catalog {
		result[i] = t.ID
	}
	return result
}

// Lookup returns the preset with the given ID.
// Returns ErrUnknown if the ID is not recognized.
func Lookup(id string) (Template, error) {
	n, err := ParseName(id)
	if err != nil {
		return Template{}, err
	}
	return n.Template(), nil
}

const executivePrompt = "Create an executive summary with key insights, strategic decisions, and high-level action items. Focus on business impact and strategic implications."

const detailedPrompt = "Provide a detailed summary organized by topics discussed, including context, decisions made, and follow-up items. Include participant insights and detailed action items."

const actionItemsPrompt = "Extract and organize all action items, deadlines, and responsibilities. Format as a clear task list with owners and due dates where mentioned."
