package redact

// Built-in sensitive data patterns. Matching happens against the text of
// individual OCR words, so the patterns target tokens rather than prose.
var defaultPatterns = map[string]string{
	"email":       `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,
	"phone":       `\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`,
	"credit_card": `\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`,
	"ssn":         `\b\d{3}-\d{2}-\d{4}\b`,
}

// Template bundles the patterns for a compliance context.
type Template struct {
	Name        string
	Description string
	Patterns    map[string]string
}

var templates = map[string]Template{
	"medical": {
		Name:        "medical",
		Description: "HIPAA-compliant medical record redaction",
		Patterns: map[string]string{
			"mrn": `\b[A-Z]{2}\d{6,8}\b`,
			"dob": `\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`,
			"ssn": `\b\d{3}-\d{2}-\d{4}\b`,
		},
	},
	"financial": {
		Name:        "financial",
		Description: "PCI-DSS financial data redaction",
		Patterns: map[string]string{
			"credit_card": `\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`,
			"cvv":         `\b\d{3,4}\b`,
			"account":     `\b\d{8,17}\b`,
			"routing":     `\b\d{9}\b`,
		},
	},
	"government": {
		Name:        "government",
		Description: "Government ID redaction",
		Patterns: map[string]string{
			"ssn":      `\b\d{3}-\d{2}-\d{4}\b`,
			"passport": `\b[A-Z]{1,2}\d{6,9}\b`,
			"license":  `\b[A-Z]\d{7,8}\b`,
		},
	},
	"corporate": {
		Name:        "corporate",
		Description: "Corporate internal data redaction",
		Patterns: map[string]string{
			"employee_id": `\bEMP\d{4,6}\b`,
			"internal_id": `\b[A-Z]{2,3}-\d{4,6}\b`,
		},
	},
	"gdpr": {
		Name:        "gdpr",
		Description: "EU GDPR compliance redaction",
		Patterns: map[string]string{
			"email": `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,
			"phone": `\b\+?\d{1,3}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}\b`,
			"ip":    `\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`,
		},
	},
}

// DefaultPatternNames lists the built-in pattern identifiers.
func DefaultPatternNames() []string {
	names := make([]string, 0, len(defaultPatterns))
	for name := range defaultPatterns {
		names = append(names, name)
	}
	return names
}

// Templates returns the available privacy templates keyed by name.
func Templates() map[string]Template {
	out := make(map[string]Template, len(templates))
	for k, v := range templates {
		out[k] = v
	}
	return out
}
