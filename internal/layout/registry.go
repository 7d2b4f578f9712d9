package layout

// Family describes one fixed-style layout family. The set is built once
// and never mutated at runtime.
type Family struct {
	Tag          string
	Receipt      bool
	DefaultTitle string
	DefaultBody  string
}

const (
	TagClassic = "classic"
	TagModern  = "modern"
	TagReceipt = "receipt"
	TagVisual  = "visual"
)

var families = map[string]Family{
	TagClassic: {
		Tag:          TagClassic,
		DefaultTitle: "Certificate of Completion",
		DefaultBody:  "has successfully completed the course",
	},
	TagModern: {
		Tag:          TagModern,
		DefaultTitle: "Certificate of Achievement",
		DefaultBody:  "has successfully completed",
	},
	TagReceipt: {
		Tag:          TagReceipt,
		Receipt:      true,
		DefaultTitle: "Payment Receipt",
		DefaultBody:  "in payment for",
	},
}

// FamilyByTag looks up a fixed-style family. Visual templates are not
// families; they go through the canvas path instead.
func FamilyByTag(tag string) (Family, bool) {
	f, ok := families[tag]
	return f, ok
}

// IsVisual reports whether the tag selects the declarative canvas path.
func IsVisual(tag string) bool { return tag == TagVisual }

// KnownTag reports whether the tag names any renderable layout.
func KnownTag(tag string) bool {
	if IsVisual(tag) {
		return true
	}
	_, ok := families[tag]
	return ok
}
