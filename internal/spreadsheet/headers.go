package spreadsheet

import "strings"

// Canonical column names after header mapping.
const (
	ColRecipientName  = "recipient_name"
	ColRecipientEmail = "recipient_email"
	ColCourseTitle    = "course_title"
	ColIssueDate      = "issue_date"
	ColIssuerName     = "issuer_name"
	ColSignature      = "signature"
	ColAmount         = "amount"
)

// RequiredColumns must all be present after mapping or the upload is
// rejected outright.
var RequiredColumns = []string{ColRecipientName, ColCourseTitle, ColIssueDate}

// headerSynonyms maps each canonical field to the header spellings seen
// in real uploads.
var headerSynonyms = map[string][]string{
	ColRecipientName:  {"name", "student", "student_name", "full_name", "recipient", "participant", "attendee"},
	ColRecipientEmail: {"email", "email_address", "e-mail", "mail", "contact"},
	ColCourseTitle:    {"course", "program", "event", "title", "class", "certification", "award", "description"},
	ColIssueDate:      {"date", "issued_on", "award_date", "completion_date", "date_issued"},
	ColIssuerName:     {"issuer", "issued_by", "organization", "school", "company", "signed_by"},
	ColSignature:      {"sign", "sig", "signature_text", "auth_sign"},
	ColAmount:         {"cost", "price", "fee", "payment", "total"},
}

var synonymLookup = buildSynonymLookup()

func buildSynonymLookup() map[string]string {
	lookup := make(map[string]string)
	for canonical, variants := range headerSynonyms {
		lookup[canonical] = canonical
		for _, v := range variants {
			lookup[v] = canonical
		}
	}
	return lookup
}

// NormalizeHeader lower-cases and underscore-joins a raw header, then
// maps it through the synonym table. Headers with no mapping keep their
// normalized spelling; those columns pass through into extra fields.
func NormalizeHeader(raw string) (name string, canonical bool) {
	h := strings.ToLower(strings.TrimSpace(raw))
	h = strings.Join(strings.Fields(h), "_")
	if mapped, ok := synonymLookup[h]; ok {
		return mapped, true
	}
	return h, false
}
