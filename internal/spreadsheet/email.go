package spreadsheet

import "strings"

// Providers whose addresses commonly arrive with a truncated domain.
var knownProviders = []string{"gmail", "yahoo", "outlook", "hotmail", "icloud"}

// NormalizeEmail lower-cases, trims, and applies light fix-ups for
// obviously truncated provider domains (user@gmail -> user@gmail.com).
// It deliberately avoids heavier guessing; an empty input stays empty
// since recipient email is optional.
func NormalizeEmail(email string) string {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return ""
	}

	if user, domain, found := strings.Cut(e, "@"); found {
		if !strings.Contains(domain, ".") {
			for _, p := range knownProviders {
				if strings.HasPrefix(domain, p) {
					return user + "@" + domain + ".com"
				}
			}
		}
		return e
	}

	// No @ at all: addresses like "user.gmail.com" get the @ restored
	// before the provider.
	for _, p := range knownProviders {
		marker := "." + p
		if idx := strings.Index(e, marker); idx > 0 {
			rest := e[idx+len(marker):]
			if rest == "" {
				rest = ".com"
			}
			return e[:idx] + "@" + p + rest
		}
	}

	return e
}
