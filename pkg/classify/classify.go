// Package classify maps provider-level failures to a closed set of
// user-facing error categories. The provider surfaces errors as free
// text, so classification is substring matching against the markers
// the vendor is known to emit. Fragile by nature; revisit if the
// provider ever exposes structured error codes.
package classify

import (
	"strings"
)

type Category string

const (
	MissingKey      Category = "MISSING_KEY"
	APINotEnabled   Category = "API_NOT_ENABLED"
	BillingRequired Category = "BILLING_REQUIRED"
	InvalidKey      Category = "INVALID_KEY"
	Unknown         Category = "UNKNOWN"
)

// Classify inspects the error text in priority order; first match
// wins. A nil error classifies as Unknown with empty detail.
func Classify(err error) Category {
	if err == nil {
		return Unknown
	}
	text := err.Error()

	switch {
	case contains(text, "MISSING_KEY"):
		return MissingKey
	case contains(text, "403", "PERMISSION_DENIED", "User has not enabled the"):
		return APINotEnabled
	case contains(text, "BILLING_DISABLED", "enable billing"):
		return BillingRequired
	case contains(text, "400", "INVALID_ARGUMENT", "API key not valid"):
		return InvalidKey
	default:
		return Unknown
	}
}

func contains(text string, markers ...string) bool {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

var userMessages = map[string]map[Category]string{
	"en": {
		MissingKey:      "Mea culpa. The API credential is missing. Please configure a key before asking again.",
		APINotEnabled:   "Mea culpa. The generative language API is not enabled for this credential.",
		BillingRequired: "Mea culpa. Billing is not enabled for this project, and the service refuses to answer.",
		InvalidKey:      "Mea culpa. The configured API key was rejected as invalid.",
		Unknown:         "Mea culpa. I encountered an error retrieving the requested information. Please try again.",
	},
	"fr": {
		MissingKey:      "Mea culpa. La clef d'API est absente. Veuillez configurer une clef avant de réessayer.",
		APINotEnabled:   "Mea culpa. L'API de génération n'est pas activée pour cette clef.",
		BillingRequired: "Mea culpa. La facturation n'est pas activée pour ce projet ; le service refuse de répondre.",
		InvalidKey:      "Mea culpa. La clef d'API configurée a été refusée.",
		Unknown:         "Mea culpa. J'ai rencontré une erreur. Veuillez réessayer.",
	},
}

// UserMessage returns the fixed, language-selected message for a
// category. Unknown appends the raw technical detail so the failure is
// never silently swallowed. Unrecognized languages fall back to
// English.
func UserMessage(cat Category, language, detail string) string {
	msgs, ok := userMessages[language]
	if !ok {
		msgs = userMessages["en"]
	}
	msg, ok := msgs[cat]
	if !ok {
		msg = msgs[Unknown]
	}
	if cat == Unknown && strings.TrimSpace(detail) != "" {
		return msg + " (" + strings.TrimSpace(detail) + ")"
	}
	return msg
}
