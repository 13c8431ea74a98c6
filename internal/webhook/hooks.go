// Package webhook calls the external workflow platform.
//
// Every call is a single best-effort POST: callers commit their local write
// first and only report the Result, they never undo anything because of it.
package webhook

// Hook identifies one workflow endpoint. Keys are the configuration entries
// consulted in order before falling back to DefaultPath.
type Hook struct {
	Name        string
	Keys        []string
	DefaultPath string
}

var (
	HookQuote = Hook{
		Name: "quote", Keys: []string{"devis_webhook"}, DefaultPath: "/generer-devis",
	}
	HookInvoice = Hook{
		Name: "invoice", Keys: []string{"facture_webhook"}, DefaultPath: "/devis-to-facture",
	}
	HookReview = Hook{
		Name: "review", Keys: []string{"avis_webhook"}, DefaultPath: "/demande-avis-client",
	}
	HookAI = Hook{
		Name: "ai", Keys: []string{"ia_webhook"}, DefaultPath: "/visualisation-ia",
	}
	HookAllovoisin = Hook{
		Name: "allovoisin", Keys: []string{"allovoisin_webhook"}, DefaultPath: "/allovoisin-leads",
	}
	HookFacebookProspects = Hook{
		Name: "facebook_prospects", Keys: []string{"facebook_webhook"}, DefaultPath: "/facebook-prospects",
	}
	HookFacebookPost = Hook{
		Name:        "facebook_post",
		Keys:        []string{"facebook_autopost_webhook", "facebook_webhook"},
		DefaultPath: "/facebook-autopost",
	}
	HookLinkedIn = Hook{
		Name: "linkedin", Keys: []string{"linkedin_webhook"}, DefaultPath: "/linkedin-post-secure",
	}
)

// BaseKey is the settings entry holding the platform base URL.
const BaseKey = "webhook_base"

// PathKeys lists every per-feature path entry accepted in settings and
// profile overrides.
func PathKeys() []string {
	seen := map[string]bool{}
	var out []string
	for _, h := range []Hook{
		HookQuote, HookInvoice, HookReview, HookAI, HookAllovoisin,
		HookFacebookProspects, HookFacebookPost, HookLinkedIn,
	} {
		for _, k := range h.Keys {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}
