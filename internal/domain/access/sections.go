package access

// Section is one entry of the dashboard menu.
type Section struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

const (
	SectionDashboard    = "dashboard"
	SectionClients      = "clients"
	SectionWhatsapp     = "whatsapp"
	SectionAppointments = "rdv"
	SectionQuotes       = "devis"
	SectionInvoices     = "factures"
	SectionReviews      = "avis"
	SectionAI           = "ia"
	SectionAllovoisin   = "allovoisin"
	SectionProspection  = "prospection"
	SectionFacebook     = "facebook"
	SectionLinkedIn     = "linkedin_auto"
	SectionFiles        = "fichiers"
	SectionUsers        = "users"
	SectionSettings     = "parametres"
)

// masterMenu is the full menu in display order.
var masterMenu = []Section{
	{SectionDashboard, "Tableau de bord"},
	{SectionClients, "CRM Clients"},
	{SectionWhatsapp, "WhatsApp"},
	{SectionAppointments, "Rendez-vous"},
	{SectionQuotes, "Devis"},
	{SectionInvoices, "Factures"},
	{SectionReviews, "Avis Clients"},
	{SectionAI, "Visualisation IA"},
	{SectionAllovoisin, "Opportunités"},
	{SectionProspection, "Prospection"},
	{SectionFacebook, "Auto-Post FB"},
	{SectionLinkedIn, "Auto-Post LinkedIn"},
	{SectionFiles, "Fichiers"},
	{SectionUsers, "Utilisateurs"},
	{SectionSettings, "Paramètres"},
}

// FallbackFeatures is used whenever the profile is not available.
var FallbackFeatures = []string{
	SectionDashboard,
	SectionQuotes,
	SectionInvoices,
	SectionClients,
	SectionAppointments,
	SectionSettings,
}

// MasterMenu returns a copy of the full menu.
func MasterMenu() []Section {
	out := make([]Section, len(masterMenu))
	copy(out, masterMenu)
	return out
}

// IsKnown reports whether id names a menu section.
func IsKnown(id string) bool {
	for _, s := range masterMenu {
		if s.ID == id {
			return true
		}
	}
	return false
}
