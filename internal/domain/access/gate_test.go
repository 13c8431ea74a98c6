package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibleSections_FallbackWhenNotLoaded(t *testing.T) {
	got := IDs(VisibleSections(Identity{Loaded: false, Features: []string{"ia"}}))

	assert.Equal(t, []string{"dashboard", "clients", "rdv", "devis", "factures", "parametres"}, got)
}

func TestVisibleSections_MasterOrderPreserved(t *testing.T) {
	got := IDs(VisibleSections(Identity{
		Loaded:   true,
		Features: []string{"fichiers", "ia", "dashboard", "unknown"},
		Role:     RoleUser,
	}))

	assert.Equal(t, []string{"dashboard", "ia", "fichiers", "parametres"}, got)
}

func TestVisibleSections_SettingsAlwaysPresent(t *testing.T) {
	got := IDs(VisibleSections(Identity{Loaded: true}))

	assert.Equal(t, []string{"parametres"}, got)
}

func TestVisibleSections_UsersOnlyForAdmin(t *testing.T) {
	admin := IDs(VisibleSections(Identity{Loaded: true, Features: []string{"dashboard"}, Role: RoleAdmin}))
	assert.Equal(t, []string{"dashboard", "users", "parametres"}, admin)

	user := IDs(VisibleSections(Identity{Loaded: true, Features: []string{"dashboard", "users"}, Role: RoleUser}))
	assert.Equal(t, []string{"dashboard", "parametres"}, user)
}

func TestVisibleSections_Idempotent(t *testing.T) {
	id := Identity{Loaded: true, Features: []string{"avis", "devis", "crm"}, Role: RoleAdmin}

	assert.Equal(t, VisibleSections(id), VisibleSections(id))
}

func TestAllows(t *testing.T) {
	id := Identity{Loaded: true, Features: []string{"devis"}, Role: RoleUser}

	assert.True(t, Allows(id, SectionQuotes))
	assert.True(t, Allows(id, SectionSettings))
	assert.False(t, Allows(id, SectionInvoices))
	assert.False(t, Allows(id, SectionUsers))
}

func TestMasterMenu(t *testing.T) {
	menu := MasterMenu()
	assert.Len(t, menu, 15)
	assert.Equal(t, "Tableau de bord", menu[0].Label)

	menu[0].Label = "changed"
	assert.Equal(t, "Tableau de bord", MasterMenu()[0].Label)

	assert.True(t, IsKnown("linkedin_auto"))
	assert.False(t, IsKnown("crm"))
}
