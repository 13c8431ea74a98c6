package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "Europe/Paris"

var business = Location(DefaultTimezone)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to DefaultTimezone and then UTC.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// SetBusiness changes the zone used by Now and FrenchDate.
func SetBusiness(tz string) {
	business = Location(tz)
}

func Business() *time.Location {
	return business
}

func Now() time.Time {
	return time.Now().In(business)
}

// FrenchDate formats t as dd/mm/yyyy in the business zone.
func FrenchDate(t time.Time) string {
	return t.In(business).Format("02/01/2006")
}
