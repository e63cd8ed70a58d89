package events

const (
	SubjectSettingsUpdated = "travel.settings.updated"

	// Wildcard over SubjectVenuesImported, any city.
	SubjectVenueImports = "travel.venue.import.*.completed"

	StreamName   = "COMPASS_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectRecoServed(category string) string { return "travel.reco." + category + ".served" }

func SubjectVenueCreated(venueID string) string { return "travel.venue." + venueID + ".created" }
func SubjectVenueUpdated(venueID string) string { return "travel.venue." + venueID + ".updated" }
func SubjectVenueDeleted(venueID string) string { return "travel.venue." + venueID + ".deleted" }
func SubjectVenuesImported(city string) string  { return "travel.venue.import." + city + ".completed" }
