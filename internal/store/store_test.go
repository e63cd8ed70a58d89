package store

import (
	"testing"
)

func TestVenueTypeValues(t *testing.T) {
	types := []VenueType{VenueHotel, VenueRestaurant, VenueActivity}
	expected := []string{"hotel", "restaurant", "activity"}
	for i, vt := range types {
		if string(vt) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], vt)
		}
		if !ValidVenueType(vt) {
			t.Errorf("expected %s to be valid", vt)
		}
	}
	if ValidVenueType("museum") {
		t.Error("expected 'museum' to be invalid")
	}
	if ValidVenueType("") {
		t.Error("expected empty type to be invalid")
	}
}

func TestVenueFilterDefaults(t *testing.T) {
	f := VenueFilter{}
	if f.Limit != 0 {
		t.Errorf("expected 0 default limit, got %d", f.Limit)
	}
	if f.Type != nil {
		t.Error("expected nil type filter")
	}
	if f.MinRating != nil {
		t.Error("expected nil rating filter")
	}
}

func TestVenueNullableFields(t *testing.T) {
	v := Venue{Name: "Piata Sfatului Walk", Type: VenueActivity}
	if v.Latitude != nil || v.Longitude != nil {
		t.Error("expected nil coordinates by default")
	}
	if v.PriceLevel != nil || v.Rating != nil {
		t.Error("expected nil price level and rating by default")
	}
}
