package catalog

// Coordinates is a WGS84 point for map embeds.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is static reference data for a storefront, read-only at runtime.
type Location struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Address        string            `json:"address"`
	City           string            `json:"city"`
	State          string            `json:"state,omitempty"`
	ZipCode        string            `json:"zipCode"`
	Country        string            `json:"country"`
	Phone          string            `json:"phone"`
	Email          string            `json:"email"`
	Hours          map[string]string `json:"hours"`
	Services       []string          `json:"services"`
	IsMainLocation bool              `json:"isMainLocation"`
	Coordinates    *Coordinates      `json:"coordinates,omitempty"`
}

var locations = []Location{
	{
		ID:      "me-tri-ha",
		Name:    "Mễ Trì Hạ Location",
		Address: "123 Phố Mễ Trì Hạ, Phường Mễ Trì, Quận Nam Từ Liêm",
		City:    "Hà Nội",
		ZipCode: "100000",
		Country: "Việt Nam",
		Phone:   "+84 24 1234 5678",
		Email:   "metriha@bakery.com",
		Hours: map[string]string{
			"monday":    "7:00 AM - 9:00 PM",
			"tuesday":   "7:00 AM - 9:00 PM",
			"wednesday": "7:00 AM - 9:00 PM",
			"thursday":  "7:00 AM - 9:00 PM",
			"friday":    "7:00 AM - 9:00 PM",
			"saturday":  "7:00 AM - 9:00 PM",
			"sunday":    "7:00 AM - 9:00 PM",
		},
		Services:       []string{"Dine-in", "Takeout", "Delivery", "Catering"},
		IsMainLocation: true,
		Coordinates:    &Coordinates{Lat: 21.0138901, Lng: 105.7812791},
	},
}

// Locations returns every storefront location.
func Locations() []Location {
	return locations
}

// LocationByID returns the location with the given id, or nil.
func LocationByID(id string) *Location {
	for i := range locations {
		if locations[i].ID == id {
			return &locations[i]
		}
	}
	return nil
}
