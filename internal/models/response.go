package models

// SearchResponse is the raw body of an autocomplete, nearby-search or
// reverse-geocoding call. Pointer slices distinguish an absent list from an
// empty one: which field is present decides how the body is interpreted.
type SearchResponse struct {
	Predictions  *[]ResultEntry   `json:"predictions"`
	Suggestions  *[]NewSuggestion `json:"suggestions"`
	Results      *[]ResultEntry   `json:"results"`
	Status       string           `json:"status"`
	ErrorMessage *string          `json:"error_message"`
}

// formattableText is the new API's {text, matches} wrapper
type formattableText struct {
	Text string `json:"text"`
}

// NewSuggestion is one element of a new API autocomplete "suggestions" list
type NewSuggestion struct {
	PlacePrediction *NewPlacePrediction `json:"placePrediction"`
}

// NewPlacePrediction is a place suggestion from the new Places API
type NewPlacePrediction struct {
	Place            string          `json:"place"`
	PlaceID          string          `json:"placeId"`
	Text             formattableText `json:"text"`
	StructuredFormat struct {
		MainText      formattableText `json:"mainText"`
		SecondaryText formattableText `json:"secondaryText"`
	} `json:"structuredFormat"`
	Types []string `json:"types"`
}

// ToEntry maps a new API prediction onto the legacy-shaped entry
func (p *NewPlacePrediction) ToEntry() ResultEntry {
	return ResultEntry{
		Description: p.Text.Text,
		PlaceID:     p.PlaceID,
		Reference:   p.PlaceID,
		StructuredFormatting: StructuredFormatting{
			MainText:      p.StructuredFormat.MainText.Text,
			SecondaryText: p.StructuredFormat.SecondaryText.Text,
		},
		Types: p.Types,
	}
}

// EntriesFromSuggestions keeps the place predictions of a suggestions list.
// Query predictions (no placePrediction) are skipped.
func EntriesFromSuggestions(suggestions []NewSuggestion) []ResultEntry {
	entries := make([]ResultEntry, 0, len(suggestions))
	for _, s := range suggestions {
		if s.PlacePrediction == nil {
			continue
		}
		entries = append(entries, s.PlacePrediction.ToEntry())
	}
	return entries
}

// LegacyDetailsResponse is the body of /place/details/json
type LegacyDetailsResponse struct {
	Status       string       `json:"status"`
	Result       *PlaceDetail `json:"result"`
	ErrorMessage string       `json:"error_message"`
}

type newLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (l newLatLng) point() Point {
	return Point{Lat: l.Latitude, Lng: l.Longitude}
}

// NewPlaceDetail is the body of GET /v1/places/{id}
type NewPlaceDetail struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress string     `json:"formattedAddress"`
	AdrFormatAddress string     `json:"adrFormatAddress"`
	Location         *newLatLng `json:"location"`
	Viewport         *struct {
		Low  newLatLng `json:"low"`
		High newLatLng `json:"high"`
	} `json:"viewport"`
	AddressComponents []struct {
		LongText  string   `json:"longText"`
		ShortText string   `json:"shortText"`
		Types     []string `json:"types"`
	} `json:"addressComponents"`
	Types            []string `json:"types"`
	GoogleMapsURI    string   `json:"googleMapsUri"`
	UTCOffsetMinutes int      `json:"utcOffsetMinutes"`
	ShortAddress     string   `json:"shortFormattedAddress"`
	PlusCode         *struct {
		GlobalCode   string `json:"globalCode"`
		CompoundCode string `json:"compoundCode"`
	} `json:"plusCode"`
}

// ToPlaceDetail converts the new API record into the legacy-shaped detail
func (r *NewPlaceDetail) ToPlaceDetail() *PlaceDetail {
	d := &PlaceDetail{
		AdrAddress:       r.AdrFormatAddress,
		FormattedAddress: r.FormattedAddress,
		ID:               r.ID,
		Name:             r.DisplayName.Text,
		PlaceID:          r.ID,
		Reference:        r.ID,
		Scope:            "GOOGLE",
		Types:            r.Types,
		URL:              r.GoogleMapsURI,
		UTCOffset:        r.UTCOffsetMinutes,
		Vicinity:         r.ShortAddress,
	}
	if r.Location != nil {
		d.Geometry.Location = r.Location.point()
	}
	if r.Viewport != nil {
		d.Geometry.Viewport = &Viewport{
			Northeast: r.Viewport.High.point(),
			Southwest: r.Viewport.Low.point(),
		}
	}
	for _, c := range r.AddressComponents {
		d.AddressComponents = append(d.AddressComponents, AddressComponent{
			LongName:  c.LongText,
			ShortName: c.ShortText,
			Types:     c.Types,
		})
	}
	if r.PlusCode != nil {
		d.PlusCode = &PlusCode{
			CompoundCode: r.PlusCode.CompoundCode,
			GlobalCode:   r.PlusCode.GlobalCode,
		}
	}
	return d
}
