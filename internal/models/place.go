package models

// CurrentLocationID is the identifier shared by every synthetic current-location entry.
const CurrentLocationID = "current_location"

// DefaultCurrentLocationLabel is shown when no label is configured.
const DefaultCurrentLocationLabel = "Current location"

// Point is a latitude/longitude pair
type Point struct {
	Lat float64 `json:"lat" koanf:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" koanf:"lng" validate:"gte=-180,lte=180"`
}

// Viewport is the recommended bounding box for displaying a place
type Viewport struct {
	Northeast Point `json:"northeast"`
	Southwest Point `json:"southwest"`
}

// Geometry holds the location of a place
type Geometry struct {
	Location Point     `json:"location" koanf:"location"`
	Viewport *Viewport `json:"viewport,omitempty" koanf:"viewport"`
}

// StructuredFormatting splits a prediction into a main and a secondary line
type StructuredFormatting struct {
	MainText      string `json:"main_text" koanf:"main_text"`
	SecondaryText string `json:"secondary_text" koanf:"secondary_text"`
}

// ResultEntry is one normalized suggestion row. Legacy predictions, geocoding
// results and nearby-search results decode into it directly; new API
// suggestions are mapped by NewSuggestion.ToEntry.
type ResultEntry struct {
	Description          string               `json:"description,omitempty"`
	PlaceID              string               `json:"place_id,omitempty"`
	Reference            string               `json:"reference,omitempty"`
	ID                   string               `json:"id,omitempty"`
	Name                 string               `json:"name,omitempty"`
	FormattedAddress     string               `json:"formatted_address,omitempty"`
	StructuredFormatting StructuredFormatting `json:"structured_formatting"`
	Types                []string             `json:"types,omitempty"`
	Geometry             *Geometry            `json:"geometry,omitempty"`

	IsPredefinedPlace bool `json:"is_predefined_place,omitempty"`
	IsCurrentLocation bool `json:"is_current_location,omitempty"`
}

// Key returns the identity used to match a row against pending requests.
func (e ResultEntry) Key() string {
	if e.IsCurrentLocation {
		return CurrentLocationID
	}
	if e.PlaceID != "" {
		return e.PlaceID
	}
	return "desc:" + e.Description
}

// HasType reports whether the entry carries the given place type
func (e ResultEntry) HasType(t string) bool {
	for _, et := range e.Types {
		if et == t {
			return true
		}
	}
	return false
}

// PlaceData is the summary handed to a selection callback
type PlaceData struct {
	Description          string               `json:"description"`
	ID                   string               `json:"id"`
	PlaceID              string               `json:"place_id"`
	Reference            string               `json:"reference"`
	StructuredFormatting StructuredFormatting `json:"structured_formatting"`
}

// ToPlaceData converts an entry to the callback summary shape.
func (e ResultEntry) ToPlaceData() PlaceData {
	return PlaceData{
		Description:          e.Description,
		ID:                   e.ID,
		PlaceID:              e.PlaceID,
		Reference:            e.Reference,
		StructuredFormatting: e.StructuredFormatting,
	}
}

// ToPlaceDetail builds a detail record from what the entry already knows.
// Used for predefined places and the current location, which never hit the
// details endpoint.
func (e ResultEntry) ToPlaceDetail() *PlaceDetail {
	d := &PlaceDetail{
		FormattedAddress: e.FormattedAddress,
		ID:               e.ID,
		Name:             e.Name,
		PlaceID:          e.PlaceID,
		Reference:        e.Reference,
		Scope:            "GOOGLE",
		Types:            e.Types,
	}
	if e.Geometry != nil {
		d.Geometry = *e.Geometry
	}
	return d
}

// AddressComponent is one part of a structured address
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// PlusCode is an Open Location Code reference
type PlusCode struct {
	CompoundCode string `json:"compound_code"`
	GlobalCode   string `json:"global_code"`
}

// PlaceDetail is the normalized detail record for a resolved place
type PlaceDetail struct {
	AddressComponents []AddressComponent `json:"address_components,omitempty"`
	AdrAddress        string             `json:"adr_address,omitempty"`
	FormattedAddress  string             `json:"formatted_address"`
	Geometry          Geometry           `json:"geometry"`
	Icon              string             `json:"icon,omitempty"`
	ID                string             `json:"id,omitempty"`
	Name              string             `json:"name"`
	PlaceID           string             `json:"place_id"`
	PlusCode          *PlusCode          `json:"plus_code,omitempty"`
	Reference         string             `json:"reference,omitempty"`
	Scope             string             `json:"scope,omitempty"`
	Types             []string           `json:"types,omitempty"`
	URL               string             `json:"url,omitempty"`
	UTCOffset         int                `json:"utc_offset,omitempty"`
	Vicinity          string             `json:"vicinity,omitempty"`
}

// PredefinedPlace is a static shortcut supplied by the caller
type PredefinedPlace struct {
	Description          string               `json:"description" koanf:"description" validate:"required"`
	PlaceID              string               `json:"place_id,omitempty" koanf:"place_id"`
	Name                 string               `json:"name,omitempty" koanf:"name"`
	FormattedAddress     string               `json:"formatted_address,omitempty" koanf:"formatted_address"`
	Types                []string             `json:"types,omitempty" koanf:"types"`
	Geometry             Geometry             `json:"geometry" koanf:"geometry"`
	StructuredFormatting StructuredFormatting `json:"structured_formatting" koanf:"structured_formatting"`
}

// Valid reports whether the place can be shown (it needs a description)
func (p PredefinedPlace) Valid() bool {
	return p.Description != ""
}

// ToEntry converts the place into a row tagged as predefined
func (p PredefinedPlace) ToEntry() ResultEntry {
	geom := p.Geometry
	return ResultEntry{
		Description:          p.Description,
		PlaceID:              p.PlaceID,
		Reference:            p.PlaceID,
		Name:                 p.Name,
		FormattedAddress:     p.FormattedAddress,
		StructuredFormatting: p.StructuredFormatting,
		Types:                p.Types,
		Geometry:             &geom,
		IsPredefinedPlace:    true,
	}
}

// CurrentLocationEntry returns the synthetic row placed at the top of the list.
// pos is nil until the position is known.
func CurrentLocationEntry(label string, pos *Point) ResultEntry {
	if label == "" {
		label = DefaultCurrentLocationLabel
	}
	e := ResultEntry{
		Description:          label,
		PlaceID:              CurrentLocationID,
		Reference:            CurrentLocationID,
		ID:                   CurrentLocationID,
		StructuredFormatting: StructuredFormatting{MainText: label},
		IsCurrentLocation:    true,
	}
	if pos != nil {
		e.Geometry = &Geometry{Location: *pos}
	}
	return e
}

// ResolvePredefined returns the static record whose description matches the
// entry. Entries that are not predefined, or have no match, are returned as-is.
func ResolvePredefined(entry ResultEntry, places []PredefinedPlace) ResultEntry {
	if !entry.IsPredefinedPlace || entry.Description == "" {
		return entry
	}
	for _, p := range places {
		if p.Description != "" && p.Description == entry.Description {
			return p.ToEntry()
		}
	}
	return entry
}

// FilterByTypes keeps entries carrying at least one of the given types.
// An empty filter keeps everything.
func FilterByTypes(entries []ResultEntry, types []string) []ResultEntry {
	if len(types) == 0 {
		return entries
	}
	filtered := make([]ResultEntry, 0, len(entries))
	for _, e := range entries {
		for _, t := range types {
			if e.HasType(t) {
				filtered = append(filtered, e)
				break
			}
		}
	}
	return filtered
}

// Describe returns the display text of an entry: description, then
// formatted address, then name.
func Describe(e ResultEntry) string {
	switch {
	case e.Description != "":
		return e.Description
	case e.FormattedAddress != "":
		return e.FormattedAddress
	default:
		return e.Name
	}
}
