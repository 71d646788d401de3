package testutil

// Sample JSON responses for API testing

// SampleLegacyAutocomplete is a legacy autocomplete response with two predictions
const SampleLegacyAutocomplete = `{
	"predictions": [
		{
			"description": "Köln Hbf, Trankgasse, Köln, Germany",
			"place_id": "ChIJ-koeln-hbf",
			"reference": "ChIJ-koeln-hbf",
			"structured_formatting": {
				"main_text": "Köln Hbf",
				"secondary_text": "Trankgasse, Köln, Germany"
			},
			"types": ["train_station", "transit_station", "establishment"]
		},
		{
			"description": "Köln, Germany",
			"place_id": "ChIJ-koeln",
			"reference": "ChIJ-koeln",
			"structured_formatting": {
				"main_text": "Köln",
				"secondary_text": "Germany"
			},
			"types": ["locality", "political", "geocode"]
		}
	],
	"status": "OK"
}`

// SampleNewAutocomplete is a new Places API autocomplete response
const SampleNewAutocomplete = `{
	"suggestions": [
		{
			"placePrediction": {
				"place": "places/ChIJ-koelner-dom",
				"placeId": "ChIJ-koelner-dom",
				"text": {"text": "Kölner Dom, Domkloster, Köln, Germany"},
				"structuredFormat": {
					"mainText": {"text": "Kölner Dom"},
					"secondaryText": {"text": "Domkloster, Köln, Germany"}
				},
				"types": ["church", "tourist_attraction"]
			}
		}
	]
}`

// SampleLegacyDetails is a legacy details response with status OK
const SampleLegacyDetails = `{
	"status": "OK",
	"result": {
		"formatted_address": "Trankgasse 11, 50667 Köln, Germany",
		"geometry": {"location": {"lat": 50.9430, "lng": 6.9589}},
		"name": "Köln Hbf",
		"place_id": "ChIJ-koeln-hbf",
		"types": ["train_station", "transit_station"]
	}
}`

// SampleLegacyDetailsNotFound is a legacy details response without a record
const SampleLegacyDetailsNotFound = `{
	"status": "NOT_FOUND",
	"html_attributions": []
}`

// SampleNewDetails is a new Places API place record
const SampleNewDetails = `{
	"id": "ChIJ-koelner-dom",
	"displayName": {"text": "Kölner Dom", "languageCode": "de"},
	"formattedAddress": "Domkloster 4, 50667 Köln, Germany",
	"location": {"latitude": 50.9413, "longitude": 6.9583},
	"types": ["church", "tourist_attraction"]
}`

// SampleNearbySearch is a nearby-search response
const SampleNearbySearch = `{
	"results": [
		{
			"name": "Kölner Dom",
			"place_id": "ChIJ-koelner-dom",
			"geometry": {"location": {"lat": 50.9413, "lng": 6.9583}},
			"types": ["church", "point_of_interest"]
		},
		{
			"name": "Museum Ludwig",
			"place_id": "ChIJ-museum-ludwig",
			"geometry": {"location": {"lat": 50.9408, "lng": 6.9604}},
			"types": ["museum", "point_of_interest"]
		}
	],
	"status": "OK"
}`

// SampleReverseGeocode is a reverse-geocoding response
const SampleReverseGeocode = `{
	"results": [
		{
			"formatted_address": "Domkloster 4, 50667 Köln, Germany",
			"place_id": "ChIJ-domkloster-4",
			"geometry": {"location": {"lat": 50.9413, "lng": 6.9583}},
			"types": ["street_address"]
		},
		{
			"formatted_address": "Köln, Germany",
			"place_id": "ChIJ-koeln",
			"geometry": {"location": {"lat": 50.9375, "lng": 6.9603}},
			"types": ["locality", "political"]
		}
	],
	"status": "OK"
}`

// SampleErrorMessage is a 200 response carrying an API error payload
const SampleErrorMessage = `{
	"error_message": "The provided API key is invalid.",
	"predictions": null,
	"status": "REQUEST_DENIED"
}`

// SampleNewAPIError is the new Places API error body (sent with a 4xx status)
const SampleNewAPIError = `{
	"error": {
		"code": 400,
		"message": "API key not valid. Please pass a valid API key.",
		"status": "INVALID_ARGUMENT"
	}
}`

// SampleEmptyResponse is an empty JSON response
const SampleEmptyResponse = `{}`
