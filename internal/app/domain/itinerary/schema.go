package itinerary

import "google.golang.org/genai"

// requiredSegmentFields are the auxiliary text fields every generated
// segment must carry, on top of the structural ones.
var requiredSegmentFields = []string{
	"foodRecommendations",
	"hiddenGems",
	"insiderTips",
	"transportation",
	"travelEstimate",
	"safety",
	"budget",
	"addOns",
}

func coordinatesSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"lat": {Type: genai.TypeNumber},
			"lng": {Type: genai.TypeNumber},
		},
		Required: []string{"lat", "lng"},
	}
}

func segmentSchema() *genai.Schema {
	properties := map[string]*genai.Schema{
		"timeOfDay":   {Type: genai.TypeString},
		"title":       {Type: genai.TypeString},
		"description": {Type: genai.TypeString},
		"location":    {Type: genai.TypeString},
		"coordinates": coordinatesSchema(),
	}
	for _, field := range requiredSegmentFields {
		properties[field] = &genai.Schema{Type: genai.TypeString}
	}

	required := []string{"timeOfDay", "title", "description", "coordinates"}
	required = append(required, requiredSegmentFields...)

	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
		Required:   required,
	}
}

func accommodationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":        {Type: genai.TypeString},
			"type":        {Type: genai.TypeString},
			"rating":      {Type: genai.TypeNumber},
			"priceRange":  {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
		},
		Required: []string{"name", "type", "rating", "priceRange", "description"},
	}
}

// itinerarySchema constrains the structured generation call to the full
// itinerary shape.
func itinerarySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":    {Type: genai.TypeString},
			"overview": {Type: genai.TypeString},
			"days": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"day": {Type: genai.TypeInteger},
						"segments": {
							Type:  genai.TypeArray,
							Items: segmentSchema(),
						},
						"suggestedStays": {
							Type:  genai.TypeArray,
							Items: accommodationSchema(),
						},
					},
					Required: []string{"day", "segments"},
				},
			},
		},
		Required: []string{"title", "overview", "days"},
	}
}
