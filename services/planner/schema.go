package planner

import genai "github.com/google/generative-ai-go/genai"

// RequestKind keys the schema registry. Keeping every response schema here
// guarantees the interpreter and its validator stay in sync instead of
// drifting across call sites.
type RequestKind string

const (
	RequestInterpret  RequestKind = "interpret"
	RequestSummary    RequestKind = "summary"
	RequestItinerary  RequestKind = "itinerary"
	RequestSuggestion RequestKind = "suggestion"
	RequestRealTime   RequestKind = "realtime"
)

// SchemaFor returns the response schema for a request kind.
func SchemaFor(kind RequestKind) *genai.Schema {
	return schemaRegistry[kind]
}

var schemaRegistry = map[RequestKind]*genai.Schema{
	RequestInterpret:  apiParamsSchema,
	RequestSummary:    summarySchema,
	RequestItinerary:  itinerarySchema,
	RequestSuggestion: suggestionSchema,
	RequestRealTime:   realTimeSchema,
}

var apiParamsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"analyzedQuery": {Type: genai.TypeString, Description: "One-sentence restatement of what the user asked for"},
		"flight": {
			Type:     genai.TypeObject,
			Nullable: true,
			Properties: map[string]*genai.Schema{
				"origin":         {Type: genai.TypeString},
				"destination":    {Type: genai.TypeString},
				"departure_date": {Type: genai.TypeString, Description: "YYYY-MM-DD"},
				"return_date":    {Type: genai.TypeString, Nullable: true},
				"passengers":     {Type: genai.TypeInteger, Nullable: true},
				"airlines":       {Type: genai.TypeArray, Nullable: true, Items: &genai.Schema{Type: genai.TypeString}},
				"max_price":      {Type: genai.TypeNumber, Nullable: true},
			},
			Required: []string{"origin", "destination", "departure_date"},
		},
		"hotel": {
			Type:     genai.TypeObject,
			Nullable: true,
			Properties: map[string]*genai.Schema{
				"location":       {Type: genai.TypeString},
				"check_in_date":  {Type: genai.TypeString, Description: "YYYY-MM-DD"},
				"check_out_date": {Type: genai.TypeString, Description: "YYYY-MM-DD"},
				"guests":         {Type: genai.TypeInteger, Nullable: true},
				"stars":          {Type: genai.TypeInteger, Nullable: true},
				"max_price":      {Type: genai.TypeNumber, Nullable: true},
			},
			Required: []string{"location", "check_in_date", "check_out_date"},
		},
		"car": {
			Type:     genai.TypeObject,
			Nullable: true,
			Properties: map[string]*genai.Schema{
				"location":     {Type: genai.TypeString},
				"pickup_date":  {Type: genai.TypeString, Description: "YYYY-MM-DD"},
				"dropoff_date": {Type: genai.TypeString, Description: "YYYY-MM-DD"},
				"car_type":     {Type: genai.TypeString, Nullable: true},
				"max_price":    {Type: genai.TypeNumber, Nullable: true},
			},
			Required: []string{"location", "pickup_date", "dropoff_date"},
		},
		"itineraryRequest": {
			Type:     genai.TypeObject,
			Nullable: true,
			Properties: map[string]*genai.Schema{
				"location": {Type: genai.TypeString},
				"days":     {Type: genai.TypeInteger, Nullable: true},
				"interest": {Type: genai.TypeString, Nullable: true},
			},
			Required: []string{"location"},
		},
	},
	Required: []string{"analyzedQuery"},
}

var summarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {Type: genai.TypeString, Description: "One sentence summarizing the results"},
	},
	Required: []string{"summary"},
}

var itinerarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"location": {Type: genai.TypeString},
		"days": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date": {Type: genai.TypeString},
					"stops": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"time":  {Type: genai.TypeString},
								"title": {Type: genai.TypeString},
								"note":  {Type: genai.TypeString, Nullable: true},
							},
							Required: []string{"time", "title"},
						},
					},
				},
				Required: []string{"date", "stops"},
			},
		},
	},
	Required: []string{"location", "days"},
}

var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"location":  {Type: genai.TypeString},
		"reason":    {Type: genai.TypeString},
		"costDelta": {Type: genai.TypeNumber, Nullable: true},
	},
	Required: []string{"location", "reason"},
}

var realTimeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"venue":     {Type: genai.TypeString},
		"location":  {Type: genai.TypeString},
		"reason":    {Type: genai.TypeString},
		"timeDelta": {Type: genai.TypeString, Nullable: true},
	},
	Required: []string{"venue", "location", "reason"},
}
