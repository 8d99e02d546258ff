package smarty

import "encoding/json"

// Candidate is one verified-address candidate returned by the service.
type Candidate struct {
	InputIndex           int        `json:"input_index"`
	CandidateIndex       int        `json:"candidate_index"`
	DeliveryLine1        string     `json:"delivery_line_1"`
	LastLine             string     `json:"last_line"`
	DeliveryPointBarcode string     `json:"delivery_point_barcode"`
	Components           Components `json:"components"`
	Metadata             Metadata   `json:"metadata"`
	Analysis             Analysis   `json:"analysis"`
}

// Components holds the parsed address parts of a candidate.
type Components struct {
	PrimaryNumber           string `json:"primary_number"`
	StreetName              string `json:"street_name"`
	StreetSuffix            string `json:"street_suffix"`
	CityName                string `json:"city_name"`
	DefaultCityName         string `json:"default_city_name"`
	StateAbbreviation       string `json:"state_abbreviation"`
	Zipcode                 string `json:"zipcode"`
	Plus4Code               string `json:"plus4_code"`
	DeliveryPoint           string `json:"delivery_point"`
	DeliveryPointCheckDigit string `json:"delivery_point_check_digit"`
}

// Metadata holds delivery metadata of a candidate.
type Metadata struct {
	RecordType            string  `json:"record_type"`
	ZipType               string  `json:"zip_type"`
	CountyFIPS            string  `json:"county_fips"`
	CountyName            string  `json:"county_name"`
	CarrierRoute          string  `json:"carrier_route"`
	CongressionalDistrict string  `json:"congressional_district"`
	RDI                   string  `json:"rdi"`
	Latitude              float64 `json:"latitude"`
	Longitude             float64 `json:"longitude"`
	Precision             string  `json:"precision"`
	TimeZone              string  `json:"time_zone"`
	UTCOffset             float64 `json:"utc_offset"`
	DST                   bool    `json:"dst"`
}

// Analysis holds the deliverability analysis of a candidate.
type Analysis struct {
	DPVMatchCode string `json:"dpv_match_code"`
	DPVFootnotes string `json:"dpv_footnotes"`
	DPVCMRA      string `json:"dpv_cmra"`
	DPVVacant    string `json:"dpv_vacant"`
	DPVNoStat    string `json:"dpv_no_stat"`
	Active       string `json:"active"`
}

// Outcome is the result of one Validate call. Exactly one of Candidates,
// NoMatch or Sentinel is meaningful.
type Outcome struct {
	// Candidates is non-empty when the service returned at least one match.
	Candidates []Candidate
	// NoMatch is set when the service responded but found no deliverable match.
	NoMatch bool
	// Sentinel is set when no real result exists (missing credentials,
	// API error, transport failure).
	Sentinel string

	// raw preserves the verbatim response body for persistence.
	raw json.RawMessage
}

// Status returns the JSON value persisted to the contact's validation column:
// the sentinel as a JSON string, false for a no-match, or the verbatim
// candidate array.
func (o Outcome) Status() json.RawMessage {
	switch {
	case o.Sentinel != "":
		b, _ := json.Marshal(o.Sentinel)
		return b
	case o.NoMatch:
		return json.RawMessage("false")
	case o.raw != nil:
		return o.raw
	default:
		b, _ := json.Marshal(o.Candidates)
		return b
	}
}
