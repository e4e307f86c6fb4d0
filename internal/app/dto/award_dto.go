package dto

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/milecraft/award-search-service/internal/pkg/exception"
)

type TripType string

const (
	TripTypeOneWay    TripType = "OneWay"
	TripTypeRoundTrip TripType = "RoundTrip"
	TripTypeMultiCity TripType = "MultiCity"
)

// ProgramAll is the sentinel meaning "no program preference".
const ProgramAll = "All"

type CabinClass string

const (
	CabinEconomy        CabinClass = "Economy"
	CabinPremiumEconomy CabinClass = "Premium Economy"
	CabinBusiness       CabinClass = "Business"
	CabinFirst          CabinClass = "First"
)

type Availability string

const (
	AvailabilityHigh     Availability = "High"
	AvailabilityLow      Availability = "Low"
	AvailabilityWaitlist Availability = "Waitlist"
	AvailabilityNone     Availability = "None"
)

type AwardType string

const (
	AwardTypeOwn     AwardType = "Own"
	AwardTypePartner AwardType = "Partner"
)

type FlightSegment struct {
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
}

// SearchCriteria is one user search request.
type SearchCriteria struct {
	TripType         TripType        `json:"trip_type" validate:"required,oneof=OneWay RoundTrip MultiCity"`
	Segments         []FlightSegment `json:"segments" validate:"required,min=1,max=4,dive"`
	ReturnDate       string          `json:"return_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Cabin            string          `json:"cabin,omitempty"`
	Passengers       int             `json:"passengers" validate:"required,min=1,max=9"`
	PreferredProgram string          `json:"preferred_program,omitempty"`
	StrictProgram    bool            `json:"strict_program,omitempty"`
	SearchRange      int             `json:"search_range" validate:"min=0,max=7"`
}

func (s *SearchCriteria) Bind(r *http.Request) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	s.normalize()

	return nil
}

func (s *SearchCriteria) Validate() error {
	if err := ValidateSingleError(s); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	if s.TripType == TripTypeRoundTrip && s.ReturnDate == "" {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "return_date is required for round trips",
		}
	}

	if s.TripType != TripTypeRoundTrip && s.ReturnDate != "" {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("return_date is not allowed for %s trips", s.TripType),
		}
	}

	return nil
}

// normalize uppercases airport codes defensively and enforces the
// strict-program invariant: a strict flag is meaningless without a
// concrete program preference.
func (s *SearchCriteria) normalize() {
	for i := range s.Segments {
		s.Segments[i].Origin = strings.ToUpper(strings.TrimSpace(s.Segments[i].Origin))
		s.Segments[i].Destination = strings.ToUpper(strings.TrimSpace(s.Segments[i].Destination))
	}

	s.PreferredProgram = strings.TrimSpace(s.PreferredProgram)

	if !s.HasProgramPreference() {
		s.StrictProgram = false
	}
}

// HasProgramPreference reports whether the user named a concrete program.
func (s SearchCriteria) HasProgramPreference() bool {
	return s.PreferredProgram != "" && s.PreferredProgram != ProgramAll
}

// StrictProgramRequested reports whether results must be limited to the
// preferred program only.
func (s SearchCriteria) StrictProgramRequested() bool {
	return s.HasProgramPreference() && s.StrictProgram
}

// PricingTier is one price level inside a cabin, e.g. Saver vs Standard.
type PricingTier struct {
	Quantity     int    `json:"quantity"`
	MilesPerSeat int    `json:"milesPerSeat"`
	TierName     string `json:"tierName,omitempty"`
}

// CabinOption carries per-cabin award pricing for one flight. Field names
// are part of the wire contract with the model and must not change.
type CabinOption struct {
	CabinClass     CabinClass    `json:"cabinClass"`
	MilesRequired  int           `json:"milesRequired"`
	PricingTiers   []PricingTier `json:"pricingTiers,omitempty"`
	Availability   Availability  `json:"availability"`
	Status         string        `json:"status"`
	RemainingSeats int           `json:"remainingSeats"`
}

// FlightAward is one candidate flight+program offer returned by the model.
type FlightAward struct {
	Airline       string        `json:"airline"`
	FlightNumber  string        `json:"flightNumber"`
	Origin        string        `json:"origin"`
	Destination   string        `json:"destination"`
	Date          string        `json:"date"`
	DepartureTime string        `json:"departureTime"`
	ArrivalTime   string        `json:"arrivalTime"`
	Duration      string        `json:"duration"`
	Program       string        `json:"program"`
	TaxesAndFees  string        `json:"taxesAndFees"`
	CabinOptions  []CabinOption `json:"cabinOptions"`
	BookingLink   string        `json:"bookingLink,omitempty"`
	AwardType     AwardType     `json:"awardType"`
	BookingNotes  string        `json:"bookingNotes,omitempty"`
	DataSource    string        `json:"dataSource,omitempty"`
}

// GroundingSource is a web page the model cited as evidence.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type SearchResult struct {
	Awards  []FlightAward     `json:"awards"`
	Sources []GroundingSource `json:"sources"`
	Summary string            `json:"summary"`
}

type Metadata struct {
	TotalResults int    `json:"total_results"`
	SourceCount  int    `json:"source_count"`
	SearchTimeMs int    `json:"search_time_ms"`
	Model        string `json:"model"`
}

// SearchAwardResponse is the response struct for the award search endpoint.
type SearchAwardResponse struct {
	SearchCriteria SearchCriteria `json:"search_criteria"`
	Metadata       Metadata       `json:"metadata"`
	Result         SearchResult   `json:"result"`
}
