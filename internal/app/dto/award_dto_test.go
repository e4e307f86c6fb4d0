//go:build unit

package dto

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func validOneWay() SearchCriteria {
	return SearchCriteria{
		TripType:    TripTypeOneWay,
		Segments:    []FlightSegment{{Origin: "TPE", Destination: "NRT", Date: "2025-03-10"}},
		Passengers:  1,
		SearchRange: 0,
	}
}

func TestSearchCriteria_Validate(t *testing.T) {
	// Initialize validator for tests
	_ = InitValidator()

	validateRequest := func(req SearchCriteria, wantErr bool, wantMsg string) func(t *testing.T) {
		return func(t *testing.T) {
			err := req.Validate()
			if (err != nil) != wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, wantErr)
			}

			if wantErr && err != nil && wantMsg != "" {
				if diff := cmp.Diff(wantMsg, err.Error()); diff != "" {
					t.Fatalf("Validate() error message mismatch (-want +got):\n%s", diff)
				}
			}
		}
	}

	t.Run("valid_one_way", validateRequest(validOneWay(), false, ""))

	missingOrigin := validOneWay()
	missingOrigin.Segments[0].Origin = ""
	t.Run("missing_origin", validateRequest(missingOrigin, true, "origin is a required field"))

	noSegments := validOneWay()
	noSegments.Segments = nil
	t.Run("missing_segments", validateRequest(noSegments, true, "segments is a required field"))

	tooManySegments := validOneWay()
	tooManySegments.TripType = TripTypeMultiCity
	for i := 0; i < 4; i++ {
		tooManySegments.Segments = append(tooManySegments.Segments,
			FlightSegment{Origin: "NRT", Destination: "TPE", Date: "2025-03-12"})
	}
	t.Run("too_many_segments", validateRequest(tooManySegments, true, ""))

	badDate := validOneWay()
	badDate.Segments[0].Date = "10/03/2025"
	t.Run("invalid_date_format", validateRequest(badDate, true, ""))

	noPassengers := validOneWay()
	noPassengers.Passengers = 0
	t.Run("missing_passengers", validateRequest(noPassengers, true, "passengers is a required field"))

	badTripType := validOneWay()
	badTripType.TripType = "Circle"
	t.Run("invalid_trip_type", validateRequest(badTripType, true, ""))

	wideRange := validOneWay()
	wideRange.SearchRange = 8
	t.Run("search_range_too_wide", validateRequest(wideRange, true, ""))

	roundTripNoReturn := validOneWay()
	roundTripNoReturn.TripType = TripTypeRoundTrip
	t.Run("round_trip_missing_return_date", validateRequest(roundTripNoReturn, true,
		"return_date is required for round trips"))

	oneWayWithReturn := validOneWay()
	oneWayWithReturn.ReturnDate = "2025-03-20"
	t.Run("one_way_with_return_date", validateRequest(oneWayWithReturn, true,
		"return_date is not allowed for OneWay trips"))

	roundTrip := validOneWay()
	roundTrip.TripType = TripTypeRoundTrip
	roundTrip.ReturnDate = "2025-03-20"
	t.Run("valid_round_trip", validateRequest(roundTrip, false, ""))
}

func TestSearchCriteria_Bind(t *testing.T) {
	_ = InitValidator()

	t.Run("valid_bind_normalizes", func(t *testing.T) {
		req := validOneWay()
		req.Segments[0].Origin = " tpe "
		req.Segments[0].Destination = "nrt"

		if err := req.Bind(nil); err != nil {
			t.Fatalf("Bind() error = %v", err)
		}

		if req.Segments[0].Origin != "TPE" || req.Segments[0].Destination != "NRT" {
			t.Fatalf("Bind() did not uppercase airport codes: %+v", req.Segments[0])
		}
	})

	t.Run("strict_flag_cleared_without_preference", func(t *testing.T) {
		req := validOneWay()
		req.PreferredProgram = ProgramAll
		req.StrictProgram = true

		if err := req.Bind(nil); err != nil {
			t.Fatalf("Bind() error = %v", err)
		}

		if req.StrictProgram {
			t.Fatal("Bind() must clear strict_program when preferred_program is All")
		}
	})

	t.Run("strict_flag_kept_with_preference", func(t *testing.T) {
		req := validOneWay()
		req.PreferredProgram = "Aeroplan"
		req.StrictProgram = true

		if err := req.Bind(nil); err != nil {
			t.Fatalf("Bind() error = %v", err)
		}

		if !req.StrictProgramRequested() {
			t.Fatal("Bind() must keep strict_program for a concrete preference")
		}
	})

	t.Run("invalid_bind", func(t *testing.T) {
		req := SearchCriteria{}
		if err := req.Bind(nil); err == nil {
			t.Fatal("Bind() expected error for empty criteria")
		}
	})
}
