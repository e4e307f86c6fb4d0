package award

import (
	"strings"
	"testing"

	"github.com/milecraft/award-search-service/internal/app/dto"
	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	promptRequest := func(criteria dto.SearchCriteria, wantContains, wantAbsent []string) func(t *testing.T) {
		return func(t *testing.T) {
			got := BuildPrompt(criteria)

			for _, want := range wantContains {
				if !strings.Contains(got, want) {
					t.Fatalf("BuildPrompt() missing %q in:\n%s", want, got)
				}
			}

			for _, absent := range wantAbsent {
				if strings.Contains(got, absent) {
					t.Fatalf("BuildPrompt() must not contain %q in:\n%s", absent, got)
				}
			}
		}
	}

	exactDate := dto.SearchCriteria{
		TripType:         dto.TripTypeOneWay,
		Segments:         []dto.FlightSegment{{Origin: "TPE", Destination: "NRT", Date: "2025-03-10"}},
		Passengers:       1,
		PreferredProgram: dto.ProgramAll,
		SearchRange:      0,
	}

	t.Run("exact_date_broad_program", promptRequest(
		exactDate,
		[]string{
			"exact-date search only",
			"Search broadly across all major alliances",
			"Leg 1: TPE to NRT (target date: 2025-03-10)",
			"Passengers: 1",
			"Trip type: OneWay",
		},
		[]string{"STRICT MODE", "widened search window"},
	))

	flexible := exactDate
	flexible.SearchRange = 7

	t.Run("widened_window", promptRequest(
		flexible,
		[]string{
			"widened search window: 2025-03-03 to 2025-03-17",
			"7 day(s) of flexibility",
		},
		[]string{"exact-date search only"},
	))

	strict := exactDate
	strict.PreferredProgram = "Aeroplan"
	strict.StrictProgram = true

	t.Run("strict_program", promptRequest(
		strict,
		[]string{`STRICT MODE: only "Aeroplan" is permitted`},
		[]string{"Search broadly across all major alliances"},
	))

	preferred := exactDate
	preferred.PreferredProgram = "Aeroplan"

	t.Run("preferred_program_not_strict", promptRequest(
		preferred,
		[]string{`Prioritize "Aeroplan"`},
		[]string{"STRICT MODE"},
	))

	// Strict flag without a concrete preference must never trigger the
	// strict-exclusion phrasing, even before normalization.
	allStrict := exactDate
	allStrict.StrictProgram = true

	t.Run("strict_flag_with_all_programs", promptRequest(
		allStrict,
		[]string{"Search broadly across all major alliances"},
		[]string{"STRICT MODE"},
	))

	multiSegment := dto.SearchCriteria{
		TripType: dto.TripTypeMultiCity,
		Segments: []dto.FlightSegment{
			{Origin: "TPE", Destination: "NRT", Date: "2025-03-10"},
			{Origin: "NRT", Destination: "TPE", Date: "2025-03-20"},
		},
		Passengers:  2,
		SearchRange: 2,
	}

	t.Run("multi_segment_windows", promptRequest(
		multiSegment,
		[]string{
			"Leg 1: TPE to NRT (target date: 2025-03-10 (widened search window: 2025-03-08 to 2025-03-12))",
			"Leg 2: NRT to TPE (target date: 2025-03-20 (widened search window: 2025-03-18 to 2025-03-22))",
		},
		nil,
	))
}

func TestBuildPrompt_StaticDirectives(t *testing.T) {
	criteria := dto.SearchCriteria{
		TripType:    dto.TripTypeOneWay,
		Segments:    []dto.FlightSegment{{Origin: "TPE", Destination: "NRT", Date: "2025-03-10"}},
		Passengers:  2,
		SearchRange: 0,
	}

	got := BuildPrompt(criteria)

	// mandatory four-cabin checklist
	for _, cabin := range []string{"Economy", "Premium Economy", "Business", "First"} {
		assert.Contains(t, got, cabin)
	}

	// tiered pricing example with the lowest tier surfaced
	assert.Contains(t, got, "Tiered/Mixed")
	assert.Contains(t, got, "35,000")
	assert.Contains(t, got, "55,000")
	assert.Contains(t, got, `"milesPerSeat": 35000`)

	// schema block and grounding query
	assert.Contains(t, got, "```json")
	assert.Contains(t, got,
		`"TPE to NRT flight award availability 2025-03-10 business class seats left"`)
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	criteria := dto.SearchCriteria{
		TripType:    dto.TripTypeRoundTrip,
		Segments:    []dto.FlightSegment{{Origin: "TPE", Destination: "NRT", Date: "2025-03-10"}},
		ReturnDate:  "2025-03-20",
		Passengers:  2,
		SearchRange: 3,
	}

	assert.Equal(t, BuildPrompt(criteria), BuildPrompt(criteria))
}
