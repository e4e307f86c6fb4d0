package award

import (
	"sort"
	"strings"
	"time"

	"github.com/milecraft/award-search-service/internal/app/dto"
)

// FilterAwards applies the deterministic post-filters to a parsed award
// batch: required-field and availability checks always, the route check for
// one-way trips, and the strict-program filter plus date sort when the user
// locked the search to a single program.
func FilterAwards(awards []dto.FlightAward, criteria dto.SearchCriteria) []dto.FlightAward {
	results := make([]dto.FlightAward, 0, len(awards))

	for _, a := range awards {
		if isIncomplete(a) {
			continue
		}

		if !hasOpenCabin(a) {
			continue
		}

		// Round trips and multi-city itineraries may legitimately return
		// either direction or several legs, so the route check only applies
		// to one-way searches.
		if criteria.TripType == dto.TripTypeOneWay && !matchesRoute(a, criteria.Segments[0]) {
			continue
		}

		results = append(results, a)
	}

	if criteria.StrictProgramRequested() {
		results = filterByProgram(results, criteria.PreferredProgram)
		sortByDate(results)
	}

	return results
}

// isIncomplete reports whether a record is missing fields the filters and
// the renderer depend on. Such records are dropped individually; the rest of
// the batch survives.
func isIncomplete(a dto.FlightAward) bool {
	return a.Airline == "" || a.Origin == "" || a.Destination == "" ||
		a.Date == "" || len(a.CabinOptions) == 0
}

func hasOpenCabin(a dto.FlightAward) bool {
	for _, opt := range a.CabinOptions {
		if opt.Availability != dto.AvailabilityNone {
			return true
		}
	}

	return false
}

func matchesRoute(a dto.FlightAward, segment dto.FlightSegment) bool {
	return strings.EqualFold(a.Origin, segment.Origin) &&
		strings.EqualFold(a.Destination, segment.Destination)
}

// filterByProgram keeps awards whose program matches the preference in
// either direction: the award program contains the first token of the
// preference, or the full preference contains the award program. The fuzzy
// bidirectional match tolerates naming variants such as "Aeroplan" vs
// "Air Canada Aeroplan".
func filterByProgram(awards []dto.FlightAward, preferred string) []dto.FlightAward {
	preferredLower := strings.ToLower(preferred)

	target := ""
	if fields := strings.Fields(preferredLower); len(fields) > 0 {
		target = fields[0]
	}

	results := make([]dto.FlightAward, 0, len(awards))

	for _, a := range awards {
		program := strings.ToLower(a.Program)
		if strings.Contains(program, target) || strings.Contains(preferredLower, program) {
			results = append(results, a)
		}
	}

	return results
}

// sortByDate orders awards ascending by parsed date. Records whose date
// fails to parse keep their relative order after all parseable ones.
func sortByDate(awards []dto.FlightAward) {
	sort.SliceStable(awards, func(i, j int) bool {
		di, errI := time.Parse(dateLayout, awards[i].Date)
		dj, errJ := time.Parse(dateLayout, awards[j].Date)

		switch {
		case errI != nil:
			return false
		case errJ != nil:
			return true
		default:
			return di.Before(dj)
		}
	})
}
