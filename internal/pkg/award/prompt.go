package award

import (
	"fmt"
	"strings"
	"time"

	"github.com/milecraft/award-search-service/internal/app/dto"
	"github.com/milecraft/award-search-service/internal/pkg/utils"
)

const dateLayout = "2006-01-02"

// Phrases asserted by callers and tests; keep them stable.
const (
	exactDateInstruction = "Date mode: exact-date search only. Do not return flights outside the requested dates."
	strictModeLabel      = "STRICT MODE"
	broadProgramInstruction = "Search broadly across all major alliances and mileage programs " +
		"(Star Alliance, Oneworld, SkyTeam and independent programs)."
)

// BuildPrompt turns search criteria into the instruction text sent to the
// model. Pure function: same criteria, same prompt. The caller guarantees at
// least one segment.
func BuildPrompt(criteria dto.SearchCriteria) string {
	var b strings.Builder

	b.WriteString("You are an award-travel analyst. Your task is to find and compare ")
	b.WriteString("award seat availability for the request below, grounded in real-time sources.\n\n")

	b.WriteString("Search request:\n")
	b.WriteString(segmentLines(criteria))

	// The date-mode instruction is shared across segments: SearchRange is a
	// criteria-level field, so the window width is the same for every leg.
	b.WriteString(dateInstruction(criteria.SearchRange))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Passengers: %d\n", criteria.Passengers)
	fmt.Fprintf(&b, "Trip type: %s\n\n", criteria.TripType)

	b.WriteString(pricingRules(criteria.Passengers))
	b.WriteString(mandatoryCabins())
	fmt.Fprintf(&b, "Program scope: %s\n\n", programInstruction(criteria))
	b.WriteString(outputFormat())
	b.WriteString(searchDirective(criteria.Segments[0]))

	return b.String()
}

func segmentLines(criteria dto.SearchCriteria) string {
	var b strings.Builder

	for i, seg := range criteria.Segments {
		rangeInfo := ""
		if criteria.SearchRange > 0 {
			start, end := dateWindow(seg.Date, criteria.SearchRange)
			rangeInfo = fmt.Sprintf(" (widened search window: %s to %s)", start, end)
		}

		fmt.Fprintf(&b, "Leg %d: %s to %s (target date: %s%s)\n",
			i+1, seg.Origin, seg.Destination, seg.Date, rangeInfo)
	}

	return b.String()
}

func dateInstruction(searchRange int) string {
	if searchRange == 0 {
		return exactDateInstruction
	}

	return fmt.Sprintf("Date mode: flexible. The traveller allows %d day(s) of flexibility "+
		"on each side of every target date. Treat each window above as a widened search "+
		"window and return any flights with award space found anywhere inside it.", searchRange)
}

// dateWindow computes the inclusive [date-days, date+days] window. An
// unparseable date falls back to the raw string on both ends so the prompt
// stays self-consistent instead of failing.
func dateWindow(date string, days int) (string, string) {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return date, date
	}

	start := parsed.AddDate(0, 0, -days).Format(dateLayout)
	end := parsed.AddDate(0, 0, days).Format(dateLayout)

	return start, end
}

func pricingRules(passengers int) string {
	var b strings.Builder

	b.WriteString("Dynamic pricing rule (tiers):\n")
	fmt.Fprintf(&b, "Airlines price award seats in tiers. If %d seat(s) are requested but the "+
		"cheapest tier has fewer seats left, the remaining seats escalate to a higher tier. "+
		"You must reflect this in the pricingTiers field.\n", passengers)
	fmt.Fprintf(&b, "Worked example for 2 passengers: seat 1 books at Saver (%s miles), seat 2 "+
		"books at Standard (%s miles). Output: "+
		`pricingTiers: [{"quantity": 1, "milesPerSeat": 35000, "tierName": "Saver"}, `+
		`{"quantity": 1, "milesPerSeat": 55000, "tierName": "Standard"}], `+
		"milesRequired set to the lowest tier price (35000), and status set to \"Tiered/Mixed\".\n\n",
		utils.FormatMiles(35000), utils.FormatMiles(55000))

	return b.String()
}

func mandatoryCabins() string {
	return "Mandatory cabins: check and report all four cabin classes for every flight, " +
		"never omitting any of them:\n" +
		"1. Economy\n2. Premium Economy\n3. Business\n4. First\n" +
		"A cabin with no award space must still appear with availability \"None\".\n\n"
}

func programInstruction(criteria dto.SearchCriteria) string {
	if !criteria.HasProgramPreference() {
		return broadProgramInstruction
	}

	if criteria.StrictProgram {
		return fmt.Sprintf("%s: only %q is permitted in the output. Results from any other "+
			"mileage program must be excluded.", strictModeLabel, criteria.PreferredProgram)
	}

	return fmt.Sprintf("Prioritize %q, but also list quality options from other alliances "+
		"and programs.", criteria.PreferredProgram)
}

func outputFormat() string {
	return "Output format: reply with a free-form narrative that contains exactly one fenced " +
		"JSON block holding an array of award objects in this shape:\n\n" +
		"```json\n" +
		`[
  {
    "airline": "JX",
    "flightNumber": "JX800",
    "origin": "TPE",
    "destination": "NRT",
    "date": "YYYY-MM-DD",
    "departureTime": "08:30",
    "arrivalTime": "12:30",
    "duration": "3h 00m",
    "program": "Starlux COSMILE",
    "taxesAndFees": "NT$ 2,500",
    "awardType": "Own",
    "bookingLink": "https://www.starlux-airlines.com",
    "bookingNotes": "Own-program inventory; premium economy and business both open.",
    "cabinOptions": [
      {
        "cabinClass": "Premium Economy",
        "milesRequired": 40000,
        "availability": "High",
        "status": "Available",
        "remainingSeats": 4
      },
      {
        "cabinClass": "Business",
        "milesRequired": 55000,
        "availability": "Low",
        "status": "Tiered/Mixed",
        "remainingSeats": 1,
        "pricingTiers": [
          {"quantity": 1, "milesPerSeat": 55000, "tierName": "Saver"},
          {"quantity": 1, "milesPerSeat": 70000, "tierName": "Standard"}
        ]
      }
    ]
  }
]` + "\n```\n\n" +
		"Allowed enum values: cabinClass one of \"Economy\", \"Premium Economy\", \"Business\", " +
		"\"First\"; availability one of \"High\", \"Low\", \"Waitlist\", \"None\"; awardType " +
		"\"Own\" or \"Partner\". Report remaining seats at the lowest price precisely.\n\n"
}

func searchDirective(first dto.FlightSegment) string {
	query := fmt.Sprintf("%s to %s flight award availability %s business class seats left",
		first.Origin, first.Destination, first.Date)

	return fmt.Sprintf("Now use your search tool with the query %q and produce the result "+
		"according to the dynamic pricing rules above.", query)
}
