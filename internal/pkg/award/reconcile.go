package award

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/milecraft/award-search-service/internal/app/dto"
	"github.com/milecraft/award-search-service/internal/pkg/modelprovider"
)

// One fenced JSON block embedded in the narrative; first match wins.
var jsonBlockPattern = regexp.MustCompile("```json\\s+([\\s\\S]*?)\\s+```")

// Reconcile turns the raw model reply into a SearchResult. It never fails:
// an absent or malformed JSON block degrades to an empty award list with the
// full narrative as summary.
func Reconcile(ctx context.Context, resp modelprovider.Response, criteria dto.SearchCriteria) dto.SearchResult {
	awards := []dto.FlightAward{}
	summary := strings.TrimSpace(resp.Text)

	if match := jsonBlockPattern.FindStringSubmatch(resp.Text); match != nil {
		parsed, err := decodeAwards(ctx, []byte(match[1]))
		if err != nil {
			slog.WarnContext(ctx, "failed to parse award block from model output",
				slog.String("error", err.Error()))
		} else {
			awards = FilterAwards(parsed, criteria)
		}

		summary = strings.TrimSpace(strings.Replace(resp.Text, match[0], "", 1))
	}

	return dto.SearchResult{
		Awards:  awards,
		Sources: extractSources(resp.GroundingChunks),
		Summary: summary,
	}
}

// decodeAwards decodes the block record by record so one malformed award
// does not throw away the whole batch.
func decodeAwards(ctx context.Context, body []byte) ([]dto.FlightAward, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, err
	}

	awards := make([]dto.FlightAward, 0, len(records))

	for _, record := range records {
		var a dto.FlightAward
		if err := json.Unmarshal(record, &a); err != nil {
			slog.WarnContext(ctx, "dropping malformed award record",
				slog.String("error", err.Error()))
			continue
		}

		awards = append(awards, a)
	}

	return awards, nil
}

func extractSources(chunks []modelprovider.GroundingChunk) []dto.GroundingSource {
	sources := make([]dto.GroundingSource, 0, len(chunks))

	for _, chunk := range chunks {
		if chunk.Web == nil {
			continue
		}

		sources = append(sources, dto.GroundingSource{
			Title: chunk.Web.Title,
			URI:   chunk.Web.URI,
		})
	}

	return sources
}
