package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/milecraft/award-search-service/internal/app/dto"
	"github.com/milecraft/award-search-service/internal/pkg/award"
	"github.com/milecraft/award-search-service/internal/pkg/modelprovider"
)

type SearchService struct {
	Provider   modelprovider.ModelProvider
	Model      string
	MaxRetries uint64
}

// NewSearchService builds the orchestrator. maxRetries gates an optional
// bounded retry with exponential backoff around the model invocation; 0
// keeps the single-shot behavior.
func NewSearchService(provider modelprovider.ModelProvider, model string, maxRetries uint64) *SearchService {
	return &SearchService{
		Provider:   provider,
		Model:      model,
		MaxRetries: maxRetries,
	}
}

// SearchAwards sequences prompt building, the model invocation and the
// response reconciliation.
// SearchAwards godoc
// @Summary      Search award flights
// @Tags         Awards
// @Description  Ask the model to find award seats for the given criteria
// @Param        request  body      dto.SearchCriteria  true  "Search Criteria"
// @Success      200      {object}  dto.SearchAwardResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      502      {object}  dto.ErrorResponse
// @Router       /api/v1/awards/search [post]
func (s *SearchService) SearchAwards(
	ctx context.Context,
	req dto.SearchCriteria,
) (dto.SearchAwardResponse, error) {
	startTime := time.Now()

	prompt := award.BuildPrompt(req)

	resp, err := s.generate(ctx, prompt)
	if err != nil {
		slog.ErrorContext(ctx, "model invocation failed",
			slog.String("model", s.Model),
			slog.String("error", err.Error()))

		return dto.SearchAwardResponse{}, ErrSearchUnavailable
	}

	// The reconciler never fails; malformed model output degrades to an
	// empty award list. An empty list after filtering is a legitimate
	// "no confirmed availability" outcome, not an error.
	result := award.Reconcile(ctx, resp, req)

	return dto.SearchAwardResponse{
		SearchCriteria: req,
		Result:         result,
		Metadata: dto.Metadata{
			TotalResults: len(result.Awards),
			SourceCount:  len(result.Sources),
			SearchTimeMs: int(time.Since(startTime).Milliseconds()),
			Model:        s.Model,
		},
	}, nil
}

func (s *SearchService) generate(ctx context.Context, prompt string) (modelprovider.Response, error) {
	if s.MaxRetries == 0 {
		return s.Provider.Generate(ctx, prompt)
	}

	var resp modelprovider.Response

	operation := func() error {
		var err error
		resp, err = s.Provider.Generate(ctx, prompt)

		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.MaxRetries), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return modelprovider.Response{}, fmt.Errorf("retries exhausted: %w", err)
	}

	return resp, nil
}
