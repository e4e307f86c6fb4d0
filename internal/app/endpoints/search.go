package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/milecraft/award-search-service/internal/app/dto"
)

type SearchService interface {
	SearchAwards(ctx context.Context, req dto.SearchCriteria) (dto.SearchAwardResponse, error)
}

type Endpoints struct {
	AwardSearchEndpoint AwardSearchEndpoint
}

type AwardSearchEndpoint struct {
	SearchAwards endpoint.Endpoint
}

func MakeAwardSearchEndpoint(service SearchService) AwardSearchEndpoint {
	return AwardSearchEndpoint{
		SearchAwards: makeSearchAwardsEndpoint(service),
	}
}

func makeSearchAwardsEndpoint(service SearchService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SearchCriteria)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		result, err := service.SearchAwards(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("search service: %w", err)
		}

		return result, nil
	}
}
