package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
)

type DecodeRequestFunc func(ctx context.Context, r *http.Request) (interface{}, error)

type EncodeResponseFunc func(ctx context.Context, w http.ResponseWriter, response interface{}) error

// MakeHandlerFunc glues a go-kit endpoint to chi: decode, call, encode, with
// every error funneled through ErrorResponse.
func MakeHandlerFunc(
	endpt endpoint.Endpoint,
	decoder DecodeRequestFunc,
	encoder EncodeResponseFunc,
) http.HandlerFunc {
	return func(respWriter http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		request, err := decoder(ctx, req)
		if err != nil {
			ErrorResponse(ctx, err, respWriter)

			return
		}

		response, err := endpt(ctx, request)
		if err != nil {
			ErrorResponse(ctx, err, respWriter)

			return
		}

		if err := encoder(ctx, respWriter, response); err != nil {
			ErrorResponse(ctx, err, respWriter)
		}
	}
}

// DecodeRequest decodes the JSON body into T and runs its Bind hook. T must
// implement render.Binder on its pointer receiver.
func DecodeRequest[T any](_ context.Context, r *http.Request) (interface{}, error) {
	request := new(T)

	binder, ok := any(request).(render.Binder)
	if !ok {
		return nil, fmt.Errorf("request type %T does not implement render.Binder", request)
	}

	if err := render.Bind(r, binder); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}

	return request, nil
}
