package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ekisa-team/ttsrelay/internal/service"
)

type (
	// HealthResponseDTO is the response body for the health operation.
	HealthResponseDTO struct {
		Status        string   `json:"status" example:"ok"`
		DefaultLocale string   `json:"default_locale" example:"en-US"`
		Locales       []string `json:"locales"`
	}

	// HealthOutput is the huma output for the health operation.
	HealthOutput struct {
		Body HealthResponseDTO
	}
)

// NewHealthHandler registers the liveness endpoint.
func NewHealthHandler(api huma.API, svc *service.TTS) {
	huma.Register(api, huma.Operation{
		OperationID:   "health",
		Method:        http.MethodGet,
		Path:          "/healthz",
		Summary:       "Liveness probe",
		Tags:          []string{"health"},
		DefaultStatus: http.StatusOK,
	}, func(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
		catalog := svc.Catalog()

		return &HealthOutput{
			Body: HealthResponseDTO{
				Status:        "ok",
				DefaultLocale: catalog.DefaultLocale(),
				Locales:       catalog.Locales(),
			},
		}, nil
	})
}
