package http

import (
	"game-data-service/internal/aggregate"
	"game-data-service/internal/domain"
	"game-data-service/internal/quota"
)

type queryRequest struct {
	Game   string             `json:"game"`
	Fields []domain.FieldName `json:"fields"`
}

type queryResponse struct {
	Record   domain.CanonicalRecord                   `json:"record"`
	Chart    domain.ChartIntent                       `json:"chart"`
	Sources  []domain.Provider                        `json:"sources"`
	Failures map[domain.FieldName][]aggregate.Attempt `json:"failures,omitempty"`
}

type providerStatus struct {
	Key   string         `json:"key"`
	Usage quota.Snapshot `json:"usage"`
}

type providersResponse struct {
	Providers []providerStatus `json:"providers"`
}

type errorResponse struct {
	Error    string                                   `json:"error"`
	Failures map[domain.FieldName][]aggregate.Attempt `json:"failures,omitempty"`
}
