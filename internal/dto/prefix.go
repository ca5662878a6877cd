package dto

import "github.com/acctflow/voucher_approval_app/internal/core/domain"

// CreatePrefixRequest is the payload for registering a control-number prefix.
type CreatePrefixRequest struct {
	Code  string `json:"code" binding:"required,alphanum,max=8"`
	Label string `json:"label" binding:"required"`
}

// PrefixResponse defines the data returned for a prefix.
type PrefixResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// ToPrefixResponse converts a domain.Prefix to PrefixResponse DTO.
func ToPrefixResponse(p *domain.Prefix) PrefixResponse {
	return PrefixResponse{Code: p.Code, Label: p.Label}
}

// ToPrefixResponses converts a slice of domain.Prefix to []PrefixResponse.
func ToPrefixResponses(prefixes []domain.Prefix) []PrefixResponse {
	responses := make([]PrefixResponse, len(prefixes))
	for i, p := range prefixes {
		responses[i] = ToPrefixResponse(&p)
	}
	return responses
}
