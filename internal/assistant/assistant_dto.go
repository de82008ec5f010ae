package assistant

import "go-grocer-api/internal/product"

type ProcessRequest struct {
	Command string `json:"command" binding:"required"`
}

// VoiceCommandResult is ephemeral, produced once per utterance.
type VoiceCommandResult struct {
	Intent     Intent                    `json:"intent"`
	Message    string                    `json:"message"`
	SearchTerm string                    `json:"searchTerm,omitempty"`
	Products   []product.ProductResponse `json:"products,omitempty"`
	Product    *product.ProductResponse  `json:"product,omitempty"`
}
