package models

// RegisterTokenRequest is the body of POST /v1/admin/push-tokens.
type RegisterTokenRequest struct {
	Token string `json:"token"`
}

// RevokeTokensRequest is the body of DELETE /v1/admin/push-tokens.
type RevokeTokensRequest struct {
	Tokens []string `json:"tokens"`
}

// TokenResponse represents one registered push token.
type TokenResponse struct {
	Token      string    `json:"token"`
	OwnerEmail string    `json:"ownerEmail,omitempty"`
	UpdatedAt  Timestamp `json:"updatedAt"`
}
