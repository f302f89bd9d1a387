package dto

// Data Transfer Objects for authentication requests and responses

// SignupRequest: payload for requesting a confirmation code
type SignupRequest struct {
	Email string `json:"email" binding:"required,email,max=254"`
}

// SignupResponse: response payload after the confirmation code was sent
type SignupResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// TokenRequest: payload for exchanging a confirmation code for tokens
type TokenRequest struct {
	Email            string `json:"email" binding:"required,email"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse: response payload after successful authentication
type TokenResponse struct {
	RefreshToken string `json:"refresh"`
	AccessToken  string `json:"access"`
	TokenType    string `json:"token_type"` // always "Bearer"
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// RefreshTokenRequest: payload for refreshing or revoking a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh" binding:"required"`
}

// MessageResponse: generic acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse: body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Field string `json:"field,omitempty"`
}
