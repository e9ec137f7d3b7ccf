package service

import (
	"context"

	"google.golang.org/api/idtoken"
	"skycast.app/errors"
)

// GoogleClaims holds the identity fields extracted from a Google ID token
type GoogleClaims struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// GoogleVerifier validates ID tokens against a Google OAuth client ID
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*GoogleClaims, error) {
	if v.clientID == "" {
		return nil, errors.NewConfigurationError("Google sign-in is not configured", nil)
	}

	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, err
	}

	return &GoogleClaims{
		Subject: payload.Subject,
		Email:   claimString(payload.Claims, "email"),
		Name:    claimString(payload.Claims, "name"),
		Picture: claimString(payload.Claims, "picture"),
	}, nil
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

var _ GoogleVerifierInterface = (*GoogleVerifier)(nil)
