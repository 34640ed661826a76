package roads

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// tokenScope is the OAuth scope required by the route selection API.
const tokenScope = "https://www.googleapis.com/auth/cloud-platform"

// DefaultTokenSource returns a token source backed by Application Default
// Credentials (environment, gcloud user credentials, or metadata server).
func DefaultTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	ts, err := google.DefaultTokenSource(ctx, tokenScope)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve application default credentials: %w", err)
	}
	return ts, nil
}

// StaticTokenSource returns a token source serving one fixed token. Intended
// for tests and short-lived tokens supplied out of band.
func StaticTokenSource(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
}
