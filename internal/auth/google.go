package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// GoogleProfile is the slice of the userinfo response this service needs.
type GoogleProfile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleProvider resolves a caller-supplied access token to a Google
// profile. The token is obtained by the client; no OAuth code exchange
// happens server-side.
type GoogleProvider struct {
	userInfoURL string
}

func NewGoogleProvider() *GoogleProvider {
	return &GoogleProvider{userInfoURL: googleUserInfoURL}
}

func (p *GoogleProvider) FetchProfile(ctx context.Context, accessToken string) (*GoogleProfile, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	client := oauth2.NewClient(ctx, src)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching google user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google user info returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading google user info: %w", err)
	}

	var profile GoogleProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("parsing google user info: %w", err)
	}
	return &profile, nil
}
