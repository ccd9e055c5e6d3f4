package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ruanfdev/cleanbreak-backend/internal/logger"
	"github.com/ruanfdev/cleanbreak-backend/internal/normalization"
	"github.com/ruanfdev/cleanbreak-backend/internal/repos"
	"github.com/ruanfdev/cleanbreak-backend/internal/types"
)

// ErrExchangeFailed marks a failed code-for-token exchange with the external
// provider, as opposed to a failure in our own user lookup afterwards. The
// callback handler maps the two to distinct redirect error indicators.
var ErrExchangeFailed = errors.New("authorization code exchange failed")

type ExternalIdentity struct {
	Email     string
	FirstName string
	LastName  string
}

// OAuthProvider completes the provider side of the handshake: one-time
// authorization code in, verified identity out.
type OAuthProvider interface {
	ExchangeCode(ctx context.Context, code string) (*ExternalIdentity, error)
}

type OAuthService interface {
	ExchangeAndLogin(ctx context.Context, code string) (*types.User, string, string, error)
}

type oauthService struct {
	db          *gorm.DB
	log         *logger.Logger
	provider    OAuthProvider
	userRepo    repos.UserRepo
	authService AuthService
}

func NewOAuthService(
	db *gorm.DB,
	log *logger.Logger,
	provider OAuthProvider,
	userRepo repos.UserRepo,
	authService AuthService,
) OAuthService {
	serviceLog := log.With("service", "OAuthService")
	return &oauthService{
		db:          db,
		log:         serviceLog,
		provider:    provider,
		userRepo:    userRepo,
		authService: authService,
	}
}

// ExchangeAndLogin trades the authorization code for an identity, finds or
// creates the matching local user, and mints a session for it.
func (oa *oauthService) ExchangeAndLogin(ctx context.Context, code string) (*types.User, string, string, error) {
	if oa.provider == nil {
		return nil, "", "", fmt.Errorf("%w: no provider configured", ErrExchangeFailed)
	}
	identity, exErr := oa.provider.ExchangeCode(ctx, code)
	if exErr != nil {
		oa.log.Warn("OAuth code exchange failed", "error", exErr)
		return nil, "", "", fmt.Errorf("%w: %v", ErrExchangeFailed, exErr)
	}

	email := normalization.ParseInputString(identity.Email)
	if email == "" {
		return nil, "", "", fmt.Errorf("%w: provider returned no email", ErrExchangeFailed)
	}

	var user *types.User
	err := oa.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, fErr := oa.userRepo.GetByEmails(ctx, tx, []string{email})
		if fErr != nil {
			return fmt.Errorf("failed to look up user by email: %w", fErr)
		}
		if len(found) > 0 {
			user = found[0]
			return nil
		}
		user = &types.User{
			ID:        uuid.New(),
			Email:     email,
			FirstName: normalization.TrimInput(identity.FirstName),
			LastName:  normalization.TrimInput(identity.LastName),
		}
		if _, cErr := oa.userRepo.Create(ctx, tx, []*types.User{user}); cErr != nil {
			return fmt.Errorf("failed to create user from identity: %w", cErr)
		}
		return nil
	})
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, sErr := oa.authService.IssueSession(ctx, user)
	if sErr != nil {
		return nil, "", "", fmt.Errorf("failed to issue session: %w", sErr)
	}
	return user, accessToken, refreshToken, nil
}

// githubProvider exchanges a code against GitHub's OAuth endpoints.
type githubProvider struct {
	httpClient   *http.Client
	clientID     string
	clientSecret string
	tokenURL     string
	userURL      string
}

func NewGithubProvider(httpClient *http.Client, clientID, clientSecret string) (OAuthProvider, error) {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(clientSecret) == "" {
		return nil, fmt.Errorf("GITHUB_CLIENT_ID and GITHUB_CLIENT_SECRET are required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &githubProvider{
		httpClient:   httpClient,
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     "https://github.com/login/oauth/access_token",
		userURL:      "https://api.github.com/user",
	}, nil
}

func (gp *githubProvider) ExchangeCode(ctx context.Context, code string) (*ExternalIdentity, error) {
	form := url.Values{}
	form.Set("client_id", gp.clientID)
	form.Set("client_secret", gp.clientSecret)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, gp.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := gp.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.Error != "" || tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint rejected code: %s", tokenResp.Error)
	}

	userReq, err := http.NewRequestWithContext(ctx, http.MethodGet, gp.userURL, nil)
	if err != nil {
		return nil, err
	}
	userReq.Header.Set("Authorization", "Bearer "+tokenResp.AccessToken)
	userReq.Header.Set("Accept", "application/vnd.github+json")

	userResp, err := gp.httpClient.Do(userReq)
	if err != nil {
		return nil, fmt.Errorf("user request failed: %w", err)
	}
	defer userResp.Body.Close()
	if userResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user endpoint returned status %d", userResp.StatusCode)
	}

	var ghUser struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Login string `json:"login"`
	}
	if err := json.NewDecoder(userResp.Body).Decode(&ghUser); err != nil {
		return nil, fmt.Errorf("failed to decode user response: %w", err)
	}

	identity := &ExternalIdentity{Email: ghUser.Email}
	name := strings.TrimSpace(ghUser.Name)
	if name == "" {
		name = ghUser.Login
	}
	if parts := strings.SplitN(name, " ", 2); len(parts) == 2 {
		identity.FirstName, identity.LastName = parts[0], parts[1]
	} else {
		identity.FirstName = name
	}
	return identity, nil
}
