package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rentbook/rentbook/internal/config"
	"github.com/rentbook/rentbook/internal/models"
	"github.com/sirupsen/logrus"
)

// ProfileClient handles integration with the remote profile store
type ProfileClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

// NewProfileClient initializes a new profile store client
func NewProfileClient(cfg *config.Config, log *logrus.Logger) *ProfileClient {
	return &ProfileClient{
		baseURL: cfg.APIBaseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

type profileEnvelope struct {
	Profile models.RentProfile `json:"profile"`
}

type profilesEnvelope struct {
	Profiles []models.RentProfile `json:"profiles"`
}

// GetProfile retrieves a single profile by id
func (c *ProfileClient) GetProfile(ctx context.Context, profileID string) (*models.RentProfile, error) {
	url := fmt.Sprintf("%s/user/profile/%s", c.baseURL, profileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "get profile", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProfileNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Op: "get profile", Status: resp.StatusCode}
	}

	var env profileEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %v", err)
	}

	c.log.Debugf("Fetched profile %s", profileID)
	return &env.Profile, nil
}

// ListProfiles retrieves all profiles
func (c *ProfileClient) ListProfiles(ctx context.Context) ([]models.RentProfile, error) {
	url := fmt.Sprintf("%s/user/profiles", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "list profiles", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Op: "list profiles", Status: resp.StatusCode}
	}

	var env profilesEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %v", err)
	}
	return env.Profiles, nil
}

// CreateProfile creates a new profile in the profile store
func (c *ProfileClient) CreateProfile(ctx context.Context, p models.NewProfile) (*models.RentProfile, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %v", err)
	}

	url := fmt.Sprintf("%s/user/create", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "create profile", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &TransportError{Op: "create profile", Status: resp.StatusCode}
	}

	var env profileEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode created profile: %v", err)
	}

	c.log.Infof("Profile created: %s", env.Profile.Name)
	return &env.Profile, nil
}

// UpdateProfile updates a profile's rent and fine settings
func (c *ProfileClient) UpdateProfile(ctx context.Context, profileID string, p models.ProfileUpdate) (*models.RentProfile, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile update: %v", err)
	}

	url := fmt.Sprintf("%s/user/profile/%s", c.baseURL, profileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "update profile", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProfileNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Op: "update profile", Status: resp.StatusCode}
	}

	var env profileEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode updated profile: %v", err)
	}

	c.log.Infof("Profile updated: %s", profileID)
	return &env.Profile, nil
}
