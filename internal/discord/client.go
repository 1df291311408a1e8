package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
	"github.com/lunareth/FarfinderBot_Go/internal/handler"
	"github.com/lunareth/FarfinderBot_Go/internal/registry"
	"github.com/lunareth/FarfinderBot_Go/internal/shop"
)

// APIClient handles communication with the FarfinderBot Core API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIKey: apiKey,
	}
}

// APIError carries the core API's error kind so handlers can pick a
// friendly message per category.
type APIError struct {
	StatusCode int
	Kind       string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// doRequest performs an HTTP request with retry logic
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	url := fmt.Sprintf("%s%s", c.BaseURL, path)

	// Retry configuration
	maxRetries := 3
	retryDelay := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano() % 100) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, url, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		// Success or non-retryable error
		if resp.StatusCode < 500 {
			return resp, nil
		}

		// Server error - retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// decode reads a 2xx response into out, or turns an error response into an
// APIError.
func decode(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr handler.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return &APIError{StatusCode: resp.StatusCode, Kind: handler.KindInternal, Message: fmt.Sprintf("API returned status %d", resp.StatusCode)}
		}
		return &APIError{StatusCode: resp.StatusCode, Kind: apiErr.Kind, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// RegisterCharacter creates a new character for the Discord user.
func (c *APIClient) RegisterCharacter(discordID, name, class, species, background, description string) (*registry.CharacterProfile, error) {
	req := handler.RegisterCharacterRequest{
		UserID:      discordID,
		Name:        name,
		Class:       class,
		Species:     species,
		Background:  background,
		Description: description,
	}
	resp, err := c.doRequest(http.MethodPost, "/api/v1/character/register", req)
	if err != nil {
		return nil, err
	}
	var profile registry.CharacterProfile
	if err := decode(resp, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SwitchCharacter changes the active character.
func (c *APIClient) SwitchCharacter(discordID, name string) error {
	req := handler.SwitchCharacterRequest{UserID: discordID, Name: name}
	resp, err := c.doRequest(http.MethodPost, "/api/v1/character/switch", req)
	if err != nil {
		return err
	}
	return decode(resp, nil)
}

// GetProfile fetches the active character's profile.
func (c *APIClient) GetProfile(discordID string) (*registry.CharacterProfile, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/character/profile?user_id="+url.QueryEscape(discordID), nil)
	if err != nil {
		return nil, err
	}
	var profile registry.CharacterProfile
	if err := decode(resp, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListCharacters fetches the user's character roster.
func (c *APIClient) ListCharacters(discordID string) (*registry.CharacterList, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/character/list?user_id="+url.QueryEscape(discordID), nil)
	if err != nil {
		return nil, err
	}
	var list registry.CharacterList
	if err := decode(resp, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// SetAttribute updates one attribute on the active character.
func (c *APIClient) SetAttribute(discordID, field, value string) (*registry.CharacterProfile, error) {
	req := handler.SetAttributeRequest{UserID: discordID, Field: field, Value: value}
	resp, err := c.doRequest(http.MethodPost, "/api/v1/character/attribute", req)
	if err != nil {
		return nil, err
	}
	var profile registry.CharacterProfile
	if err := decode(resp, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetStatus transitions the active character's status.
func (c *APIClient) SetStatus(discordID, status string) (*registry.StatusResult, error) {
	req := handler.SetStatusRequest{UserID: discordID, Status: status}
	resp, err := c.doRequest(http.MethodPost, "/api/v1/character/status", req)
	if err != nil {
		return nil, err
	}
	var result registry.StatusResult
	if err := decode(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetInventory fetches the active character's inventory.
func (c *APIClient) GetInventory(discordID string) (*registry.InventoryView, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/inventory?user_id="+url.QueryEscape(discordID), nil)
	if err != nil {
		return nil, err
	}
	var view registry.InventoryView
	if err := decode(resp, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// AdjustInventory adds or removes resources on the active character.
func (c *APIClient) AdjustInventory(discordID, action, resource string, amount int) (*registry.AdjustResult, error) {
	req := handler.AdjustInventoryRequest{UserID: discordID, Action: action, Resource: resource, Amount: amount}
	resp, err := c.doRequest(http.MethodPost, "/api/v1/inventory/adjust", req)
	if err != nil {
		return nil, err
	}
	var result registry.AdjustResult
	if err := decode(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Deposit moves resources from the active character into the pool.
func (c *APIClient) Deposit(discordID, resource string, amount int) (*domain.Transfer, error) {
	return c.transfer(discordID, resource, amount, "/api/v1/transfer/deposit")
}

// Take moves resources from the pool to the active character.
func (c *APIClient) Take(discordID, resource string, amount int) (*domain.Transfer, error) {
	return c.transfer(discordID, resource, amount, "/api/v1/transfer/take")
}

func (c *APIClient) transfer(discordID, resource string, amount int, path string) (*domain.Transfer, error) {
	req := handler.TransferRequest{UserID: discordID, Resource: resource, Amount: amount}
	resp, err := c.doRequest(http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}
	var result domain.Transfer
	if err := decode(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPool fetches the shared Farfinder pool contents.
func (c *APIClient) GetPool() (domain.Inventory, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/farfinder", nil)
	if err != nil {
		return nil, err
	}
	var result handler.PoolResponse
	if err := decode(resp, &result); err != nil {
		return nil, err
	}
	return result.Pool, nil
}

// GetShop fetches the shop catalog.
func (c *APIClient) GetShop() ([]domain.ShopItem, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/shop", nil)
	if err != nil {
		return nil, err
	}
	var result handler.ShopListResponse
	if err := decode(resp, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// BuyItem purchases a shop item for the active character.
func (c *APIClient) BuyItem(discordID string, index, quantity int) (*shop.Receipt, error) {
	req := handler.BuyRequest{UserID: discordID, Index: index, Quantity: quantity}
	resp, err := c.doRequest(http.MethodPost, "/api/v1/shop/buy", req)
	if err != nil {
		return nil, err
	}
	var receipt shop.Receipt
	if err := decode(resp, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}
