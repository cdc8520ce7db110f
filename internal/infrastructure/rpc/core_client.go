package rpc

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/cafehub/gateway/internal/core/domain"
	"github.com/cafehub/gateway/internal/core/ports"
)

// CoreClient talks to the identity/cafe backend.
type CoreClient struct {
	caller
}

func NewCoreClient(baseURL string, client *http.Client, timeout time.Duration, logger zerolog.Logger) *CoreClient {
	return &CoreClient{caller: newCaller("core", baseURL, client, timeout, logger)}
}

// Wire types mirror the backend's JSON surface. The backend keeps Mongo-style
// field names (_id, image_name sanitized to image); the clients translate to
// domain types at the boundary.

type wireUser struct {
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	Desc       string   `json:"desc"`
	ProfilePic string   `json:"profile_pic"`
	Cafes      []string `json:"cafes"`
}

func (w wireUser) toDomain() domain.User {
	return domain.User{
		Username:   w.Username,
		Email:      w.Email,
		Desc:       w.Desc,
		ProfilePic: w.ProfilePic,
		Cafes:      w.Cafes,
	}
}

type wireCafe struct {
	ID         string   `json:"_id"`
	Name       string   `json:"name"`
	Bio        string   `json:"bio"`
	DTI        string   `json:"dti"`
	Image      string   `json:"image"`
	PriceRange string   `json:"price_range"`
	Address    string   `json:"address"`
	Items      []string `json:"items"`
	Owner      string   `json:"owner"`
}

func (w wireCafe) toDomain() domain.Cafe {
	return domain.Cafe{
		ID:         w.ID,
		Name:       w.Name,
		Bio:        w.Bio,
		DTI:        w.DTI,
		Image:      w.Image,
		PriceRange: w.PriceRange,
		Address:    w.Address,
		Items:      w.Items,
		Owner:      w.Owner,
	}
}

type loginResponse struct {
	Status string   `json:"status"`
	Token  string   `json:"token"`
	User   wireUser `json:"user"`
}

func (c *CoreClient) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	req := map[string]string{"username": username, "password": password}
	var resp loginResponse
	if err := c.call(ctx, "Login", http.MethodPost, "/api/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &ports.LoginResult{User: resp.User.toDomain(), Token: resp.Token}, nil
}

func (c *CoreClient) Register(ctx context.Context, input ports.RegisterInput) error {
	req := map[string]string{
		"username": input.Username,
		"password": input.Password,
		"email":    input.Email,
	}
	return c.call(ctx, "Register", http.MethodPost, "/api/register", nil, req, nil)
}

func (c *CoreClient) GetUserProfile(ctx context.Context, username string) (*domain.User, error) {
	var resp wireUser
	if err := c.call(ctx, "GetUserProfile", http.MethodGet, "/api/user/"+url.PathEscape(username), nil, nil, &resp); err != nil {
		return nil, err
	}
	user := resp.toDomain()
	return &user, nil
}

func (c *CoreClient) UpdateUserProfile(ctx context.Context, input ports.UpdateProfileInput) error {
	req := map[string]string{}
	if input.Desc != "" {
		req["desc"] = input.Desc
	}
	if input.ProfilePic != "" {
		req["profile_pic"] = input.ProfilePic
	}
	if input.Password != "" {
		req["password"] = input.Password
	}
	return c.call(ctx, "UpdateUserProfile", http.MethodPut, "/api/user/"+url.PathEscape(input.Username), nil, req, nil)
}

type cafesResponse struct {
	Cafes []wireCafe `json:"cafes"`
}

func (c *CoreClient) GetCafes(ctx context.Context, search string) ([]domain.Cafe, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	var resp cafesResponse
	if err := c.call(ctx, "GetCafes", http.MethodGet, "/api/cafes", query, nil, &resp); err != nil {
		return nil, err
	}
	cafes := make([]domain.Cafe, 0, len(resp.Cafes))
	for _, w := range resp.Cafes {
		cafes = append(cafes, w.toDomain())
	}
	return cafes, nil
}

func (c *CoreClient) GetCafeByID(ctx context.Context, id string) (*domain.Cafe, error) {
	var resp wireCafe
	if err := c.call(ctx, "GetCafeById", http.MethodGet, "/api/cafe/"+url.PathEscape(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	cafe := resp.toDomain()
	return &cafe, nil
}

type createCafeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (c *CoreClient) CreateCafe(ctx context.Context, input ports.CreateCafeInput) (string, error) {
	req := map[string]any{
		"name":        input.Name,
		"bio":         input.Bio,
		"dti":         input.DTI,
		"image":       input.Image,
		"price_range": input.PriceRange,
		"address":     input.Address,
		"items":       input.Items,
		"owner":       input.Owner,
	}
	var resp createCafeResponse
	if err := c.call(ctx, "CreateCafe", http.MethodPost, "/api/add-cafe", nil, req, &resp); err != nil {
		return "", err
	}
	// The backend returns the new cafe id in the message field.
	return resp.Message, nil
}
