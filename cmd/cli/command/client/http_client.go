package client

// http_client.go talks to the titlehub REST API under /api/v1.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"titlehub/internal/microservices/http-api/dto"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Kind       string
	Field      string
	Message    string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%d): %s: %s", e.Kind, e.StatusCode, e.Field, e.Message)
	}
	if e.Kind != "" {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// TitleFilter mirrors the query parameters of GET /titles/.
type TitleFilter struct {
	Category string
	Genre    string
	Name     string
	Year     int
	Page     int
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: apiURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do sends body as JSON and decodes the response into out when it is not nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any, want int) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		var errBody dto.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil && errBody.Error != "" {
			apiErr.Kind = errBody.Kind
			apiErr.Field = errBody.Field
			apiErr.Message = errBody.Error
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Auth

func (c *HTTPClient) Signup(ctx context.Context, email string) (*dto.SignupResponse, error) {
	var result dto.SignupResponse
	err := c.do(ctx, http.MethodPost, "/auth/email/", dto.SignupRequest{Email: email}, &result, http.StatusCreated)
	return &result, err
}

func (c *HTTPClient) ObtainToken(ctx context.Context, email, code string) (*dto.TokenResponse, error) {
	var result dto.TokenResponse
	req := dto.TokenRequest{Email: email, ConfirmationCode: code}
	err := c.do(ctx, http.MethodPost, "/token/", req, &result, http.StatusOK)
	return &result, err
}

func (c *HTTPClient) RefreshToken(ctx context.Context, refresh string) (*dto.TokenResponse, error) {
	var result dto.TokenResponse
	err := c.do(ctx, http.MethodPost, "/token/refresh/", dto.RefreshTokenRequest{RefreshToken: refresh}, &result, http.StatusOK)
	return &result, err
}

func (c *HTTPClient) RevokeToken(ctx context.Context, refresh string) error {
	return c.do(ctx, http.MethodPost, "/token/revoke/", dto.RefreshTokenRequest{RefreshToken: refresh}, nil, http.StatusOK)
}

func (c *HTTPClient) Me(ctx context.Context) (*dto.UserResponse, error) {
	var result dto.UserResponse
	err := c.do(ctx, http.MethodGet, "/users/me/", nil, &result, http.StatusOK)
	return &result, err
}

// Categories and genres

func (c *HTTPClient) ListCategories(ctx context.Context, search string) (*dto.Paginated[dto.CategoryResponse], error) {
	var result dto.Paginated[dto.CategoryResponse]
	err := c.do(ctx, http.MethodGet, "/categories/"+searchQuery(search), nil, &result, http.StatusOK)
	return &result, err
}

func (c *HTTPClient) CreateCategory(ctx context.Context, name, slug string) (*dto.CategoryResponse, error) {
	var result dto.CategoryResponse
	err := c.do(ctx, http.MethodPost, "/categories/", dto.CreateCategoryRequest{Name: name, Slug: slug}, &result, http.StatusCreated)
	return &result, err
}

func (c *HTTPClient) DeleteCategory(ctx context.Context, slug string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(slug)+"/", nil, nil, http.StatusNoContent)
}

func (c *HTTPClient) ListGenres(ctx context.Context, search string) (*dto.Paginated[dto.GenreResponse], error) {
	var result dto.Paginated[dto.GenreResponse]
	err := c.do(ctx, http.MethodGet, "/genres/"+searchQuery(search), nil, &result, http.StatusOK)
	return &result, err
}

func (c *HTTPClient) CreateGenre(ctx context.Context, name, slug string) (*dto.GenreResponse, error) {
	var result dto.GenreResponse
	err := c.do(ctx, http.MethodPost, "/genres/", dto.CreateGenreRequest{Name: name, Slug: slug}, &result, http.StatusCreated)
	return &result, err
}

func (c *HTTPClient) DeleteGenre(ctx context.Context, slug string) error {
	return c.do(ctx, http.MethodDelete, "/genres/"+url.PathEscape(slug)+"/", nil, nil, http.StatusNoContent)
}

// Titles

func (c *HTTPClient) ListTitles(ctx context.Context, filter TitleFilter) (*dto.Paginated[dto.TitleResponse], error) {
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Genre != "" {
		q.Set("genre", filter.Genre)
	}
	if filter.Name != "" {
		q.Set("name", filter.Name)
	}
	if filter.Year != 0 {
		q.Set("year", strconv.Itoa(filter.Year))
	}
	if filter.Page > 1 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	path := "/titles/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var result dto.Paginated[dto.TitleResponse]
	err := c.do(ctx, http.MethodGet, path, nil, &result, http.StatusOK)
	return &result, err
}

func (c *HTTPClient) GetTitle(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	var result dto.TitleResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/titles/%d/", id), nil, &result, http.StatusOK)
	return &result, err
}

func (c *HTTPClient) CreateTitle(ctx context.Context, req *dto.CreateTitleRequest) (*dto.TitleResponse, error) {
	var result dto.TitleResponse
	err := c.do(ctx, http.MethodPost, "/titles/", req, &result, http.StatusCreated)
	return &result, err
}

func (c *HTTPClient) DeleteTitle(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/titles/%d/", id), nil, nil, http.StatusNoContent)
}

// Reviews and comments

func (c *HTTPClient) ListReviews(ctx context.Context, titleID int64) (*dto.Paginated[dto.ReviewResponse], error) {
	var result dto.Paginated[dto.ReviewResponse]
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/titles/%d/reviews/", titleID), nil, &result, http.StatusOK)
	return &result, err
}

func (c *HTTPClient) CreateReview(ctx context.Context, titleID int64, text string, score int) (*dto.ReviewResponse, error) {
	var result dto.ReviewResponse
	req := dto.CreateReviewRequest{Text: text, Score: &score}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/titles/%d/reviews/", titleID), req, &result, http.StatusCreated)
	return &result, err
}

func (c *HTTPClient) DeleteReview(ctx context.Context, titleID, reviewID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/titles/%d/reviews/%d/", titleID, reviewID), nil, nil, http.StatusNoContent)
}

func (c *HTTPClient) ListComments(ctx context.Context, titleID, reviewID int64) (*dto.Paginated[dto.CommentResponse], error) {
	var result dto.Paginated[dto.CommentResponse]
	path := fmt.Sprintf("/titles/%d/reviews/%d/comments/", titleID, reviewID)
	err := c.do(ctx, http.MethodGet, path, nil, &result, http.StatusOK)
	return &result, err
}

func (c *HTTPClient) CreateComment(ctx context.Context, titleID, reviewID int64, text string) (*dto.CommentResponse, error) {
	var result dto.CommentResponse
	path := fmt.Sprintf("/titles/%d/reviews/%d/comments/", titleID, reviewID)
	err := c.do(ctx, http.MethodPost, path, dto.CreateCommentRequest{Text: text}, &result, http.StatusCreated)
	return &result, err
}

func searchQuery(search string) string {
	if search == "" {
		return ""
	}
	return "?search=" + url.QueryEscape(search)
}
