package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"entrenador/gym-platform/internal/domain"
)

// Client talks to the third-party gym exercises API. The API is
// read-only and paginated; responses are cached by the service layer.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given API base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ExerciseQuery carries the supported catalog filters.
type ExerciseQuery struct {
	Page        int
	Limit       int
	Search      string
	Difficulty  string
	MuscleID    string
	EquipmentID string
	SortBy      string
	SortOrder   string
}

// CacheKey derives a stable cache key from the query parameters.
func (q ExerciseQuery) CacheKey() string {
	return fmt.Sprintf("exercises:%d:%d:%s:%s:%s:%s:%s:%s",
		q.Page, q.Limit, q.Search, q.Difficulty, q.MuscleID, q.EquipmentID, q.SortBy, q.SortOrder)
}

// exercisePayload matches the upstream envelope. The API returns
// either {data, total, page, totalPages} or a bare array.
type exercisePayload struct {
	Data       []domain.CatalogExercise `json:"data"`
	Total      int                      `json:"total"`
	Page       int                      `json:"page"`
	TotalPages int                      `json:"totalPages"`
}

// ListExercises fetches one page of the exercise catalog.
func (c *Client) ListExercises(ctx context.Context, query ExerciseQuery) (*domain.CatalogPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("limit", strconv.Itoa(query.Limit))
	if query.SortBy != "" {
		params.Set("sortBy", query.SortBy)
	}
	if query.SortOrder != "" {
		params.Set("sortOrder", query.SortOrder)
	}
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	if query.Difficulty != "" {
		params.Set("difficulty", query.Difficulty)
	}
	if query.MuscleID != "" {
		params.Set("muscleId", query.MuscleID)
	}
	if query.EquipmentID != "" {
		params.Set("equipmentId", query.EquipmentID)
	}

	body, err := c.get(ctx, "/exercises?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var payload exercisePayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Data != nil {
		return &domain.CatalogPage{
			Exercises:  payload.Data,
			Total:      payload.Total,
			Page:       payload.Page,
			TotalPages: payload.TotalPages,
		}, nil
	}

	// Some deployments return a bare array instead of the envelope.
	var exercises []domain.CatalogExercise
	if err := json.Unmarshal(body, &exercises); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	return &domain.CatalogPage{
		Exercises:  exercises,
		Total:      len(exercises),
		Page:       query.Page,
		TotalPages: 1,
	}, nil
}

// ListMuscles fetches the muscle group reference list.
func (c *Client) ListMuscles(ctx context.Context) ([]domain.CatalogMuscle, error) {
	body, err := c.get(ctx, "/muscles")
	if err != nil {
		return nil, err
	}

	var muscles []domain.CatalogMuscle
	if err := json.Unmarshal(body, &muscles); err != nil {
		return nil, fmt.Errorf("decode muscles response: %w", err)
	}
	return muscles, nil
}

// ListEquipment fetches the equipment reference list.
func (c *Client) ListEquipment(ctx context.Context) ([]domain.CatalogEquipment, error) {
	body, err := c.get(ctx, "/equipment")
	if err != nil {
		return nil, err
	}

	var equipment []domain.CatalogEquipment
	if err := json.Unmarshal(body, &equipment); err != nil {
		return nil, fmt.Errorf("decode equipment response: %w", err)
	}
	return equipment, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog API returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
