package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/P3chys/content-tools/internal/models"
)

// Filter selects records by equality on one column.
type Filter struct {
	Column string
	Value  string
}

func TitleFilter(title string) Filter {
	return Filter{Column: "title", Value: title}
}

func TopicFilter(topic models.Topic) Filter {
	return Filter{Column: "topic", Value: string(topic)}
}

var ErrUnsupportedFilter = errors.New("unsupported filter column")

func (f Filter) validate() error {
	switch f.Column {
	case "title", "topic":
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFilter, f.Column)
}

// query renders the filter as a PostgREST equality predicate.
func (f Filter) query() string {
	return f.Column + "=eq." + strings.ReplaceAll(url.QueryEscape(f.Value), "+", "%20")
}

// RecordStore is the relational side of the content backend.
type RecordStore interface {
	InsertTraining(ctx context.Context, training models.Training) error
	InsertReferrals(ctx context.Context, referrals []models.Referral) error
	PatchTrainings(ctx context.Context, filter Filter, fields map[string]any) error
	ListTrainingsMissingImage(ctx context.Context) ([]models.Training, error)
	ListTrainings(ctx context.Context, offset, limit int) ([]models.Training, error)
	Count(ctx context.Context, table string) (int64, error)
	Ping(ctx context.Context) error
}

// RestRecords implements RecordStore over the PostgREST endpoint.
type RestRecords struct {
	client *SupabaseClient
}

func NewRestRecords(client *SupabaseClient) *RestRecords {
	return &RestRecords{client: client}
}

func (r *RestRecords) send(ctx context.Context, method, path, op string, payload any, ok ...int) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: failed to encode body: %w", op, err)
	}

	req, err := r.client.newRequest(ctx, method, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := r.client.do(req, op, ok...)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (r *RestRecords) InsertTraining(ctx context.Context, training models.Training) error {
	return r.send(ctx, http.MethodPost, "/rest/v1/"+training.TableName(), "insert training", training,
		http.StatusOK, http.StatusCreated)
}

func (r *RestRecords) InsertReferrals(ctx context.Context, referrals []models.Referral) error {
	if len(referrals) == 0 {
		return nil
	}
	return r.send(ctx, http.MethodPost, "/rest/v1/"+models.Referral{}.TableName(), "insert referrals", referrals,
		http.StatusOK, http.StatusCreated)
}

func (r *RestRecords) PatchTrainings(ctx context.Context, filter Filter, fields map[string]any) error {
	if err := filter.validate(); err != nil {
		return err
	}
	path := "/rest/v1/" + models.Training{}.TableName() + "?" + filter.query()
	return r.send(ctx, http.MethodPatch, path, "update trainings where "+filter.Column, fields,
		http.StatusOK, http.StatusNoContent)
}

func (r *RestRecords) listTrainings(ctx context.Context, query url.Values) ([]models.Training, error) {
	path := "/rest/v1/" + models.Training{}.TableName() + "?" + query.Encode()
	req, err := r.client.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.do(req, "list trainings", http.StatusOK, http.StatusPartialContent)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var trainings []models.Training
	if err := json.NewDecoder(resp.Body).Decode(&trainings); err != nil {
		return nil, fmt.Errorf("list trainings: failed to decode response: %w", err)
	}
	return trainings, nil
}

func (r *RestRecords) ListTrainingsMissingImage(ctx context.Context) ([]models.Training, error) {
	return r.listTrainings(ctx, url.Values{
		"select":    {"*"},
		"image_url": {"is.null"},
		"order":     {"id.asc"},
	})
}

func (r *RestRecords) ListTrainings(ctx context.Context, offset, limit int) ([]models.Training, error) {
	return r.listTrainings(ctx, url.Values{
		"select": {"*"},
		"order":  {"id.asc"},
		"offset": {strconv.Itoa(offset)},
		"limit":  {strconv.Itoa(limit)},
	})
}

// Count asks PostgREST for an exact count and reads it from Content-Range.
func (r *RestRecords) Count(ctx context.Context, table string) (int64, error) {
	req, err := r.client.newRequest(ctx, http.MethodHead, "/rest/v1/"+url.PathEscape(table)+"?select=*", nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Prefer", "count=exact")

	resp, err := r.client.do(req, "count "+table, http.StatusOK, http.StatusPartialContent)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()

	return parseContentRangeTotal(resp.Header.Get("Content-Range"))
}

func parseContentRangeTotal(header string) (int64, error) {
	i := strings.LastIndex(header, "/")
	if i < 0 || header[i+1:] == "*" {
		return 0, fmt.Errorf("content-range %q carries no total", header)
	}
	return strconv.ParseInt(header[i+1:], 10, 64)
}

func (r *RestRecords) Ping(ctx context.Context) error {
	req, err := r.client.newRequest(ctx, http.MethodGet, "/rest/v1/", nil)
	if err != nil {
		return err
	}
	resp, err := r.client.do(req, "ping", http.StatusOK)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
