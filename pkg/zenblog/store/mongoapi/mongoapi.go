// Package mongoapi implements zenblog.Store against the MongoDB Atlas Data
// API: every operation is a POST to {endpoint}/action/{name} carrying the
// dataSource/database/collection triple plus an action-specific payload.
package mongoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mdsahadathossenshihab/zenblog/pkg/zenblog"
)

// Default connection parameters, matching the hosted cluster conventions.
const (
	DefaultDataSource = "Cluster0"
	DefaultDatabase   = "zenblog"
	DefaultCollection = "posts"
)

// objectIDHex matches a native Mongo ObjectID in hex form. Identifiers in
// this shape are looked up via _id; anything else via the flat id field.
var objectIDHex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// Config options for the Atlas Data API backend
type Config struct {
	Endpoint   string // base URL of the Data API app, without /action
	APIKey     string
	DataSource string // defaults to "Cluster0"
	Database   string // defaults to "zenblog"
	Collection string // defaults to "posts"

	// HTTPClient overrides the default client. Intended for tests.
	HTTPClient *http.Client
}

// Store implements zenblog.Store over the Atlas Data API wire contract.
type Store struct {
	endpoint   string
	apiKey     string
	dataSource string
	database   string
	collection string
	client     *http.Client
}

// New creates a new Atlas Data API store
func New(cfg Config) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint is required", zenblog.ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: api key is required", zenblog.ErrInvalidConfig)
	}
	if cfg.DataSource == "" {
		cfg.DataSource = DefaultDataSource
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Store{
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		apiKey:     cfg.APIKey,
		dataSource: cfg.DataSource,
		database:   cfg.Database,
		collection: cfg.Collection,
		client:     cfg.HTTPClient,
	}, nil
}

// actionRequest is the envelope every Data API call carries.
type actionRequest struct {
	DataSource string         `json:"dataSource"`
	Database   string         `json:"database"`
	Collection string         `json:"collection"`
	Filter     map[string]any `json:"filter,omitempty"`
	Document   any            `json:"document,omitempty"`
	Update     any            `json:"update,omitempty"`
	Sort       map[string]any `json:"sort,omitempty"`
}

// objectID decodes a Mongo _id that arrives either wrapped as
// {"$oid": "<hex>"} or as a plain string.
type objectID struct {
	Hex string
}

func (o *objectID) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.OID != "" {
		o.Hex = wrapped.OID
		return nil
	}

	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		o.Hex = plain
		return nil
	}

	return fmt.Errorf("unsupported _id encoding: %s", data)
}

// document is a post as stored in the collection: the flat post fields plus
// the provider-native identifier, which flatten folds into Post.ID.
type document struct {
	OID *objectID `json:"_id,omitempty"`
	zenblog.Post
}

func (d *document) flatten() *zenblog.Post {
	post := d.Post
	if d.OID != nil && d.OID.Hex != "" {
		post.ID = d.OID.Hex
	}
	return &post
}

func (s *Store) List(ctx context.Context) ([]*zenblog.Post, error) {
	var out struct {
		Documents []document `json:"documents"`
	}
	err := s.do(ctx, "find", actionRequest{
		Filter: map[string]any{},
		Sort:   map[string]any{"created_at": -1},
	}, &out)
	if err != nil {
		return nil, err
	}

	posts := make([]*zenblog.Post, 0, len(out.Documents))
	for i := range out.Documents {
		posts = append(posts, out.Documents[i].flatten())
	}
	return posts, nil
}

func (s *Store) Get(ctx context.Context, id string) (*zenblog.Post, error) {
	var out struct {
		Document *document `json:"document"`
	}
	err := s.do(ctx, "findOne", actionRequest{Filter: idFilter(id)}, &out)
	if err != nil {
		return nil, err
	}
	if out.Document == nil {
		return nil, zenblog.ErrPostNotFound
	}
	return out.Document.flatten(), nil
}

func (s *Store) Insert(ctx context.Context, post *zenblog.Post) (*zenblog.Post, error) {
	var out struct {
		InsertedID string `json:"insertedId"`
	}
	err := s.do(ctx, "insertOne", actionRequest{Document: post}, &out)
	if err != nil {
		return nil, err
	}

	created := *post
	if out.InsertedID != "" {
		// The server-generated identifier is canonical
		created.ID = out.InsertedID
	}
	return &created, nil
}

func (s *Store) Update(ctx context.Context, id string, patch zenblog.UpdatePostRequest) (*zenblog.Post, error) {
	var out struct {
		MatchedCount  int `json:"matchedCount"`
		ModifiedCount int `json:"modifiedCount"`
	}
	err := s.do(ctx, "updateOne", actionRequest{
		Filter: idFilter(id),
		Update: map[string]any{"$set": patch},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.MatchedCount == 0 {
		return nil, zenblog.ErrPostNotFound
	}

	// Re-read so the caller gets the merged record, not just the patch
	return s.Get(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	var out struct {
		DeletedCount int `json:"deletedCount"`
	}
	// A zero deletedCount is fine: delete is idempotent
	return s.do(ctx, "deleteOne", actionRequest{Filter: idFilter(id)}, &out)
}

// idFilter dispatches the lookup filter on the identifier format: a
// 24-character hex string is a native ObjectID, anything else is the flat id
// field written at insert time.
func idFilter(id string) map[string]any {
	if objectIDHex.MatchString(id) {
		return map[string]any{"_id": map[string]any{"$oid": id}}
	}
	return map[string]any{"id": id}
}

// do performs one Data API action. Transport failures and non-2xx responses
// map to ErrStoreUnavailable; no retries are attempted.
func (s *Store) do(ctx context.Context, action string, req actionRequest, out any) error {
	req.DataSource = s.dataSource
	req.Database = s.database
	req.Collection = s.collection

	body, err := json.Marshal(req)
	if err != nil {
		return s.fail(action, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/action/"+action, bytes.NewReader(body))
	if err != nil {
		return s.fail(action, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return s.fail(action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = resp.Status
		}
		return s.fail(action, errors.New(apiErr.Error))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return s.fail(action, err)
	}
	return nil
}

func (s *Store) fail(op string, err error) error {
	return &zenblog.StoreError{
		Backend: "mongoapi",
		Op:      op,
		Err:     fmt.Errorf("%w: %v", zenblog.ErrStoreUnavailable, err),
	}
}
