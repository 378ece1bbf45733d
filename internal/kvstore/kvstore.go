package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.cloudflare.com/client/v4"

// Client talks to a Cloudflare Workers KV namespace holding JSON documents.
// All mutations are whole-document writes; nested operations are
// read-modify-write and last write wins.
type Client struct {
	client *resty.Client
	logger *zap.Logger
}

func NewClient(accountID, apiToken, namespaceID string, logger *zap.Logger) (*Client, error) {
	if accountID == "" || apiToken == "" || namespaceID == "" {
		return nil, errors.New("Storage account id, api token and namespace id must be set")
	}

	client := resty.New().
		SetBaseURL(fmt.Sprintf("%s/accounts/%s/storage/kv/namespaces/%s", defaultBaseURL, accountID, namespaceID)).
		SetAuthToken(apiToken).
		SetHeader("Content-Type", "application/json").
		SetTimeout(time.Second * 10)

	return &Client{client, logger}, nil
}

// withBaseURL overrides the API endpoint, for tests.
func (c *Client) withBaseURL(base string) *Client {
	c.client.SetBaseURL(base)
	return c
}

func (c *Client) valueURL(key string) string {
	return "/values/" + url.PathEscape(key)
}

// fetch reads the raw document for key. A missing key reports found=false.
// Values that are not valid JSON come back as plain strings.
func (c *Client) fetch(ctx context.Context, key string) (interface{}, bool, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(c.valueURL(key))
	if err != nil {
		return nil, false, errors.Wrapf(err, "Failed to read key %q", key)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, false, nil
	}
	if !resp.IsSuccess() {
		c.logger.Error("KV read failed", zap.String("key", key), zap.Int("status", resp.StatusCode()))
		return nil, false, errors.Errorf("Failed to read key %q: %s", key, resp.Status())
	}

	var value interface{}
	if err := json.Unmarshal(resp.Body(), &value); err != nil {
		return string(resp.Body()), true, nil
	}
	return value, true, nil
}

func (c *Client) put(ctx context.Context, key string, value interface{}) error {
	body, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "Failed to encode value for key %q", key)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Put(c.valueURL(key))
	if err != nil {
		return errors.Wrapf(err, "Failed to write key %q", key)
	}
	if !resp.IsSuccess() {
		c.logger.Error("KV write failed", zap.String("key", key), zap.Int("status", resp.StatusCode()))
		return errors.Errorf("Failed to write key %q: %s", key, resp.Status())
	}
	return nil
}

// Get reads the whole document stored at key.
func (c *Client) Get(ctx context.Context, key string) (interface{}, bool, error) {
	return c.fetch(ctx, key)
}

// GetPath reads the value at a nested path inside the document at key.
func (c *Client) GetPath(ctx context.Context, key, path string) (interface{}, bool, error) {
	value, found, err := c.fetch(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}
	nested, ok := GetNested(value, SplitPath(path))
	if !ok {
		return nil, false, nil
	}
	return nested, true, nil
}

// Set overwrites the whole document at key.
func (c *Client) Set(ctx context.Context, key string, value interface{}) error {
	return c.put(ctx, key, value)
}

// SetPath sets the value at a nested path, creating intermediate objects.
// A missing or non-object document starts from an empty one.
func (c *Client) SetPath(ctx context.Context, key, path string, value interface{}) error {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return c.put(ctx, key, value)
	}

	current, found, err := c.fetch(ctx, key)
	if err != nil {
		return err
	}
	doc, ok := current.(Document)
	if !found || !ok {
		doc = Document{}
	}

	return c.put(ctx, key, SetNested(doc, segments, value))
}

// Delete removes the whole document at key.
func (c *Client) Delete(ctx context.Context, key string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Delete(c.valueURL(key))
	if err != nil {
		return errors.Wrapf(err, "Failed to delete key %q", key)
	}
	if !resp.IsSuccess() {
		return errors.Errorf("Failed to delete key %q: %s", key, resp.Status())
	}
	return nil
}

// DeletePath removes only the leaf at a nested path. Absent paths no-op.
func (c *Client) DeletePath(ctx context.Context, key, path string) error {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return c.Delete(ctx, key)
	}

	current, found, err := c.fetch(ctx, key)
	if err != nil {
		return err
	}
	doc, ok := current.(Document)
	if !found || !ok {
		return nil
	}

	return c.put(ctx, key, DeleteNested(doc, segments))
}

// Append treats the document at key as a list and appends value to it.
// Missing or non-list documents are reset to an empty list first.
func (c *Client) Append(ctx context.Context, key string, value interface{}) error {
	current, found, err := c.fetch(ctx, key)
	if err != nil {
		return err
	}

	list, ok := current.([]interface{})
	if !found || !ok {
		list = []interface{}{}
	}

	return c.put(ctx, key, append(list, value))
}
