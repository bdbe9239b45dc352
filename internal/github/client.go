package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/HartBrook/promptwizard/internal/errors"
	"github.com/cli/go-gh/v2/pkg/api"
)

// Client wraps the GitHub gists API.
type Client struct {
	rest *api.RESTClient
}

// NewClient creates a GitHub client authenticated through the auth chain.
func NewClient() (*Client, error) {
	token, err := GetToken()
	if err != nil {
		return nil, err
	}
	return NewClientWithOptions(api.ClientOptions{AuthToken: token})
}

// NewClientWithOptions creates a GitHub client from explicit go-gh options.
func NewClientWithOptions(opts api.ClientOptions) (*Client, error) {
	client, err := api.NewRESTClient(opts)
	if err != nil {
		return nil, errors.ShareFailed(err)
	}
	return &Client{rest: client}, nil
}

type gistFile struct {
	Content string `json:"content"`
}

type createGistRequest struct {
	Description string              `json:"description"`
	Public      bool                `json:"public"`
	Files       map[string]gistFile `json:"files"`
}

type gistResponse struct {
	ID      string `json:"id"`
	HTMLURL string `json:"html_url"`
}

// CreateGist creates a secret gist holding one file and returns its URL.
func (c *Client) CreateGist(ctx context.Context, description, filename, content string) (string, error) {
	if filename == "" || content == "" {
		return "", errors.ShareFailed(fmt.Errorf("filename and content are required"))
	}

	body, err := json.Marshal(createGistRequest{
		Description: description,
		Public:      false,
		Files:       map[string]gistFile{filename: {Content: content}},
	})
	if err != nil {
		return "", errors.ShareFailed(err)
	}

	var response gistResponse
	if err := c.rest.DoWithContext(ctx, http.MethodPost, "gists", bytes.NewReader(body), &response); err != nil {
		return "", errors.ShareFailed(err)
	}
	if response.HTMLURL == "" {
		return "", errors.ShareFailed(fmt.Errorf("gist %q has no html_url", response.ID))
	}

	return response.HTMLURL, nil
}
