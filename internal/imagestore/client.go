// Package imagestore uploads listing images to the image store collaborator
// and returns the hosted URL. Size and MIME gating happen locally, before
// any payload leaves the process.
package imagestore

import (
	"context"
	"net/http"
	"strings"

	"github.com/rushikulya/marketkit/internal/apperrs"
	"github.com/rushikulya/marketkit/internal/restclient"
)

// MaxImageBytes is the upload ceiling enforced client-side.
const MaxImageBytes = 2 * 1024 * 1024

type Client struct {
	rc *restclient.Client
}

func New(rc *restclient.Client) *Client {
	return &Client{rc: rc}
}

// Validate applies the local gates without uploading anything.
func Validate(data []byte) error {
	if len(data) == 0 {
		return apperrs.Validation("Please select an image file")
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return apperrs.Validation("Please select an image file")
	}
	if len(data) > MaxImageBytes {
		return apperrs.Validation("Image must be 2MB or smaller")
	}
	return nil
}

// Upload sends the image and returns its hosted URL. Transport failures
// propagate as network errors.
func (c *Client) Upload(ctx context.Context, data []byte) (string, error) {
	if err := Validate(data); err != nil {
		return "", err
	}
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.rc.Upload(ctx, "/api/uploads", "image", data, &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", apperrs.Validation("Image upload failed")
	}
	return resp.URL, nil
}
