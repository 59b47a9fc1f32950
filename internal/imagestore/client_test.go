package imagestore_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rushikulya/marketkit/internal/apitest"
	"github.com/rushikulya/marketkit/internal/apperrs"
	"github.com/rushikulya/marketkit/internal/imagestore"
	"github.com/rushikulya/marketkit/internal/restclient"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestValidateGates(t *testing.T) {
	t.Parallel()

	err := imagestore.Validate(nil)
	require.True(t, apperrs.IsValidation(err))
	require.Equal(t, "Please select an image file", apperrs.Message(err))

	err = imagestore.Validate([]byte("plain text, not an image"))
	require.Equal(t, "Please select an image file", apperrs.Message(err))

	big := append(pngBytes(t), make([]byte, imagestore.MaxImageBytes)...)
	err = imagestore.Validate(big)
	require.Equal(t, "Image must be 2MB or smaller", apperrs.Message(err))

	require.NoError(t, imagestore.Validate(pngBytes(t)))
}

func TestUploadRejectsLocallyWithoutNetwork(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	c := imagestore.New(restclient.New(srv.URL, 2*time.Second, nil))

	_, err := c.Upload(context.Background(), []byte("not an image"))
	require.True(t, apperrs.IsValidation(err))
	require.Zero(t, srv.TotalHits())
}

func TestUploadReturnsHostedURL(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	c := imagestore.New(restclient.New(srv.URL, 2*time.Second, nil))

	url, err := c.Upload(context.Background(), pngBytes(t))
	require.NoError(t, err)
	require.NotEmpty(t, url)
	require.Equal(t, 1, srv.Hits("POST", "/api/uploads"))
}
