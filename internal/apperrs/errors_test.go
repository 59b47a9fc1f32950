package apperrs

import (
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestKindPredicates(t *testing.T) {
	t.Parallel()

	require.True(t, IsValidation(Validation("All fields are required")))
	require.True(t, IsAuth(Auth("Invalid credentials")))
	require.True(t, IsNotFound(NotFound("Product not found")))
	require.True(t, IsNetwork(Network("unreachable", io.EOF)))

	require.False(t, IsAuth(Validation("x")))
	require.False(t, IsValidation(errors.New("plain")))
	require.False(t, IsNetwork(nil))
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	t.Parallel()

	err := errors.Wrap(NotFound("Product not found"), "confirm delete")
	require.True(t, IsNotFound(err))
	require.Equal(t, "Product not found", Message(err))
}

func TestMessageFallback(t *testing.T) {
	t.Parallel()

	require.Equal(t, "plain failure", Message(errors.New("plain failure")))
	require.Equal(t, "", Message(nil))
}

func TestNetworkKeepsCause(t *testing.T) {
	t.Parallel()

	err := Network("The server could not be reached. Please try again.", io.ErrUnexpectedEOF)
	require.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	require.Equal(t, "The server could not be reached. Please try again.", Message(err))
}

func TestKindString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "VALIDATION_ERROR", KindValidation.String())
	require.Equal(t, "AUTH_ERROR", KindAuth.String())
	require.Equal(t, "NOT_FOUND", KindNotFound.String())
	require.Equal(t, "NETWORK_ERROR", KindNetwork.String())
}
