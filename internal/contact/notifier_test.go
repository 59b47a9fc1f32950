package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMailtoNotifierURL(t *testing.T) {
	t.Parallel()

	var got string
	n := MailtoNotifier{Open: func(rawURL string) error {
		got = rawURL
		return nil
	}}

	err := n.Notify(Message{
		To:      "orders@example.com",
		Subject: "Interest in Product: Basket",
		Body:    "Hello,\n\nName: Asha",
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(got, "mailto:orders@example.com?subject="))
	require.Contains(t, got, "Interest%20in%20Product%3A%20Basket")
	require.NotContains(t, got, "+")
	require.Contains(t, got, "&body=Hello%2C%0A%0AName%3A%20Asha")
}

func TestMailtoNotifierNilOpener(t *testing.T) {
	t.Parallel()

	require.NoError(t, MailtoNotifier{}.Notify(Message{To: "orders@example.com"}))
}
