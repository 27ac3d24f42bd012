package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Batareeed/afterpay-go/afterpay"
	"github.com/Batareeed/afterpay-go/checkout"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	calls  int
	email  string
	amount afterpay.Money
	raw    []byte
	err    error
}

func (f *fakeCreator) CreateCheckout(ctx context.Context, email string, amount afterpay.Money) ([]byte, error) {
	f.calls++
	f.email = email
	f.amount = amount
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

func TestCheckoutReturnsRedirectURL(t *testing.T) {
	amount, err := afterpay.NewMoney("25.50", "AUD")
	require.NoError(t, err)

	creator := &fakeCreator{raw: []byte(`{"url":"https://portal.afterpay.com/checkout/abc123"}`)}
	repo := checkout.NewRepository(creator)

	u, err := repo.Checkout(context.Background(), "buyer@example.com", amount)
	require.NoError(t, err)
	require.Equal(t, "https://portal.afterpay.com/checkout/abc123", u.String())

	require.Equal(t, 1, creator.calls)
	require.Equal(t, "buyer@example.com", creator.email)
	require.Equal(t, amount, creator.amount)
}

func TestCheckoutNetworkErrorPassesThrough(t *testing.T) {
	amount, err := afterpay.NewMoney("25.50", "AUD")
	require.NoError(t, err)

	netErr := errors.New("gateway timeout")
	repo := checkout.NewRepository(&fakeCreator{err: netErr})

	_, err = repo.Checkout(context.Background(), "buyer@example.com", amount)
	require.ErrorIs(t, err, netErr)
}

func TestCheckoutDecodeFailures(t *testing.T) {
	amount, err := afterpay.NewMoney("25.50", "AUD")
	require.NoError(t, err)

	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `<html>bad gateway</html>`},
		{"missing url", `{"token":"abc123"}`},
		{"relative url", `{"url":"/checkout/abc123"}`},
		{"unparsable url", `{"url":"https://bad url with spaces"}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := checkout.NewRepository(&fakeCreator{raw: []byte(c.raw)})
			_, err := repo.Checkout(context.Background(), "buyer@example.com", amount)
			var decodeErr *afterpay.DecodeError
			require.ErrorAs(t, err, &decodeErr)
		})
	}
}
