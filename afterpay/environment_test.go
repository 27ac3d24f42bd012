package afterpay

import "testing"

func TestEnvironmentBaseURL(t *testing.T) {
	cases := []struct {
		env  Environment
		want string
	}{
		{EnvironmentProduction, "https://global-api.afterpay.com"},
		{EnvironmentSandbox, "https://global-api-sandbox.afterpay.com"},
		{Environment("staging"), "https://global-api-sandbox.afterpay.com"},
		{Environment(""), "https://global-api-sandbox.afterpay.com"},
	}
	for _, c := range cases {
		if got := c.env.BaseURL(); got != c.want {
			t.Fatalf("BaseURL(%q) got %s want %s", c.env, got, c.want)
		}
	}
}

func TestEnvironmentValid(t *testing.T) {
	if !EnvironmentSandbox.Valid() || !EnvironmentProduction.Valid() {
		t.Fatal("known environments must be valid")
	}
	if Environment("staging").Valid() {
		t.Fatal("unknown environment must not be valid")
	}
}
