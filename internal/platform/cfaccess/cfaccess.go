// Package cfaccess obtains short-lived tokens for the access gateway in
// front of the management API, via the cloudflared CLI.
package cfaccess

import (
	"context"
	"fmt"
	"strings"

	"github.com/worldcoin/orb-registration/internal/tools"
)

// FetchToken logs in to the access gateway protecting domain and returns
// the resulting token. The login step is interactive: cloudflared prints
// a browser URL for the operator to approve, so it runs attached to the
// terminal. The token fetch captures stdout only, since the token is the
// whole output.
func FetchToken(ctx context.Context, r tools.Runner, domain string) (string, error) {
	if err := r.Interactive(ctx, "cloudflared", "access", "login", "--quiet", domain); err != nil {
		return "", fmt.Errorf("cloudflared access login for %s: %w", domain, err)
	}

	out, err := r.Output(ctx, "cloudflared", "access", "token", "--app="+domain)
	if err != nil {
		return "", fmt.Errorf("cloudflared access token for %s: %w", domain, err)
	}

	token := strings.TrimSpace(string(out))
	if token == "" {
		return "", fmt.Errorf("cloudflared returned an empty token for %s", domain)
	}
	return token, nil
}
