package walletgw

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Nisith-Naman/Health/internal/ports/auth"
)

var (
	ErrTokenEmpty = errors.New("token is empty")
)

// Verifier implementa auth.AuthVerifier usando el wallet gateway.
// Se instancia desde main/router cuando WALLET_GW_URL está configurado.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	address, err := v.client.VerifySession(ctx, token)
	if err != nil {
		// El middleware decide si corta o no; acá solo normalizamos.
		return auth.Claims{}, fmt.Errorf("wallet session verify failed: %w", err)
	}

	return auth.Claims{Address: address}, nil
}
