package whatsapp

import (
	"fmt"

	"github.com/mariposahq/anchor/internal/checkin"
	"go.uber.org/zap"
)

// Provider holds one Client per configured account credential set. All
// credentials are validated eagerly so a broken set is a startup
// configuration error, not a mid-sweep surprise.
type Provider struct {
	clients []*Client
}

func NewProvider(apiURL string, accounts []Credentials, logger *zap.Logger) (*Provider, error) {
	if len(accounts) == 0 {
		return nil, fmt.Errorf("no whatsapp accounts configured")
	}

	clients := make([]*Client, 0, len(accounts))
	for index, credentials := range accounts {
		client, err := NewClient(apiURL, credentials, logger)
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", index, err)
		}
		clients = append(clients, client)
	}
	return &Provider{clients: clients}, nil
}

func (provider *Provider) Messenger(accountIndex int) (checkin.Messenger, error) {
	if accountIndex < 0 || accountIndex >= len(provider.clients) {
		return nil, fmt.Errorf("no whatsapp account configured for index %d", accountIndex)
	}
	return provider.clients[accountIndex], nil
}
