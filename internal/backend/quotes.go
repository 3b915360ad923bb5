package backend

import (
	"context"
	"fmt"
	"net/http"
)

// QuoteRequestInput asks a chef for custom pricing; it never enters the
// paid checkout path.
type QuoteRequestInput struct {
	ChefUsername string `json:"chef_username"`
	Description  string `json:"description"`
}

// SubmitQuoteRequest forwards a quote inquiry to the chef.
func (c *Client) SubmitQuoteRequest(ctx context.Context, in QuoteRequestInput) error {
	if err := c.do(ctx, http.MethodPost, "/chef-services/quote-requests/", in, nil); err != nil {
		return fmt.Errorf("submit quote request: %w", err)
	}
	return nil
}
