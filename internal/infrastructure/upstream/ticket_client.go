package upstream

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ledger/backend/internal/domain/inventory"
	"github.com/ledger/backend/internal/infrastructure/config"
)

// ticketPageSize is the page size the ticketing API serves
const ticketPageSize = 100

// TicketClient pulls closed-ticket hours from the ticketing system. The API
// authenticates with basic auth where the API key is the username.
type TicketClient struct {
	source httpSource
	logger *zap.Logger
}

// NewTicketClient builds a ticketing source client
func NewTicketClient(cfg config.UpstreamEndpoint, logger *zap.Logger) *TicketClient {
	return &TicketClient{
		source: newHTTPSource(cfg, authBasicKey),
		logger: logger,
	}
}

type ticketPayload struct {
	ID             int64   `json:"id"`
	TicketNumber   string  `json:"ticket_number"`
	Subject        string  `json:"subject"`
	TotalHours     float64 `json:"total_hours_spent"`
	LastActivityAt string  `json:"last_activity_at"`
}

type ticketListPayload struct {
	Tickets []ticketPayload `json:"tickets"`
}

// FetchTickets pulls the tickets for one account whose last activity falls in
// [from, to). Pages are walked until the API returns a short page.
func (c *TicketClient) FetchTickets(ctx context.Context, accountNumber string, from, to time.Time) ([]inventory.Ticket, error) {
	now := time.Now().UTC()
	var tickets []inventory.Ticket

	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("account_number", accountNumber)
		query.Set("updated_since", from.UTC().Format(time.RFC3339))
		query.Set("updated_before", to.UTC().Format(time.RFC3339))
		query.Set("page", strconv.Itoa(page))
		query.Set("per_page", strconv.Itoa(ticketPageSize))

		var payload ticketListPayload
		if err := c.source.getJSON(ctx, "/api/v2/tickets", query, &payload); err != nil {
			return nil, err
		}

		for _, p := range payload.Tickets {
			ticket, ok := c.mapTicket(p, accountNumber, now)
			if !ok {
				continue
			}
			tickets = append(tickets, ticket)
		}

		if len(payload.Tickets) < ticketPageSize {
			break
		}
	}
	return tickets, nil
}

func (c *TicketClient) mapTicket(p ticketPayload, accountNumber string, syncedAt time.Time) (inventory.Ticket, bool) {
	lastActivity, err := time.Parse(time.RFC3339, p.LastActivityAt)
	if err != nil {
		c.logger.Warn("ticket with unparseable activity timestamp skipped",
			zap.Int64("ticket_id", p.ID),
			zap.String("last_activity_at", p.LastActivityAt),
		)
		return inventory.Ticket{}, false
	}
	return inventory.Ticket{
		ID:             p.ID,
		AccountNumber:  accountNumber,
		Number:         p.TicketNumber,
		Subject:        p.Subject,
		Hours:          decimal.NewFromFloat(p.TotalHours),
		LastActivityAt: lastActivity,
		SyncedAt:       syncedAt,
	}, true
}
