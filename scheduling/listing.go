package scheduling

import (
	"context"
	"fmt"
	"time"

	"appointments-system/user"

	"github.com/google/uuid"
)

type Listing struct {
	ID         uuid.UUID  `json:"id"`
	Date       time.Time  `json:"date"`
	CanceledAt *time.Time `json:"canceled_at"`
	Provider   Provider   `json:"provider"`
}

// Provider is the display data of the provider behind a listed appointment.
type Provider struct {
	ID     uuid.UUID  `json:"id"`
	Name   string     `json:"name"`
	Avatar *user.File `json:"avatar"`
}

// ListActive returns page (1-based) of userID's active appointments, earliest
// first. Pages below 1 are treated as the first page.
func (s *Service) ListActive(ctx context.Context, userID uuid.UUID, page int) ([]Listing, error) {
	if page < 1 {
		page = 1
	}

	appts, err := s.store.ListActiveByBooker(ctx, userID, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	providers := make(map[uuid.UUID]Provider)
	listings := make([]Listing, 0, len(appts))
	for _, appt := range appts {
		p, ok := providers[appt.ProviderID]
		if !ok {
			u, err := s.identities.GetUser(ctx, appt.ProviderID)
			if err != nil {
				return nil, fmt.Errorf("get provider %s: %w", appt.ProviderID, err)
			}
			p = Provider{ID: appt.ProviderID}
			if u != nil {
				p.Name = u.Name
				p.Avatar = u.Avatar
			}
			providers[appt.ProviderID] = p
		}

		listings = append(listings, Listing{
			ID:         appt.ID,
			Date:       appt.Date,
			CanceledAt: appt.CanceledAt,
			Provider:   p,
		})
	}

	return listings, nil
}
