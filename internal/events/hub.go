// Package events carries in-process notifications about new applications.
// Subscriptions are keyed by company so one tenant's events never reach
// another tenant's subscribers.
package events

import (
	"sync"
	"time"

	"github.com/yourorg/recruitdesk/internal/domain"
)

// ApplicantEvent announces a newly submitted application.
type ApplicantEvent struct {
	CompanyID   string                 `json:"-"`
	ApplicantID string                 `json:"applicantId"`
	PositionID  string                 `json:"positionId"`
	FullName    string                 `json:"fullName"`
	Status      domain.ApplicantStatus `json:"status"`
	SubmittedAt time.Time              `json:"submittedAt"`
}

const subscriberBuffer = 16

// Hub fans applicant events out to per-company subscribers. Publish never
// blocks: a subscriber that cannot keep up loses events rather than stalling
// the submission path.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan ApplicantEvent]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan ApplicantEvent]struct{})}
}

// Subscribe registers a listener for one company's events. The returned
// cancel func must be called exactly once; it closes the channel.
func (h *Hub) Subscribe(companyID string) (<-chan ApplicantEvent, func()) {
	ch := make(chan ApplicantEvent, subscriberBuffer)

	h.mu.Lock()
	if h.subs[companyID] == nil {
		h.subs[companyID] = make(map[chan ApplicantEvent]struct{})
	}
	h.subs[companyID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[companyID]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(h.subs, companyID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an event to the subscribers of its company.
func (h *Hub) Publish(evt ApplicantEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[evt.CompanyID] {
		select {
		case ch <- evt:
		default:
			// slow subscriber, drop
		}
	}
}

// Subscribers reports the current subscriber count for a company.
func (h *Hub) Subscribers(companyID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[companyID])
}
