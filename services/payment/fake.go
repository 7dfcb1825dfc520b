package payment

import (
	"context"
	"fmt"
	"sync"
)

// FakeGateway is an in-process Gateway for tests and in-memory mode.
// Sessions and intents start unpaid; MarkPaid settles them.
type FakeGateway struct {
	mu       sync.Mutex
	seq      int
	paid     map[string]bool
	status   map[string]string
	bookings map[string]string
	Intents  []IntentRequest
	Sessions []CheckoutRequest
	// Lookups counts RetrieveSettlement calls.
	Lookups int
	// Err, when set, is returned by every call.
	Err error
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{paid: map[string]bool{}, status: map[string]string{}, bookings: map[string]string{}}
}

func (f *FakeGateway) CreatePaymentIntent(_ context.Context, req IntentRequest) (*Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	f.seq++
	f.Intents = append(f.Intents, req)
	id := fmt.Sprintf("pi_fake_%d", f.seq)
	f.paid[id] = false
	f.bookings[id] = req.Metadata["bookingId"]
	return &Intent{ID: id, ClientSecret: id + "_secret"}, nil
}

func (f *FakeGateway) CreateCheckoutSession(_ context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	f.seq++
	f.Sessions = append(f.Sessions, req)
	id := fmt.Sprintf("cs_fake_%d", f.seq)
	f.paid[id] = false
	f.bookings[id] = req.ClientReferenceID
	return &CheckoutSession{ID: id, ClientSecret: id + "_secret"}, nil
}

func (f *FakeGateway) RetrieveSettlement(_ context.Context, id string) (*Settlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Lookups++
	if f.Err != nil {
		return nil, f.Err
	}
	paid, ok := f.paid[id]
	if !ok {
		return nil, fmt.Errorf("no such payment: %s", id)
	}
	status := "unpaid"
	if paid {
		status = "paid"
	} else if st, ok := f.status[id]; ok {
		status = st
	}
	return &Settlement{ID: id, Paid: paid, Status: status, BookingID: f.bookings[id]}, nil
}

// MarkPaid settles id, registering it if the fake never issued it.
func (f *FakeGateway) MarkPaid(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paid[id] = true
}

// Expire marks an unpaid id as abandoned at the processor.
func (f *FakeGateway) Expire(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[id] = "expired"
}
