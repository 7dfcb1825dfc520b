package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"grambazaar/database/repository/memstore"
	"grambazaar/models"
	"grambazaar/services/payment"
	"grambazaar/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = models.Identity{UserID: "alice", Role: models.RoleUser}
	bob   = models.Identity{UserID: "bob", Role: models.RoleUser}
	admin = models.Identity{UserID: "root", Role: models.RoleAdmin}
)

type fakeIdempotency struct {
	mu   sync.Mutex
	keys map[string]string
}

func (f *fakeIdempotency) Claim(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.keys[key]; ok {
		return id, false, nil
	}
	f.keys[key] = ""
	return "", true, nil
}

func (f *fakeIdempotency) Complete(_ context.Context, key, bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys[key] = bookingID
	return nil
}

func (f *fakeIdempotency) Release(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, key)
	return nil
}

type scheduled struct{ bookingID, paymentID string }

type fakeScheduler struct {
	calls []scheduled
	err   error
}

func (f *fakeScheduler) ScheduleReconcile(_ context.Context, bookingID, paymentID string) error {
	f.calls = append(f.calls, scheduled{bookingID, paymentID})
	return f.err
}

type fixture struct {
	svc       *DefaultBookingService
	products  *memstore.ProductRepo
	bookings  *memstore.BookingRepo
	gateway   *payment.FakeGateway
	scheduler *fakeScheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	users := memstore.NewUserRepo()
	require.NoError(t, users.Create(ctx, &models.User{ID: "alice", Name: "Alice", Email: "alice@example.com", Role: models.RoleUser}))
	require.NoError(t, users.Create(ctx, &models.User{ID: "bob", Name: "Bob", Email: "bob@example.com", Role: models.RoleUser}))

	products := memstore.NewProductRepo()
	require.NoError(t, products.Create(ctx, &models.Product{ID: "p1", Name: "Millet", Price: 50}))
	require.NoError(t, products.Create(ctx, &models.Product{ID: "p2", Name: "Honey", Price: 30.25}))

	f := &fixture{
		products:  products,
		bookings:  memstore.NewBookingRepo(),
		gateway:   payment.NewFakeGateway(),
		scheduler: &fakeScheduler{},
	}
	f.svc = &DefaultBookingService{
		Bookings:    f.bookings,
		Products:    products,
		Users:       users,
		Gateway:     f.gateway,
		Idempotency: &fakeIdempotency{keys: map[string]string{}},
		Reconciler:  f.scheduler,
		BaseURL:     "https://shop.example/",
		Now:         func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
	return f
}

func TestCreateBooking_DerivesTotalFromCatalog(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.CreateBooking(context.Background(), alice, []models.BookingItemInput{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 3},
	}, "")
	require.NoError(t, err)

	assert.Equal(t, 190.75, b.TotalAmount)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, models.PaymentPending, b.PaymentStatus)
	require.NotNil(t, b.User)
	assert.Equal(t, "Alice", b.User.Name)
	assert.Equal(t, "Millet", b.Items[0].Name)
}

func TestCreateBooking_SnapshotSurvivesPriceChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, alice, []models.BookingItemInput{{ProductID: "p1", Quantity: 1}}, "")
	require.NoError(t, err)

	p, err := f.products.GetByID(ctx, "p1")
	require.NoError(t, err)
	p.Price = 999
	p.Name = "Pearl Millet"
	require.NoError(t, f.products.Update(ctx, p))

	got, err := f.svc.GetUserBooking(ctx, alice, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.Items[0].Price)
	assert.Equal(t, "Millet", got.Items[0].Name)
	assert.Equal(t, 50.0, got.TotalAmount)
}

func TestCreateBooking_RejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string][]models.BookingItemInput{
		"empty":          nil,
		"zero quantity":  {{ProductID: "p1", Quantity: 0}},
		"unknown":        {{ProductID: "nope", Quantity: 1}},
		"partly unknown": {{ProductID: "p1", Quantity: 1}, {ProductID: "nope", Quantity: 1}},
	}
	for name, items := range cases {
		_, err := f.svc.CreateBooking(ctx, alice, items, "")
		assert.Equal(t, utils.KindInvalid, utils.KindOf(err), name)
	}

	all, err := f.bookings.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateBooking_IdempotencyKeyReplays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	items := []models.BookingItemInput{{ProductID: "p1", Quantity: 1}}

	first, err := f.svc.CreateBooking(ctx, alice, items, "key-1")
	require.NoError(t, err)
	second, err := f.svc.CreateBooking(ctx, alice, items, "key-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Keys are scoped per user.
	other, err := f.svc.CreateBooking(ctx, bob, items, "key-1")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	n, err := f.bookings.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestCreateBooking_InFlightKeyConflicts(t *testing.T) {
	f := newFixture(t)
	store := f.svc.Idempotency.(*fakeIdempotency)
	store.keys["alice:busy"] = ""

	_, err := f.svc.CreateBooking(context.Background(), alice, []models.BookingItemInput{{ProductID: "p1", Quantity: 1}}, "busy")
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))
}

func TestGetUserBooking_HidesOtherUsersBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, alice, []models.BookingItemInput{{ProductID: "p1", Quantity: 1}}, "")
	require.NoError(t, err)

	_, err = f.svc.GetUserBooking(ctx, bob, b.ID)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	got, err := f.svc.GetUserBooking(ctx, admin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	list, err := f.svc.ListUserBookings(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateUserBooking_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.svc.CreateBooking(ctx, alice, []models.BookingItemInput{{ProductID: "p1", Quantity: 1}}, "")
	require.NoError(t, err)

	completed := models.BookingCompleted
	_, err = f.svc.UpdateUserBooking(ctx, alice, b.ID, models.BookingPatch{Status: &completed})
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	bogus := models.BookingStatus("Shipped")
	_, err = f.svc.UpdateUserBooking(ctx, alice, b.ID, models.BookingPatch{Status: &bogus})
	assert.Equal(t, utils.KindInvalid, utils.KindOf(err))

	cancelled := models.BookingCancelled
	_, err = f.svc.UpdateUserBooking(ctx, alice, b.ID, models.BookingPatch{Status: &cancelled})
	assert.Equal(t, utils.KindInvalid, utils.KindOf(err))

	reason := "ordered twice"
	got, err := f.svc.UpdateUserBooking(ctx, alice, b.ID, models.BookingPatch{Status: &cancelled, CancellationReason: &reason})
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, got.Status)
	assert.Equal(t, reason, got.CancellationReason)

	_, err = f.svc.UpdateUserBooking(ctx, bob, b.ID, models.BookingPatch{Status: &cancelled, CancellationReason: &reason})
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	got, err = f.svc.UpdateUserBooking(ctx, admin, b.ID, models.BookingPatch{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, got.Status)
}

func TestUpdateUserBooking_PaymentIDSchedulesReconcile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.svc.CreateBooking(ctx, alice, []models.BookingItemInput{{ProductID: "p1", Quantity: 1}}, "")
	require.NoError(t, err)

	pid := "pi_123"
	_, err = f.svc.UpdateUserBooking(ctx, alice, b.ID, models.BookingPatch{PaymentIntentID: &pid})
	require.NoError(t, err)
	_, err = f.svc.UpdateUserBooking(ctx, alice, b.ID, models.BookingPatch{PaymentIntentID: &pid})
	require.NoError(t, err)

	require.Len(t, f.scheduler.calls, 1)
	assert.Equal(t, scheduled{b.ID, "pi_123"}, f.scheduler.calls[0])
}

func TestUpdateUserBooking_SchedulerFailureDoesNotFailUpdate(t *testing.T) {
	f := newFixture(t)
	f.scheduler.err = errors.New("redis down")
	ctx := context.Background()
	b, err := f.svc.CreateBooking(ctx, alice, []models.BookingItemInput{{ProductID: "p1", Quantity: 1}}, "")
	require.NoError(t, err)

	pid := "pi_456"
	got, err := f.svc.UpdateUserBooking(ctx, alice, b.ID, models.BookingPatch{PaymentIntentID: &pid})
	require.NoError(t, err)
	assert.Equal(t, "pi_456", got.PaymentIntentID)
}

func TestCheckoutAndConfirm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.svc.CreateBooking(ctx, alice, []models.BookingItemInput{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}, "")
	require.NoError(t, err)

	sess, err := f.svc.CreateCheckoutSession(ctx, alice, b.ID)
	require.NoError(t, err)
	require.Len(t, f.gateway.Sessions, 1)
	req := f.gateway.Sessions[0]
	assert.Equal(t, "inr", req.Currency)
	assert.Equal(t, int64(5000), req.Lines[0].UnitAmount)
	assert.Equal(t, int64(3025), req.Lines[1].UnitAmount)
	assert.Equal(t, "https://shop.example/users/dashboard/bookings/"+b.ID+"?session_id={CHECKOUT_SESSION_ID}", req.ReturnURL)
	require.Len(t, f.scheduler.calls, 1)

	res, err := f.svc.ConfirmPayment(ctx, alice, sess.SessionID, b.ID)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "unpaid", res.PaymentStatus)
	stored, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, stored.PaymentStatus)

	f.gateway.MarkPaid(sess.SessionID)
	res, err = f.svc.ConfirmPayment(ctx, alice, sess.SessionID, b.ID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, models.PaymentCompleted, res.Booking.PaymentStatus)
	assert.Equal(t, models.BookingApproved, res.Booking.Status)
	require.NotNil(t, res.Booking.PaidAt)
	paidAt := *res.Booking.PaidAt
	lookups := f.gateway.Lookups

	f.svc.Now = func() time.Time { return paidAt.Add(time.Hour) }
	res, err = f.svc.ConfirmPayment(ctx, models.SystemIdentity, sess.SessionID, b.ID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, paidAt.Equal(*res.Booking.PaidAt))
	assert.Equal(t, lookups, f.gateway.Lookups)

	_, err = f.svc.CreateCheckoutSession(ctx, alice, b.ID)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))
}

func TestConfirmPayment_OtherUserAndGatewayError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.svc.CreateBooking(ctx, alice, []models.BookingItemInput{{ProductID: "p1", Quantity: 1}}, "")
	require.NoError(t, err)

	_, err = f.svc.ConfirmPayment(ctx, bob, "cs_x", b.ID)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	_, err = f.svc.ConfirmPayment(ctx, alice, "", b.ID)
	assert.Equal(t, utils.KindInvalid, utils.KindOf(err))

	f.gateway.Err = errors.New("processor unavailable")
	_, err = f.svc.ConfirmPayment(ctx, alice, "cs_x", b.ID)
	assert.Equal(t, utils.KindInternal, utils.KindOf(err))
}

func TestAdminListAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	older, err := f.svc.CreateBooking(ctx, alice, []models.BookingItemInput{{ProductID: "p1", Quantity: 1}}, "")
	require.NoError(t, err)
	newer, err := f.svc.CreateBooking(ctx, bob, []models.BookingItemInput{{ProductID: "p2", Quantity: 1}}, "")
	require.NoError(t, err)

	all, err := f.svc.ListBookings(ctx, "All")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
	require.NotNil(t, all[1].User)
	assert.Equal(t, "alice@example.com", all[1].User.Email)

	_, err = f.svc.ListBookings(ctx, "Shipped")
	assert.Equal(t, utils.KindInvalid, utils.KindOf(err))

	_, err = f.svc.UpdateBookingStatus(ctx, older.ID, models.BookingStatusUpdate{Status: models.BookingCancelled})
	assert.Equal(t, utils.KindInvalid, utils.KindOf(err))

	tracking := "TRK-1"
	got, err := f.svc.UpdateBookingStatus(ctx, older.ID, models.BookingStatusUpdate{Status: models.BookingCompleted, TrackingNumber: &tracking})
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, got.Status)
	assert.Equal(t, "TRK-1", got.TrackingNumber)

	completed, err := f.svc.ListBookings(ctx, "Completed")
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, older.ID, completed[0].ID)

	_, err = f.svc.GetBooking(ctx, "missing")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestDeleteUserBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := f.svc.CreateBooking(ctx, alice, []models.BookingItemInput{{ProductID: "p1", Quantity: 1}}, "")
		require.NoError(t, err)
	}
	_, err := f.svc.CreateBooking(ctx, bob, []models.BookingItemInput{{ProductID: "p1", Quantity: 1}}, "")
	require.NoError(t, err)

	n, err := f.svc.DeleteUserBookings(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	remaining, err := f.bookings.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "bob", remaining[0].UserID)
}

func TestConfirmPayment_RejectsPaymentForAnotherBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cheap, err := f.svc.CreateBooking(ctx, alice, []models.BookingItemInput{{ProductID: "p2", Quantity: 1}}, "")
	require.NoError(t, err)
	pricey, err := f.svc.CreateBooking(ctx, alice, []models.BookingItemInput{{ProductID: "p1", Quantity: 40}}, "")
	require.NoError(t, err)

	sess, err := f.svc.CreateCheckoutSession(ctx, alice, cheap.ID)
	require.NoError(t, err)
	f.gateway.MarkPaid(sess.SessionID)

	_, err = f.svc.ConfirmPayment(ctx, alice, sess.SessionID, pricey.ID)
	assert.Equal(t, utils.KindInvalid, utils.KindOf(err))
	stored, err := f.bookings.GetByID(ctx, pricey.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, stored.PaymentStatus)
	assert.Equal(t, models.BookingPending, stored.Status)

	res, err := f.svc.ConfirmPayment(ctx, alice, sess.SessionID, cheap.ID)
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestConfirmPayment_ExpiredSessionReportsExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.svc.CreateBooking(ctx, alice, []models.BookingItemInput{{ProductID: "p1", Quantity: 1}}, "")
	require.NoError(t, err)
	sess, err := f.svc.CreateCheckoutSession(ctx, alice, b.ID)
	require.NoError(t, err)

	f.gateway.Expire(sess.SessionID)
	res, err := f.svc.ConfirmPayment(ctx, models.SystemIdentity, sess.SessionID, b.ID)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "expired", res.PaymentStatus)
}
