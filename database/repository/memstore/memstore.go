// Package memstore holds map-backed repositories used by tests and by
// `grambazaar serve --in-memory`. Every method copies documents in and out,
// so callers never share slices with the store.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"grambazaar/database/repository"
	"grambazaar/models"
)

// UserRepo is an in-memory userRepo.UserRepository.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: map[string]models.User{}}
}

func (r *UserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.PasswordHash = ""
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepo) GetSummaries(_ context.Context, ids []string) (map[string]models.UserSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]models.UserSummary, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u.Summary()
		}
	}
	return out, nil
}

func (r *UserRepo) sorted() []models.User {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		u.PasswordHash = ""
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *UserRepo) Search(_ context.Context, q string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q = strings.ToLower(q)
	out := []models.User{}
	for _, u := range r.sorted() {
		if q == "" || strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UserRepo) Recent(_ context.Context, n int64) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.sorted()
	if int64(len(all)) > n {
		all = all[:n]
	}
	return all, nil
}

func (r *UserRepo) update(id string, fn func(u *models.User)) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = time.Now()
	r.users[id] = u
	u.PasswordHash = ""
	return &u, nil
}

func (r *UserRepo) UpdateProfile(_ context.Context, id, name, phone string) (*models.User, error) {
	return r.update(id, func(u *models.User) { u.Name, u.Phone = name, phone })
}

func (r *UserRepo) UpdateRole(_ context.Context, id, role string) (*models.User, error) {
	return r.update(id, func(u *models.User) { u.Role = role })
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// ProductRepo is an in-memory productRepo.ProductRepository.
type ProductRepo struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{products: map[string]models.Product{}}
}

func (r *ProductRepo) Create(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *ProductRepo) GetByIDs(_ context.Context, ids []string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Product{}
	seen := map[string]bool{}
	for _, id := range ids {
		if p, ok := r.products[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *ProductRepo) List(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return repository.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

// CartRepo is an in-memory cartRepo.CartRepository.
type CartRepo struct {
	mu    sync.RWMutex
	carts map[string]models.Cart
}

func NewCartRepo() *CartRepo {
	return &CartRepo{carts: map[string]models.Cart{}}
}

func copyCart(c models.Cart) models.Cart {
	c.Items = append([]models.CartItem{}, c.Items...)
	return c
}

func (r *CartRepo) GetByUserID(_ context.Context, userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c = copyCart(c)
	return &c, nil
}

func (r *CartRepo) Save(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now
	r.carts[cart.UserID] = copyCart(*cart)
	return nil
}

func (r *CartRepo) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}

// BookingRepo is an in-memory bookingRepo.BookingRepository.
type BookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
	seq      int64
}

func NewBookingRepo() *BookingRepo {
	return &BookingRepo{bookings: map[string]models.Booking{}}
}

func copyBooking(b models.Booking) models.Booking {
	b.Items = append([]models.BookingItem{}, b.Items...)
	b.User = nil
	if b.ShippingAddress != nil {
		addr := *b.ShippingAddress
		b.ShippingAddress = &addr
	}
	if b.PaidAt != nil {
		t := *b.PaidAt
		b.PaidAt = &t
	}
	return b
}

func (r *BookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Monotonic timestamps keep newest-first ordering stable within a test.
	r.seq++
	now := time.Now().Add(time.Duration(r.seq) * time.Microsecond)
	b.CreatedAt, b.UpdatedAt = now, now
	r.bookings[b.ID] = copyBooking(*b)
	return nil
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b = copyBooking(b)
	return &b, nil
}

func (r *BookingRepo) filter(keep func(models.Booking) bool) []models.Booking {
	out := []models.Booking{}
	for _, b := range r.bookings {
		if keep(b) {
			out = append(out, copyBooking(b))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *BookingRepo) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(b models.Booking) bool { return b.UserID == userID }), nil
}

func (r *BookingRepo) List(_ context.Context, status models.BookingStatus) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(b models.Booking) bool { return status == "" || b.Status == status }), nil
}

func (r *BookingRepo) Recent(_ context.Context, n int64) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.filter(func(models.Booking) bool { return true })
	if int64(len(all)) > n {
		all = all[:n]
	}
	return all, nil
}

func (r *BookingRepo) Update(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return repository.ErrNotFound
	}
	b.UpdatedAt = time.Now()
	r.bookings[b.ID] = copyBooking(*b)
	return nil
}

func (r *BookingRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, b := range r.bookings {
		if b.UserID == userID {
			delete(r.bookings, id)
			n++
		}
	}
	return n, nil
}

func (r *BookingRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.bookings)), nil
}

func (r *BookingRepo) Revenue(_ context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var items []models.BookingItem
	for _, b := range r.bookings {
		items = append(items, b.Items...)
	}
	return models.ComputeTotal(items), nil
}
