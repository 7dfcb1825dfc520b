package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"grambazaar/database/repository"
	"grambazaar/models"
)

// ServiceRepo is an in-memory contentRepo.ServiceRepository.
type ServiceRepo struct {
	mu       sync.RWMutex
	services map[string]models.Service
}

func NewServiceRepo() *ServiceRepo {
	return &ServiceRepo{services: map[string]models.Service{}}
}

func (r *ServiceRepo) Create(_ context.Context, s *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	s.CreatedAt, s.UpdatedAt = now, now
	r.services[s.ID] = *s
	return nil
}

func (r *ServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *ServiceRepo) List(_ context.Context) ([]models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ServiceRepo) Update(_ context.Context, s *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[s.ID]; !ok {
		return repository.ErrNotFound
	}
	s.UpdatedAt = time.Now()
	r.services[s.ID] = *s
	return nil
}

func (r *ServiceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.services, id)
	return nil
}

// NewsRepo is an in-memory contentRepo.NewsRepository.
type NewsRepo struct {
	mu   sync.RWMutex
	news map[string]models.News
}

func NewNewsRepo() *NewsRepo {
	return &NewsRepo{news: map[string]models.News{}}
}

func (r *NewsRepo) Create(_ context.Context, n *models.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	n.CreatedAt, n.UpdatedAt = now, now
	r.news[n.ID] = *n
	return nil
}

func (r *NewsRepo) GetByID(_ context.Context, id string) (*models.News, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.news[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &n, nil
}

func (r *NewsRepo) all(less func(a, b models.News) bool) []models.News {
	out := make([]models.News, 0, len(r.news))
	for _, n := range r.news {
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (r *NewsRepo) List(_ context.Context) ([]models.News, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.all(func(a, b models.News) bool { return a.Date.After(b.Date) }), nil
}

func (r *NewsRepo) Recent(_ context.Context, n int64) ([]models.News, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := r.all(func(a, b models.News) bool { return a.CreatedAt.After(b.CreatedAt) })
	if int64(len(out)) > n {
		out = out[:n]
	}
	return out, nil
}

func (r *NewsRepo) Update(_ context.Context, n *models.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.news[n.ID]; !ok {
		return repository.ErrNotFound
	}
	n.UpdatedAt = time.Now()
	r.news[n.ID] = *n
	return nil
}

func (r *NewsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.news[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.news, id)
	return nil
}

func (r *NewsRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.news)), nil
}

// MessageRepo is an in-memory contentRepo.MessageRepository.
type MessageRepo struct {
	mu       sync.RWMutex
	messages map[string]models.Message
}

func NewMessageRepo() *MessageRepo {
	return &MessageRepo{messages: map[string]models.Message{}}
}

func (r *MessageRepo) Create(_ context.Context, m *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.CreatedAt = time.Now()
	r.messages[m.ID] = *m
	return nil
}

func (r *MessageRepo) List(_ context.Context) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Message, 0, len(r.messages))
	for _, m := range r.messages {
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MessageRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.messages[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.messages, id)
	return nil
}

func (r *MessageRepo) DeleteMany(_ context.Context, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := r.messages[id]; ok {
			delete(r.messages, id)
			n++
		}
	}
	return n, nil
}

// SettingRepo is an in-memory contentRepo.SettingRepository.
type SettingRepo struct {
	mu      sync.RWMutex
	setting *models.Setting
}

func NewSettingRepo() *SettingRepo {
	return &SettingRepo{}
}

func (r *SettingRepo) Get(_ context.Context) (*models.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.setting == nil {
		return nil, repository.ErrNotFound
	}
	s := *r.setting
	return &s, nil
}

func (r *SettingRepo) Upsert(_ context.Context, s *models.Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.UpdatedAt = time.Now()
	cp := *s
	r.setting = &cp
	return nil
}
