package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/listkeeper-dev/listkeeper/internal/apperrors"
	"github.com/listkeeper-dev/listkeeper/internal/models"
)

// Memory is an in-memory implementation of every store interface, with the
// same error semantics as the GORM stores. Used in tests and for running the
// server without a database.
type Memory struct {
	mu       sync.Mutex
	users    map[uint]models.User
	lists    map[uint]models.List
	items    map[uint]models.Item
	sessions map[string]models.Session
	nextID   uint
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[uint]models.User),
		lists:    make(map[uint]models.List),
		items:    make(map[uint]models.Item),
		sessions: make(map[string]models.Session),
	}
}

func (m *Memory) allocID() uint {
	m.nextID++
	return m.nextID
}

// Create exists on every store interface, so the per-table stores are exposed
// as small wrapper types rather than methods on Memory itself.

func (m *Memory) Users() *MemoryUserStore       { return &MemoryUserStore{m: m} }
func (m *Memory) Lists() *MemoryListStore       { return &MemoryListStore{m: m} }
func (m *Memory) Items() *MemoryItemStore       { return &MemoryItemStore{m: m} }
func (m *Memory) Sessions() *MemorySessionStore { return &MemorySessionStore{m: m} }

type MemoryUserStore struct {
	m *Memory
}

func (s *MemoryUserStore) Create(ctx context.Context, user *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, existing := range s.m.users {
		if existing.Username == user.Username {
			return fmt.Errorf("username %q: %w", user.Username, apperrors.ErrConflict)
		}
	}

	user.ID = s.m.allocID()
	user.CreatedAt = time.Now()
	s.m.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, user := range s.m.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}

	return nil, fmt.Errorf("user %q: %w", username, apperrors.ErrNotFound)
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	user, ok := s.m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
	}

	u := user
	return &u, nil
}

type MemoryListStore struct {
	m *Memory
}

func (s *MemoryListStore) Create(ctx context.Context, list *models.List) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	list.ID = s.m.allocID()
	list.CreatedAt = time.Now()
	s.m.lists[list.ID] = *list
	return nil
}

func (s *MemoryListStore) FindOwned(ctx context.Context, id, ownerID uint) (*models.List, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	list, ok := s.m.lists[id]
	if !ok || list.OwnerID != ownerID {
		return nil, fmt.Errorf("list %d: %w", id, apperrors.ErrNotFound)
	}

	l := list
	return &l, nil
}

func (s *MemoryListStore) ListWithCounts(ctx context.Context, ownerID uint) ([]ListSummary, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	summaries := []ListSummary{}

	for _, list := range s.m.lists {
		if list.OwnerID != ownerID {
			continue
		}

		count := 0
		for _, item := range s.m.items {
			if item.ListID == list.ID {
				count++
			}
		}

		summaries = append(summaries, ListSummary{
			ID:          list.ID,
			Title:       list.Title,
			Description: list.Description,
			ItemCount:   count,
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID > summaries[j].ID })

	return summaries, nil
}

func (s *MemoryListStore) Update(ctx context.Context, id, ownerID uint, fields map[string]interface{}) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	list, ok := s.m.lists[id]
	if !ok || list.OwnerID != ownerID {
		return fmt.Errorf("list %d: %w", id, apperrors.ErrNotFound)
	}

	if title, ok := fields["title"].(string); ok {
		list.Title = title
	}
	if description, ok := fields["description"].(string); ok {
		list.Description = description
	}

	s.m.lists[id] = list
	return nil
}

func (s *MemoryListStore) DeleteCascade(ctx context.Context, id, ownerID uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	list, ok := s.m.lists[id]
	if !ok || list.OwnerID != ownerID {
		return fmt.Errorf("list %d: %w", id, apperrors.ErrNotFound)
	}

	for itemID, item := range s.m.items {
		if item.ListID == list.ID {
			delete(s.m.items, itemID)
		}
	}

	delete(s.m.lists, id)
	return nil
}

type MemoryItemStore struct {
	m *Memory
}

func (s *MemoryItemStore) Create(ctx context.Context, item *models.Item) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if item.Status == "" {
		item.Status = models.StatusPending
	}

	item.ID = s.m.allocID()
	item.CreatedAt = time.Now()
	s.m.items[item.ID] = *item
	return nil
}

func (s *MemoryItemStore) ByList(ctx context.Context, listID uint) ([]models.Item, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	items := []models.Item{}

	for _, item := range s.m.items {
		if item.ListID == listID {
			items = append(items, item)
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return items, nil
}

func (s *MemoryItemStore) FindOwned(ctx context.Context, id, ownerID uint) (*models.Item, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	item, ok := s.m.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, apperrors.ErrNotFound)
	}

	list, ok := s.m.lists[item.ListID]
	if !ok || list.OwnerID != ownerID {
		return nil, fmt.Errorf("item %d: %w", id, apperrors.ErrNotFound)
	}

	i := item
	return &i, nil
}

func (s *MemoryItemStore) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	item, ok := s.m.items[id]
	if !ok {
		return fmt.Errorf("item %d: %w", id, apperrors.ErrNotFound)
	}

	if title, ok := fields["title"].(string); ok {
		item.Title = title
	}
	if status, ok := fields["status"].(string); ok {
		item.Status = status
	}

	s.m.items[id] = item
	return nil
}

func (s *MemoryItemStore) Delete(ctx context.Context, id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.items[id]; !ok {
		return fmt.Errorf("item %d: %w", id, apperrors.ErrNotFound)
	}

	delete(s.m.items, id)
	return nil
}

type MemorySessionStore struct {
	m *Memory
}

func (s *MemorySessionStore) Create(ctx context.Context, session *models.Session) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	session.CreatedAt = time.Now()
	s.m.sessions[session.Token] = *session
	return nil
}

func (s *MemorySessionStore) Find(ctx context.Context, token string) (*models.Session, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	session, ok := s.m.sessions[token]
	if !ok {
		return nil, fmt.Errorf("session: %w", apperrors.ErrNotFound)
	}

	sess := session
	return &sess, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, token string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	delete(s.m.sessions, token)
	return nil
}

func (s *MemorySessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	var purged int64

	for token, session := range s.m.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(s.m.sessions, token)
			purged++
		}
	}

	return purged, nil
}
