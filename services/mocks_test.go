package services_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"foodstop-server/models"
	"foodstop-server/repository"
	"foodstop-server/services"
)

type mockUserRepo struct {
	findByIDFunc            func(ctx context.Context, userID string) (*models.User, error)
	findByEmailFunc         func(ctx context.Context, email string) (*models.User, error)
	findAdminsWithTokenFunc func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserRepo) Insert(ctx context.Context, user *models.User) error { return nil }

func (m *mockUserRepo) FindByID(ctx context.Context, userID string) (*models.User, error) {
	if m.findByIDFunc == nil {
		return nil, repository.ErrUserNotFound
	}
	return m.findByIDFunc(ctx, userID)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailFunc == nil {
		return nil, repository.ErrUserNotFound
	}
	return m.findByEmailFunc(ctx, email)
}

func (m *mockUserRepo) CountByEmail(ctx context.Context, email string) (int64, error) { return 0, nil }
func (m *mockUserRepo) CountByPhone(ctx context.Context, phone string) (int64, error) { return 0, nil }

func (m *mockUserRepo) FindAdminsWithToken(ctx context.Context) ([]models.User, error) {
	if m.findAdminsWithTokenFunc == nil {
		return nil, nil
	}
	return m.findAdminsWithTokenFunc(ctx)
}

func (m *mockUserRepo) UpdateTokens(ctx context.Context, userID, token, refreshToken string) error {
	return nil
}

func (m *mockUserRepo) SetNotificationToken(ctx context.Context, userID, notificationToken string) error {
	return nil
}

type mockOrderRepo struct {
	insertFunc      func(ctx context.Context, order *models.Order) error
	findByIDFunc    func(ctx context.Context, orderID string) (*models.Order, error)
	findOrphansFunc func(ctx context.Context, email string, exact bool) ([]models.Order, error)
	setOwnerFunc    func(ctx context.Context, orderID, userID string) error
	setStatusFunc   func(ctx context.Context, orderID, status string) (*models.Order, error)
}

func (m *mockOrderRepo) Insert(ctx context.Context, order *models.Order) error {
	if m.insertFunc == nil {
		return nil
	}
	return m.insertFunc(ctx, order)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	if m.findByIDFunc == nil {
		return nil, repository.ErrOrderNotFound
	}
	return m.findByIDFunc(ctx, orderID)
}

func (m *mockOrderRepo) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return nil, nil
}

func (m *mockOrderRepo) FindAll(ctx context.Context) ([]models.Order, error) { return nil, nil }

func (m *mockOrderRepo) FindOrphansByEmail(ctx context.Context, email string, exact bool) ([]models.Order, error) {
	if m.findOrphansFunc == nil {
		return nil, nil
	}
	return m.findOrphansFunc(ctx, email, exact)
}

func (m *mockOrderRepo) SetOwner(ctx context.Context, orderID, userID string) error {
	if m.setOwnerFunc == nil {
		return nil
	}
	return m.setOwnerFunc(ctx, orderID, userID)
}

func (m *mockOrderRepo) SetStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	if m.setStatusFunc == nil {
		return nil, repository.ErrOrderNotFound
	}
	return m.setStatusFunc(ctx, orderID, status)
}

// memoryOrderRepo is a stateful in-memory OrderRepository for the scenarios
// that span several operations (adoption, end-to-end create/list).
type memoryOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*models.Order
}

func newMemoryOrderRepo() *memoryOrderRepo {
	return &memoryOrderRepo{orders: make(map[string]*models.Order)}
}

func (m *memoryOrderRepo) Insert(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *order
	m.orders[order.Order_id] = &stored
	return nil
}

func (m *memoryOrderRepo) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *memoryOrderRepo) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return m.filter(func(o *models.Order) bool {
		return o.User_id != nil && *o.User_id == userID
	}), nil
}

func (m *memoryOrderRepo) FindAll(ctx context.Context) ([]models.Order, error) {
	return m.filter(func(o *models.Order) bool { return true }), nil
}

func (m *memoryOrderRepo) FindOrphansByEmail(ctx context.Context, email string, exact bool) ([]models.Order, error) {
	return m.filter(func(o *models.Order) bool {
		if o.User_id != nil {
			return false
		}
		if exact {
			return o.Email == email
		}
		return strings.EqualFold(o.Email, email)
	}), nil
}

func (m *memoryOrderRepo) SetOwner(ctx context.Context, orderID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	owner := userID
	order.User_id = &owner
	return nil
}

func (m *memoryOrderRepo) SetStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	order.Status = status
	copied := *order
	return &copied, nil
}

func (m *memoryOrderRepo) filter(keep func(*models.Order) bool) []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []models.Order
	for _, order := range m.orders {
		if keep(order) {
			result = append(result, *order)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Created_at.After(result[j].Created_at)
	})
	return result
}

type mockNotifier struct {
	mu     sync.Mutex
	events []services.Event
	orders []*models.Order
}

func (m *mockNotifier) Enqueue(event services.Event, order *models.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	m.orders = append(m.orders, order)
}

type stubResolver struct {
	owner     *string
	adoptFunc func(userID, email string) int
}

func (s *stubResolver) ResolveOwner(ctx context.Context, bodyUserID string, caller *services.Caller, email string) *string {
	return s.owner
}

func (s *stubResolver) AdoptOrphans(ctx context.Context, userID, email string) int {
	if s.adoptFunc == nil {
		return 0
	}
	return s.adoptFunc(userID, email)
}

type broadcastRecord struct {
	event   services.Event
	message services.Message
}

type mockBroadcaster struct {
	mu            sync.Mutex
	broadcastFunc func(event services.Event, message services.Message) error
	broadcasts    []broadcastRecord
}

func (m *mockBroadcaster) Broadcast(ctx context.Context, event services.Event, message services.Message) error {
	m.mu.Lock()
	m.broadcasts = append(m.broadcasts, broadcastRecord{event: event, message: message})
	fn := m.broadcastFunc
	m.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(event, message)
}

func (m *mockBroadcaster) events() []services.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []services.Event
	for _, b := range m.broadcasts {
		events = append(events, b.event)
	}
	return events
}

type sentMessage struct {
	recipient string
	message   services.Message
}

type mockChannel struct {
	mu       sync.Mutex
	sendFunc func(recipient string, message services.Message) error
	sent     []sentMessage
}

func (m *mockChannel) Send(ctx context.Context, recipient string, message services.Message) error {
	m.mu.Lock()
	m.sent = append(m.sent, sentMessage{recipient: recipient, message: message})
	fn := m.sendFunc
	m.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(recipient, message)
}

func (m *mockChannel) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
