package tests

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"greencart/internal/domain"
	"greencart/internal/redis"
	"greencart/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
// Drivers are kept in roster order.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers []*domain.Driver

	// Counters for verification
	CreateCallCount int32
	ListCallCount   int32

	// Error injection
	CreateError error
	ListError   error
	CountError  error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{}
}

// AddDriver appends a driver to the roster.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers = append(m.drivers, driver)
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOf(driver.ID) >= 0 {
		return repository.ErrAlreadyExists
	}
	driver.CreatedAt = time.Now()
	m.drivers = append(m.drivers, driver)
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.indexOf(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	copy := *m.drivers[i]
	return &copy, nil
}

func (m *MockDriverRepository) List(ctx context.Context, limit int) ([]*domain.Driver, error) {
	atomic.AddInt32(&m.ListCallCount, 1)
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := len(m.drivers)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]*domain.Driver, 0, n)
	for _, d := range m.drivers[:n] {
		copy := *d
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockDriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(driver.ID)
	if i < 0 {
		return repository.ErrNotFound
	}
	driver.CreatedAt = m.drivers[i].CreatedAt
	m.drivers[i] = driver
	return nil
}

func (m *MockDriverRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	m.drivers = append(m.drivers[:i], m.drivers[i+1:]...)
	return nil
}

func (m *MockDriverRepository) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.drivers), nil
}

func (m *MockDriverRepository) indexOf(id string) int {
	for i, d := range m.drivers {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// ──────────────────────────────────────────────
// MOCK ROUTE REPOSITORY
// ──────────────────────────────────────────────

// MockRouteRepository is a mock implementation of RouteRepository.
type MockRouteRepository struct {
	mu     sync.RWMutex
	routes map[int]*domain.Route

	// Error injection
	ListError error
}

// NewMockRouteRepository creates a new mock route repository.
func NewMockRouteRepository() *MockRouteRepository {
	return &MockRouteRepository{
		routes: make(map[int]*domain.Route),
	}
}

// AddRoute adds a route to the mock repository.
func (m *MockRouteRepository) AddRoute(route *domain.Route) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[route.RouteID] = route
}

func (m *MockRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.routes[route.RouteID]; ok {
		return repository.ErrAlreadyExists
	}
	m.routes[route.RouteID] = route
	return nil
}

func (m *MockRouteRepository) GetByID(ctx context.Context, routeID int) (*domain.Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	route, ok := m.routes[routeID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *route
	return &copy, nil
}

// List returns routes sorted by route ID.
func (m *MockRouteRepository) List(ctx context.Context) ([]*domain.Route, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Route, 0, len(m.routes))
	for _, r := range m.routes {
		copy := *r
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RouteID < result[j].RouteID })
	return result, nil
}

func (m *MockRouteRepository) Update(ctx context.Context, route *domain.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.routes[route.RouteID]; !ok {
		return repository.ErrNotFound
	}
	m.routes[route.RouteID] = route
	return nil
}

func (m *MockRouteRepository) Delete(ctx context.Context, routeID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.routes[routeID]; !ok {
		return repository.ErrNotFound
	}
	delete(m.routes, routeID)
	return nil
}

func (m *MockRouteRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.routes), nil
}

// ──────────────────────────────────────────────
// MOCK ORDER REPOSITORY
// ──────────────────────────────────────────────

// MockOrderRepository is a mock implementation of OrderRepository.
// Orders are kept in backlog order.
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders []*domain.Order

	// Error injection
	ListError error
}

// NewMockOrderRepository creates a new mock order repository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{}
}

// AddOrder appends an order to the backlog.
func (m *MockOrderRepository) AddOrder(order *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, order)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOf(order.OrderID) >= 0 {
		return repository.ErrAlreadyExists
	}
	m.orders = append(m.orders, order)
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.indexOf(orderID)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	copy := *m.orders[i]
	return &copy, nil
}

func (m *MockOrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		copy := *o
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(order.OrderID)
	if i < 0 {
		return repository.ErrNotFound
	}
	m.orders[i] = order
	return nil
}

func (m *MockOrderRepository) Delete(ctx context.Context, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(orderID)
	if i < 0 {
		return repository.ErrNotFound
	}
	m.orders = append(m.orders[:i], m.orders[i+1:]...)
	return nil
}

func (m *MockOrderRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.orders), nil
}

func (m *MockOrderRepository) indexOf(orderID string) int {
	for i, o := range m.orders {
		if o.OrderID == orderID {
			return i
		}
	}
	return -1
}

// ──────────────────────────────────────────────
// MOCK SIMULATION REPOSITORY
// ──────────────────────────────────────────────

// MockSimulationRepository is a mock implementation of SimulationRepository.
// Runs are kept in insertion order.
type MockSimulationRepository struct {
	mu   sync.RWMutex
	sims []*domain.Simulation
	now  time.Time

	// Counters for verification
	CreateCallCount int32
	LatestCallCount int32

	// Last limit passed to ListRecent
	LastListLimit int

	// Error injection
	CreateError error
	LatestError error
}

// NewMockSimulationRepository creates a new mock simulation repository.
// Each stored run is stamped one minute after the previous one.
func NewMockSimulationRepository() *MockSimulationRepository {
	return &MockSimulationRepository{
		now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *MockSimulationRepository) Create(ctx context.Context, sim *domain.Simulation) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(time.Minute)
	sim.CreatedAt = m.now
	m.sims = append(m.sims, sim)
	return nil
}

func (m *MockSimulationRepository) GetByID(ctx context.Context, id string) (*domain.Simulation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sims {
		if s.ID == id {
			copy := *s
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockSimulationRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Simulation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastListLimit = limit
	result := make([]*domain.Simulation, 0, limit)
	for i := len(m.sims) - 1; i >= 0 && len(result) < limit; i-- {
		copy := *m.sims[i]
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockSimulationRepository) Latest(ctx context.Context) (*domain.Simulation, error) {
	atomic.AddInt32(&m.LatestCallCount, 1)
	if m.LatestError != nil {
		return nil, m.LatestError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.sims) == 0 {
		return nil, repository.ErrNotFound
	}
	copy := *m.sims[len(m.sims)-1]
	return &copy, nil
}

// Stored returns the number of stored runs.
func (m *MockSimulationRepository) Stored() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sims)
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount int32

	// Error injection
	GetError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Username]; ok {
		return repository.ErrAlreadyExists
	}
	user.CreatedAt = time.Now()
	m.users[user.Username] = user
	return nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK FLEET IMPORTER
// ──────────────────────────────────────────────

// MockFleetImporter records the fleets it is asked to store and optionally
// forwards them into mock repositories.
type MockFleetImporter struct {
	mu    sync.Mutex
	fleet *repository.Fleet

	Drivers *MockDriverRepository
	Routes  *MockRouteRepository
	Orders  *MockOrderRepository

	// Counters for verification
	ReplaceCallCount int32

	// Error injection
	ReplaceError error

	// Called inside ReplaceAll before the fleet is stored
	OnReplace func()
}

// NewMockFleetImporter creates a new mock fleet importer.
func NewMockFleetImporter() *MockFleetImporter {
	return &MockFleetImporter{}
}

func (m *MockFleetImporter) ReplaceAll(ctx context.Context, fleet repository.Fleet) error {
	atomic.AddInt32(&m.ReplaceCallCount, 1)
	if m.OnReplace != nil {
		m.OnReplace()
	}
	if m.ReplaceError != nil {
		return m.ReplaceError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fleet = &fleet

	if m.Drivers != nil {
		m.Drivers.mu.Lock()
		m.Drivers.drivers = append([]*domain.Driver(nil), fleet.Drivers...)
		m.Drivers.mu.Unlock()
	}
	if m.Routes != nil {
		m.Routes.mu.Lock()
		m.Routes.routes = make(map[int]*domain.Route, len(fleet.Routes))
		for _, r := range fleet.Routes {
			m.Routes.routes[r.RouteID] = r
		}
		m.Routes.mu.Unlock()
	}
	if m.Orders != nil {
		m.Orders.mu.Lock()
		m.Orders.orders = append([]*domain.Order(nil), fleet.Orders...)
		m.Orders.mu.Unlock()
	}
	return nil
}

// LastFleet returns the most recently stored fleet, or nil.
func (m *MockFleetImporter) LastFleet() *repository.Fleet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fleet
}

// ──────────────────────────────────────────────
// MOCK KPI CACHE
// ──────────────────────────────────────────────

// MockKPICache is a mock implementation of KPICacheInterface.
type MockKPICache struct {
	mu     sync.Mutex
	cached *redis.CachedKPIs

	// Counters for verification
	GetCallCount         int32
	SetCallCount         int32
	SetIfAbsentCallCount int32
	InvalidateCallCount  int32

	// Error injection
	GetError error
	SetError error
}

// NewMockKPICache creates a new mock KPI cache.
func NewMockKPICache() *MockKPICache {
	return &MockKPICache{}
}

func (m *MockKPICache) GetLatestKPIs(ctx context.Context) (*redis.CachedKPIs, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cached == nil {
		return nil, nil
	}
	copy := *m.cached
	return &copy, nil
}

func (m *MockKPICache) SetLatestKPIs(ctx context.Context, kpis *redis.CachedKPIs) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *kpis
	m.cached = &copy
	return nil
}

func (m *MockKPICache) SetLatestKPIsIfAbsent(ctx context.Context, kpis *redis.CachedKPIs) (bool, error) {
	atomic.AddInt32(&m.SetIfAbsentCallCount, 1)
	if m.SetError != nil {
		return false, m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cached != nil {
		return false, nil
	}
	copy := *kpis
	m.cached = &copy
	return true, nil
}

func (m *MockKPICache) InvalidateLatestKPIs(ctx context.Context) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cached = nil
	return nil
}

// Cached returns the cached entry (for test assertions).
func (m *MockKPICache) Cached() *redis.CachedKPIs {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cached
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]mockLock
	seq   int

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error
}

type mockLock struct {
	token  string
	expiry time.Time
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]mockLock),
	}
}

func (m *MockLockStore) AcquireLock(ctx context.Context, name string, ttl time.Duration) (string, bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return "", false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, exists := m.locks[name]; exists && time.Now().Before(l.expiry) {
		return "", false, nil // Lock still held.
	}
	token := m.grant(name, ttl)
	return token, true, nil
}

// ReleaseLock frees the lock only when token matches the current owner.
func (m *MockLockStore) ReleaseLock(ctx context.Context, name, token string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, exists := m.locks[name]; exists && l.token == token {
		delete(m.locks, name)
	}
	return nil
}

func (m *MockLockStore) grant(name string, ttl time.Duration) string {
	m.seq++
	token := fmt.Sprintf("token-%d", m.seq)
	m.locks[name] = mockLock{token: token, expiry: time.Now().Add(ttl)}
	return token
}

// Hold takes a lock as if another process owned it and returns its token.
func (m *MockLockStore) Hold(name string, ttl time.Duration) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.grant(name, ttl)
}

// Expire makes a held lock lapse, as if its TTL ran out.
func (m *MockLockStore) Expire(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, exists := m.locks[name]; exists {
		l.expiry = time.Now().Add(-time.Second)
		m.locks[name] = l
	}
}

// IsLocked reports whether a lock is held (for test assertions).
func (m *MockLockStore) IsLocked(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, exists := m.locks[name]
	return exists && time.Now().Before(l.expiry)
}

// ──────────────────────────────────────────────
// MOCK EVENT PUBLISHER
// ──────────────────────────────────────────────

// MockEventPublisher is a mock implementation of EventPublisherInterface.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []redis.SimulationEvent

	// Error injection
	PublishError error
}

// NewMockEventPublisher creates a new mock event publisher.
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, evt redis.SimulationEvent) error {
	if m.PublishError != nil {
		return m.PublishError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
	return nil
}

// Events returns the published events (for test assertions).
func (m *MockEventPublisher) Events() []redis.SimulationEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]redis.SimulationEvent(nil), m.events...)
}

// Ensure mocks implement interfaces.
var (
	_ repository.DriverRepository     = (*MockDriverRepository)(nil)
	_ repository.RouteRepository      = (*MockRouteRepository)(nil)
	_ repository.OrderRepository      = (*MockOrderRepository)(nil)
	_ repository.SimulationRepository = (*MockSimulationRepository)(nil)
	_ repository.UserRepository       = (*MockUserRepository)(nil)
	_ repository.FleetImporter        = (*MockFleetImporter)(nil)
	_ redis.KPICacheInterface         = (*MockKPICache)(nil)
	_ redis.LockStoreInterface        = (*MockLockStore)(nil)
	_ redis.EventPublisherInterface   = (*MockEventPublisher)(nil)
)
