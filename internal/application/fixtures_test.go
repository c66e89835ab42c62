package application_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nestora/storefront/internal/application"
	"github.com/nestora/storefront/internal/domain"
	"github.com/nestora/storefront/internal/ports"
)

type fixture struct {
	service     *application.Service
	leads       *fakeLeads
	products    *fakeProducts
	carts       *fakeCarts
	wishlist    *fakeWishlist
	orders      *fakeOrders
	warehouse   *fakeWarehouse
	idempotency *fakeIdempotency
	throttle    *fakeThrottle
	dashCache   *fakeDashCache
}

func defaultTestConfig() application.Config {
	return application.Config{
		PhoneDedupWindow:     5 * time.Minute,
		SubmitIPThreshold:    100,
		SubmitPhoneThreshold: 100,
		SubmitRateWindow:     time.Minute,
		IdempotencyTTL:       24 * time.Hour,
		DashboardCacheTTL:    time.Minute,
		Currency:             "INR",
	}
}

func newFixture() *fixture {
	return newFixtureWithConfig(defaultTestConfig())
}

func newFixtureWithConfig(cfg application.Config) *fixture {
	leads := &fakeLeads{byID: map[uuid.UUID]domain.Lead{}}
	products := &fakeProducts{byID: map[uuid.UUID]domain.Product{}}
	carts := &fakeCarts{items: map[string]map[uuid.UUID]domain.CartItem{}}
	wishlist := &fakeWishlist{items: map[string]map[uuid.UUID]domain.WishlistItem{}}
	orders := &fakeOrders{byID: map[uuid.UUID]domain.Order{}}
	warehouse := &fakeWarehouse{}
	idem := &fakeIdempotency{records: map[string]ports.IdempotencyRecord{}}
	throttle := &fakeThrottle{state: map[string]ports.ThrottleState{}}
	dashCache := &fakeDashCache{items: map[string]domain.DashboardSnapshot{}}

	svc := application.NewService(application.Dependencies{
		Config:      cfg,
		Leads:       leads,
		Products:    products,
		Carts:       carts,
		Wishlist:    wishlist,
		Orders:      orders,
		Warehouse:   warehouse,
		Idempotency: idem,
		Throttle:    throttle,
		DashCache:   dashCache,
	})

	return &fixture{
		service:     svc,
		leads:       leads,
		products:    products,
		carts:       carts,
		wishlist:    wishlist,
		orders:      orders,
		warehouse:   warehouse,
		idempotency: idem,
		throttle:    throttle,
		dashCache:   dashCache,
	}
}

func customerActor(id string) application.Actor {
	return application.Actor{SubjectID: id, Role: application.RoleCustomer}
}

func adminActor() application.Actor {
	return application.Actor{SubjectID: "admin", Role: application.RoleAdmin}
}

func partnerActor(name string) application.Actor {
	return application.Actor{SubjectID: name, Role: application.RolePartner, Partner: name}
}

func (f *fixture) seedProduct(name string, priceCents int64, inStock bool) domain.Product {
	now := time.Now().UTC()
	p := domain.Product{
		ProductID:  uuid.New(),
		Name:       name,
		Slug:       strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Category:   "sofas",
		PriceCents: priceCents,
		Currency:   "INR",
		InStock:    inStock,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.products.mu.Lock()
	f.products.byID[p.ProductID] = p
	f.products.mu.Unlock()
	return p
}

func (f *fixture) seedLead(phone, requestID string, createdAt time.Time) domain.Lead {
	lead := domain.Lead{
		LeadID:    uuid.New(),
		Name:      "Seeded Lead",
		Phone:     domain.NormalizePhone(phone),
		RequestID: requestID,
		Status:    domain.LeadStatusNew,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	f.leads.mu.Lock()
	f.leads.byID[lead.LeadID] = lead
	f.leads.mu.Unlock()
	return lead
}

type fakeLeads struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]domain.Lead
	events    []ports.OutboxEvent
	createErr error
}

func (f *fakeLeads) CreateWithOutboxTx(_ context.Context, lead domain.Lead, event ports.OutboxEvent) (domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return domain.Lead{}, f.createErr
	}
	if lead.RequestID != "" {
		for _, existing := range f.byID {
			if existing.RequestID == lead.RequestID {
				return domain.Lead{}, domain.ErrDuplicateRequestID
			}
		}
	}
	f.byID[lead.LeadID] = lead
	f.events = append(f.events, event)
	return lead, nil
}

func (f *fakeLeads) ExistsByRequestID(_ context.Context, requestID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if requestID == "" {
		return false, nil
	}
	for _, lead := range f.byID {
		if lead.RequestID == requestID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeads) ExistsByPhoneSince(_ context.Context, phone string, since time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, lead := range f.byID {
		if lead.Phone == phone && !lead.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeads) GetByID(_ context.Context, leadID uuid.UUID) (domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead, ok := f.byID[leadID]
	if !ok {
		return domain.Lead{}, domain.ErrNotFound
	}
	return lead, nil
}

func (f *fakeLeads) List(_ context.Context, filter ports.LeadFilter) ([]domain.Lead, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Lead
	for _, lead := range f.byID {
		if filter.Status != "" && lead.Status != filter.Status {
			continue
		}
		if filter.Phone != "" && lead.Phone != filter.Phone {
			continue
		}
		out = append(out, lead)
	}
	return out, len(out), nil
}

func (f *fakeLeads) UpdateStatus(_ context.Context, leadID uuid.UUID, status domain.LeadStatus, at time.Time) (domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead, ok := f.byID[leadID]
	if !ok {
		return domain.Lead{}, domain.ErrNotFound
	}
	lead.Status = status
	lead.UpdatedAt = at
	f.byID[leadID] = lead
	return lead, nil
}

type fakeProducts struct {
	mu   sync.Mutex
	byID map[uuid.UUID]domain.Product
}

func (f *fakeProducts) Create(_ context.Context, product domain.Product) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Slug == product.Slug {
			return domain.Product{}, domain.ErrConflict
		}
	}
	f.byID[product.ProductID] = product
	return product, nil
}

func (f *fakeProducts) Update(_ context.Context, product domain.Product) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[product.ProductID]; !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	f.byID[product.ProductID] = product
	return product, nil
}

func (f *fakeProducts) GetByID(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[productID]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProducts) GetBySlug(_ context.Context, slug string) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byID {
		if p.Slug == slug && !p.Archived {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

func (f *fakeProducts) List(_ context.Context, filter domain.ProductFilter) ([]domain.Product, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Product
	for _, p := range f.byID {
		if p.Archived {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

type fakeCarts struct {
	mu    sync.Mutex
	items map[string]map[uuid.UUID]domain.CartItem
}

func (f *fakeCarts) UpsertItem(_ context.Context, item domain.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.items[item.CustomerID] == nil {
		f.items[item.CustomerID] = map[uuid.UUID]domain.CartItem{}
	}
	f.items[item.CustomerID][item.ProductID] = item
	return nil
}

func (f *fakeCarts) RemoveItem(_ context.Context, customerID string, productID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items[customerID], productID)
	return nil
}

func (f *fakeCarts) ListByCustomer(_ context.Context, customerID string) ([]domain.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.CartItem
	for _, item := range f.items[customerID] {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeCarts) Clear(_ context.Context, customerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, customerID)
	return nil
}

type fakeWishlist struct {
	mu    sync.Mutex
	items map[string]map[uuid.UUID]domain.WishlistItem
}

func (f *fakeWishlist) Add(_ context.Context, item domain.WishlistItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.items[item.CustomerID] == nil {
		f.items[item.CustomerID] = map[uuid.UUID]domain.WishlistItem{}
	}
	f.items[item.CustomerID][item.ProductID] = item
	return nil
}

func (f *fakeWishlist) Remove(_ context.Context, customerID string, productID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items[customerID], productID)
	return nil
}

func (f *fakeWishlist) ListByCustomer(_ context.Context, customerID string) ([]domain.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.WishlistItem
	for _, item := range f.items[customerID] {
		out = append(out, item)
	}
	return out, nil
}

type fakeOrders struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]domain.Order
	events []ports.OutboxEvent
}

func (f *fakeOrders) CreateWithOutboxTx(_ context.Context, order domain.Order, event ports.OutboxEvent) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[order.OrderID] = order
	f.events = append(f.events, event)
	return order, nil
}

func (f *fakeOrders) GetByID(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.byID[orderID]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	return order, nil
}

func (f *fakeOrders) ListByCustomer(_ context.Context, customerID string, _, _ int) ([]domain.Order, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Order
	for _, order := range f.byID {
		if order.CustomerID == customerID {
			out = append(out, order)
		}
	}
	return out, len(out), nil
}

func (f *fakeOrders) List(_ context.Context, filter ports.OrderFilter) ([]domain.Order, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Order
	for _, order := range f.byID {
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		out = append(out, order)
	}
	return out, len(out), nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, orderID uuid.UUID, status domain.OrderStatus, at time.Time) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.byID[orderID]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = at
	f.byID[orderID] = order
	return order, nil
}

func (f *fakeOrders) AppendTracking(_ context.Context, event domain.TrackingEvent, advanceTo *domain.OrderStatus) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.byID[event.OrderID]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	order.Tracking = append(order.Tracking, event)
	if advanceTo != nil {
		order.Status = *advanceTo
	}
	order.UpdatedAt = event.RecordedAt
	f.byID[event.OrderID] = order
	return order, nil
}

type fakeWarehouse struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeWarehouse) LeadCountsByStatus(context.Context) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return map[string]int{"new": 3, "contacted": 1}, nil
}

func (f *fakeWarehouse) LeadsPerDay(_ context.Context, _, _ time.Time) ([]domain.DayCount, error) {
	return []domain.DayCount{{Day: "2026-08-01", Count: 2}}, nil
}

func (f *fakeWarehouse) OrderCountsByStatus(context.Context) (map[string]int, error) {
	return map[string]int{"placed": 2}, nil
}

func (f *fakeWarehouse) RevenueCents(_ context.Context, _, _ time.Time) (int64, error) {
	return 1250000, nil
}

func (f *fakeWarehouse) TopProducts(_ context.Context, _, _ time.Time, _ int) ([]domain.ProductVolume, error) {
	return []domain.ProductVolume{{ProductID: uuid.NewString(), ProductName: "Oakwood Sofa", Quantity: 4}}, nil
}

type fakeIdempotency struct {
	mu      sync.Mutex
	records map[string]ports.IdempotencyRecord
}

func (f *fakeIdempotency) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[key]
	if !ok {
		return nil, nil
	}
	out := rec
	return &out, nil
}

func (f *fakeIdempotency) Reserve(_ context.Context, key, requestHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[key]; ok {
		return domain.ErrConflict
	}
	f.records[key] = ports.IdempotencyRecord{
		Key:         key,
		RequestHash: requestHash,
		Status:      "PENDING",
		ExpiresAt:   expiresAt,
	}
	return nil
}

func (f *fakeIdempotency) Complete(_ context.Context, key string, responseCode int, responseBody []byte, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[key]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Status = "COMPLETED"
	rec.ResponseCode = responseCode
	rec.ResponseBody = responseBody
	rec.UpdatedAt = at
	f.records[key] = rec
	return nil
}

type fakeThrottle struct {
	mu    sync.Mutex
	state map[string]ports.ThrottleState
	err   error
}

func (f *fakeThrottle) Get(_ context.Context, key string) (ports.ThrottleState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return ports.ThrottleState{}, f.err
	}
	return f.state[key], nil
}

func (f *fakeThrottle) RecordAttempt(_ context.Context, key string, now time.Time, threshold int, blockWindow time.Duration) (ports.ThrottleState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return ports.ThrottleState{}, f.err
	}
	state := f.state[key]
	state.AttemptCount++
	if state.AttemptCount >= threshold {
		blockedUntil := now.Add(blockWindow)
		state.BlockedUntil = &blockedUntil
	}
	f.state[key] = state
	return state, nil
}

func (f *fakeThrottle) Clear(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.state, key)
	return nil
}

type fakeDashCache struct {
	mu    sync.Mutex
	items map[string]domain.DashboardSnapshot
	puts  int
}

func (f *fakeDashCache) Get(_ context.Context, key string) (*domain.DashboardSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snapshot, ok := f.items[key]
	if !ok {
		return nil, nil
	}
	out := snapshot
	return &out, nil
}

func (f *fakeDashCache) Put(_ context.Context, key string, snapshot domain.DashboardSnapshot, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = snapshot
	f.puts++
	return nil
}
