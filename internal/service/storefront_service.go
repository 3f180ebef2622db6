package service

import (
	"context"
	"sync"
	"time"

	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/checkout"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/events"
	"github.com/fjod/go_cart/storefront/internal/pricing"
	"github.com/fjod/go_cart/storefront/internal/storefront"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const persistTimeout = 3 * time.Second

// StatePersister is the side-effecting collaborator: load on init, save on mutation.
type StatePersister interface {
	Load(ctx context.Context, dataset []domain.Product) storefront.State
	SaveProducts(ctx context.Context, products []domain.Product) error
	SaveCart(ctx context.Context, cart domain.Cart) error
}

// Summary is what the order modal renders.
type Summary struct {
	Lines     []domain.CartLine     `json:"lines"`
	ItemCount int                   `json:"item_count"`
	Pricing   domain.DiscountResult `json:"pricing"`
	Modal     checkout.ModalState   `json:"modal"`
}

// StorefrontService serializes commands against one storefront session.
type StorefrontService struct {
	mu        sync.Mutex
	state     storefront.State
	modal     checkout.Modal
	persister StatePersister
	publisher events.Publisher
	namespace string
	logger    *zap.Logger

	newToken func() string
	now      func() time.Time
}

func NewStorefrontService(
	ctx context.Context,
	dataset []domain.Product,
	persister StatePersister,
	publisher events.Publisher,
	namespace string,
	logger *zap.Logger,
) *StorefrontService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	state := persister.Load(ctx, dataset)
	logger.Info("storefront state loaded",
		zap.String("namespace", namespace),
		zap.Int("products", len(state.Products)),
		zap.Int("cart_lines", len(state.Cart.Lines)))

	return &StorefrontService{
		state:     state,
		persister: persister,
		publisher: publisher,
		namespace: namespace,
		logger:    logger,
		newToken:  func() string { return uuid.New().String() },
		now:       time.Now,
	}
}

// Products returns the catalog entries matching q in catalog order.
func (s *StorefrontService) Products(q catalog.Query) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.Apply(s.state.Products, q)
}

func (s *StorefrontService) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

func (s *StorefrontService) summaryLocked() Summary {
	lines := make([]domain.CartLine, len(s.state.Cart.Lines))
	copy(lines, s.state.Cart.Lines)
	return Summary{
		Lines:     lines,
		ItemCount: s.state.Cart.ItemCount(),
		Pricing:   pricing.Calculate(s.state.Cart.Total()),
		Modal:     s.modal.State(),
	}
}

// AddToCart leaves the state untouched when it returns an error.
func (s *StorefrontService) AddToCart(ctx context.Context, productID int64, quantity int) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.AddToCart(storefront.AddToCart{
		ProductID: productID,
		Quantity:  quantity,
		Token:     s.newToken(),
	})
	if err != nil {
		s.logger.Info("add to cart rejected",
			zap.Int64("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Error(err))
		return s.summaryLocked(), err
	}
	s.state = next

	s.logger.Info("added to cart", zap.Int64("product_id", productID), zap.Int("quantity", quantity))
	s.persistProducts(ctx)
	s.persistCart(ctx)
	return s.summaryLocked(), nil
}

func (s *StorefrontService) ModalState() checkout.ModalState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modal.State()
}

func (s *StorefrontService) OpenOrder() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.modal.Open(); err != nil {
		return s.summaryLocked(), err
	}
	return s.summaryLocked(), nil
}

func (s *StorefrontService) CloseOrder() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modal.Close()
}

// ConfirmOrder captures the cart as an order, clears the cart and publishes
// the order. Stock already taken by the cart stays taken.
func (s *StorefrontService) ConfirmOrder(ctx context.Context) (*domain.Order, error) {
	s.mu.Lock()
	if err := s.modal.Confirm(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	lines := make([]domain.CartLine, len(s.state.Cart.Lines))
	copy(lines, s.state.Cart.Lines)
	order := &domain.Order{
		ID:          uuid.New().String(),
		Lines:       lines,
		Pricing:     pricing.Calculate(s.state.Cart.Total()),
		ConfirmedAt: s.now().UTC(),
	}

	s.state = s.state.ClearCart()
	s.persistCart(ctx)
	s.mu.Unlock()

	s.logger.Info("order confirmed",
		zap.String("order_id", order.ID),
		zap.Int("lines", len(order.Lines)),
		zap.String("final_total", order.Pricing.FinalTotal.String()))

	if err := s.publisher.PublishOrderConfirmed(ctx, events.NewOrderConfirmed(s.namespace, *order)); err != nil {
		s.logger.Warn("failed to publish order event", zap.String("order_id", order.ID), zap.Error(err))
	}
	return order, nil
}

// persist* are fire-and-forget: failures are logged and dropped.
func (s *StorefrontService) persistProducts(ctx context.Context) {
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if err := s.persister.SaveProducts(saveCtx, s.state.Products); err != nil {
		s.logger.Warn("failed to persist products", zap.Error(err))
	}
}

func (s *StorefrontService) persistCart(ctx context.Context) {
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if err := s.persister.SaveCart(saveCtx, s.state.Cart); err != nil {
		s.logger.Warn("failed to persist cart", zap.Error(err))
	}
}
