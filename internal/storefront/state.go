package storefront

import (
	"fmt"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// State is the catalog plus the cart of one storefront session.
// Command handlers never modify the receiver; they return a new State.
type State struct {
	Products []domain.Product
	Cart     domain.Cart
}

// AddToCart requests Quantity units of ProductID. Token keys the new cart line.
type AddToCart struct {
	ProductID int64
	Quantity  int
	Token     string
}

func New(products []domain.Product, cart domain.Cart) State {
	return State{Products: products, Cart: cart}.Clone()
}

// Clone deep-copies the slices so callers can hand the state out safely.
func (s State) Clone() State {
	products := make([]domain.Product, len(s.Products))
	copy(products, s.Products)
	lines := make([]domain.CartLine, len(s.Cart.Lines))
	copy(lines, s.Cart.Lines)
	return State{Products: products, Cart: domain.Cart{Lines: lines}}
}

// Product looks up a product by id.
func (s State) Product(id int64) (domain.Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// AddToCart validates the quantity against current stock. On success the
// product's stock drops by exactly cmd.Quantity and one line is appended.
// On failure the returned state equals s.
func (s State) AddToCart(cmd AddToCart) (State, error) {
	if cmd.Quantity <= 0 {
		return s, ErrInvalidQuantity
	}

	idx := -1
	for i, p := range s.Products {
		if p.ID == cmd.ProductID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, fmt.Errorf("product %d: %w", cmd.ProductID, ErrProductNotFound)
	}

	product := s.Products[idx]
	if cmd.Quantity > product.Stock {
		return s, fmt.Errorf("product %d has %d left, requested %d: %w",
			product.ID, product.Stock, cmd.Quantity, ErrInsufficientStock)
	}

	next := s.Clone()
	next.Products[idx].Stock -= cmd.Quantity
	next.Cart.Lines = append(next.Cart.Lines, domain.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  cmd.Quantity,
		Token:     cmd.Token,
	})
	return next, nil
}

// ClearCart removes every line. Stock is not restored.
func (s State) ClearCart() State {
	next := s.Clone()
	next.Cart = domain.Cart{Lines: []domain.CartLine{}}
	return next
}
