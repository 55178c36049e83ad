// Package storetest fournit des implémentations en mémoire des stores pour
// les tests des services et des handlers.
package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"scoop_storefront/internal/models"
	"scoop_storefront/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Catalog struct {
	mu       sync.Mutex
	Products []models.Product
	Err      error
}

func (c *Catalog) Add(p models.Product) models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	c.Products = append(c.Products, p)
	return p
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func (c *Catalog) Find(_ context.Context, q store.ProductQuery) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}

	out := []models.Product{}
	for _, p := range c.Products {
		if len(q.Categories) > 0 && !contains(q.Categories, p.Category) {
			continue
		}
		if len(q.Sizes) > 0 && !contains(q.Sizes, p.Size) {
			continue
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		if q.IDs != nil {
			if !contains(q.IDs, p.ID.Hex()) {
				continue
			}
		} else if q.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Search)) {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case store.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case store.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	return out, nil
}

func (c *Catalog) FindByID(_ context.Context, id string) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	for _, p := range c.Products {
		if p.ID.Hex() == id {
			p := p
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (c *Catalog) Featured(_ context.Context, limit int64) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	out := []models.Product{}
	for _, p := range c.Products {
		if p.IsFeatured && int64(len(out)) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

type Carts struct {
	mu    sync.Mutex
	items []models.CartItem
	Err   error
}

func (c *Carts) Items(_ context.Context, userID string) ([]models.CartItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	out := []models.CartItem{}
	for _, item := range c.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (c *Carts) Increment(_ context.Context, item models.CartItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	for i := range c.items {
		if c.items[i].UserID == item.UserID && c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity++
			c.items[i].UpdatedAt = time.Now()
			return nil
		}
	}
	item.ID = primitive.NewObjectID()
	item.Quantity = 1
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	c.items = append(c.items, item)
	return nil
}

func (c *Carts) index(userID, itemID string) int {
	for i, item := range c.items {
		if item.ID.Hex() == itemID && item.UserID == userID {
			return i
		}
	}
	return -1
}

func (c *Carts) Get(_ context.Context, userID, itemID string) (*models.CartItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	i := c.index(userID, itemID)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	item := c.items[i]
	return &item, nil
}

func (c *Carts) SetQuantity(_ context.Context, userID, itemID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	i := c.index(userID, itemID)
	if i < 0 {
		return store.ErrNotFound
	}
	c.items[i].Quantity = quantity
	return nil
}

func (c *Carts) Remove(_ context.Context, userID, itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	i := c.index(userID, itemID)
	if i < 0 {
		return store.ErrNotFound
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

func (c *Carts) Count(_ context.Context, userID string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return 0, c.Err
	}
	n := 0
	for _, item := range c.items {
		if item.UserID == userID {
			n += item.Quantity
		}
	}
	return n, nil
}

func (c *Carts) Clear(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	kept := c.items[:0]
	for _, item := range c.items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	c.items = kept
	return nil
}

type Users struct {
	mu    sync.Mutex
	users []models.User
}

func (u *Users) Create(_ context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	user.Email = store.NormalizeEmail(user.Email)
	for _, existing := range u.users {
		if existing.Email == user.Email {
			return store.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	u.users = append(u.users, *user)
	return nil
}

func (u *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	email = store.NormalizeEmail(email)
	for _, user := range u.users {
		if user.Email == email {
			user := user
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (u *Users) FindByID(_ context.Context, id string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, user := range u.users {
		if user.ID.Hex() == id {
			user := user
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

type Orders struct {
	mu     sync.Mutex
	orders []models.Order
	Err    error
}

func (o *Orders) Create(_ context.Context, order *models.Order) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	o.orders = append(o.orders, *order)
	return nil
}

func (o *Orders) FindByNumber(_ context.Context, userID, orderNumber string) (*models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, order := range o.orders {
		if order.OrderNumber == orderNumber && order.UserID == userID {
			order := order
			return &order, nil
		}
	}
	return nil, store.ErrNotFound
}

func (o *Orders) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := []models.Order{}
	for i := len(o.orders) - 1; i >= 0; i-- {
		if o.orders[i].UserID == userID {
			out = append(out, o.orders[i])
		}
	}
	return out, nil
}
