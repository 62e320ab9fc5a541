// Package seed fills an empty database with demo marketplace data.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/address"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/content"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/review"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
	"github.com/marketplace/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// ErrAlreadySeeded is returned when categories exist already
var ErrAlreadySeeded = errors.New("database already contains categories")

// DemoPassword is the password of every seeded account
const DemoPassword = "password123"

// Repositories are the stores the seeder writes through
type Repositories struct {
	Users          identity.UserRepository
	Categories     catalog.CategoryRepository
	Products       catalog.ProductRepository
	Addresses      address.Repository
	Orders         trade.OrderRepository
	Reviews        review.Repository
	Articles       content.ArticleRepository
	PaymentMethods content.PaymentMethodRepository
}

// Options sizes the generated data set
type Options struct {
	Sellers           int
	Buyers            int
	ProductsPerSeller int
	Articles          int
	// Seed makes runs reproducible; zero picks a random seed.
	Seed uint64
}

// DefaultOptions returns a small data set suitable for local development
func DefaultOptions() Options {
	return Options{Sellers: 5, Buyers: 10, ProductsPerSeller: 8, Articles: 4}
}

// Summary counts what a run created
type Summary struct {
	Users          int
	Categories     int
	Products       int
	Addresses      int
	Orders         int
	Reviews        int
	Articles       int
	PaymentMethods int
}

type region struct {
	provinceID, cityID, subdistrictID int
	names                             address.RegionNames
}

var regions = []region{
	{6, 152, 2103, address.RegionNames{Province: "DKI Jakarta", City: "Jakarta Pusat", Subdistrict: "Gambir"}},
	{9, 23, 318, address.RegionNames{Province: "Jawa Barat", City: "Bandung", Subdistrict: "Coblong"}},
	{10, 399, 5494, address.RegionNames{Province: "Jawa Tengah", City: "Semarang", Subdistrict: "Banyumanik"}},
	{5, 501, 6981, address.RegionNames{Province: "DI Yogyakarta", City: "Yogyakarta", Subdistrict: "Gondokusuman"}},
	{11, 444, 6138, address.RegionNames{Province: "Jawa Timur", City: "Surabaya", Subdistrict: "Gubeng"}},
}

var categoryTree = []struct {
	name string
	subs []string
}{
	{"Fashion Pria", []string{"Kemeja", "Celana", "Sepatu"}},
	{"Fashion Wanita", []string{"Dress", "Hijab", "Tas"}},
	{"Elektronik", []string{"Handphone", "Aksesoris", "Audio"}},
	{"Makanan & Minuman", []string{"Kopi", "Camilan"}},
	{"Rumah Tangga", []string{"Dapur", "Dekorasi"}},
	{"Kerajinan", []string{"Batik", "Anyaman"}},
}

var paymentMethods = []content.PaymentMethod{
	{Code: "bca_va", Name: "BCA Virtual Account", Type: content.PaymentTypeBankTransfer},
	{Code: "mandiri_va", Name: "Mandiri Virtual Account", Type: content.PaymentTypeBankTransfer},
	{Code: "gopay", Name: "GoPay", Type: content.PaymentTypeEWallet},
	{Code: "ovo", Name: "OVO", Type: content.PaymentTypeEWallet},
	{Code: "indomaret", Name: "Indomaret", Type: content.PaymentTypeRetail},
	{Code: "cod", Name: "Bayar di Tempat", Type: content.PaymentTypeCOD},
}

var units = []string{"pcs", "pack", "box", "kg", "lusin"}

// Seeder generates demo data with gofakeit
type Seeder struct {
	repos  Repositories
	opts   Options
	faker  *gofakeit.Faker
	logger *zap.Logger
}

// New creates a Seeder. A nil logger is replaced by a no-op logger.
func New(repos Repositories, opts Options, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		repos:  repos,
		opts:   opts,
		faker:  gofakeit.New(opts.Seed),
		logger: logger,
	}
}

// Run seeds every table. It refuses to run against a database that already
// has categories.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	existing, err := s.repos.Categories.FindAllWithCounts(ctx, nil)
	if err != nil {
		return sum, fmt.Errorf("check categories: %w", err)
	}
	if len(existing) > 0 {
		return sum, ErrAlreadySeeded
	}

	categories, err := s.seedCategories(ctx)
	if err != nil {
		return sum, err
	}
	sum.Categories = len(categories)

	for i := range paymentMethods {
		m := paymentMethods[i]
		m.ID = uuid.New()
		m.Active = true
		m.SortOrder = i + 1
		if err := s.repos.PaymentMethods.Save(ctx, &m); err != nil {
			return sum, fmt.Errorf("save payment method %s: %w", m.Code, err)
		}
		sum.PaymentMethods++
	}

	var listed []catalog.Product
	for i := 0; i < s.opts.Sellers; i++ {
		seller, err := s.newUser(i, true)
		if err != nil {
			return sum, err
		}
		if err := s.repos.Users.Save(ctx, seller); err != nil {
			return sum, fmt.Errorf("save seller: %w", err)
		}
		sum.Users++

		if err := s.seedAddress(ctx, seller); err != nil {
			return sum, err
		}
		sum.Addresses++

		for j := 0; j < s.opts.ProductsPerSeller; j++ {
			p, err := s.seedProduct(ctx, seller.ID, categories)
			if err != nil {
				return sum, err
			}
			listed = append(listed, *p)
			sum.Products++
		}
	}

	for i := 0; i < s.opts.Buyers; i++ {
		buyer, err := s.newUser(s.opts.Sellers+i, false)
		if err != nil {
			return sum, err
		}
		if err := s.repos.Users.Save(ctx, buyer); err != nil {
			return sum, fmt.Errorf("save buyer: %w", err)
		}
		sum.Users++

		if err := s.seedAddress(ctx, buyer); err != nil {
			return sum, err
		}
		sum.Addresses++

		if len(listed) == 0 {
			continue
		}
		orders, reviews, err := s.seedPurchases(ctx, buyer.ID, listed)
		if err != nil {
			return sum, err
		}
		sum.Orders += orders
		sum.Reviews += reviews
	}

	for i := 0; i < s.opts.Articles; i++ {
		a, err := content.NewArticle(s.faker.Sentence(6), s.faker.Paragraph(3, 4, 12, "\n\n"), picture("article", i))
		if err != nil {
			return sum, err
		}
		a.Publish(time.Now().Add(-time.Duration(i) * 24 * time.Hour))
		if err := s.repos.Articles.Save(ctx, a); err != nil {
			return sum, fmt.Errorf("save article: %w", err)
		}
		sum.Articles++
	}

	s.logger.Info("Seed completed",
		zap.Int("users", sum.Users),
		zap.Int("categories", sum.Categories),
		zap.Int("products", sum.Products),
		zap.Int("orders", sum.Orders),
		zap.Int("reviews", sum.Reviews),
	)
	return sum, nil
}

func (s *Seeder) seedCategories(ctx context.Context) ([]catalog.Category, error) {
	out := make([]catalog.Category, 0, len(categoryTree))
	for i, node := range categoryTree {
		c := catalog.Category{
			BaseEntity: shared.NewBaseEntity(),
			Name:       node.name,
			Slug:       valueobject.Slugify(node.name),
			Image:      picture("category", i),
		}
		for _, sub := range node.subs {
			c.SubCategories = append(c.SubCategories, catalog.SubCategory{
				BaseEntity: shared.NewBaseEntity(),
				CategoryID: c.ID,
				Name:       sub,
				Slug:       valueobject.Slugify(node.name + " " + sub),
			})
		}
		if err := s.repos.Categories.Save(ctx, &c); err != nil {
			return nil, fmt.Errorf("save category %s: %w", node.name, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// newUser builds a password account. n keeps emails and storefront slugs
// unique within a run.
func (s *Seeder) newUser(n int, seller bool) (*identity.User, error) {
	kind := "buyer"
	if seller {
		kind = "seller"
	}
	u, err := identity.NewPasswordUser(s.faker.Name(), fmt.Sprintf("%s%d@marketplace.test", kind, n+1), DemoPassword)
	if err != nil {
		return nil, err
	}
	u.Phone = phone(s.faker)
	if seller {
		if err := u.BecomeSeller(fmt.Sprintf("%s %d", s.faker.Company(), n+1), s.faker.Sentence(10)); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func (s *Seeder) seedAddress(ctx context.Context, u *identity.User) error {
	r := regions[s.faker.Number(0, len(regions)-1)]
	lat := s.faker.Float64Range(-8.2, -6.1)
	long := s.faker.Float64Range(106.6, 112.8)
	a, err := address.New(u.ID, address.Input{
		PersonName:    u.Name,
		PhoneNumber:   u.Phone,
		PlaceName:     "Rumah",
		ProvinceID:    r.provinceID,
		CityID:        r.cityID,
		SubdistrictID: r.subdistrictID,
		Address:       s.faker.Street(),
		Lat:           &lat,
		Long:          &long,
	})
	if err != nil {
		return err
	}
	a.SetRegionNames(r.names)
	a.Main = true
	if err := s.repos.Addresses.Save(ctx, a); err != nil {
		return fmt.Errorf("save address: %w", err)
	}
	return nil
}

func (s *Seeder) seedProduct(ctx context.Context, sellerID uuid.UUID, categories []catalog.Category) (*catalog.Product, error) {
	category := categories[s.faker.Number(0, len(categories)-1)]
	var subID *uuid.UUID
	if len(category.SubCategories) > 0 {
		id := category.SubCategories[s.faker.Number(0, len(category.SubCategories)-1)].ID
		subID = &id
	}
	var discount *int
	if s.faker.Number(1, 4) == 1 {
		d := s.faker.Number(5, 50)
		discount = &d
	}

	price := int64(s.faker.Number(10, 500)) * 1000
	p, err := catalog.NewProduct(sellerID, catalog.ProductInput{
		Name:          s.faker.ProductName(),
		CategoryID:    category.ID,
		SubCategoryID: subID,
		Price:         price,
		Discount:      discount,
		Stock:         s.faker.Number(0, 200),
		Weight:        s.faker.Number(100, 3000),
		Unit:          units[s.faker.Number(0, len(units)-1)],
		Description:   s.faker.Paragraph(2, 3, 10, "\n"),
		Images:        []string{picture(sellerID.String(), 1), picture(sellerID.String(), 2)},
	})
	if err != nil {
		return nil, err
	}

	plan := catalog.VariantPlan{}
	if s.faker.Bool() {
		payload := []catalog.VariantInput{
			{VariantName: "Kecil", Price: price, Stock: s.faker.Number(1, 50)},
			{VariantName: "Besar", Price: price + 15000, Stock: s.faker.Number(1, 50)},
		}
		if plan, err = catalog.ReplicateVariants(p, nil, payload); err != nil {
			return nil, err
		}
	}
	if err := s.repos.Products.SaveWithVariants(ctx, p, plan); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return p, nil
}

var completedFlow = []trade.OrderStatus{
	trade.OrderStatusPaid,
	trade.OrderStatusProcessed,
	trade.OrderStatusShipped,
	trade.OrderStatusDone,
}

// seedPurchases places one to three completed orders and reviews most of
// what was bought
func (s *Seeder) seedPurchases(ctx context.Context, buyerID uuid.UUID, listed []catalog.Product) (int, int, error) {
	var orders, reviews int
	for i, n := 0, s.faker.Number(1, 3); i < n; i++ {
		p := listed[s.faker.Number(0, len(listed)-1)]
		o, err := trade.NewOrder(buyerID, p.SellerID)
		if err != nil {
			return orders, reviews, err
		}
		if err := o.AddItem(p.ID, s.faker.Number(1, 3), p.FinalPrice().Int64()); err != nil {
			return orders, reviews, err
		}
		o.SetShipping("jne", "REG", int64(s.faker.Number(9, 40))*1000)
		for _, st := range completedFlow {
			if err := o.TransitionTo(st); err != nil {
				return orders, reviews, err
			}
		}
		if err := s.repos.Orders.Save(ctx, o); err != nil {
			return orders, reviews, fmt.Errorf("save order: %w", err)
		}
		orders++

		if s.faker.Number(1, 4) == 1 {
			continue
		}
		rv, err := review.New(p.ID, buyerID, s.faker.Number(3, 5), s.faker.Sentence(8), nil)
		if err != nil {
			return orders, reviews, err
		}
		rv.OrderID = &o.ID
		if err := s.repos.Reviews.Save(ctx, rv); err != nil {
			return orders, reviews, fmt.Errorf("save review: %w", err)
		}
		reviews++
	}
	return orders, reviews, nil
}

func phone(f *gofakeit.Faker) string {
	return fmt.Sprintf("08%d%08d", f.Number(11, 99), f.Number(0, 99999999))
}

func picture(seed string, n int) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s-%d/600/600", seed, n)
}
