package usecase

import (
	"context"
	"fmt"
	"time"

	repo "storefront/internal/repository"

	"golang.org/x/sync/errgroup"
)

const (
	recentSalesLimit = 7
	chartDays        = 7
	chartDateLayout  = "1/2/2006"
)

// 金額は最小通貨単位
type DashboardOverview struct {
	Revenue  int64 `json:"revenue"`
	Sales    int64 `json:"sales"`
	Products int64 `json:"products"`
	Users    int64 `json:"users"`
}

type RecentSale struct {
	OrderID      string    `json:"orderId"`
	Amount       int64     `json:"amount"`
	CreatedAt    time.Time `json:"createdAt"`
	FirstName    string    `json:"firstName"`
	Email        string    `json:"email"`
	ProfileImage string    `json:"profileImage"`
}

// Revenueは通貨の整数単位（amount/100）
type ChartPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type DashboardUsecase struct {
	orders   repo.OrderRepository
	products repo.ProductRepository
	users    repo.UserRepository
	now      func() time.Time
}

func NewDashboardUsecase(orders repo.OrderRepository, products repo.ProductRepository, users repo.UserRepository) *DashboardUsecase {
	return &DashboardUsecase{orders: orders, products: products, users: users, now: time.Now}
}

// 3つの集計を並行に取る
func (u *DashboardUsecase) Overview(ctx context.Context) (DashboardOverview, error) {
	var out DashboardOverview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := u.orders.Totals(gctx)
		if err != nil {
			return fmt.Errorf("order totals: %w", err)
		}
		out.Revenue, out.Sales = t.Revenue, t.Sales
		return nil
	})
	g.Go(func() error {
		n, err := u.products.Count(gctx)
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		out.Products = n
		return nil
	})
	g.Go(func() error {
		n, err := u.users.Count(gctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		out.Users = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return DashboardOverview{}, err
	}
	return out, nil
}

func (u *DashboardUsecase) RecentSales(ctx context.Context) ([]RecentSale, error) {
	orders, err := u.orders.ListRecent(ctx, recentSalesLimit)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}

	out := make([]RecentSale, 0, len(orders))
	for _, o := range orders {
		s := RecentSale{OrderID: o.ID, Amount: o.Amount, CreatedAt: o.CreatedAt}
		if o.User != nil {
			s.FirstName = o.User.FirstName
			s.Email = o.User.Email
			s.ProfileImage = o.User.ProfileImage
		}
		out = append(out, s)
	}
	return out, nil
}

// 直近7日の売上を日付ごとに合算。古い日付から並ぶ。
func (u *DashboardUsecase) RevenueChart(ctx context.Context) ([]ChartPoint, error) {
	since := u.now().AddDate(0, 0, -chartDays)
	orders, err := u.orders.ListSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("orders since: %w", err)
	}

	out := make([]ChartPoint, 0, chartDays+1)
	idx := map[string]int{}
	for _, o := range orders {
		d := o.CreatedAt.Format(chartDateLayout)
		i, ok := idx[d]
		if !ok {
			i = len(out)
			idx[d] = i
			out = append(out, ChartPoint{Date: d})
		}
		out[i].Revenue += float64(o.Amount) / 100
	}
	return out, nil
}
