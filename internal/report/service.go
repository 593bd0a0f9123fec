package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/toko-checkout/internal/money"
)

// DefaultTopN is the ranking size used by Summary.
const DefaultTopN = 5

// Summary is the report snapshot served over HTTP.
type Summary struct {
	Orders            int               `json:"orders"`
	TotalRevenue      string            `json:"totalRevenue"`
	TotalTax          string            `json:"totalTax"`
	TotalDiscount     string            `json:"totalDiscount"`
	RevenueByCategory map[string]string `json:"revenueByCategory"`
	TopProducts       []ProductQuantity `json:"topProducts"`
}

// Service provides cached access to the sales register. Cache keys embed the
// register version so a newly paid order is visible immediately.
type Service struct {
	Sales *Sales
	R     redis.UniversalClient
	TTL   time.Duration
	TopN  int
}

func cacheKey(parts ...any) string {
	formatted := make([]string, 0, len(parts))
	for _, part := range parts {
		formatted = append(formatted, fmt.Sprint(part))
	}
	return strings.Join(formatted, ":")
}

// Summary returns totals, revenue by category and the best sellers.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	if s == nil || s.Sales == nil {
		return Summary{}, fmt.Errorf("report service not configured")
	}
	topN := s.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	key := cacheKey("rep", "summary", s.Sales.Version(), topN)
	var cached Summary
	if s.load(ctx, key, &cached) {
		return cached, nil
	}
	byCategory, err := s.Sales.RevenueByCategory()
	if err != nil {
		return Summary{}, err
	}
	out := Summary{
		Orders:            s.Sales.Count(),
		TotalRevenue:      s.Sales.TotalRevenue().StringFixed(money.Places),
		TotalTax:          s.Sales.TotalTax().StringFixed(money.Places),
		TotalDiscount:     s.Sales.TotalDiscount().StringFixed(money.Places),
		RevenueByCategory: make(map[string]string, len(byCategory)),
		TopProducts:       s.Sales.TopProducts(topN),
	}
	for c, v := range byCategory {
		out.RevenueByCategory[string(c)] = v.StringFixed(money.Places)
	}
	s.store(ctx, key, out)
	return out, nil
}

// TopProducts returns the limit best sellers.
func (s *Service) TopProducts(ctx context.Context, limit int) ([]ProductQuantity, error) {
	if s == nil || s.Sales == nil {
		return nil, fmt.Errorf("report service not configured")
	}
	if limit <= 0 {
		limit = DefaultTopN
	}
	key := cacheKey("rep", "top", s.Sales.Version(), limit)
	var rows []ProductQuantity
	if s.load(ctx, key, &rows) {
		return rows, nil
	}
	rows = s.Sales.TopProducts(limit)
	s.store(ctx, key, rows)
	return rows, nil
}

func (s *Service) load(ctx context.Context, key string, dst any) bool {
	if s.R == nil || s.TTL <= 0 {
		return false
	}
	data, err := s.R.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func (s *Service) store(ctx context.Context, key string, value any) {
	if s.R == nil || s.TTL <= 0 {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = s.R.Set(ctx, key, data, s.TTL).Err()
}
