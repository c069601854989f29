package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/teran1416/InventarioApp/internal/models"
)

// DailyLowStockKey is the Redis list collecting low-stock alerts until the next digest.
const DailyLowStockKey = "inventory:lowstock:daily"

// Notifier is told whenever a stock adjustment leaves a product at or below its threshold.
type Notifier interface {
	NotifyLowStock(ctx context.Context, p models.Product) error
}

type NopNotifier struct{}

func (NopNotifier) NotifyLowStock(context.Context, models.Product) error { return nil }

type Entry struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	Quantity  int       `json:"quantity"`
	Threshold int       `json:"threshold"`
	Time      time.Time `json:"time"`
}

func NewEntry(p models.Product, at time.Time) Entry {
	return Entry{
		ProductID: p.ID,
		Name:      p.Name,
		Owner:     p.Owner,
		Quantity:  p.Quantity,
		Threshold: p.MinStockThreshold,
		Time:      at,
	}
}

type RedisNotifier struct {
	rdb *redis.Client
	log *logrus.Logger
}

func NewRedisNotifier(rdb *redis.Client, log *logrus.Logger) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, log: log}
}

func (n *RedisNotifier) NotifyLowStock(ctx context.Context, p models.Product) error {
	data, err := json.Marshal(NewEntry(p, time.Now().UTC()))
	if err != nil {
		return err
	}
	if err := n.rdb.RPush(ctx, DailyLowStockKey, data).Err(); err != nil {
		return fmt.Errorf("failed to push low-stock alert: %w", err)
	}
	return nil
}

// ProductCount is how many alerts one product raised in a digest window.
type ProductCount struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Owner     string `json:"owner"`
	Alerts    int    `json:"alerts"`
	Lowest    int    `json:"lowest_quantity"`
}

type Summary struct {
	Total    int            `json:"total"`
	Products []ProductCount `json:"products"`
}

// BuildSummary aggregates entries per product, most alerted first.
func BuildSummary(entries []Entry) Summary {
	byProduct := map[string]*ProductCount{}
	for _, e := range entries {
		pc, ok := byProduct[e.ProductID]
		if !ok {
			pc = &ProductCount{ProductID: e.ProductID, Name: e.Name, Owner: e.Owner, Lowest: e.Quantity}
			byProduct[e.ProductID] = pc
		}
		pc.Alerts++
		pc.Name = e.Name
		if e.Quantity < pc.Lowest {
			pc.Lowest = e.Quantity
		}
	}

	s := Summary{Total: len(entries), Products: make([]ProductCount, 0, len(byProduct))}
	for _, pc := range byProduct {
		s.Products = append(s.Products, *pc)
	}
	sort.Slice(s.Products, func(i, j int) bool {
		if s.Products[i].Alerts != s.Products[j].Alerts {
			return s.Products[i].Alerts > s.Products[j].Alerts
		}
		return s.Products[i].ProductID < s.Products[j].ProductID
	})
	return s
}

// Drain reads and clears the pending alerts. Undecodable items are skipped.
func (n *RedisNotifier) Drain(ctx context.Context) ([]Entry, error) {
	var lrange *redis.StringSliceCmd
	_, err := n.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, DailyLowStockKey, 0, -1)
		pipe.Del(ctx, DailyLowStockKey)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to drain low-stock alerts: %w", err)
	}

	items := lrange.Val()
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			n.log.WithError(err).Warn("skipping malformed low-stock alert")
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// StartDailySummary logs a digest of the collected alerts every interval until ctx is done.
func (n *RedisNotifier) StartDailySummary(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.sendSummary(ctx)
		}
	}
}

func (n *RedisNotifier) sendSummary(ctx context.Context) {
	entries, err := n.Drain(ctx)
	if err != nil {
		n.log.WithError(err).Error("low-stock digest failed")
		return
	}
	if len(entries) == 0 {
		return
	}

	s := BuildSummary(entries)
	n.log.WithFields(logrus.Fields{
		"total":    s.Total,
		"products": len(s.Products),
	}).Info("low-stock digest")
	for _, pc := range s.Products {
		n.log.WithFields(logrus.Fields{
			"product_id":      pc.ProductID,
			"name":            pc.Name,
			"owner":           pc.Owner,
			"alerts":          pc.Alerts,
			"lowest_quantity": pc.Lowest,
		}).Info("low-stock product")
	}
}
