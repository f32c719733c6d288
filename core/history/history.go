// ABOUTME: Purchase history and price statistics derived from a user's snapshot
// ABOUTME: Pure functions over domain types; callers load the snapshot first

package history

import (
	"fmt"
	"math"
	"sort"

	"shoplist-api/core/domain"
)

// MonthGroup holds the concluded lists of one calendar month
type MonthGroup struct {
	Month  string         `json:"month"`
	Total  float64        `json:"total"`
	Listas []domain.Lista `json:"listas"`
}

// PurchaseHistory summarizes concluded lists, most recent first
type PurchaseHistory struct {
	Listas       []domain.Lista `json:"listas"`
	TotalCompras int            `json:"totalCompras"`
	TotalGasto   float64        `json:"totalGasto"`
	MediaGasto   float64        `json:"mediaGasto"`
	PorMes       []MonthGroup   `json:"porMes"`
}

// BuildHistory collects concluded lists sorted by conclusion date, newest first.
// Months are labelled M/YYYY in UTC and keep the order of their first list.
func BuildHistory(listas []domain.Lista) PurchaseHistory {
	concluded := make([]domain.Lista, 0, len(listas))
	for _, l := range listas {
		if l.Concluida {
			concluded = append(concluded, l)
		}
	}

	sort.SliceStable(concluded, func(i, j int) bool {
		return conclusionUnix(concluded[i]) > conclusionUnix(concluded[j])
	})

	h := PurchaseHistory{
		Listas:       concluded,
		TotalCompras: len(concluded),
		PorMes:       []MonthGroup{},
	}

	months := map[string]int{}
	for _, l := range concluded {
		spent := 0.0
		if l.TotalGasto != nil {
			spent = *l.TotalGasto
		}
		h.TotalGasto += spent

		if l.DataConclusao == nil {
			continue
		}
		d := l.DataConclusao.UTC()
		label := fmt.Sprintf("%d/%d", int(d.Month()), d.Year())

		idx, ok := months[label]
		if !ok {
			idx = len(h.PorMes)
			months[label] = idx
			h.PorMes = append(h.PorMes, MonthGroup{Month: label, Listas: []domain.Lista{}})
		}
		h.PorMes[idx].Listas = append(h.PorMes[idx].Listas, l)
		h.PorMes[idx].Total += spent
	}

	if h.TotalCompras > 0 {
		h.MediaGasto = h.TotalGasto / float64(h.TotalCompras)
	}

	return h
}

func conclusionUnix(l domain.Lista) int64 {
	if l.DataConclusao == nil {
		return 0
	}
	return l.DataConclusao.UnixMilli()
}

// PriceTrend compares the last two recorded prices
type PriceTrend struct {
	Diff     float64 `json:"diff"`
	Percent  float64 `json:"percent"`
	Increase bool    `json:"increase"`
}

// PriceStats summarizes a product's price history
type PriceStats struct {
	ProdutoID string      `json:"produtoId"`
	Count     int         `json:"count"`
	Latest    float64     `json:"latest"`
	Average   float64     `json:"average"`
	Min       float64     `json:"min"`
	Max       float64     `json:"max"`
	Trend     *PriceTrend `json:"trend,omitempty"`
}

// ComputePriceStats summarizes p's prices. A product without prices reports zeros;
// the trend needs at least two prices.
func ComputePriceStats(p *domain.Produto) PriceStats {
	stats := PriceStats{ProdutoID: p.ID, Count: len(p.Precos)}
	if stats.Count == 0 {
		return stats
	}

	stats.Min = math.Inf(1)
	stats.Max = math.Inf(-1)
	sum := 0.0
	for _, preco := range p.Precos {
		sum += preco.Valor
		stats.Min = math.Min(stats.Min, preco.Valor)
		stats.Max = math.Max(stats.Max, preco.Valor)
	}
	stats.Average = sum / float64(stats.Count)
	stats.Latest, _ = p.LatestPrice()

	if stats.Count >= 2 {
		previous := p.Precos[stats.Count-2].Valor
		diff := stats.Latest - previous
		trend := &PriceTrend{Diff: diff, Increase: diff > 0}
		if previous != 0 {
			trend.Percent = math.Round(diff/previous*1000) / 10
		}
		stats.Trend = trend
	}

	return stats
}
