package dashboard

import (
	"context"
	"math"
	"strings"
)

const (
	networkSupplyLitres = 842400
	daysOfCover         = 14.2
	cycleReturnRate     = 0.42
	defaultSKUCapacity  = 15000
)

// DefaultProviders wires every built-in widget to the fixture store.
func DefaultProviders(fixtures FixtureStore, chartOpts ...EChartsProviderOption) map[string]Provider {
	return map[string]Provider{
		WidgetQuickActions:      ProviderFunc(quickActionsProvider),
		WidgetKPICards:          newKPIProvider(fixtures),
		WidgetSupplyTrend:       NewFixtureChartProvider(fixtures, TrendSeries, NewEChartsProvider("line", chartOpts...)),
		WidgetManufacturingCore: ProviderFunc(manufacturingCoreProvider),
		WidgetDemandHeatmap:     newDemandHeatmapProvider(fixtures, chartOpts...),
		WidgetFulfillmentStream: newFulfillmentStreamProvider(fixtures),
		WidgetOrdersTable:       newOrdersTableProvider(fixtures),
		WidgetInventorySummary:  newInventorySummaryProvider(fixtures),
		WidgetSKUMatrix:         newSKUMatrixProvider(fixtures),
		WidgetSettlements:       newSettlementsProvider(fixtures),
		WidgetPartnerDirectory:  newPartnerDirectoryProvider(fixtures),
		WidgetFleetStatus:       newFleetStatusProvider(fixtures),
		WidgetRegionVolume:      NewFixtureChartProvider(fixtures, DistrictSeries, NewEChartsProvider("bar", chartOpts...)),
		WidgetRevenueChart:      NewFixtureChartProvider(fixtures, TrendSeries, NewEChartsProvider("bar", chartOpts...)),
		WidgetDemandRanking:     newDemandRankingProvider(fixtures),
		WidgetLedgerSummary:     newLedgerSummaryProvider(fixtures),
		WidgetSettlementMix:     NewFixtureChartProvider(fixtures, SettlementSeries, NewEChartsProvider("pie", chartOpts...)),
		WidgetSyncBanner:        ProviderFunc(syncBannerProvider),
	}
}

func quickActionsProvider(context.Context, WidgetContext) (WidgetData, error) {
	actions := QuickActions()
	payload := make([]map[string]any, 0, len(actions))
	for _, action := range actions {
		payload = append(payload, map[string]any{
			"label": action.Label,
			"icon":  action.Icon,
			"color": action.Color,
		})
	}
	return WidgetData{"actions": payload}, nil
}

func newKPIProvider(fixtures FixtureStore) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		live := true
		if v, ok := meta.Instance.Configuration["live_revenue"].(bool); ok {
			live = v
		}
		format := FormatterFor(meta.Viewer.Locale)
		kpis := fixtures.KPIs(meta.State.Role)
		cards := make([]map[string]any, 0, len(kpis))
		for _, kpi := range kpis {
			display := kpi.Value
			if live && kpi.Category == KPICategoryRevenue {
				display = format.Currency(meta.Counters.Revenue)
			}
			cards = append(cards, map[string]any{
				"label":    kpi.Label,
				"value":    display,
				"trend":    kpi.Trend,
				"trend_up": kpi.Trend >= 0,
				"percent":  format.Percent(kpi.Trend),
				"category": string(kpi.Category),
				"color":    kpi.Color,
			})
		}
		return WidgetData{
			"role":  string(meta.State.Role),
			"cards": cards,
		}, nil
	})
}

func manufacturingCoreProvider(_ context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Instance.Configuration
	sterility := 99.99
	fleet := 88.0
	if cfg != nil {
		if v, ok := cfg["sterility"]; ok {
			sterility = float64Value(v)
		}
		if v, ok := cfg["fleet"]; ok {
			fleet = float64Value(v)
		}
	}
	return WidgetData{
		"reservoir":        FormatterFor(meta.Viewer.Locale).Count(meta.Counters.Production),
		"reservoir_litres": meta.Counters.Production,
		"sterility":        sterility,
		"sterility_label":  "SECURE",
		"fleet":            fleet,
		"fleet_label":      "ENGAGED",
	}, nil
}

func newDemandHeatmapProvider(fixtures FixtureStore, chartOpts ...EChartsProviderOption) Provider {
	chart := NewFixtureChartProvider(fixtures, DistrictSeries, NewEChartsProvider("heatmap", chartOpts...))
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		data, err := chart.Fetch(ctx, meta)
		if err != nil {
			return nil, err
		}
		districts := fixtures.Districts()
		tiles := make([]map[string]any, 0, len(districts))
		for _, district := range districts {
			tier := DemandTierFor(district.Demand)
			tiles = append(tiles, map[string]any{
				"name":    district.Name,
				"demand":  district.Demand,
				"revenue": district.Revenue,
				"orders":  FormatCount(int64(district.Orders)),
				"tier":    tier.Name,
				"color":   tier.Color,
			})
		}
		data["districts"] = tiles
		return data, nil
	})
}

func newFulfillmentStreamProvider(fixtures FixtureStore) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		limit := intValue(meta.Instance.Configuration["limit"], 5)
		orders := fixtures.Orders()
		if limit > 0 && len(orders) > limit {
			orders = orders[:limit]
		}
		return WidgetData{"items": orderRows(orders)}, nil
	})
}

func newOrdersTableProvider(fixtures FixtureStore) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		filter := OrderStatus(stringValue(meta.Instance.Configuration["status"], ""))
		orders := fixtures.Orders()
		if filter != "" {
			filtered := orders[:0]
			for _, order := range orders {
				if order.Status == filter {
					filtered = append(filtered, order)
				}
			}
			orders = filtered
		}
		var total float64
		for _, order := range orders {
			total += order.Amount
		}
		return WidgetData{
			"rows":  orderRows(orders),
			"count": len(orders),
			"total": FormatCurrency(total),
		}, nil
	})
}

func orderRows(orders []Order) []map[string]any {
	rows := make([]map[string]any, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, map[string]any{
			"id":      order.ID,
			"partner": order.Partner,
			"items":   order.Items,
			"amount":  FormatCurrency(order.Amount),
			"status":  string(order.Status),
			"badge":   BadgeStyle(string(order.Status)),
			"channel": string(order.Channel),
			"date":    order.Date,
			"region":  order.Region,
		})
	}
	return rows
}

func newInventorySummaryProvider(fixtures FixtureStore) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		critical := 0
		for _, item := range fixtures.Inventory() {
			if item.BelowReorderPoint() {
				critical++
			}
		}
		return WidgetData{
			"network_supply":  FormatLitres(networkSupplyLitres),
			"supply_label":    "NIKS Global Supply",
			"days_of_cover":   daysOfCover,
			"critical_points": critical,
			"return_rate":     cycleReturnRate,
		}, nil
	})
}

func newSKUMatrixProvider(fixtures FixtureStore) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		capacity := intValue(meta.Instance.Configuration["capacity"], defaultSKUCapacity)
		if capacity <= 0 {
			capacity = defaultSKUCapacity
		}
		items := fixtures.Inventory()
		rows := make([]map[string]any, 0, len(items))
		mismatches := 0
		for _, item := range items {
			if item.StatusMismatch() {
				mismatches++
			}
			rows = append(rows, map[string]any{
				"id":              item.ID,
				"sku":             item.SKU,
				"name":            item.Name,
				"stock":           FormatCount(int64(item.Stock)),
				"reorder_point":   FormatCount(int64(item.ReorderPoint)),
				"fill_percent":    FillPercent(item.Stock, capacity),
				"status":          string(item.Status),
				"badge":           BadgeStyle(string(item.Status)),
				"derived_status":  string(item.DerivedStatus()),
				"status_mismatch": item.StatusMismatch(),
				"location":        item.Location,
			})
		}
		return WidgetData{
			"rows":       rows,
			"mismatches": mismatches,
		}, nil
	})
}

// FillPercent is stock as a share of capacity, capped at 100.
func FillPercent(stock, capacity int) float64 {
	if capacity <= 0 || stock <= 0 {
		return 0
	}
	return math.Min(float64(stock)/float64(capacity)*100, 100)
}

func newSettlementsProvider(fixtures FixtureStore) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		payments := fixtures.Payments()
		rows := make([]map[string]any, 0, len(payments))
		var outstanding float64
		for _, payment := range payments {
			utilisation := 0.0
			if payment.CreditLimit > 0 {
				utilisation = math.Round(payment.Amount/payment.CreditLimit*1000) / 10
			}
			if payment.Status != SettlementPaid {
				outstanding += payment.Amount
			}
			rows = append(rows, map[string]any{
				"id":           payment.ID,
				"partner":      payment.Partner,
				"amount":       FormatCurrency(payment.Amount),
				"due":          payment.Due,
				"status":       string(payment.Status),
				"badge":        BadgeStyle(string(payment.Status)),
				"credit_limit": FormatCurrency(payment.CreditLimit),
				"utilisation":  utilisation,
			})
		}
		return WidgetData{
			"rows":        rows,
			"outstanding": FormatCurrency(outstanding),
		}, nil
	})
}

func newPartnerDirectoryProvider(fixtures FixtureStore) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		filter := Role(stringValue(meta.Instance.Configuration["type"], ""))
		partners := fixtures.Partners()
		rows := make([]map[string]any, 0, len(partners))
		for _, partner := range partners {
			if filter != "" && partner.Type != filter {
				continue
			}
			rows = append(rows, map[string]any{
				"id":          partner.ID,
				"name":        partner.Name,
				"type":        string(partner.Type),
				"rating":      partner.Rating,
				"region":      partner.Region,
				"badge":       partner.Badge,
				"reliability": partner.Reliability,
				"tier":        reliabilityTier(partner.Reliability),
			})
		}
		return WidgetData{"rows": rows}, nil
	})
}

func reliabilityTier(score int) string {
	switch {
	case score >= 95:
		return "Elite"
	case score >= 80:
		return "Trusted"
	default:
		return "Watch"
	}
}

func newFleetStatusProvider(fixtures FixtureStore) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		counts := map[OrderStatus]int{}
		for _, order := range fixtures.Orders() {
			counts[order.Status]++
		}
		stages := make([]map[string]any, 0, len(OrderStatuses()))
		inMotion := 0
		for _, status := range OrderStatuses() {
			if status == OrderCancelled {
				continue
			}
			if status == OrderPacked || status == OrderDispatched {
				inMotion += counts[status]
			}
			stages = append(stages, map[string]any{
				"status": string(status),
				"count":  counts[status],
				"badge":  BadgeStyle(string(status)),
			})
		}
		return WidgetData{
			"stages":    stages,
			"in_motion": inMotion,
		}, nil
	})
}

func newDemandRankingProvider(fixtures FixtureStore) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		limit := intValue(meta.Instance.Configuration["limit"], 5)
		districts := rankedDistricts(fixtures.Districts())
		if limit > 0 && len(districts) > limit {
			districts = districts[:limit]
		}
		rows := make([]map[string]any, 0, len(districts))
		for i, district := range districts {
			tier := DemandTierFor(district.Demand)
			rows = append(rows, map[string]any{
				"rank":    i + 1,
				"name":    district.Name,
				"demand":  district.Demand,
				"revenue": district.Revenue,
				"tier":    tier.Name,
				"color":   tier.Color,
			})
		}
		return WidgetData{"rows": rows}, nil
	})
}

func newLedgerSummaryProvider(fixtures FixtureStore) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		totals := settlementTotals(fixtures.Payments())
		entries := make([]map[string]any, 0, len(totals))
		for _, status := range SettlementStatuses() {
			entries = append(entries, map[string]any{
				"status": string(status),
				"total":  FormatCurrency(totals[status]),
				"badge":  BadgeStyle(string(status)),
			})
		}
		exports := make([]string, 0, len(Tabs())-1)
		for _, tab := range Tabs() {
			if tab == TabDashboard || tab == TabReports {
				continue
			}
			exports = append(exports, strings.ToLower(TabLabel(tab)))
		}
		return WidgetData{
			"entries": entries,
			"exports": exports,
		}, nil
	})
}

func syncBannerProvider(_ context.Context, meta WidgetContext) (WidgetData, error) {
	return WidgetData{
		"message": stringValue(meta.Instance.Configuration["message"], "Syncing..."),
	}, nil
}
