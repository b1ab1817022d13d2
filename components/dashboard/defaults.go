package dashboard

const (
	WidgetQuickActions      = "aqua.widget.quick_actions"
	WidgetKPICards          = "aqua.widget.kpi_cards"
	WidgetSupplyTrend       = "aqua.widget.supply_trend"
	WidgetManufacturingCore = "aqua.widget.manufacturing_core"
	WidgetDemandHeatmap     = "aqua.widget.demand_heatmap"
	WidgetFulfillmentStream = "aqua.widget.fulfillment_stream"
	WidgetOrdersTable       = "aqua.widget.orders_table"
	WidgetInventorySummary  = "aqua.widget.inventory_summary"
	WidgetSKUMatrix         = "aqua.widget.sku_matrix"
	WidgetSettlements       = "aqua.widget.settlements"
	WidgetPartnerDirectory  = "aqua.widget.partner_directory"
	WidgetFleetStatus       = "aqua.widget.fleet_status"
	WidgetRegionVolume      = "aqua.widget.region_volume"
	WidgetRevenueChart      = "aqua.widget.revenue_chart"
	WidgetDemandRanking     = "aqua.widget.demand_ranking"
	WidgetLedgerSummary     = "aqua.widget.ledger_summary"
	WidgetSettlementMix     = "aqua.widget.settlement_mix"
	WidgetSyncBanner        = "aqua.widget.sync_banner"
)

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Code:        WidgetQuickActions,
		Name:        "Quick Actions",
		Description: "Operator shortcuts",
		Category:    "actions",
		Schema:      objectSchema(nil),
	},
	{
		Code:        WidgetKPICards,
		Name:        "KPI Cards",
		Description: "Role-scoped key performance indicators",
		Category:    "stats",
		Schema: objectSchema(map[string]any{
			"live_revenue": map[string]any{"type": "boolean", "default": true},
		}),
	},
	{
		Code:        WidgetSupplyTrend,
		Name:        "Supply Dynamics",
		Description: "Weekly order volume",
		Category:    "charts",
		Schema:      chartConfigSchema("line"),
	},
	{
		Code:        WidgetManufacturingCore,
		Name:        "Manufacturing Core",
		Description: "Live production reservoir and plant health",
		Category:    "stats",
		Schema: objectSchema(map[string]any{
			"sterility": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"fleet":     map[string]any{"type": "number", "minimum": 0, "maximum": 100},
		}),
	},
	{
		Code:        WidgetDemandHeatmap,
		Name:        "Territory Demand",
		Description: "Regional demand intensity",
		Category:    "charts",
		Schema:      chartConfigSchema("heatmap"),
	},
	{
		Code:        WidgetFulfillmentStream,
		Name:        "Live Fulfillment Stream",
		Description: "Most recent orders with lifecycle badges",
		Category:    "activity",
		Schema:      limitSchema(),
	},
	{
		Code:        WidgetOrdersTable,
		Name:        "Order Hub",
		Description: "Partner purchase orders",
		Category:    "tables",
		Schema: objectSchema(map[string]any{
			"status": map[string]any{"type": "string", "enum": orderStatusEnum()},
		}),
	},
	{
		Code:        WidgetInventorySummary,
		Name:        "Stock Overview",
		Description: "Network stock, cover and returns",
		Category:    "stats",
		Schema:      objectSchema(nil),
	},
	{
		Code:        WidgetSKUMatrix,
		Name:        "Stock Matrix",
		Description: "Per-SKU stock against reorder points",
		Category:    "tables",
		Schema: objectSchema(map[string]any{
			"capacity": map[string]any{"type": "integer", "minimum": 1},
		}),
	},
	{
		Code:        WidgetSettlements,
		Name:        "Settlements",
		Description: "Invoices and credit utilisation",
		Category:    "tables",
		Schema:      objectSchema(nil),
	},
	{
		Code:        WidgetPartnerDirectory,
		Name:        "Partner Hub",
		Description: "Trading partners with ratings",
		Category:    "tables",
		Schema: objectSchema(map[string]any{
			"type": map[string]any{"type": "string", "enum": []string{string(RoleWholesaler), string(RoleRetailer), string(RoleManufacturer)}},
		}),
	},
	{
		Code:        WidgetFleetStatus,
		Name:        "Fleet Sync",
		Description: "Shipments by lifecycle stage",
		Category:    "stats",
		Schema:      objectSchema(nil),
	},
	{
		Code:        WidgetRegionVolume,
		Name:        "Regional Order Volume",
		Description: "Orders per region",
		Category:    "charts",
		Schema:      chartConfigSchema("bar"),
	},
	{
		Code:        WidgetRevenueChart,
		Name:        "Revenue Intelligence",
		Description: "Weekly revenue",
		Category:    "charts",
		Schema:      chartConfigSchema("bar"),
	},
	{
		Code:        WidgetDemandRanking,
		Name:        "Demand Ranking",
		Description: "Districts ranked by demand",
		Category:    "tables",
		Schema:      limitSchema(),
	},
	{
		Code:        WidgetLedgerSummary,
		Name:        "Ledger Audit",
		Description: "Settlement totals by status",
		Category:    "stats",
		Schema:      objectSchema(nil),
	},
	{
		Code:        WidgetSettlementMix,
		Name:        "Settlement Mix",
		Description: "Invoice value by settlement status",
		Category:    "charts",
		Schema:      chartConfigSchema("pie"),
	},
	{
		Code:        WidgetSyncBanner,
		Name:        "Sync Banner",
		Description: "Background synchronisation notice",
		Category:    "status",
		Schema: objectSchema(map[string]any{
			"message": map[string]any{"type": "string", "minLength": 1},
		}),
	},
}

func objectSchema(properties map[string]any) map[string]any {
	if properties == nil {
		properties = map[string]any{}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
}

func limitSchema() map[string]any {
	return objectSchema(map[string]any{
		"limit": map[string]any{"type": "integer", "minimum": 1, "maximum": 50, "default": 5},
	})
}

func chartConfigSchema(kind string) map[string]any {
	return objectSchema(map[string]any{
		"title":    map[string]any{"type": "string"},
		"subtitle": map[string]any{"type": "string"},
		"metric":   map[string]any{"type": "string", "enum": []string{"orders", "revenue", "demand"}},
		"kind":     map[string]any{"type": "string", "const": kind},
		"theme":    map[string]any{"type": "string"},
		"dynamic":  map[string]any{"type": "boolean"},
	})
}

func orderStatusEnum() []string {
	out := make([]string, 0, len(OrderStatuses()))
	for _, status := range OrderStatuses() {
		out = append(out, string(status))
	}
	return out
}

// DefaultWidgetDefinitions returns a copy of the built-in widget definitions.
func DefaultWidgetDefinitions() []WidgetDefinition {
	return cloneSlice(defaultWidgetDefinitions)
}

// layoutFor selects the widgets composing a tab. Unknown tabs get the dashboard layout.
func layoutFor(tab Tab) []WidgetInstance {
	switch tab {
	case TabOrders:
		return []WidgetInstance{
			widget(tab, WidgetOrdersTable, nil),
		}
	case TabInventory:
		return []WidgetInstance{
			widget(tab, WidgetInventorySummary, nil),
			widget(tab, WidgetSKUMatrix, map[string]any{"capacity": 15000}),
		}
	case TabPayments:
		return []WidgetInstance{
			widget(tab, WidgetSyncBanner, map[string]any{"message": "Financial Settlements Hub Syncing..."}),
			widget(tab, WidgetSettlements, nil),
		}
	case TabPartners:
		return []WidgetInstance{
			widget(tab, WidgetSyncBanner, map[string]any{"message": "Network Entity Cluster Loading..."}),
			widget(tab, WidgetPartnerDirectory, nil),
		}
	case TabLogistics:
		return []WidgetInstance{
			widget(tab, WidgetSyncBanner, map[string]any{"message": "Fleet Synchronization Active..."}),
			widget(tab, WidgetFleetStatus, nil),
			widget(tab, WidgetRegionVolume, map[string]any{"title": "Regional Order Volume", "metric": "orders", "kind": "bar"}),
		}
	case TabAnalytics:
		return []WidgetInstance{
			widget(tab, WidgetSyncBanner, map[string]any{"message": "Predictive Engine Calculating..."}),
			widget(tab, WidgetRevenueChart, map[string]any{"title": "Revenue Intelligence", "metric": "revenue", "kind": "bar"}),
			widget(tab, WidgetDemandRanking, map[string]any{"limit": 6}),
		}
	case TabReports:
		return []WidgetInstance{
			widget(tab, WidgetSyncBanner, map[string]any{"message": "Ledger Archives Syncing..."}),
			widget(tab, WidgetLedgerSummary, nil),
			widget(tab, WidgetSettlementMix, map[string]any{"title": "Settlement Mix", "metric": "revenue", "kind": "pie"}),
		}
	default:
		tab = TabDashboard
		return []WidgetInstance{
			widget(tab, WidgetQuickActions, nil),
			widget(tab, WidgetKPICards, map[string]any{"live_revenue": true}),
			widget(tab, WidgetSupplyTrend, map[string]any{"title": "Supply Dynamics", "subtitle": "Live consumption analytics", "metric": "orders", "kind": "line", "dynamic": true}),
			widget(tab, WidgetManufacturingCore, map[string]any{"sterility": 99.99, "fleet": 88}),
			widget(tab, WidgetDemandHeatmap, map[string]any{"title": "Territory Demand", "metric": "demand", "kind": "heatmap"}),
			widget(tab, WidgetFulfillmentStream, map[string]any{"limit": 5}),
		}
	}
}

func widget(tab Tab, code string, cfg map[string]any) WidgetInstance {
	return WidgetInstance{
		ID:            string(tab) + ":" + code,
		DefinitionID:  code,
		AreaCode:      string(tab),
		Configuration: cfg,
	}
}
