package dashboard

import "strings"

// NavItem is a sidebar entry.
type NavItem struct {
	Tab    Tab    `json:"tab"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

var navLabels = map[Tab]struct {
	label string
	icon  string
}{
	TabDashboard: {"Command Center", "layout-dashboard"},
	TabOrders:    {"Order Hub", "shopping-cart"},
	TabInventory: {"Stock Matrix", "package"},
	TabPayments:  {"Settlements", "credit-card"},
	TabPartners:  {"Partner Hub", "users"},
	TabLogistics: {"Fleet Sync", "truck"},
	TabAnalytics: {"Intelligence", "bar-chart-3"},
	TabReports:   {"Ledger Audit", "file-text"},
}

// Navigation returns the sidebar entries in display order with the active tab flagged.
func Navigation(active Tab) []NavItem {
	active = NormalizeTab(string(active))
	items := make([]NavItem, 0, len(Tabs()))
	for _, tab := range Tabs() {
		meta := navLabels[tab]
		items = append(items, NavItem{
			Tab:    tab,
			Label:  meta.label,
			Icon:   meta.icon,
			Active: tab == active,
		})
	}
	return items
}

// TabLabel returns the sidebar label for a tab.
func TabLabel(tab Tab) string {
	return navLabels[NormalizeTab(string(tab))].label
}

// Heading is the two-part page title shown above the view.
type Heading struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
}

// HeadingFor builds the page title: "Command CENTER" on the dashboard, "<TAB> HUB" elsewhere.
func HeadingFor(tab Tab) Heading {
	tab = NormalizeTab(string(tab))
	if tab == TabDashboard {
		return Heading{Primary: "Command", Accent: "CENTER"}
	}
	return Heading{Primary: strings.ToUpper(string(tab)), Accent: "HUB"}
}

// QuickAction is a dashboard shortcut button.
type QuickAction struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// QuickActions returns the operator shortcuts shown on the dashboard.
func QuickActions() []QuickAction {
	return []QuickAction{
		{Label: "Issue Invoice", Icon: "file-plus", Color: "emerald"},
		{Label: "Fleet Status", Icon: "truck", Color: "blue"},
		{Label: "Partner Ledger", Icon: "users", Color: "amber"},
		{Label: "System Backup", Icon: "database", Color: "zinc"},
	}
}

// BadgeStyle maps a lifecycle or settlement status to a display color.
func BadgeStyle(status string) string {
	switch status {
	case string(OrderDelivered), string(SettlementPaid), string(StockHigh):
		return "emerald"
	case string(OrderDispatched), string(OrderPacked):
		return "sky"
	case string(OrderApproved), string(StockMedium), string(SettlementPartiallyPaid):
		return "amber"
	case string(OrderCancelled), string(SettlementOverdue), string(StockLow):
		return "rose"
	default:
		return "zinc"
	}
}

// DemandTier buckets a demand score for heatmap coloring.
type DemandTier struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DemandTierFor classifies a 0-100 demand score.
func DemandTierFor(demand int) DemandTier {
	switch {
	case demand > 80:
		return DemandTier{Name: "Full Neon", Color: "#00f2ff"}
	case demand > 60:
		return DemandTier{Name: "Deep Sky", Color: "#00bfff"}
	case demand > 40:
		return DemandTier{Name: "Primary Blue", Color: "#0077ff"}
	default:
		return DemandTier{Name: "Dormant", Color: "#1a1a1a"}
	}
}
