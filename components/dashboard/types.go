package dashboard

import (
	"context"
	"errors"
	"strings"
)

// Role identifies the supply-chain persona whose KPIs are shown.
type Role string

const (
	RoleManufacturer Role = "Manufacturer"
	RoleWholesaler   Role = "Wholesaler"
	RoleRetailer     Role = "Retailer"
)

// ErrUnknownRole is returned when a role outside the closed enumeration is requested.
var ErrUnknownRole = errors.New("dashboard: unknown role")

// Roles returns the supported roles in display order.
func Roles() []Role {
	return []Role{RoleManufacturer, RoleWholesaler, RoleRetailer}
}

// Valid reports whether the role belongs to the enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleManufacturer, RoleWholesaler, RoleRetailer:
		return true
	default:
		return false
	}
}

// ParseRole matches a role name case-insensitively.
func ParseRole(value string) (Role, error) {
	value = strings.TrimSpace(value)
	for _, role := range Roles() {
		if strings.EqualFold(string(role), value) {
			return role, nil
		}
	}
	return "", ErrUnknownRole
}

// Tab selects the view rendered in the main content area.
type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabOrders    Tab = "orders"
	TabInventory Tab = "inventory"
	TabPayments  Tab = "payments"
	TabPartners  Tab = "partners"
	TabLogistics Tab = "logistics"
	TabAnalytics Tab = "analytics"
	TabReports   Tab = "reports"
)

// Tabs returns every tab in sidebar order.
func Tabs() []Tab {
	return []Tab{
		TabDashboard,
		TabOrders,
		TabInventory,
		TabPayments,
		TabPartners,
		TabLogistics,
		TabAnalytics,
		TabReports,
	}
}

// NormalizeTab maps arbitrary input onto a known tab. Unknown values fall back to the dashboard.
func NormalizeTab(value string) Tab {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, tab := range Tabs() {
		if string(tab) == value {
			return tab
		}
	}
	return TabDashboard
}

// KPICategory drives the icon and live-counter binding of a KPI card.
type KPICategory string

const (
	KPICategoryVolume  KPICategory = "volume"
	KPICategoryRevenue KPICategory = "revenue"
	KPICategoryOrders  KPICategory = "orders"
	KPICategoryCredit  KPICategory = "credit"
)

// KPI is a labeled metric with a signed trend percentage.
type KPI struct {
	Label    string      `json:"label" yaml:"label"`
	Value    string      `json:"value" yaml:"value"`
	Trend    float64     `json:"trend" yaml:"trend"`
	Category KPICategory `json:"category" yaml:"category"`
	Color    string      `json:"color" yaml:"color"`
}

// OrderStatus tracks the fulfillment lifecycle.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderApproved   OrderStatus = "Approved"
	OrderPacked     OrderStatus = "Packed"
	OrderDispatched OrderStatus = "Dispatched"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists lifecycle stages in progression order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderApproved, OrderPacked, OrderDispatched, OrderDelivered, OrderCancelled}
}

// Channel distinguishes business and consumer orders.
type Channel string

const (
	ChannelB2B Channel = "B2B"
	ChannelB2C Channel = "B2C"
)

// Order is a partner purchase order.
type Order struct {
	ID      string      `json:"id" yaml:"id"`
	Partner string      `json:"partner" yaml:"partner"`
	Items   string      `json:"items" yaml:"items"`
	Amount  float64     `json:"amount" yaml:"amount"`
	Status  OrderStatus `json:"status" yaml:"status"`
	Channel Channel     `json:"channel" yaml:"channel"`
	Date    string      `json:"date" yaml:"date"`
	Region  string      `json:"region" yaml:"region"`
}

// StockStatus classifies a stock level.
type StockStatus string

const (
	StockLow    StockStatus = "Low"
	StockMedium StockStatus = "Medium"
	StockHigh   StockStatus = "High"
)

// InventoryItem is a SKU stocked at a location.
type InventoryItem struct {
	ID           string      `json:"id" yaml:"id"`
	SKU          string      `json:"sku" yaml:"sku"`
	Name         string      `json:"name" yaml:"name"`
	Stock        int         `json:"stock" yaml:"stock"`
	ReorderPoint int         `json:"reorder_point" yaml:"reorder_point"`
	Status       StockStatus `json:"status" yaml:"status"`
	Location     string      `json:"location" yaml:"location"`
}

// DerivedStatus classifies the stock level against the reorder point.
// Below the reorder point is Low, below twice the reorder point is Medium.
func (item InventoryItem) DerivedStatus() StockStatus {
	switch {
	case item.Stock < item.ReorderPoint:
		return StockLow
	case item.Stock < 2*item.ReorderPoint:
		return StockMedium
	default:
		return StockHigh
	}
}

// StatusMismatch reports whether the stored status disagrees with the derived one.
func (item InventoryItem) StatusMismatch() bool {
	return item.Status != item.DerivedStatus()
}

// BelowReorderPoint reports whether the item needs replenishment.
func (item InventoryItem) BelowReorderPoint() bool {
	return item.Stock < item.ReorderPoint
}

// SettlementStatus tracks invoice settlement.
type SettlementStatus string

const (
	SettlementPaid          SettlementStatus = "Paid"
	SettlementPending       SettlementStatus = "Pending"
	SettlementOverdue       SettlementStatus = "Overdue"
	SettlementPartiallyPaid SettlementStatus = "Partially Paid"
)

// SettlementStatuses lists settlement states in ledger order.
func SettlementStatuses() []SettlementStatus {
	return []SettlementStatus{SettlementPaid, SettlementPending, SettlementOverdue, SettlementPartiallyPaid}
}

// Payment is an invoice issued to a partner.
type Payment struct {
	ID          string           `json:"id" yaml:"id"`
	Partner     string           `json:"partner" yaml:"partner"`
	Amount      float64          `json:"amount" yaml:"amount"`
	Due         string           `json:"due" yaml:"due"`
	Status      SettlementStatus `json:"status" yaml:"status"`
	CreditLimit float64          `json:"credit_limit" yaml:"credit_limit"`
}

// Partner is a trading partner in the distribution network.
type Partner struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Type        Role    `json:"type" yaml:"type"`
	Rating      float64 `json:"rating" yaml:"rating"`
	Region      string  `json:"region" yaml:"region"`
	Badge       string  `json:"badge,omitempty" yaml:"badge,omitempty"`
	Reliability int     `json:"reliability" yaml:"reliability"`
}

// Severity classifies an alert.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

// Priority ranks an alert.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Alert is an operational notification shown in the drawer.
type Alert struct {
	ID        string   `json:"id" yaml:"id"`
	Severity  Severity `json:"severity" yaml:"severity"`
	Title     string   `json:"title" yaml:"title"`
	Message   string   `json:"message" yaml:"message"`
	Timestamp string   `json:"timestamp" yaml:"timestamp"`
	Priority  Priority `json:"priority" yaml:"priority"`
}

// TrendPoint is one day of the weekly order trend.
type TrendPoint struct {
	Date    string  `json:"date" yaml:"date"`
	Orders  int     `json:"orders" yaml:"orders"`
	Revenue float64 `json:"revenue" yaml:"revenue"`
}

// DistrictStat captures regional demand.
type DistrictStat struct {
	Name    string `json:"name" yaml:"name"`
	Demand  int    `json:"demand" yaml:"demand"`
	Revenue string `json:"revenue" yaml:"revenue"`
	Orders  int    `json:"orders" yaml:"orders"`
}

// ProviderRegistry stores widget definitions/providers discoverable via hooks or manifests.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (WidgetDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions() []WidgetDefinition
}

// RefreshHook notifies transports (REST/WebSocket) about widget changes.
type RefreshHook interface {
	WidgetUpdated(ctx context.Context, event WidgetEvent) error
}

// WidgetDefinition describes a widget and the schema of its configuration.
type WidgetDefinition struct {
	Code        string
	Name        string
	Description string
	Schema      map[string]any
	Category    string
}

// WidgetInstance is a widget placed in a tab layout.
type WidgetInstance struct {
	ID            string         `json:"id"`
	DefinitionID  string         `json:"definition"`
	AreaCode      string         `json:"area"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// ViewerContext identifies who is looking at the dashboard.
type ViewerContext struct {
	UserID string
	Locale string
}

// WidgetEvent describes changes that transports might care about.
type WidgetEvent struct {
	AreaCode string         `json:"area,omitempty"`
	Instance WidgetInstance `json:"instance"`
	Reason   string         `json:"reason"`
	Viewer   string         `json:"viewer,omitempty"`
	Payload  map[string]any `json:"payload,omitempty"`
}
