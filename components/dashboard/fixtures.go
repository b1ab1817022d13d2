package dashboard

// FixtureStore exposes the read-only datasets behind every view. Accessors are
// total and return copies, so callers may mutate results freely.
type FixtureStore interface {
	KPIs(role Role) []KPI
	Orders() []Order
	Inventory() []InventoryItem
	Payments() []Payment
	Partners() []Partner
	Alerts() []Alert
	Trends() []TrendPoint
	Districts() []DistrictStat
}

// Fixtures is the in-memory data set loaded once at startup.
type Fixtures struct {
	KPISets   map[Role][]KPI
	OrderList []Order
	Stock     []InventoryItem
	Invoices  []Payment
	Network   []Partner
	AlertList []Alert
	Trend     []TrendPoint
	Regions   []DistrictStat
}

var _ FixtureStore = (*Fixtures)(nil)

// KPIs returns the KPI cards for a role. Unknown roles yield an empty set.
func (f *Fixtures) KPIs(role Role) []KPI {
	if f == nil {
		return nil
	}
	return cloneSlice(f.KPISets[role])
}

func (f *Fixtures) Orders() []Order {
	if f == nil {
		return nil
	}
	return cloneSlice(f.OrderList)
}

func (f *Fixtures) Inventory() []InventoryItem {
	if f == nil {
		return nil
	}
	return cloneSlice(f.Stock)
}

func (f *Fixtures) Payments() []Payment {
	if f == nil {
		return nil
	}
	return cloneSlice(f.Invoices)
}

func (f *Fixtures) Partners() []Partner {
	if f == nil {
		return nil
	}
	return cloneSlice(f.Network)
}

func (f *Fixtures) Alerts() []Alert {
	if f == nil {
		return nil
	}
	return cloneSlice(f.AlertList)
}

func (f *Fixtures) Trends() []TrendPoint {
	if f == nil {
		return nil
	}
	return cloneSlice(f.Trend)
}

func (f *Fixtures) Districts() []DistrictStat {
	if f == nil {
		return nil
	}
	return cloneSlice(f.Regions)
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// DefaultFixtures returns the NIKS-AQUA demo data set.
func DefaultFixtures() *Fixtures {
	return &Fixtures{
		KPISets: map[Role][]KPI{
			RoleManufacturer: {
				{Label: "Total Production", Value: "1.2M L", Trend: 12.5, Category: KPICategoryVolume, Color: "teal"},
				{Label: "Factory Revenue", Value: "$450K", Trend: 8.2, Category: KPICategoryRevenue, Color: "emerald"},
				{Label: "Wholesale Orders", Value: "4,280", Trend: -2.4, Category: KPICategoryOrders, Color: "cyan"},
				{Label: "Unpaid Invoices", Value: "$82K", Trend: 5.1, Category: KPICategoryCredit, Color: "rose"},
			},
			RoleWholesaler: {
				{Label: "Current Inventory", Value: "450K L", Trend: -4.2, Category: KPICategoryVolume, Color: "teal"},
				{Label: "Weekly Revenue", Value: "$125K", Trend: 15.2, Category: KPICategoryRevenue, Color: "emerald"},
				{Label: "Retailer Requests", Value: "842", Trend: 10.5, Category: KPICategoryOrders, Color: "cyan"},
				{Label: "Accounts Payable", Value: "$45K", Trend: -1.2, Category: KPICategoryCredit, Color: "rose"},
			},
			RoleRetailer: {
				{Label: "Store Sales", Value: "12K L", Trend: 22.1, Category: KPICategoryVolume, Color: "teal"},
				{Label: "Daily Revenue", Value: "$4.2K", Trend: 18.2, Category: KPICategoryRevenue, Color: "emerald"},
				{Label: "Customer Orders", Value: "1,120", Trend: 34.5, Category: KPICategoryOrders, Color: "cyan"},
				{Label: "Inventory Value", Value: "$8.5K", Trend: 2.1, Category: KPICategoryCredit, Color: "rose"},
			},
		},
		OrderList: []Order{
			{ID: "ORD-1001", Partner: "Mumbai Logistics Co.", Items: "1200 x 20L Jars", Amount: 4800, Status: OrderDelivered, Channel: ChannelB2B, Date: "2024-03-01", Region: "Mumbai"},
			{ID: "ORD-1002", Partner: "Pune Retail Hub", Items: "500 x 1L Classic", Amount: 1250, Status: OrderDispatched, Channel: ChannelB2B, Date: "2024-03-02", Region: "Pune"},
			{ID: "ORD-1003", Partner: "Nagpur Fresh Mart", Items: "3000 x 500ml Classic", Amount: 3000, Status: OrderApproved, Channel: ChannelB2B, Date: "2024-03-02", Region: "Nagpur"},
			{ID: "ORD-1004", Partner: "Nashik Wholesale", Items: "100 x 5L Sparkling", Amount: 800, Status: OrderPending, Channel: ChannelB2B, Date: "2024-03-03", Region: "Nashik"},
			{ID: "ORD-1005", Partner: "City Mart Thane", Items: "200 x 2L Premium", Amount: 1100, Status: OrderPacked, Channel: ChannelB2B, Date: "2024-03-03", Region: "Thane"},
		},
		Stock: []InventoryItem{
			{ID: "1", SKU: "AQ-500-CL", Name: "AquaFlow 500ml Classic", Stock: 12000, ReorderPoint: 5000, Status: StockHigh, Location: "Main Plant A"},
			{ID: "2", SKU: "AQ-1000-CL", Name: "AquaFlow 1L Classic", Stock: 2400, ReorderPoint: 3000, Status: StockLow, Location: "Mumbai Hub"},
			{ID: "3", SKU: "AQ-2000-PR", Name: "AquaFlow 2L Premium", Stock: 5500, ReorderPoint: 4000, Status: StockMedium, Location: "Pune Wholesaler 1"},
			{ID: "4", SKU: "AQ-5000-SP", Name: "AquaFlow 5L Sparkling", Stock: 800, ReorderPoint: 1000, Status: StockLow, Location: "Nagpur Warehouse"},
			{ID: "5", SKU: "AQ-20-JAR", Name: "AquaFlow 20L Jar", Stock: 15000, ReorderPoint: 8000, Status: StockHigh, Location: "Thane Central"},
		},
		Invoices: []Payment{
			{ID: "INV-5001", Partner: "Mumbai Logistics Co.", Amount: 4800, Due: "2024-03-15", Status: SettlementPaid, CreditLimit: 25000},
			{ID: "INV-5002", Partner: "Pune Retail Hub", Amount: 1250, Due: "2024-03-10", Status: SettlementPartiallyPaid, CreditLimit: 10000},
			{ID: "INV-5003", Partner: "Nagpur Fresh Mart", Amount: 3000, Due: "2024-02-20", Status: SettlementOverdue, CreditLimit: 5000},
			{ID: "INV-5004", Partner: "Nashik Wholesale", Amount: 800, Due: "2024-03-20", Status: SettlementPending, CreditLimit: 15000},
		},
		Network: []Partner{
			{ID: "P-001", Name: "Mumbai Logistics Co.", Type: RoleWholesaler, Rating: 4.8, Region: "Mumbai", Badge: "Fast Delivery Partner", Reliability: 98},
			{ID: "P-002", Name: "Pune Retail Hub", Type: RoleRetailer, Rating: 4.2, Region: "Pune", Reliability: 85},
			{ID: "P-003", Name: "Nagpur Fresh Mart", Type: RoleRetailer, Rating: 3.9, Region: "Nagpur", Badge: "High Volume", Reliability: 72},
			{ID: "P-004", Name: "Nashik Wholesale", Type: RoleWholesaler, Rating: 4.9, Region: "Nashik", Badge: "Zero Complaint Zone", Reliability: 99},
		},
		AlertList: []Alert{
			{ID: "a1", Severity: SeverityError, Title: "Low Stock Alert", Message: "1L Classic SKU is below reorder point in Mumbai Warehouse.", Timestamp: "10m ago", Priority: PriorityHigh},
			{ID: "a2", Severity: SeverityWarning, Title: "Delayed Shipment", Message: "Route B-42 from Factory to Pune is delayed by 4 hours.", Timestamp: "45m ago", Priority: PriorityMedium},
			{ID: "a3", Severity: SeverityInfo, Title: "Payment Pending", Message: "Invoice #INV-5003 for Nagpur Mart is overdue by 12 days.", Timestamp: "2h ago", Priority: PriorityHigh},
		},
		Trend: []TrendPoint{
			{Date: "Mon", Orders: 400, Revenue: 2400},
			{Date: "Tue", Orders: 300, Revenue: 1398},
			{Date: "Wed", Orders: 200, Revenue: 9800},
			{Date: "Thu", Orders: 278, Revenue: 3908},
			{Date: "Fri", Orders: 189, Revenue: 4800},
			{Date: "Sat", Orders: 239, Revenue: 3800},
			{Date: "Sun", Orders: 349, Revenue: 4300},
		},
		Regions: []DistrictStat{
			{Name: "Mumbai", Demand: 85, Revenue: "1.2M", Orders: 12500},
			{Name: "Pune", Demand: 72, Revenue: "980K", Orders: 8400},
			{Name: "Nagpur", Demand: 45, Revenue: "450K", Orders: 3200},
			{Name: "Nashik", Demand: 60, Revenue: "620K", Orders: 4800},
			{Name: "Aurangabad", Demand: 38, Revenue: "310K", Orders: 2100},
			{Name: "Thane", Demand: 78, Revenue: "890K", Orders: 7600},
		},
	}
}
