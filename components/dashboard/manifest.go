package dashboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current fixture document version for tooling.
	ManifestVersion = manifestVersionV1

	// KPIsPerRole is the number of KPI cards every role must define.
	KPIsPerRole = 4
)

// FixtureDocument models a YAML document describing the full fixture data set.
type FixtureDocument struct {
	Version   string          `yaml:"version"`
	Name      string          `yaml:"name,omitempty"`
	KPIs      map[Role][]KPI  `yaml:"kpis"`
	Orders    []Order         `yaml:"orders"`
	Inventory []InventoryItem `yaml:"inventory"`
	Payments  []Payment       `yaml:"payments"`
	Partners  []Partner       `yaml:"partners"`
	Alerts    []Alert         `yaml:"alerts"`
	Trends    []TrendPoint    `yaml:"trends"`
	Districts []DistrictStat  `yaml:"districts"`
	Source    string          `yaml:"-"`
}

// ReadFixtures loads a fixture document from disk.
func ReadFixtures(path string) (*FixtureDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open fixtures %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeFixtures(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode fixtures %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeFixtures reads and validates a fixture document from any reader.
func DecodeFixtures(r io.Reader) (*FixtureDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc FixtureDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dashboard: fixture document is empty")
		}
		return nil, fmt.Errorf("dashboard: parse fixtures: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeFixtures writes the document as YAML.
func EncodeFixtures(w io.Writer, doc *FixtureDocument) error {
	if doc == nil {
		return fmt.Errorf("dashboard: fixture document is nil")
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("dashboard: encode fixtures: %w", err)
	}
	return encoder.Close()
}

// DocumentFromFixtures snapshots a store into a document.
func DocumentFromFixtures(store FixtureStore) *FixtureDocument {
	doc := &FixtureDocument{
		Version:   manifestVersionV1,
		KPIs:      make(map[Role][]KPI, len(Roles())),
		Orders:    store.Orders(),
		Inventory: store.Inventory(),
		Payments:  store.Payments(),
		Partners:  store.Partners(),
		Alerts:    store.Alerts(),
		Trends:    store.Trends(),
		Districts: store.Districts(),
	}
	for _, role := range Roles() {
		doc.KPIs[role] = store.KPIs(role)
	}
	return doc
}

// Fixtures converts the document into a store.
func (doc *FixtureDocument) Fixtures() *Fixtures {
	kpis := make(map[Role][]KPI, len(doc.KPIs))
	for role, set := range doc.KPIs {
		kpis[role] = cloneSlice(set)
	}
	return &Fixtures{
		KPISets:   kpis,
		OrderList: cloneSlice(doc.Orders),
		Stock:     cloneSlice(doc.Inventory),
		Invoices:  cloneSlice(doc.Payments),
		Network:   cloneSlice(doc.Partners),
		AlertList: cloneSlice(doc.Alerts),
		Trend:     cloneSlice(doc.Trends),
		Regions:   cloneSlice(doc.Districts),
	}
}

// Validate ensures the document satisfies the fixture invariants. All
// violations are reported together.
func (doc *FixtureDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("dashboard: unsupported fixture version %q", doc.Version)
	}
	var errs []error
	for _, role := range Roles() {
		if got := len(doc.KPIs[role]); got != KPIsPerRole {
			errs = append(errs, fmt.Errorf("dashboard: role %s defines %d kpis, want %d", role, got, KPIsPerRole))
		}
	}
	for role := range doc.KPIs {
		if !role.Valid() {
			errs = append(errs, fmt.Errorf("dashboard: kpis declared for unknown role %q", role))
		}
	}

	orders := newIDSet("order")
	for idx, order := range doc.Orders {
		errs = append(errs, orders.add(idx, order.ID))
		if !validOrderStatus(order.Status) {
			errs = append(errs, fmt.Errorf("dashboard: order %s has unknown status %q", order.ID, order.Status))
		}
		if order.Channel != ChannelB2B && order.Channel != ChannelB2C {
			errs = append(errs, fmt.Errorf("dashboard: order %s has unknown channel %q", order.ID, order.Channel))
		}
	}

	items := newIDSet("inventory item")
	skus := newIDSet("sku")
	for idx, item := range doc.Inventory {
		errs = append(errs, items.add(idx, item.ID), skus.add(idx, item.SKU))
		switch item.Status {
		case StockLow, StockMedium, StockHigh:
		default:
			errs = append(errs, fmt.Errorf("dashboard: inventory item %s has unknown status %q", item.ID, item.Status))
		}
		if item.Stock < 0 || item.ReorderPoint < 0 {
			errs = append(errs, fmt.Errorf("dashboard: inventory item %s has negative stock figures", item.ID))
		}
	}

	payments := newIDSet("payment")
	for idx, payment := range doc.Payments {
		errs = append(errs, payments.add(idx, payment.ID))
		if !validSettlementStatus(payment.Status) {
			errs = append(errs, fmt.Errorf("dashboard: payment %s has unknown status %q", payment.ID, payment.Status))
		}
	}

	partners := newIDSet("partner")
	for idx, partner := range doc.Partners {
		errs = append(errs, partners.add(idx, partner.ID))
		if !partner.Type.Valid() {
			errs = append(errs, fmt.Errorf("dashboard: partner %s has unknown type %q", partner.ID, partner.Type))
		}
		if partner.Rating < 0 || partner.Rating > 5 {
			errs = append(errs, fmt.Errorf("dashboard: partner %s rating %.1f outside 0-5", partner.ID, partner.Rating))
		}
		if partner.Reliability < 0 || partner.Reliability > 100 {
			errs = append(errs, fmt.Errorf("dashboard: partner %s reliability %d outside 0-100", partner.ID, partner.Reliability))
		}
	}

	alerts := newIDSet("alert")
	for idx, alert := range doc.Alerts {
		errs = append(errs, alerts.add(idx, alert.ID))
		switch alert.Severity {
		case SeverityError, SeverityWarning, SeverityInfo, SeveritySuccess:
		default:
			errs = append(errs, fmt.Errorf("dashboard: alert %s has unknown severity %q", alert.ID, alert.Severity))
		}
		switch alert.Priority {
		case PriorityHigh, PriorityMedium, PriorityLow:
		default:
			errs = append(errs, fmt.Errorf("dashboard: alert %s has unknown priority %q", alert.ID, alert.Priority))
		}
	}

	districts := newIDSet("district")
	for idx, district := range doc.Districts {
		errs = append(errs, districts.add(idx, district.Name))
		if district.Demand < 0 || district.Demand > 100 {
			errs = append(errs, fmt.Errorf("dashboard: district %s demand %d outside 0-100", district.Name, district.Demand))
		}
	}
	return errors.Join(errs...)
}

func (doc *FixtureDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	for i := range doc.Orders {
		if doc.Orders[i].Channel == "" {
			doc.Orders[i].Channel = ChannelB2B
		}
	}
}

type idSet struct {
	kind string
	seen map[string]struct{}
}

func newIDSet(kind string) *idSet {
	return &idSet{kind: kind, seen: map[string]struct{}{}}
}

func (s *idSet) add(idx int, id string) error {
	if id == "" {
		return fmt.Errorf("dashboard: %s at index %d is missing an id", s.kind, idx)
	}
	if _, exists := s.seen[id]; exists {
		return fmt.Errorf("dashboard: duplicate %s %s", s.kind, id)
	}
	s.seen[id] = struct{}{}
	return nil
}

func validOrderStatus(status OrderStatus) bool {
	for _, candidate := range OrderStatuses() {
		if candidate == status {
			return true
		}
	}
	return false
}

func validSettlementStatus(status SettlementStatus) bool {
	for _, candidate := range SettlementStatuses() {
		if candidate == status {
			return true
		}
	}
	return false
}
