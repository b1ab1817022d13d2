package dashboard

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFixturesRoundTripThroughDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeFixtures(&buf, DocumentFromFixtures(DefaultFixtures())))

	doc, err := DecodeFixtures(&buf)
	require.NoError(t, err)

	store := doc.Fixtures()
	for _, role := range Roles() {
		assert.Equal(t, DefaultFixtures().KPIs(role), store.KPIs(role), "role %s", role)
	}
	assert.Len(t, store.Orders(), 5)
	assert.Len(t, store.Inventory(), 5)
	assert.Len(t, store.Districts(), 6)
}

func TestDecodeFixturesRejectsUnknownFields(t *testing.T) {
	const payload = `
version: "1"
widgets: []
`
	_, err := DecodeFixtures(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widgets")
}

func TestDecodeFixturesEmptyDocument(t *testing.T) {
	_, err := DecodeFixtures(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestValidateReportsEveryViolation(t *testing.T) {
	doc := DocumentFromFixtures(DefaultFixtures())
	doc.KPIs[RoleRetailer] = doc.KPIs[RoleRetailer][:3]
	doc.Orders = append(doc.Orders, doc.Orders[0])
	doc.Inventory[0].Stock = -1
	doc.Partners[0].Rating = 7
	doc.Districts[0].Demand = 120

	err := doc.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "role Retailer defines 3 kpis")
	assert.Contains(t, msg, "duplicate order ORD-1001")
	assert.Contains(t, msg, "negative stock")
	assert.Contains(t, msg, "rating 7.0 outside 0-5")
	assert.Contains(t, msg, "demand 120 outside 0-100")
}

func TestValidateDistrictsAndAlertPriority(t *testing.T) {
	doc := DocumentFromFixtures(DefaultFixtures())
	doc.Districts = append(doc.Districts, DistrictStat{Name: "Pune", Demand: 10})
	doc.Districts[1].Name = ""
	doc.Alerts[0].Priority = "Urgent"

	err := doc.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "district at index 1 is missing an id")
	assert.Contains(t, msg, `alert a1 has unknown priority "Urgent"`)
	assert.NotContains(t, msg, "duplicate district Pune")

	doc = DocumentFromFixtures(DefaultFixtures())
	doc.Districts = append(doc.Districts, DistrictStat{Name: "Mumbai", Demand: 10})
	err = doc.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate district Mumbai")
}

func TestValidateRejectsUnknownVersion(t *testing.T) {
	doc := DocumentFromFixtures(DefaultFixtures())
	doc.Version = "2"
	require.Error(t, doc.Validate())
}

func TestDecodeFixturesDefaultsChannel(t *testing.T) {
	doc := DocumentFromFixtures(DefaultFixtures())
	doc.Orders[0].Channel = ""
	var buf bytes.Buffer
	require.NoError(t, EncodeFixtures(&buf, doc))

	decoded, err := DecodeFixtures(&buf)
	require.NoError(t, err)
	assert.Equal(t, ChannelB2B, decoded.Orders[0].Channel)
}

func TestReadFixturesFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	var buf bytes.Buffer
	require.NoError(t, EncodeFixtures(&buf, DocumentFromFixtures(DefaultFixtures())))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	doc, err := ReadFixtures(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)
	assert.Equal(t, ManifestVersion, doc.Version)

	_, err = ReadFixtures(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestEncodeFixturesNilDocument(t *testing.T) {
	require.Error(t, EncodeFixtures(&bytes.Buffer{}, nil))
}
