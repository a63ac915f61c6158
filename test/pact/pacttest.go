//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	// GatewayName is the order gateway, provider to the storefront and
	// consumer of the distributor.
	GatewayName     = "order-gateway"
	DistributorName = "tgf-order-engine"
	StorefrontName  = "storefront"

	StateIntakeAvailable  = "order intake available"
	StateDuplicatePO      = "po number PO-PACT-DUP already submitted"
	StateDistributorReady = "distributor accepts orders"
	StateKeyConfigured    = "distributor api key configured"
)

const (
	APIKey      = "pact-key"
	PONumber    = "PO-PACT-1"
	DuplicatePO = "PO-PACT-DUP"
	PartNumber  = "AAC17-22G3"
	OrderID     = "TGF-1001"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for a consumer/provider pair.
func PactFile(t testing.TB, consumer, provider string) string {
	t.Helper()
	return filepath.Join(PactDir(t), consumer+"-"+provider+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload is a complete order in the distributor's wire schema.
func ExampleOrderPayload(poNumber string) map[string]any {
	return map[string]any{
		"storeName":   "TheGunFirm",
		"address1":    "100 Main St",
		"address2":    "",
		"city":        "Austin",
		"state":       "TX",
		"zip":         "78701",
		"shipToStore": "N",
		"shipAccount": "",
		"shipFFL":     "1-59-000-00-0A-00000",
		"contactNum":  "0000000000",
		"posFlag":     "I",
		"poNumber":    poNumber,
		"email":       "orders@thegunfirm.com",
		"items":       []map[string]any{{"partNumber": PartNumber, "quantity": 1}},
		"fillOrKill":  1,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
