package output

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/stockpilot/engine/pkg/application/dto"
)

// reportTemplate renders the cycle report as a standalone HTML page.
// Severity classes map to the alert severities emitted by the engine.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Decision Cycle Report</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; color: #222; }
  h1 { font-size: 1.4rem; }
  h2 { font-size: 1.1rem; margin-top: 2rem; }
  table { border-collapse: collapse; width: 100%; margin-top: 0.5rem; }
  th, td { border: 1px solid #ddd; padding: 6px 10px; text-align: left; font-size: 0.9rem; }
  th { background: #f5f5f5; }
  .sev-RED { color: #fff; background: #c0392b; font-weight: bold; }
  .sev-AMBER { color: #222; background: #f39c12; font-weight: bold; }
  .sev-GREEN { color: #fff; background: #27ae60; }
  .summary { display: flex; gap: 2rem; margin-top: 1rem; }
  .summary div { background: #f5f5f5; padding: 0.8rem 1.2rem; border-radius: 6px; }
  .summary span { display: block; font-size: 1.3rem; font-weight: bold; }
  .muted { color: #777; font-size: 0.8rem; margin-top: 2rem; }
</style>
</head>
<body>
<h1>Decision Cycle Report</h1>

<div class="summary">
  <div><span>{{len .Decisions}}</span>Decisions</div>
  <div><span>{{len .TransferOrders}}</span>Transfers</div>
  <div><span>{{len .PurchaseOrders}}</span>Purchases</div>
  <div><span>{{len .Unfulfilled}}</span>Unfulfilled</div>
  <div><span>{{.Savings.ExpediteSavings}}</span>Expedite Savings</div>
  <div><span>{{.Savings.HoldingSavings}}</span>Holding Savings / month</div>
</div>

{{if .Alerts}}
<h2>Alerts</h2>
<table>
  <tr><th>Severity</th><th>Material</th><th>Warehouse</th><th>Message</th><th>Recommended Action</th></tr>
  {{range .Alerts}}
  <tr>
    <td class="sev-{{.Severity}}">{{.Severity}}</td>
    <td>{{.MaterialID}}</td>
    <td>{{.WarehouseID}}</td>
    <td>{{.Message}}</td>
    <td>{{.RecommendedAction}}</td>
  </tr>
  {{end}}
</table>
{{end}}

{{if .TransferOrders}}
<h2>Transfer Orders</h2>
<table>
  <tr><th>Material</th><th>From</th><th>To</th><th>Quantity</th><th>Distance (km)</th><th>Cost</th><th>ETA</th></tr>
  {{range .TransferOrders}}
  <tr>
    <td>{{.MaterialID}}</td>
    <td>{{.SourceID}}</td>
    <td>{{.DestinationID}}</td>
    <td>{{printf "%.1f" .Quantity}}</td>
    <td>{{printf "%.0f" .DistanceKm}}</td>
    <td>{{.TransportCost}}</td>
    <td>{{.ExpectedArrival.Format "2006-01-02"}}</td>
  </tr>
  {{end}}
</table>
{{end}}

{{if .PurchaseOrders}}
<h2>Purchase Orders</h2>
<table>
  <tr><th>Material</th><th>Vendor</th><th>To</th><th>Quantity</th><th>Total</th><th>Delivery</th></tr>
  {{range .PurchaseOrders}}
  <tr>
    <td>{{.MaterialID}}</td>
    <td>{{.VendorID}}</td>
    <td>{{.DestinationID}}</td>
    <td>{{printf "%.1f" .Quantity}}</td>
    <td>{{.TotalCost}}</td>
    <td>{{.ExpectedDelivery.Format "2006-01-02"}}</td>
  </tr>
  {{end}}
</table>
{{end}}

{{if .Batches}}
<h2>Consolidated Batches</h2>
<table>
  <tr><th>Kind</th><th>Party</th><th>To</th><th>Units</th><th>Net Cost</th><th>Bulk Discount</th><th>Freight Savings</th></tr>
  {{range .Batches}}
  <tr>
    <td>{{.Kind}}</td>
    <td>{{.PartyID}}</td>
    <td>{{.DestinationID}}</td>
    <td>{{printf "%.0f" .TotalUnits}}</td>
    <td>{{.NetCost}}</td>
    <td>{{.BulkDiscount}}</td>
    <td>{{.FreightSavings}}</td>
  </tr>
  {{end}}
</table>
{{end}}

{{if .Unfulfilled}}
<h2>Unfulfilled Demands</h2>
<table>
  <tr><th>Material</th><th>Destination</th><th>Quantity</th></tr>
  {{range .Unfulfilled}}
  <tr><td>{{.MaterialID}}</td><td>{{.DestinationID}}</td><td>{{printf "%.1f" .Quantity}}</td></tr>
  {{end}}
</table>
{{end}}

<p class="muted">Generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</p>
</body>
</html>
`

// generateHTMLOutput renders the cycle report to cycle_report.html
func generateHTMLOutput(result *dto.CycleResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for HTML format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "cycle_report.html")
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := tmpl.Execute(file, result); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if config.Verbose {
		fmt.Printf("HTML report saved to: %s at %s\n", filename, time.Now().Format(time.Kitchen))
	}

	return nil
}
