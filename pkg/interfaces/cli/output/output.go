// Package output renders cycle results as text, JSON, CSV files, or an
// HTML report.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stockpilot/engine/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format     string
	OutputDir  string
	Verbose    bool
	CycleTime  time.Duration
	InputFiles map[string]string
}

// Generate creates output in the specified format
func Generate(result *dto.CycleResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	case "html":
		return generateHTMLOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.CycleResult, config Config) error {
	fmt.Printf("Decision Cycle Summary\n")
	fmt.Printf("======================\n\n")

	fmt.Printf("Decisions: %d\n", len(result.Decisions))
	fmt.Printf("Transfer Orders: %d\n", len(result.TransferOrders))
	fmt.Printf("Purchase Orders: %d\n", len(result.PurchaseOrders))
	fmt.Printf("Batches: %d\n", len(result.Batches))
	fmt.Printf("Unfulfilled Demands: %d\n", len(result.Unfulfilled))
	fmt.Printf("Cycle Time: %v\n\n", config.CycleTime)

	if len(result.Alerts) > 0 {
		fmt.Printf("Alerts:\n")
		fmt.Printf("%-8s %-12s %-12s %s\n", "Severity", "Material", "Warehouse", "Action")
		fmt.Printf("%-8s %-12s %-12s %s\n", "--------", "------------", "------------", "------")
		for _, alert := range result.Alerts {
			fmt.Printf("%-8s %-12s %-12s %s\n",
				alert.Severity, alert.MaterialID, alert.WarehouseID, alert.RecommendedAction)
		}
		fmt.Println()
	}

	if len(result.TransferOrders) > 0 {
		fmt.Printf("Transfer Orders:\n")
		fmt.Printf("%-12s %-10s %-10s %10s %10s %8s\n",
			"Material", "From", "To", "Qty", "Cost", "Days")
		fmt.Printf("%-12s %-10s %-10s %10s %10s %8s\n",
			"------------", "----------", "----------", "----------", "----------", "--------")
		for _, order := range result.TransferOrders {
			fmt.Printf("%-12s %-10s %-10s %10.1f %10s %8d\n",
				order.MaterialID, order.SourceID, order.DestinationID,
				order.Quantity, order.TransportCost, order.EstimatedDays)
		}
		fmt.Println()
	}

	if len(result.PurchaseOrders) > 0 {
		fmt.Printf("Purchase Orders:\n")
		fmt.Printf("%-12s %-10s %-10s %10s %12s %8s\n",
			"Material", "Vendor", "To", "Qty", "Total", "Days")
		fmt.Printf("%-12s %-10s %-10s %10s %12s %8s\n",
			"------------", "----------", "----------", "----------", "------------", "--------")
		for _, order := range result.PurchaseOrders {
			fmt.Printf("%-12s %-10s %-10s %10.1f %12s %8d\n",
				order.MaterialID, order.VendorID, order.DestinationID,
				order.Quantity, order.TotalCost, order.EstimatedDays)
		}
		fmt.Println()
	}

	if len(result.Batches) > 0 {
		fmt.Printf("Batches:\n")
		for _, batch := range result.Batches {
			fmt.Printf("  [%s] %s -> %s: %.0f units, net %s (discount %s, freight %s)\n",
				batch.Kind, batch.PartyID, batch.DestinationID,
				batch.TotalUnits, batch.NetCost, batch.BulkDiscount, batch.FreightSavings)
		}
		fmt.Println()
	}

	if len(result.Unfulfilled) > 0 {
		fmt.Printf("Unfulfilled Demands:\n")
		for _, demand := range result.Unfulfilled {
			fmt.Printf("  %s at %s: %.1f\n",
				demand.MaterialID, demand.DestinationID, demand.Quantity)
		}
		fmt.Println()
	}

	fmt.Printf("Savings: expedite %s, holding %s/month (%d critical, %d overstocked)\n",
		result.Savings.ExpediteSavings, result.Savings.HoldingSavings,
		result.Savings.RedItemCount, result.Savings.OverstockItemCount)

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.CycleResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, "cycle_result.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Printf("JSON results saved to: %s\n", filename)
	}

	return nil
}

// generateCSVOutput creates CSV output files
func generateCSVOutput(result *dto.CycleResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	transfersFile := filepath.Join(config.OutputDir, "transfer_orders.csv")
	if err := writeTransfersCSV(result.TransferOrders, transfersFile); err != nil {
		return fmt.Errorf("failed to write transfer orders CSV: %w", err)
	}

	purchasesFile := filepath.Join(config.OutputDir, "purchase_orders.csv")
	if err := writePurchasesCSV(result.PurchaseOrders, purchasesFile); err != nil {
		return fmt.Errorf("failed to write purchase orders CSV: %w", err)
	}

	alertsFile := filepath.Join(config.OutputDir, "alerts.csv")
	if err := writeAlertsCSV(result.Alerts, alertsFile); err != nil {
		return fmt.Errorf("failed to write alerts CSV: %w", err)
	}

	if config.Verbose {
		fmt.Printf("CSV results saved to:\n")
		fmt.Printf("  Transfer Orders: %s\n", transfersFile)
		fmt.Printf("  Purchase Orders: %s\n", purchasesFile)
		fmt.Printf("  Alerts: %s\n", alertsFile)
	}

	return nil
}

func writeTransfersCSV(orders []dto.TransferOrder, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"id", "material_id", "source_id", "destination_id", "quantity", "distance_km", "transport_cost", "order_date", "expected_arrival", "estimated_days", "status"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, order := range orders {
		record := []string{
			order.ID,
			order.MaterialID,
			order.SourceID,
			order.DestinationID,
			fmt.Sprintf("%.2f", order.Quantity),
			fmt.Sprintf("%.1f", order.DistanceKm),
			order.TransportCost,
			order.OrderDate.Format("2006-01-02"),
			order.ExpectedArrival.Format("2006-01-02"),
			fmt.Sprintf("%d", order.EstimatedDays),
			order.Status,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writePurchasesCSV(orders []dto.PurchaseOrder, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"id", "material_id", "vendor_id", "destination_id", "quantity", "unit_price", "total_cost", "order_date", "expected_delivery", "estimated_days", "status"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, order := range orders {
		record := []string{
			order.ID,
			order.MaterialID,
			order.VendorID,
			order.DestinationID,
			fmt.Sprintf("%.2f", order.Quantity),
			order.UnitPrice,
			order.TotalCost,
			order.OrderDate.Format("2006-01-02"),
			order.ExpectedDelivery.Format("2006-01-02"),
			fmt.Sprintf("%d", order.EstimatedDays),
			order.Status,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeAlertsCSV(alerts []dto.Alert, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"severity", "material_id", "warehouse_id", "understock_ratio", "message", "recommended_action"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, alert := range alerts {
		record := []string{
			alert.Severity,
			alert.MaterialID,
			alert.WarehouseID,
			fmt.Sprintf("%.3f", alert.UnderstockRatio),
			alert.Message,
			alert.RecommendedAction,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}
