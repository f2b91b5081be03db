package csv

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadMaterials(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "materials.csv",
		"id,name,category,unit,unit_price,lead_time_days,shelf_life_days\n"+
			"MAT-CBL,11kV XLPE Cable,cable,m,250.50,7,0\n"+
			"MAT-TRF,100kVA Transformer,transformer,ea,150000,30,0\n")

	materials, err := NewLoader().LoadMaterials(path)
	if err != nil {
		t.Fatalf("LoadMaterials failed: %v", err)
	}
	if len(materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(materials))
	}
	if materials[0].ID != "MAT-CBL" || materials[0].Category != "cable" {
		t.Errorf("unexpected first material: %+v", materials[0])
	}
	if materials[0].UnitPrice.String() != "250.5" {
		t.Errorf("unit price = %s, want 250.5", materials[0].UnitPrice)
	}
	if materials[1].LeadTimeDays != 30 {
		t.Errorf("lead time = %d, want 30", materials[1].LeadTimeDays)
	}
}

func TestLoadMaterials_HeaderMismatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "materials.csv",
		"id,name,price\nMAT-CBL,Cable,250\n")

	if _, err := NewLoader().LoadMaterials(path); err == nil {
		t.Error("expected header mismatch error")
	}
}

func TestLoadWarehouses(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "warehouses.csv",
		"id,name,longitude,latitude,region,state,capacity\n"+
			"WH-DEL,Delhi Central Store,77.1025,28.7041,North,Delhi,100000\n")

	warehouses, err := NewLoader().LoadWarehouses(path)
	if err != nil {
		t.Fatalf("LoadWarehouses failed: %v", err)
	}
	if len(warehouses) != 1 {
		t.Fatalf("expected 1 warehouse, got %d", len(warehouses))
	}
	w := warehouses[0]
	if w.Location.Lon() != 77.1025 || w.Location.Lat() != 28.7041 {
		t.Errorf("location = %v, want [77.1025 28.7041]", w.Location)
	}
	if w.State != "Delhi" {
		t.Errorf("state = %s, want Delhi", w.State)
	}
}

func TestLoadVendors_JoinsPriceList(t *testing.T) {
	dir := t.TempDir()
	vendorsPath := writeFile(t, dir, "vendors.csv",
		"id,name,longitude,latitude,reliability,avg_lead_time_days,max_lead_time_days,price_factor,min_order_value\n"+
			"VND-ALP,Alpha Electricals,77.3910,28.5355,0.95,10,20,1.0,50000\n")
	pricesPath := writeFile(t, dir, "vendor_prices.csv",
		"vendor_id,material_id,unit_price\n"+
			"VND-ALP,MAT-CBL,245\n"+
			"VND-ALP,MAT-TRF,148000\n")

	vendors, err := NewLoader().LoadVendors(vendorsPath, pricesPath)
	if err != nil {
		t.Fatalf("LoadVendors failed: %v", err)
	}
	if len(vendors) != 1 {
		t.Fatalf("expected 1 vendor, got %d", len(vendors))
	}
	v := vendors[0]
	if !v.Supplies("MAT-CBL") || !v.Supplies("MAT-TRF") {
		t.Errorf("price list not joined: %v", v.PriceList)
	}
	if price, _ := v.PriceFor("MAT-CBL"); price.String() != "245" {
		t.Errorf("cable price = %s, want 245", price)
	}
}

func TestLoadStockLevels(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "stock.csv",
		"warehouse_id,material_id,quantity_available,quantity_reserved,safety_stock\n"+
			"WH-DEL,MAT-CBL,500,50,100\n")

	levels, err := NewLoader().LoadStockLevels(path)
	if err != nil {
		t.Fatalf("LoadStockLevels failed: %v", err)
	}
	if len(levels) != 1 {
		t.Fatalf("expected 1 stock level, got %d", len(levels))
	}
	if levels[0].Available() != 450 || levels[0].Usable() != 350 {
		t.Errorf("available = %f, usable = %f, want 450 and 350",
			levels[0].Available(), levels[0].Usable())
	}
}

func TestLoadDemands(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "demands.csv",
		"material_id,destination_id,quantity\n"+
			"MAT-CBL,WH-DEL,400\n")

	demands, err := NewLoader().LoadDemands(path)
	if err != nil {
		t.Fatalf("LoadDemands failed: %v", err)
	}
	if len(demands) != 1 || demands[0].Quantity != 400 {
		t.Fatalf("unexpected demands: %+v", demands)
	}

	badPath := writeFile(t, dir, "bad_demands.csv",
		"material_id,destination_id,quantity\n"+
			"MAT-CBL,WH-DEL,-5\n")
	if _, err := NewLoader().LoadDemands(badPath); err == nil {
		t.Error("expected error for non-positive quantity")
	}
}
