package main

import (
	"fmt"
	"log"
	"time"

	"github.com/printomax/packtrackgo/internal/config"
	"github.com/printomax/packtrackgo/internal/database"
	"github.com/printomax/packtrackgo/internal/models"
)

func main() {
	fmt.Println("🌱 PackTrack Demo Data Seeder")
	fmt.Println("=" + string(make([]rune, 60)))

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")
	fmt.Println()

	// Run migrations first
	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.Quotation{},
		&models.SpecialEffect{},
		&models.Size{},
		&models.PaperType{},
		&models.GSM{},
		&models.Pasting{},
		&models.Construction{},
		&models.Specification{},
		&models.DeliveryAddress{},
		&models.Customer{},
		&models.Printer{},
		&models.Paperwala{},
		&models.Category{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")
	fmt.Println()

	// Check if data already exists
	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	if productCount > 0 {
		fmt.Printf("⚠️  Database already has %d products. Clear it first? (y/N): ", productCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		// Clear existing data
		fmt.Println("🗑️  Clearing existing data...")
		db.Exec("TRUNCATE TABLE orders CASCADE")
		db.Exec("TRUNCATE TABLE quotations CASCADE")
		db.Exec("TRUNCATE TABLE products CASCADE")
		for _, table := range models.AllLookupTables {
			db.Exec("TRUNCATE TABLE " + table + " CASCADE")
		}
		fmt.Println("✅ Data cleared")
	}

	fmt.Println()
	fmt.Println("📦 Creating demo data...")
	fmt.Println()

	// 1. Lookup tables. Explicit short ids keep the seeded products'
	// references readable.
	fmt.Println("📇 Creating lookup rows...")
	lookups := []interface{}{
		&models.SpecialEffect{ID: "1", Name: "Emboss"},
		&models.SpecialEffect{ID: "4", Name: "Foil Stamping"},
		&models.SpecialEffect{ID: "7", Name: "Spot UV"},
		&models.SpecialEffect{ID: "9", Name: "Drip Off"},
		&models.Size{ID: "sz-2030", Name: "20x30"},
		&models.Size{ID: "sz-2536", Name: "25x36"},
		&models.PaperType{ID: "pt-art", Name: "Art Card"},
		&models.PaperType{ID: "pt-kraft", Name: "Kraft"},
		&models.GSM{ID: "gsm-300", Name: "300"},
		&models.GSM{ID: "gsm-350", Name: "350"},
		&models.Pasting{ID: "pa-side", Name: "Side Pasting"},
		&models.Pasting{ID: "pa-lock", Name: "Lock Bottom"},
		&models.Construction{ID: "co-rtt", Name: "Reverse Tuck"},
		&models.Specification{ID: "spec-std", Name: "Standard carton, food grade inks"},
		&models.DeliveryAddress{ID: "da-1", Name: "Baddi Plant", Address: "Plot 12, Industrial Area, Baddi, HP"},
		&models.DeliveryAddress{ID: "da-2", Address: "Warehouse 3, Sector 58, Noida"}, // legacy row, address only
		&models.Customer{ID: "cu-1", Name: "Medilux Pharma"},
		&models.Customer{ID: "cu-2", Name: "Herbal Essentials"},
		&models.Printer{ID: "pr-1", Name: "Sharp Offset"},
		&models.Paperwala{ID: "pw-1", Name: "Gupta Paper Mart"},
		&models.Category{ID: "cat-carton", Name: "Carton"},
		&models.Category{ID: "cat-insert", Name: "Insert"},
	}
	for _, row := range lookups {
		if err := db.Create(row).Error; err != nil {
			log.Printf("⚠️  Failed to create lookup row: %v", err)
		}
	}
	fmt.Printf("✅ Created %d lookup rows\n\n", len(lookups))

	// 2. Products. One per legacy special_effects encoding so a demo
	// sync run has something to normalize.
	fmt.Println("📦 Creating products...")
	ups8 := 8
	ups12 := 12
	products := []models.Product{
		{
			ID:             "prod-1",
			ProductName:    "Livadrine 10mg Carton",
			ArtworkCode:    "ART-1001",
			Dimension:      "85x40x110",
			Ink:            "CMYK + Pantone 485",
			PlateNo:        "PL-22",
			Coating:        "Gloss Varnish",
			UPS:            &ups8,
			SpecialEffects: `["4", "7"]`, // JSON array encoding
			CustomerID:     strPtr("cu-1"),
			PaperTypeID:    strPtr("pt-art"),
			GSMID:          strPtr("gsm-300"),
			SizeID:         strPtr("sz-2030"),
			PastingID:      strPtr("pa-side"),
			ConstructionID: strPtr("co-rtt"),
			CategoryID:     strPtr("cat-carton"),
		},
		{
			ID:                "prod-2",
			ProductName:       "HerbGlow Soap Wrap",
			ArtworkCode:       "ART-1002",
			Dimension:         "140x90",
			UPS:               &ups12,
			SpecialEffects:    "1|9", // pipe-delimited id encoding
			CustomerID:        strPtr("cu-2"),
			PaperTypeID:       strPtr("pt-kraft"),
			GSMID:             strPtr("gsm-350"),
			SizeID:            strPtr("sz-2536"),
			DeliveryAddressID: strPtr("da-2"),
			CategoryID:        strPtr("cat-carton"),
		},
		{
			ID:             "prod-3",
			ProductName:    "Livadrine Leaflet",
			ArtworkCode:    "ART-1003",
			Dimension:      "150x210",
			FoldingDim:     "75x52",
			SpecialEffects: "", // no effects
			CustomerID:     strPtr("cu-1"),
			SizeID:         strPtr("sz-2030"),
			CategoryID:     strPtr("cat-insert"),
		},
	}
	for _, p := range products {
		if err := db.Create(&p).Error; err != nil {
			log.Printf("⚠️  Failed to create product %s: %v", p.ProductName, err)
		} else {
			fmt.Printf("   ✓ Created product: [%s] %s\n", p.ArtworkCode, p.ProductName)
		}
	}
	fmt.Printf("✅ Created %d products\n\n", len(products))

	// 3. Orders. Snapshot columns are deliberately left sparse so a
	// fill-blanks sync run visibly repairs them.
	fmt.Println("📋 Creating orders...")
	now := time.Now()
	due := now.Add(7 * 24 * time.Hour)
	orders := []models.Order{
		{
			ID:           "ord-1",
			OrderID:      "ORD-20250810-0001",
			ProductID:    strPtr("prod-1"),
			ProductName:  "Livadrine 10mg Carton",
			CustomerName: "Medilux Pharma",
			Quantity:     50000,
			Status:       models.OrderStatusPending,
			Progress:     models.ProgressPrint,
			PrinterName:  "Sharp Offset",
			OrderDate:    &now,
			DeliveryDate: &due,
		},
		{
			ID:          "ord-2",
			OrderID:     "ORD-20250811-0002",
			ProductID:   strPtr("prod-1"),
			ProductName: "Livadrine 10mg Carton",
			Quantity:    25000,
			Status:      models.OrderStatusPending,
			Progress:    models.ProgressPaper,
			OrderDate:   &now,
		},
		{
			ID:           "ord-3",
			OrderID:      "ORD-20250801-0003",
			ProductID:    strPtr("prod-2"),
			ProductName:  "HerbGlow Soap Wrap",
			CustomerName: "Herbal Essentials",
			Quantity:     100000,
			QtyDelivered: 100000,
			Status:       models.OrderStatusCompleted,
			Progress:     models.ProgressReady,
			BatchNo:      "B-0425",
			InvoiceNo:    "INV-2214",
			OrderDate:    &now,
		},
	}
	for _, o := range orders {
		if err := db.Create(&o).Error; err != nil {
			log.Printf("⚠️  Failed to create order %s: %v", o.OrderID, err)
		} else {
			fmt.Printf("   ✓ Created order: %s [%s] - %s\n", o.OrderID, o.Progress, o.ProductName)
		}
	}
	fmt.Printf("✅ Created %d orders\n\n", len(orders))

	// Summary
	fmt.Println()
	fmt.Println("=" + string(make([]rune, 60)))
	fmt.Println("🎉 Demo data created successfully!")
	fmt.Println()
	fmt.Println("📊 Summary:")
	fmt.Printf("   • %d lookup rows\n", len(lookups))
	fmt.Printf("   • %d products (one per special-effects encoding)\n", len(products))
	fmt.Printf("   • %d orders with sparse snapshots\n", len(orders))
	fmt.Println()
	fmt.Println("🔄 Repair the order snapshots:")
	fmt.Println("   go run ./cmd/reconcile")
	fmt.Println()
	fmt.Println("🌐 Or start the server:")
	fmt.Println("   go run ./cmd/api")
	fmt.Println("   Then visit: http://localhost:3001")
	fmt.Println("=" + string(make([]rune, 60)))
}

func strPtr(s string) *string {
	return &s
}
