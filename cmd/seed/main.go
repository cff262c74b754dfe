package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"github.com/kingoftech-v01/shop-backend/config"
	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/internal/app/repository"
	"github.com/kingoftech-v01/shop-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Expected XLSX columns: name, slug, category, kind, price, stock,
// description, is_limited. Slug may be blank, it is derived from the name.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	if err := db.Seed(); err != nil {
		log.Fatal("Failed to seed base data:", err)
	}

	productRepo := repository.NewProductRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())

	categories, err := categoryRepo.FindAll()
	if err != nil {
		log.Fatal("Failed to load categories:", err)
	}
	categoryByName := make(map[string]uint, len(categories))
	for _, c := range categories {
		categoryByName[strings.ToLower(c.Name)] = c.ID
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath, categoryByName)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath string, categoryByName map[string]uint) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seenSlugs := make(map[string]bool)
	skippedCount := 0
	unknownCategoryCount := 0

	// First row is the header.
	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 6 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		slugValue := strings.TrimSpace(row[1])
		categoryName := strings.TrimSpace(row[2])
		kind := strings.TrimSpace(strings.ToLower(row[3]))
		priceStr := strings.TrimSpace(row[4])
		stockStr := strings.TrimSpace(row[5])

		description := ""
		if len(row) > 6 {
			description = strings.TrimSpace(row[6])
		}
		isLimited := false
		if len(row) > 7 {
			isLimited = strings.EqualFold(strings.TrimSpace(row[7]), "true")
		}

		if name == "" || categoryName == "" || priceStr == "" {
			skippedCount++
			continue
		}

		categoryID, ok := categoryByName[strings.ToLower(categoryName)]
		if !ok {
			unknownCategoryCount++
			skippedCount++
			continue
		}

		price, err := decimal.NewFromString(priceStr)
		if err != nil || price.IsNegative() {
			skippedCount++
			continue
		}

		stock := 0
		if stockStr != "" {
			stock, err = strconv.Atoi(stockStr)
			if err != nil || stock < 0 {
				skippedCount++
				continue
			}
		}

		if kind != string(model.KindPackage) {
			kind = string(model.KindProduct)
		}

		if slugValue == "" {
			slugValue = slug.Make(name)
		}
		if seenSlugs[slugValue] {
			skippedCount++
			continue
		}
		seenSlugs[slugValue] = true

		products = append(products, model.Product{
			Name:        name,
			Slug:        slugValue,
			Description: description,
			CategoryID:  categoryID,
			Kind:        model.ProductKind(kind),
			Price:       price,
			Stock:       stock,
			IsLimited:   isLimited,
		})

		if len(products)%500 == 0 {
			fmt.Printf("Processed %d products...\n", len(products))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid products: %d\n", len(products))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)
	fmt.Printf("  Rows with unknown category: %d\n", unknownCategoryCount)

	return products, nil
}
