package ledger

import (
	"time"

	"github.com/rogerio-castellano/umkm-inventory/internal/models"
	"github.com/shopspring/decimal"
)

// EmptySeed starts every collection empty.
func EmptySeed() models.Snapshot {
	return models.Snapshot{
		Products:     []models.Product{},
		Transactions: []models.Transaction{},
		Suppliers:    []models.Supplier{},
	}
}

// DemoSeed is the sample shop used on first start: a small coffee stall with
// three products, two suppliers and yesterday's restock plus today's sale.
func DemoSeed(now time.Time) models.Snapshot {
	now = now.UTC().Round(0)

	return models.Snapshot{
		Products: []models.Product{
			{ID: "1", Name: "Kopi Robusta 250g", Category: "Minuman", SKU: "KOP-RB-250", Stock: 45, MinStock: 10, Price: decimal.NewFromInt(35000), Description: "Biji kopi robusta pilihan dari Temanggung.", UpdatedAt: now},
			{ID: "2", Name: "Gula Aren Cair 500ml", Category: "Bahan Baku", SKU: "GL-AR-500", Stock: 8, MinStock: 15, Price: decimal.NewFromInt(25000), Description: "Gula aren murni organik.", UpdatedAt: now},
			{ID: "3", Name: "Susu UHT 1L", Category: "Minuman", SKU: "SS-UHT-1L", Stock: 24, MinStock: 12, Price: decimal.NewFromInt(18000), Description: "Susu sapi segar kemasan.", UpdatedAt: now},
		},
		Transactions: []models.Transaction{
			{ID: "t2", ProductID: "1", ProductName: "Kopi Robusta 250g", Type: models.TransactionOut, Quantity: 5, Date: now, Note: "Penjualan offline"},
			{ID: "t1", ProductID: "1", ProductName: "Kopi Robusta 250g", Type: models.TransactionIn, Quantity: 50, Date: now.Add(-24 * time.Hour), Note: "Stok baru supplier"},
		},
		Suppliers: []models.Supplier{
			{ID: "s1", Name: "PT Kopi Jaya", ContactName: "Budi Santoso", Phone: "08123456789", Email: "kontak@kopijaya.com", Address: "Temanggung, Jateng", Category: "Biji Kopi"},
			{ID: "s2", Name: "Gula Organik Sejahtera", ContactName: "Siti Aminah", Phone: "08987654321", Email: "sales@gulaorganik.id", Address: "Kulon Progo, DIY", Category: "Pemanis"},
		},
	}
}
