package insight

import (
	"encoding/json"
	"fmt"

	"github.com/rogerio-castellano/umkm-inventory/internal/models"
)

// RecentTransactionLimit caps how many log entries go into a prompt.
const RecentTransactionLimit = 15

// ProductSummary and TransactionSummary use one or two letter keys to keep
// the prompt short.
type ProductSummary struct {
	Name     string `json:"n"`
	Stock    int    `json:"s"`
	MinStock int    `json:"m"`
	Category string `json:"c"`
}

type TransactionSummary struct {
	ProductName string                 `json:"p"`
	Type        models.TransactionType `json:"tp"`
	Quantity    int                    `json:"q"`
}

type Input struct {
	Products      []ProductSummary
	Transactions  []TransactionSummary
	SupplierCount int
}

// BuildInput reads the subset of snap the narrative request needs. The
// snapshot log is newest first, so its head holds the recent transactions.
func BuildInput(snap models.Snapshot) Input {
	in := Input{
		Products:      make([]ProductSummary, 0, len(snap.Products)),
		Transactions:  []TransactionSummary{},
		SupplierCount: len(snap.Suppliers),
	}
	for _, p := range snap.Products {
		in.Products = append(in.Products, ProductSummary{Name: p.Name, Stock: p.Stock, MinStock: p.MinStock, Category: p.Category})
	}
	for i, t := range snap.Transactions {
		if i == RecentTransactionLimit {
			break
		}
		in.Transactions = append(in.Transactions, TransactionSummary{ProductName: t.ProductName, Type: t.Type, Quantity: t.Quantity})
	}
	return in
}

const promptTemplate = `Bertindaklah sebagai Konsultan Bisnis UMKM. Analisis data berikut:
Inventaris: %s
Transaksi Terakhir: %s
Total Supplier: %d

Berikan laporan singkat (Markdown) yang mencakup:
1. 🚩 Peringatan stok kritis/mati.
2. 📈 Tren pergerakan barang tercepat.
3. 💡 Rekomendasi operasional & supplier.

Gunakan bahasa Indonesia yang profesional namun mudah dimengerti pemilik toko.`

func BuildPrompt(in Input) (string, error) {
	products, err := json.Marshal(in.Products)
	if err != nil {
		return "", fmt.Errorf("marshal products: %w", err)
	}
	txs, err := json.Marshal(in.Transactions)
	if err != nil {
		return "", fmt.Errorf("marshal transactions: %w", err)
	}
	return fmt.Sprintf(promptTemplate, products, txs, in.SupplierCount), nil
}
