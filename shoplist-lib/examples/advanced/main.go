// ABOUTME: Advanced example showing custom configuration and shopping data
// ABOUTME: Demonstrates SQLite storage, background sweeping, imports and history

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"shoplist-api/core/domain"
	"shoplist-api/infrastructure/logger/logrus"
	shoplist "shoplist-api/shoplist-lib"
)

func main() {
	fmt.Println("=== Custom Configuration ===")

	dbPath := "./shoplist_example.db"
	defer os.Remove(dbPath)

	client, err := shoplist.NewClient(
		// Keep data in SQLite instead of memory
		shoplist.WithStoreConfig(shoplist.SQLiteStore(dbPath)),

		// Debug logging to stdout
		shoplist.WithLogger(logrus.New(logrus.Options{Level: "debug"})),

		// Short-lived codes, longer than the default six characters
		shoplist.WithShareTTL(24*time.Hour),
		shoplist.WithCodeLength(8),

		// Remove expired codes in the background
		shoplist.WithBackgroundSweep(10*time.Minute),
	)
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}
	defer client.Close()

	ctx := context.Background()
	const userID = "example-user"

	// A new user starts with the default catalog
	fmt.Println("\n=== Loading Snapshot ===")
	snapshot, err := client.LoadSnapshot(ctx, userID)
	if err != nil {
		log.Fatalf("Error loading snapshot: %v", err)
	}
	fmt.Printf("Categories: %d, products: %d\n", len(snapshot.Categorias), len(snapshot.Produtos))

	// Import a product a friend shared
	fmt.Println("\n=== Importing Shared Products ===")
	share, err := client.ShareProducts(ctx, []json.RawMessage{
		json.RawMessage(`{"id":"f1","nome":"Kombucha","unidade":"un","precos":[]}`),
	})
	if err != nil {
		log.Fatalf("Error sharing products: %v", err)
	}
	result, err := client.ImportShared(ctx, userID, share.Code, []string{"f1"})
	if err != nil {
		log.Fatalf("Error importing: %v", err)
	}
	fmt.Printf("Imported %d, skipped %d\n", len(result.Imported), len(result.Skipped))

	// Build a list, buy it and complete it
	fmt.Println("\n=== Completing a List ===")
	snapshot, err = client.LoadSnapshot(ctx, userID)
	if err != nil {
		log.Fatalf("Error loading snapshot: %v", err)
	}
	preco := 7.5
	snapshot.Listas = append(snapshot.Listas, domain.Lista{
		ID:          "feira",
		Nome:        "Feira de sábado",
		DataCriacao: time.Now(),
		Itens: []domain.ItemLista{
			{ID: "i1", ProdutoID: snapshot.Produtos[0].ID, Quantidade: 2, Comprado: true, PrecoCompra: &preco},
		},
	})
	if err := client.SaveSnapshot(ctx, userID, snapshot); err != nil {
		log.Fatalf("Error saving snapshot: %v", err)
	}
	lista, err := client.CompleteList(ctx, userID, "feira")
	if err != nil {
		log.Fatalf("Error completing list: %v", err)
	}
	fmt.Printf("Total: R$ %.2f\n", *lista.TotalGasto)

	// History and price statistics
	fmt.Println("\n=== History ===")
	history, err := client.History(ctx, userID)
	if err != nil {
		log.Fatalf("Error loading history: %v", err)
	}
	for _, m := range history.PorMes {
		fmt.Printf("%s: R$ %.2f\n", m.Month, m.Total)
	}

	stats, err := client.PriceStats(ctx, userID, snapshot.Produtos[0].ID)
	if err != nil {
		log.Fatalf("Error loading prices: %v", err)
	}
	fmt.Printf("%s: latest %.2f, average %.2f\n", snapshot.Produtos[0].Nome, stats.Latest, stats.Average)
}
