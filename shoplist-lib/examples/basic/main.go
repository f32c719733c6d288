// ABOUTME: Basic example showing share codes with the Shoplist library
// ABOUTME: Demonstrates minimal configuration and the share/redeem round trip

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	shoplist "shoplist-api/shoplist-lib"
)

func main() {
	// Example 1: Create a client with default configuration (in-memory store)
	client, err := shoplist.NewClient()
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}
	defer client.Close()

	ctx := context.Background()

	// Example 2: Share two products
	fmt.Println("=== Sharing Products ===")
	share, err := client.ShareProducts(ctx, []json.RawMessage{
		json.RawMessage(`{"id":"p1","nome":"Banana","unidade":"kg","precos":[{"id":"h1","valor":5.99}]}`),
		json.RawMessage(`{"id":"p2","nome":"Café","unidade":"un","precos":[]}`),
	})
	if err != nil {
		log.Fatalf("Error sharing products: %v", err)
	}
	fmt.Printf("Code: %s (expires %s)\n", share.Code, share.ExpiresAt.Format("2006-01-02"))

	// Example 3: Redeem the code, case does not matter
	fmt.Println("\n=== Redeeming Code ===")
	got, err := client.GetSharedProducts(ctx, share.Code)
	if err != nil {
		log.Fatalf("Error redeeming code: %v", err)
	}
	for _, p := range got.Produtos {
		fmt.Printf("- %s\n", p)
	}

	// Example 4: Unknown codes are reported as not found
	fmt.Println("\n=== Unknown Code ===")
	if _, err := client.GetSharedProducts(ctx, "NOPE00"); shoplist.IsNotFoundError(err) {
		fmt.Println("Code not found, as expected")
	}

	// Example 5: List active shares
	fmt.Println("\n=== Active Shares ===")
	shares, err := client.ListShares(ctx)
	if err != nil {
		log.Fatalf("Error listing shares: %v", err)
	}
	for _, s := range shares {
		fmt.Printf("- %s: %d products\n", s.Code, s.ProductCount)
	}
}
