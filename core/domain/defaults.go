package domain

import "time"

// DefaultSnapshot returns the starter data for a user with no saved snapshot.
// Seed price dates are relative to now.
func DefaultSnapshot(now time.Time) *Snapshot {
	daysAgo := func(n int) time.Time {
		return now.UTC().Add(-time.Duration(n) * 24 * time.Hour).Truncate(time.Millisecond)
	}
	qty := func(v float64) *float64 { return &v }

	return &Snapshot{
		Categorias: []Categoria{
			{ID: "1", Nome: "Frutas e Verduras", Cor: "#10b981"},
			{ID: "2", Nome: "Carnes", Cor: "#ef4444"},
			{ID: "3", Nome: "Laticínios", Cor: "#3b82f6"},
			{ID: "4", Nome: "Padaria", Cor: "#f59e0b"},
			{ID: "5", Nome: "Bebidas", Cor: "#8b5cf6"},
			{ID: "6", Nome: "Limpeza", Cor: "#06b6d4"},
			{ID: "7", Nome: "Higiene", Cor: "#ec4899"},
			{ID: "8", Nome: "Outros", Cor: "#6b7280"},
		},
		Produtos: []Produto{
			{
				ID: "p1", Nome: "Banana", CategoriaID: "1", Unidade: "kg", QuantidadePadrao: qty(1),
				Precos: []PrecoHistorico{
					{ID: "h1", Valor: 4.99, Data: daysAgo(30), Local: "Supermercado A"},
					{ID: "h2", Valor: 5.49, Data: daysAgo(15), Local: "Supermercado B"},
					{ID: "h3", Valor: 4.79, Data: daysAgo(5), Local: "Supermercado A"},
				},
			},
			{
				ID: "p2", Nome: "Tomate", CategoriaID: "1", Unidade: "kg", QuantidadePadrao: qty(1),
				Precos: []PrecoHistorico{
					{ID: "h4", Valor: 6.99, Data: daysAgo(20), Local: "Feira"},
					{ID: "h5", Valor: 7.49, Data: daysAgo(10), Local: "Supermercado B"},
				},
			},
			{
				ID: "p5", Nome: "Frango (Peito)", CategoriaID: "2", Unidade: "kg", QuantidadePadrao: qty(1),
				Precos: []PrecoHistorico{
					{ID: "h9", Valor: 16.99, Data: daysAgo(22), Local: "Açougue"},
					{ID: "h10", Valor: 18.99, Data: daysAgo(8), Local: "Supermercado A"},
				},
			},
			{
				ID: "p7", Nome: "Leite Integral", CategoriaID: "3", Unidade: "L", QuantidadePadrao: qty(1), Marca: "Itambé",
				Precos: []PrecoHistorico{
					{ID: "h13", Valor: 5.49, Data: daysAgo(28), Local: "Supermercado A"},
					{ID: "h14", Valor: 5.79, Data: daysAgo(14), Local: "Supermercado B"},
					{ID: "h15", Valor: 5.29, Data: daysAgo(3), Local: "Supermercado A"},
				},
			},
			{
				ID: "p10", Nome: "Pão Francês", CategoriaID: "4", Unidade: "kg", QuantidadePadrao: qty(0.5),
				Precos: []PrecoHistorico{
					{ID: "h19", Valor: 12.99, Data: daysAgo(10), Local: "Padaria"},
					{ID: "h20", Valor: 13.49, Data: daysAgo(2), Local: "Padaria"},
				},
			},
			{
				ID: "p12", Nome: "Refrigerante Cola", CategoriaID: "5", Unidade: "L", QuantidadePadrao: qty(2), Marca: "Coca-Cola",
				Precos: []PrecoHistorico{
					{ID: "h23", Valor: 7.99, Data: daysAgo(21), Local: "Supermercado B"},
					{ID: "h24", Valor: 6.99, Data: daysAgo(11), Local: "Supermercado A"},
					{ID: "h25", Valor: 7.49, Data: daysAgo(4), Local: "Supermercado B"},
				},
			},
			{
				ID: "p14", Nome: "Detergente", CategoriaID: "6", Unidade: "un", QuantidadePadrao: qty(1), Marca: "Ypê",
				Precos: []PrecoHistorico{
					{ID: "h27", Valor: 2.49, Data: daysAgo(24), Local: "Supermercado A"},
					{ID: "h28", Valor: 2.79, Data: daysAgo(13), Local: "Supermercado B"},
				},
			},
			{
				ID: "p18", Nome: "Sabonete", CategoriaID: "7", Unidade: "un", QuantidadePadrao: qty(4), Marca: "Dove",
				Precos: []PrecoHistorico{
					{ID: "h35", Valor: 2.29, Data: daysAgo(19), Local: "Supermercado A"},
				},
			},
			{
				ID: "p19", Nome: "Arroz", CategoriaID: "8", Unidade: "kg", QuantidadePadrao: qty(5), Marca: "Tio João",
				Precos: []PrecoHistorico{
					{ID: "h36", Valor: 24.99, Data: daysAgo(27), Local: "Supermercado B"},
					{ID: "h37", Valor: 26.49, Data: daysAgo(9), Local: "Supermercado A"},
				},
			},
			{
				ID: "p23", Nome: "Café", CategoriaID: "8", Unidade: "g", QuantidadePadrao: qty(500), Marca: "Pilão",
				Precos: []PrecoHistorico{
					{ID: "h44", Valor: 15.99, Data: daysAgo(16), Local: "Supermercado A"},
				},
			},
		},
		Listas: []Lista{},
	}
}
