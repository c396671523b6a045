package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
	"github.com/jhoicas/orderly-console/internal/infrastructure/pdf"
)

func sampleOrder() entity.Order {
	return entity.Order{
		ID:        "3f2a9c1e-0000-4000-8000-000000000001",
		ShopName:  "Corner Shop",
		Status:    entity.StatusAccepted,
		CreatedAt: time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC),
		Items: []entity.OrderItem{
			{ProductID: "p1", Name: "Premium Rice 5kg", Price: decimal.NewFromInt(320), Qty: 2},
			{ProductID: "p2", Name: "Sunrise Tea 250g", Price: decimal.RequireFromString("85.5"), Qty: 3},
		},
	}
}

func TestGenerateOrderPDF_ProduceDocumento(t *testing.T) {
	g := pdf.NewOrderSummaryGenerator()

	data, err := g.GenerateOrderPDF(context.Background(), ports.OrderDocument{
		Order:        sampleOrder(),
		ReferenceURL: "https://orderly.test/api/orders/invoice/o1/pdf",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "debe ser un PDF")
}

func TestGenerateOrderPDF_SinLineasNiQR(t *testing.T) {
	g := pdf.NewOrderSummaryGenerator()

	data, err := g.GenerateOrderPDF(context.Background(), ports.OrderDocument{Title: "Cart", Order: entity.Order{ID: "o2", Status: "on_hold"}})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestGenerateOrderPDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pdf.NewOrderSummaryGenerator().GenerateOrderPDF(ctx, ports.OrderDocument{Order: sampleOrder()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0.00",
		"85.5":      "85.50",
		"1234.5":    "1,234.50",
		"1000000":   "1,000,000.00",
		"-2500.126": "-2,500.13",
	}
	for in, want := range cases {
		assert.Equal(t, want, pdf.FormatMoney(decimal.RequireFromString(in)), in)
	}
}
