package cart

import (
	"testing"

	"github.com/puntotecno/terminal/pkg/enums"
	pkgerrors "github.com/puntotecno/terminal/pkg/errors"
	"github.com/shopspring/decimal"
)

func snapshot(id int64, price string, stock int) ProductSnapshot {
	return ProductSnapshot{
		ID:             id,
		Name:           "Producto",
		SKU:            "SKU-001",
		SalePrice:      decimal.RequireFromString(price),
		AvailableStock: stock,
	}
}

func TestAddProductNewLine(t *testing.T) {
	c := New()
	if err := c.AddProduct(snapshot(1, "100", 3)); err != nil {
		t.Fatalf("add product: %v", err)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line got %d", len(lines))
	}
	if lines[0].Quantity != 1 {
		t.Fatalf("expected quantity 1 got %d", lines[0].Quantity)
	}
	if lines[0].StockCeiling != 3 {
		t.Fatalf("expected ceiling 3 got %d", lines[0].StockCeiling)
	}
}

func TestAddProductOutOfStock(t *testing.T) {
	c := New()
	err := c.AddProduct(snapshot(1, "100", 0))
	if pkgerrors.CodeOf(err) != pkgerrors.CodeOutOfStock {
		t.Fatalf("expected CodeOutOfStock got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("cart should stay empty")
	}
}

func TestAddProductIncrementsToCeiling(t *testing.T) {
	c := New()
	p := snapshot(1, "100", 2)
	for i := 0; i < 2; i++ {
		if err := c.AddProduct(p); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	err := c.AddProduct(p)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeStockLimit {
		t.Fatalf("expected CodeStockLimit got %v", err)
	}
	if got := c.Lines()[0].Quantity; got != 2 {
		t.Fatalf("quantity changed on rejected add: %d", got)
	}
}

func TestSetQuantity(t *testing.T) {
	c := New()
	if err := c.AddProduct(snapshot(1, "100", 5)); err != nil {
		t.Fatalf("add product: %v", err)
	}

	if err := c.SetQuantity(1, 4); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if got := c.Lines()[0].Quantity; got != 4 {
		t.Fatalf("expected quantity 4 got %d", got)
	}

	err := c.SetQuantity(1, 6)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeStockLimit {
		t.Fatalf("expected CodeStockLimit got %v", err)
	}
	if got := c.Lines()[0].Quantity; got != 4 {
		t.Fatalf("rejected set changed quantity to %d", got)
	}

	if err := c.SetQuantity(1, 0); err != nil {
		t.Fatalf("set quantity 0: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("quantity 0 should remove the line")
	}

	// Absent product is a no-op.
	if err := c.SetQuantity(99, 3); err != nil {
		t.Fatalf("absent product: %v", err)
	}
}

func TestRemoveLineIdempotent(t *testing.T) {
	c := New()
	if err := c.AddProduct(snapshot(1, "100", 5)); err != nil {
		t.Fatalf("add product: %v", err)
	}
	c.RemoveLine(1)
	c.RemoveLine(1)
	if c.Len() != 0 {
		t.Fatalf("expected empty cart")
	}
}

func TestReAddSnapshotsLatestStock(t *testing.T) {
	c := New()
	if err := c.AddProduct(snapshot(1, "100", 1)); err != nil {
		t.Fatalf("add product: %v", err)
	}
	c.RemoveLine(1)

	if err := c.AddProduct(snapshot(1, "100", 7)); err != nil {
		t.Fatalf("re-add product: %v", err)
	}
	if got := c.Lines()[0].StockCeiling; got != 7 {
		t.Fatalf("expected fresh ceiling 7 got %d", got)
	}
}

func TestTotals(t *testing.T) {
	c := New()
	if err := c.AddProduct(snapshot(1, "100.50", 5)); err != nil {
		t.Fatalf("add product: %v", err)
	}
	if err := c.SetQuantity(1, 2); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if err := c.AddProduct(snapshot(2, "49.50", 5)); err != nil {
		t.Fatalf("add second product: %v", err)
	}

	if want := decimal.RequireFromString("250.50"); !c.Subtotal().Equal(want) {
		t.Fatalf("expected subtotal %s got %s", want, c.Subtotal())
	}

	if err := c.SetDiscount(decimal.RequireFromString("50.50")); err != nil {
		t.Fatalf("set discount: %v", err)
	}
	if want := decimal.RequireFromString("200"); !c.Total().Equal(want) {
		t.Fatalf("expected total %s got %s", want, c.Total())
	}
}

func TestTotalNotClampedAtZero(t *testing.T) {
	c := New()
	if err := c.AddProduct(snapshot(1, "100", 5)); err != nil {
		t.Fatalf("add product: %v", err)
	}
	if err := c.SetDiscount(decimal.RequireFromString("150")); err != nil {
		t.Fatalf("set discount: %v", err)
	}
	if want := decimal.RequireFromString("-50"); !c.Total().Equal(want) {
		t.Fatalf("expected total %s got %s", want, c.Total())
	}
}

func TestNegativeDiscountRejected(t *testing.T) {
	c := New()
	err := c.SetDiscount(decimal.RequireFromString("-1"))
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected CodeValidation got %v", err)
	}
}

func TestPaymentMethod(t *testing.T) {
	c := New()
	if got := c.PaymentMethod(); got != enums.PaymentMethodCash {
		t.Fatalf("expected cash default got %s", got)
	}

	if err := c.SetPaymentMethod("voucher"); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected CodeValidation for unknown method, got %v", err)
	}

	if err := c.SetPaymentMethod(enums.PaymentMethodAccount); err != nil {
		t.Fatalf("set account: %v", err)
	}
	if err := c.SetPaidAmount(decimal.RequireFromString("30")); err != nil {
		t.Fatalf("set paid amount: %v", err)
	}

	// Switching away from account drops the partial payment.
	if err := c.SetPaymentMethod(enums.PaymentMethodCard); err != nil {
		t.Fatalf("set card: %v", err)
	}
	if err := c.SetPaymentMethod(enums.PaymentMethodAccount); err != nil {
		t.Fatalf("set account again: %v", err)
	}
	if err := c.AddProduct(snapshot(1, "100", 5)); err != nil {
		t.Fatalf("add product: %v", err)
	}
	req, err := c.Submission()
	if err != nil {
		t.Fatalf("submission: %v", err)
	}
	if req.PaidAmount == nil || !req.PaidAmount.IsZero() {
		t.Fatalf("expected zero paid amount after method switch, got %v", req.PaidAmount)
	}
}

func TestPaidAmountOnlyForDeferred(t *testing.T) {
	c := New()
	err := c.SetPaidAmount(decimal.RequireFromString("10"))
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected CodeValidation got %v", err)
	}
}

func TestCustomerReferencesExclusive(t *testing.T) {
	c := New()
	if err := c.AddProduct(snapshot(1, "100", 5)); err != nil {
		t.Fatalf("add product: %v", err)
	}

	c.SetCustomer(7)
	c.SetCustomerName("Juan Pérez")
	req, err := c.Submission()
	if err != nil {
		t.Fatalf("submission: %v", err)
	}
	if req.Customer != nil {
		t.Fatalf("free-text name should clear the registered customer")
	}
	if req.CustomerName != "Juan Pérez" {
		t.Fatalf("unexpected customer name %q", req.CustomerName)
	}

	c.SetCustomer(7)
	req, err = c.Submission()
	if err != nil {
		t.Fatalf("submission: %v", err)
	}
	if req.Customer == nil || *req.Customer != 7 {
		t.Fatalf("registered customer should clear the free-text name")
	}
	if req.CustomerName != "" {
		t.Fatalf("unexpected customer name %q", req.CustomerName)
	}
}

func TestSubmission(t *testing.T) {
	c := New()
	if _, err := c.Submission(); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected CodeValidation for empty cart, got %v", err)
	}

	if err := c.AddProduct(snapshot(1, "100", 5)); err != nil {
		t.Fatalf("add product: %v", err)
	}
	if err := c.SetQuantity(1, 3); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if err := c.SetDiscount(decimal.RequireFromString("20")); err != nil {
		t.Fatalf("set discount: %v", err)
	}
	c.SetNotes("venta de mostrador")

	req, err := c.Submission()
	if err != nil {
		t.Fatalf("submission: %v", err)
	}
	if len(req.Items) != 1 {
		t.Fatalf("expected 1 item got %d", len(req.Items))
	}
	item := req.Items[0]
	if item.Product != 1 || item.Quantity != 3 || !item.UnitPrice.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("unexpected item %+v", item)
	}
	if req.PaymentMethod != enums.PaymentMethodCash {
		t.Fatalf("unexpected payment method %s", req.PaymentMethod)
	}
	if req.PaidAmount != nil {
		t.Fatalf("paid amount should only travel on account sales")
	}
	if req.Notes != "venta de mostrador" {
		t.Fatalf("unexpected notes %q", req.Notes)
	}
}
