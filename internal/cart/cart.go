package cart

import (
	"fmt"

	"github.com/puntotecno/terminal/internal/sales"
	"github.com/puntotecno/terminal/pkg/enums"
	pkgerrors "github.com/puntotecno/terminal/pkg/errors"
	"github.com/shopspring/decimal"
)

// ProductSnapshot is what the sale screen knows about a product at the
// moment it is offered for selection. AvailableStock becomes the line's
// ceiling; later depletion by another terminal is not detected here, the
// server rejects the sale at submit time instead.
type ProductSnapshot struct {
	ID             int64
	Name           string
	SKU            string
	SalePrice      decimal.Decimal
	AvailableStock int
}

// Line is one product inside the in-progress sale.
type Line struct {
	ProductID    int64
	Name         string
	SKU          string
	Quantity     int
	UnitPrice    decimal.Decimal
	StockCeiling int
}

// LineTotal returns quantity × unit price.
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the in-memory, unsaved sale being assembled. It lives in the
// sale screen's working memory only; navigating away discards it.
type Cart struct {
	lines         []Line
	discount      decimal.Decimal
	paymentMethod enums.PaymentMethod
	paidAmount    decimal.Decimal
	notes         string
	customerID    *int64
	customerName  string
}

// New creates an empty cart paying cash, the point-of-sale default.
func New() *Cart {
	return &Cart{paymentMethod: enums.PaymentMethodCash}
}

// AddProduct puts one unit of the product in the cart. A product already
// present is incremented up to its stock ceiling; a product with no stock
// is rejected outright.
func (c *Cart) AddProduct(product ProductSnapshot) error {
	if idx := c.indexOf(product.ID); idx >= 0 {
		line := &c.lines[idx]
		if line.Quantity >= line.StockCeiling {
			return pkgerrors.New(pkgerrors.CodeStockLimit, fmt.Sprintf(
				"%q solo tiene %d unidades disponibles y ya agregaste %d al carrito",
				line.Name, line.StockCeiling, line.Quantity))
		}
		line.Quantity++
		return nil
	}

	if product.AvailableStock <= 0 {
		return pkgerrors.New(pkgerrors.CodeOutOfStock, fmt.Sprintf(
			"%q (SKU %s) no tiene unidades disponibles", product.Name, product.SKU))
	}
	c.lines = append(c.lines, Line{
		ProductID:    product.ID,
		Name:         product.Name,
		SKU:          product.SKU,
		Quantity:     1,
		UnitPrice:    product.SalePrice,
		StockCeiling: product.AvailableStock,
	})
	return nil
}

// SetQuantity sets a line's quantity exactly. Zero or less removes the
// line; above the ceiling rejects and leaves the previous quantity.
func (c *Cart) SetQuantity(productID int64, quantity int) error {
	idx := c.indexOf(productID)
	if idx < 0 {
		return nil
	}
	if quantity <= 0 {
		c.RemoveLine(productID)
		return nil
	}
	line := &c.lines[idx]
	if quantity > line.StockCeiling {
		return pkgerrors.New(pkgerrors.CodeStockLimit, fmt.Sprintf(
			"%q solo tiene %d unidades disponibles", line.Name, line.StockCeiling))
	}
	line.Quantity = quantity
	return nil
}

// RemoveLine drops the product from the cart; absent ids are a no-op.
func (c *Cart) RemoveLine(productID int64) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
}

// Lines returns the cart content in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct products in the cart.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Subtotal is Σ quantity × unit price across all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range c.lines {
		sum = sum.Add(line.LineTotal())
	}
	return sum
}

// Total is subtotal minus discount. Not clamped at zero; the server owns
// that arithmetic.
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Sub(c.discount)
}

// SetDiscount applies a whole-ticket discount.
func (c *Cart) SetDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "el descuento no puede ser negativo")
	}
	c.discount = discount
	return nil
}

// Discount returns the current discount.
func (c *Cart) Discount() decimal.Decimal {
	return c.discount
}

// SetPaymentMethod selects how the sale is settled. Switching away from a
// deferred method drops any partial payment amount.
func (c *Cart) SetPaymentMethod(method enums.PaymentMethod) error {
	if !method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("método de pago %q desconocido", method))
	}
	c.paymentMethod = method
	if !method.Deferred() {
		c.paidAmount = decimal.Zero
	}
	return nil
}

// PaymentMethod returns the selected method.
func (c *Cart) PaymentMethod() enums.PaymentMethod {
	return c.paymentMethod
}

// SetPaidAmount records how much the customer pays now on a deferred sale.
func (c *Cart) SetPaidAmount(amount decimal.Decimal) error {
	if !c.paymentMethod.Deferred() {
		return pkgerrors.New(pkgerrors.CodeValidation, "el pago parcial solo aplica a ventas en cuenta corriente")
	}
	if amount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "el monto pagado no puede ser negativo")
	}
	c.paidAmount = amount
	return nil
}

// SetNotes attaches free-text observations to the sale.
func (c *Cart) SetNotes(notes string) {
	c.notes = notes
}

// SetCustomer references a registered customer, clearing any free-text
// name. The two references are mutually exclusive.
func (c *Cart) SetCustomer(id int64) {
	c.customerID = &id
	c.customerName = ""
}

// SetCustomerName records an unregistered customer by name, clearing any
// registered reference.
func (c *Cart) SetCustomerName(name string) {
	c.customerName = name
	c.customerID = nil
}

// ClearCustomer drops both customer references.
func (c *Cart) ClearCustomer() {
	c.customerID = nil
	c.customerName = ""
}

// Submission serializes the cart for the sales endpoint. The paid amount
// travels only on deferred (account) sales.
func (c *Cart) Submission() (sales.CreateSaleRequest, error) {
	if len(c.lines) == 0 {
		return sales.CreateSaleRequest{}, pkgerrors.New(pkgerrors.CodeValidation, "agregá al menos un producto a la venta")
	}
	items := make([]sales.SaleItemRequest, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, sales.SaleItemRequest{
			Product:   line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	req := sales.CreateSaleRequest{
		Customer:      c.customerID,
		CustomerName:  c.customerName,
		Discount:      c.discount,
		PaymentMethod: c.paymentMethod,
		Notes:         c.notes,
		Items:         items,
	}
	if c.paymentMethod.Deferred() {
		paid := c.paidAmount
		req.PaidAmount = &paid
	}
	return req, nil
}

func (c *Cart) indexOf(productID int64) int {
	for i, line := range c.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
