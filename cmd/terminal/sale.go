package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/puntotecno/terminal/internal/cart"
	"github.com/puntotecno/terminal/internal/catalog"
	"github.com/puntotecno/terminal/pkg/enums"
	"github.com/shopspring/decimal"
)

// saleScreen assembles a cart and submits it. Stock rejections surface via
// the notifier and never abort the flow; leaving the screen discards the
// cart.
func (a *App) saleScreen(ctx context.Context) {
	screenCtx, gen := a.enterScreen(ctx, "sale")
	basket := cart.New()
	var results []catalog.CachedProduct

	a.refreshCatalog(screenCtx, gen)

	a.printf("\n== Nueva venta ==\n")
	a.printf("Comandos: b <texto> buscar · a <n> agregar resultado · q <id> <cant> cantidad\n")
	a.printf("          r <id> quitar · d <monto> descuento · p <método> pago · pa <monto> pago parcial\n")
	a.printf("          c <id> cliente · cn <nombre> cliente sin registrar · n <texto> notas\n")
	a.printf("          t ticket · ok confirmar · x cancelar\n")

	for {
		a.drainNotifications()
		line, err := a.readLine("venta> ")
		if err != nil {
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "b":
			found, err := a.catalog.Search(screenCtx, arg, 10)
			if err != nil {
				if a.report(err) {
					return
				}
				continue
			}
			results = found
			if len(results) == 0 {
				a.printf("sin resultados\n")
			}
			for i, p := range results {
				a.printf("%d. %s (SKU %s) $%s - stock %d\n", i+1, p.Name, p.SKU, p.SalePrice, p.Quantity)
			}
		case "a":
			idx, err := strconv.Atoi(arg)
			if err != nil || idx < 1 || idx > len(results) {
				a.printf("elegí un número de resultado\n")
				continue
			}
			snapshot, err := results[idx-1].Snapshot()
			if err != nil {
				a.report(err)
				continue
			}
			if err := basket.AddProduct(snapshot); err != nil {
				a.report(err)
				continue
			}
			a.printTicket(basket)
		case "q":
			fields := strings.Fields(arg)
			if len(fields) != 2 {
				a.printf("uso: q <id> <cantidad>\n")
				continue
			}
			id, err1 := strconv.ParseInt(fields[0], 10, 64)
			qty, err2 := strconv.Atoi(fields[1])
			if err1 != nil || err2 != nil {
				a.printf("uso: q <id> <cantidad>\n")
				continue
			}
			if err := basket.SetQuantity(id, qty); err != nil {
				a.report(err)
				continue
			}
			a.printTicket(basket)
		case "r":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				a.printf("uso: r <id>\n")
				continue
			}
			basket.RemoveLine(id)
			a.printTicket(basket)
		case "d":
			amount, err := decimal.NewFromString(arg)
			if err != nil {
				a.printf("uso: d <monto>\n")
				continue
			}
			if err := basket.SetDiscount(amount); err != nil {
				a.report(err)
				continue
			}
			a.printTicket(basket)
		case "p":
			method, err := enums.ParsePaymentMethod(arg)
			if err != nil {
				a.printf("métodos: ")
				for _, m := range enums.PaymentMethods {
					a.printf("%s ", m)
				}
				a.printf("\n")
				continue
			}
			if err := basket.SetPaymentMethod(method); err != nil {
				a.report(err)
			}
		case "pa":
			amount, err := decimal.NewFromString(arg)
			if err != nil {
				a.printf("uso: pa <monto>\n")
				continue
			}
			if err := basket.SetPaidAmount(amount); err != nil {
				a.report(err)
			}
		case "c":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				a.printf("uso: c <id>\n")
				continue
			}
			basket.SetCustomer(id)
		case "cn":
			if arg == "" {
				basket.ClearCustomer()
				continue
			}
			basket.SetCustomerName(arg)
		case "n":
			basket.SetNotes(arg)
		case "t":
			a.printTicket(basket)
		case "ok":
			req, err := basket.Submission()
			if err != nil {
				a.report(err)
				continue
			}
			sale, err := a.sales.Create(screenCtx, req)
			if err != nil {
				if a.report(err) {
					return
				}
				continue
			}
			a.notifier.Push("venta "+sale.SaleNumber+" registrada, total $"+sale.Total.String(), enums.SeveritySuccess)
			return
		case "x":
			return
		}
	}
}

// refreshCatalog syncs the product snapshot in the background when it is
// stale. The result only applies if the operator is still on the screen
// that requested it.
func (a *App) refreshCatalog(ctx context.Context, gen uint64) {
	stale, err := a.catalog.Stale(ctx)
	if err != nil {
		a.report(err)
		return
	}
	if !stale {
		return
	}
	go func() {
		err := a.catalog.Sync(ctx)
		if !a.stillOn(gen) {
			return
		}
		if err != nil {
			a.report(err)
			return
		}
		a.notifier.Push("catálogo actualizado", enums.SeverityInfo)
	}()
}

func (a *App) printTicket(basket *cart.Cart) {
	if basket.Len() == 0 {
		a.printf("carrito vacío\n")
		return
	}
	for _, line := range basket.Lines() {
		a.printf("  [%d] %s x%d  $%s\n", line.ProductID, line.Name, line.Quantity, line.LineTotal())
	}
	a.printf("  subtotal $%s  descuento $%s  total $%s  pago %s\n",
		basket.Subtotal(), basket.Discount(), basket.Total(), basket.PaymentMethod().Label())
}
