package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/puntotecno/terminal/internal/customers"
	"github.com/puntotecno/terminal/internal/inventory"
	"github.com/puntotecno/terminal/pkg/enums"
	"github.com/puntotecno/terminal/pkg/rest"
)

// customersScreen lists, inspects and registers customers.
func (a *App) customersScreen(ctx context.Context) {
	screenCtx, _ := a.enterScreen(ctx, "customers")

	a.printf("\n== Clientes ==\n")
	a.printf("Comandos: b <texto> buscar · v <id> ver · n nuevo · x volver\n")

	for {
		a.drainNotifications()
		line, err := a.readLine("clientes> ")
		if err != nil {
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "b":
			page, err := a.customers.List(screenCtx, rest.ListParams{Search: arg, PageSize: 20})
			if err != nil {
				if a.report(err) {
					return
				}
				continue
			}
			for _, c := range page.Items {
				a.printf("  [%d] %s - %s - %d órdenes\n", c.ID, c.FullName, c.Phone, c.OrdersCount)
			}
		case "v":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				a.printf("uso: v <id>\n")
				continue
			}
			customer, err := a.customers.Get(screenCtx, id)
			if err != nil {
				if a.report(err) {
					return
				}
				continue
			}
			a.printf("%s - DNI %s - %s - %s\n", customer.FullName, customer.DNI, customer.Phone, customer.Email)
			history, err := a.customers.Orders(screenCtx, id)
			if err != nil {
				a.report(err)
				continue
			}
			a.printOrders(history)
		case "n":
			if fatal := a.newCustomer(screenCtx); fatal {
				return
			}
		case "x":
			return
		}
	}
}

func (a *App) newCustomer(ctx context.Context) bool {
	var input customers.CustomerInput
	var err error
	if input.DNI, err = a.readLine("DNI: "); err != nil {
		return false
	}
	if input.FirstName, err = a.readLine("Nombre: "); err != nil {
		return false
	}
	if input.LastName, err = a.readLine("Apellido: "); err != nil {
		return false
	}
	if input.Phone, err = a.readLine("Teléfono: "); err != nil {
		return false
	}
	if input.Email, err = a.readLine("Email (opcional): "); err != nil {
		return false
	}

	customer, err := a.customers.Create(ctx, input)
	if err != nil {
		return a.report(err)
	}
	a.notifier.Push("cliente "+customer.FullName+" registrado", enums.SeveritySuccess)
	return false
}

// inventoryScreen browses products; stock adjustments are admin-only.
func (a *App) inventoryScreen(ctx context.Context) {
	screenCtx, _ := a.enterScreen(ctx, "inventory")
	admin := a.guard.IsAdmin(screenCtx)

	a.printf("\n== Inventario ==\n")
	a.printf("Comandos: b <texto> buscar · v <id> ver · low stock bajo")
	if admin {
		a.printf(" · s <id> ajustar stock")
	}
	a.printf(" · x volver\n")

	for {
		a.drainNotifications()
		line, err := a.readLine("inventario> ")
		if err != nil {
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "b":
			page, err := a.inventory.ListProducts(screenCtx, inventory.ProductListParams{
				ListParams: rest.ListParams{Search: arg, PageSize: 20},
			})
			if err != nil {
				if a.report(err) {
					return
				}
				continue
			}
			for _, p := range page.Items {
				a.printf("  [%d] %s (SKU %s) $%s - stock %d\n", p.ID, p.Name, p.SKU, p.SalePrice, p.Quantity)
			}
		case "v":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				a.printf("uso: v <id>\n")
				continue
			}
			product, err := a.inventory.GetProduct(screenCtx, id)
			if err != nil {
				if a.report(err) {
					return
				}
				continue
			}
			a.printf("%s (SKU %s) - %s\n", product.Name, product.SKU, product.CategoryName)
			a.printf("stock %d (mínimo %d) - costo $%s - venta $%s\n",
				product.Quantity, product.MinStock, product.UnitPrice, product.SalePrice)
			if product.IsLowStock {
				a.printf("⚠ stock bajo el mínimo\n")
			}
		case "low":
			low, err := a.inventory.LowStockAlerts(screenCtx)
			if err != nil {
				if a.report(err) {
					return
				}
				continue
			}
			for _, p := range low {
				a.printf("  [%d] %s - stock %d / mínimo %d\n", p.ID, p.Name, p.Quantity, p.MinStock)
			}
		case "s":
			if !admin {
				a.notifier.Push("solo un administrador puede ajustar stock", enums.SeverityWarning)
				continue
			}
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				a.printf("uso: s <id>\n")
				continue
			}
			if fatal := a.adjustStock(screenCtx, id); fatal {
				return
			}
		case "x":
			return
		}
	}
}

func (a *App) adjustStock(ctx context.Context, id int64) bool {
	raw, err := a.readLine("Movimiento (in/out/adjustment): ")
	if err != nil {
		return false
	}
	movement, err := enums.ParseMovementType(raw)
	if err != nil {
		a.printf("movimiento inválido\n")
		return false
	}
	rawQty, err := a.readLine("Cantidad: ")
	if err != nil {
		return false
	}
	qty, err := strconv.Atoi(rawQty)
	if err != nil {
		a.printf("cantidad inválida\n")
		return false
	}
	reason, err := a.readLine("Motivo: ")
	if err != nil {
		return false
	}

	product, err := a.inventory.UpdateStock(ctx, id, movement, qty, reason)
	if err != nil {
		return a.report(err)
	}
	a.notifier.Push("stock de "+product.Name+" ahora "+strconv.Itoa(product.Quantity), enums.SeveritySuccess)
	return false
}

// reportsScreen shows the admin dashboards and daily summaries.
func (a *App) reportsScreen(ctx context.Context) {
	screenCtx, _ := a.enterScreen(ctx, "reports")

	a.printf("\n== Reportes ==\n")
	a.printf("Comandos: v ventas del día · v <fecha> (YYYY-MM-DD) · d dashboard ventas\n")
	a.printf("          o dashboard órdenes · i estadísticas inventario · x volver\n")

	for {
		a.drainNotifications()
		line, err := a.readLine("reportes> ")
		if err != nil {
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "v":
			report, err := a.sales.DailyReport(screenCtx, arg)
			if err != nil {
				if a.report(err) {
					return
				}
				continue
			}
			a.printf("%s: %d ventas, $%s\n", report.Date, report.Count, report.Total)
			for _, item := range report.ByPaymentMethod {
				a.printf("  %s: %d ventas, $%s\n", item.PaymentMethod.Label(), item.Count, item.Total)
			}
		case "d":
			dashboard, err := a.sales.Dashboard(screenCtx)
			if err != nil {
				if a.report(err) {
					return
				}
				continue
			}
			a.printf("hoy: %d ventas, $%s - mes: %d ventas, $%s\n",
				dashboard.TodayCount, dashboard.TodayTotal, dashboard.MonthCount, dashboard.MonthTotal)
		case "o":
			dashboard, err := a.orders.Dashboard(screenCtx)
			if err != nil {
				if a.report(err) {
					return
				}
				continue
			}
			a.printf("órdenes: %d en total, %d pendientes, %d en servicio, %d listas\n",
				dashboard.TotalOrders, dashboard.PendingOrders, dashboard.InServiceCount, dashboard.ReadyCount)
			a.printf("mes: %d órdenes, ingresos $%s\n", dashboard.OrdersThisMonth, dashboard.RevenueThisMonth)
		case "i":
			stats, err := a.inventory.Statistics(screenCtx)
			if err != nil {
				if a.report(err) {
					return
				}
				continue
			}
			a.printf("%d productos activos, %d con stock bajo, valor total $%s, %d categorías\n",
				stats.TotalProducts, stats.LowStockCount, stats.TotalInventoryValue, stats.CategoriesCount)
		case "x":
			return
		}
	}
}
