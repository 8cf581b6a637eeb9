package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/puntotecno/terminal/internal/orders"
	"github.com/puntotecno/terminal/pkg/enums"
	"github.com/puntotecno/terminal/pkg/rest"
	"github.com/shopspring/decimal"
)

// ordersScreen lists repair orders and drives the status workflow.
func (a *App) ordersScreen(ctx context.Context) {
	screenCtx, _ := a.enterScreen(ctx, "orders")

	a.printf("\n== Órdenes de reparación ==\n")
	a.printf("Comandos: l listar · l <estado> filtrar · b <texto> buscar · v <id> ver\n")
	a.printf("          e <id> cambiar estado · m mis órdenes · x volver\n")

	for {
		a.drainNotifications()
		line, err := a.readLine("órdenes> ")
		if err != nil {
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "l":
			params := orders.ListParams{ListParams: rest.ListParams{PageSize: 20}}
			if arg != "" {
				status, err := enums.ParseOrderStatus(arg)
				if err != nil {
					a.printf("estados: ")
					for _, s := range enums.OrderStatuses {
						a.printf("%s ", s)
					}
					a.printf("\n")
					continue
				}
				params.Status = status.String()
			}
			a.listOrders(screenCtx, params)
		case "b":
			a.listOrders(screenCtx, orders.ListParams{
				ListParams: rest.ListParams{Search: arg, PageSize: 20},
			})
		case "m":
			mine, err := a.orders.MyOrders(screenCtx)
			if err != nil {
				if a.report(err) {
					return
				}
				continue
			}
			a.printOrders(mine)
		case "v":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				a.printf("uso: v <id>\n")
				continue
			}
			order, err := a.orders.Get(screenCtx, id)
			if err != nil {
				if a.report(err) {
					return
				}
				continue
			}
			a.printOrderDetail(order)
		case "e":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				a.printf("uso: e <id>\n")
				continue
			}
			if fatal := a.changeStatus(screenCtx, id); fatal {
				return
			}
		case "x":
			return
		}
	}
}

func (a *App) listOrders(ctx context.Context, params orders.ListParams) {
	page, err := a.orders.List(ctx, params)
	if err != nil {
		a.report(err)
		return
	}
	a.printOrders(page.Items)
	a.printf("%d en total\n", page.TotalCount)
}

func (a *App) printOrders(items []orders.RepairOrder) {
	if len(items) == 0 {
		a.printf("sin órdenes\n")
		return
	}
	for _, o := range items {
		a.printf("  [%d] %s - %s - %s %s - %s\n",
			o.ID, o.OrderNumber, o.CustomerName, o.DeviceBrand, o.DeviceModel, o.Status.Label())
	}
}

func (a *App) printOrderDetail(o *orders.RepairOrder) {
	a.printf("\nOrden %s - %s\n", o.OrderNumber, o.Status.Label())
	a.printf("Cliente: %s (%s)\n", o.CustomerName, o.CustomerPhone)
	a.printf("Equipo: %s %s %s %s\n", o.DeviceType.Label(), o.DeviceBrand, o.DeviceModel, o.DeviceColor)
	a.printf("Problema: %s\n", o.ProblemDescription)
	if o.Diagnosis != "" {
		a.printf("Diagnóstico: %s\n", o.Diagnosis)
	}
	if o.EstimatedCost != nil {
		a.printf("Costo estimado: $%s\n", o.EstimatedCost)
	}
	if o.FinalCost != nil {
		a.printf("Costo final: $%s\n", o.FinalCost)
	}
	if o.DepositAmount.IsPositive() {
		a.printf("Seña: $%s\n", o.DepositAmount)
	}
	for _, change := range o.StatusHistory {
		a.printf("  %s: %s → %s (%s)\n",
			change.CreatedAt.Format("2006-01-02 15:04"),
			change.PreviousStatus.Label(), change.NewStatus.Label(), change.ChangedByName)
	}
}

// changeStatus shows every status except the current one and applies the
// chosen transition. On failure the displayed order stays as it was.
func (a *App) changeStatus(ctx context.Context, id int64) bool {
	order, err := a.orders.Get(ctx, id)
	if err != nil {
		return a.report(err)
	}
	a.printf("Orden %s está %s. Nuevo estado:\n", order.OrderNumber, order.Status.Label())

	transitions := orders.AvailableTransitions(order.Status)
	for i, status := range transitions {
		a.printf("%d. %s\n", i+1, status.Label())
	}
	choice, err := a.readLine("> ")
	if err != nil {
		return false
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(transitions) {
		return false
	}
	notes, err := a.readLine("Notas: ")
	if err != nil {
		return false
	}

	updated, err := a.workflow.ApplyTransition(ctx, id, transitions[idx-1], notes)
	if err != nil {
		return a.report(err)
	}
	a.notifier.Push("orden "+updated.OrderNumber+" ahora "+updated.Status.Label(), enums.SeveritySuccess)

	if updated.PaymentMethod.Deferred() && updated.RemainingBalance.IsPositive() {
		a.printf("Saldo pendiente $%s. Registrar pago? (monto o enter): ", updated.RemainingBalance)
		raw, err := a.readLine("")
		if err != nil || raw == "" {
			return false
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			a.printf("monto inválido\n")
			return false
		}
		if _, err := a.orders.AddPayment(ctx, id, amount); err != nil {
			return a.report(err)
		}
		a.notifier.Push("pago registrado", enums.SeveritySuccess)
	}
	return false
}
