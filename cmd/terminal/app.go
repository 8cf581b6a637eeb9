package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/puntotecno/terminal/internal/catalog"
	"github.com/puntotecno/terminal/internal/customers"
	"github.com/puntotecno/terminal/internal/inventory"
	"github.com/puntotecno/terminal/internal/notify"
	"github.com/puntotecno/terminal/internal/orders"
	"github.com/puntotecno/terminal/internal/sales"
	"github.com/puntotecno/terminal/internal/session"
	"github.com/puntotecno/terminal/pkg/config"
	"github.com/puntotecno/terminal/pkg/enums"
	pkgerrors "github.com/puntotecno/terminal/pkg/errors"
	"github.com/puntotecno/terminal/pkg/logger"
)

// AppParams wires every dependency of the interactive terminal.
type AppParams struct {
	Config    *config.Config
	Logger    *logger.Logger
	Guard     *session.Guard
	Sales     sales.Service
	Orders    orders.Service
	Workflow  *orders.Workflow
	Customers customers.Service
	Inventory inventory.Service
	Catalog   *catalog.Cache
	Notifier  *notify.Notifier
	In        io.Reader
	Out       io.Writer
}

// App is the interactive shop terminal: a login screen, a role-gated menu
// and the per-entity screens behind it.
type App struct {
	cfg       *config.Config
	logg      *logger.Logger
	guard     *session.Guard
	sales     sales.Service
	orders    orders.Service
	workflow  *orders.Workflow
	customers customers.Service
	inventory inventory.Service
	catalog   *catalog.Cache
	notifier  *notify.Notifier
	in        *bufio.Reader
	out       io.Writer
	now       func() time.Time

	// Generation guard: every screen change bumps gen and cancels the
	// previous screen's context, so responses that arrive after the
	// operator navigated away are dropped instead of applied.
	mu           sync.Mutex
	gen          uint64
	screenCancel context.CancelFunc
}

// NewApp assembles the terminal.
func NewApp(p AppParams) *App {
	return &App{
		cfg:       p.Config,
		logg:      p.Logger,
		guard:     p.Guard,
		sales:     p.Sales,
		orders:    p.Orders,
		workflow:  p.Workflow,
		customers: p.Customers,
		inventory: p.Inventory,
		catalog:   p.Catalog,
		notifier:  p.Notifier,
		in:        bufio.NewReader(p.In),
		out:       p.Out,
		now:       time.Now,
	}
}

// Run drives the screen loop until the operator quits or input ends.
func (a *App) Run(ctx context.Context) error {
	for {
		a.drainNotifications()
		switch a.guard.Authorize(ctx, false) {
		case session.DecisionRedirectLogin:
			done, err := a.loginScreen(ctx)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		default:
			done, err := a.homeScreen(ctx)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// enterScreen cancels whatever the previous screen had in flight and
// returns the new screen's context plus its generation.
func (a *App) enterScreen(ctx context.Context, name string) (context.Context, uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screenCancel != nil {
		a.screenCancel()
	}
	screenCtx, cancel := context.WithCancel(ctx)
	a.screenCancel = cancel
	a.gen++
	return a.logg.WithScreen(screenCtx, name), a.gen
}

// stillOn reports whether the operator is still on the screen that issued
// the request.
func (a *App) stillOn(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen == gen
}

// report pushes a failure to the notifier and returns true when the error
// is fatal for the session, sending the loop back to the login screen.
func (a *App) report(err error) bool {
	if err == nil {
		return false
	}
	coded := pkgerrors.As(err)
	if coded == nil {
		coded = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "")
	}
	a.notifier.Push(coded.PublicMessage(), severityFor(coded.Code()))
	return coded.Fatal()
}

func severityFor(code pkgerrors.Code) enums.Severity {
	switch code {
	case pkgerrors.CodeOutOfStock, pkgerrors.CodeStockLimit, pkgerrors.CodeValidation:
		return enums.SeverityWarning
	default:
		return enums.SeverityError
	}
}

func (a *App) drainNotifications() {
	for _, item := range a.notifier.Active(a.now()) {
		fmt.Fprintf(a.out, "[%s] %s\n", item.Severity, item.Message)
		a.notifier.Dismiss(item.ID)
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// readLine returns the next trimmed input line. io.EOF means the operator
// closed the terminal.
func (a *App) readLine(prompt string) (string, error) {
	a.printf("%s", prompt)
	line, err := a.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) loginScreen(ctx context.Context) (bool, error) {
	screenCtx, _ := a.enterScreen(ctx, "login")
	a.printf("\n== PuntoTecno - Iniciar sesión ==\n")

	username, err := a.readLine("Usuario: ")
	if err != nil {
		return true, nil
	}
	password, err := a.readLine("Contraseña: ")
	if err != nil {
		return true, nil
	}

	sess, err := a.guard.Login(screenCtx, username, password)
	if err != nil {
		a.report(err)
		return false, nil
	}
	a.notifier.Push(fmt.Sprintf("bienvenido, %s", sess.DisplayName()), enums.SeveritySuccess)
	return false, nil
}

func (a *App) homeScreen(ctx context.Context) (bool, error) {
	screenCtx, _ := a.enterScreen(ctx, "home")
	sess := a.guard.Current(screenCtx)
	if sess == nil {
		return false, nil
	}
	admin := sess.IsAdmin()

	a.printf("\n== PuntoTecno - %s (%s) ==\n", sess.DisplayName(), sess.Role.String())
	a.printf("1. Nueva venta\n")
	a.printf("2. Órdenes de reparación\n")
	a.printf("3. Clientes\n")
	a.printf("4. Inventario\n")
	if admin {
		a.printf("5. Reportes\n")
	}
	a.printf("6. Cambiar contraseña\n")
	a.printf("7. Cerrar sesión\n")
	a.printf("0. Salir\n")

	choice, err := a.readLine("> ")
	if err != nil {
		return true, nil
	}
	switch choice {
	case "1":
		a.saleScreen(ctx)
	case "2":
		a.ordersScreen(ctx)
	case "3":
		a.customersScreen(ctx)
	case "4":
		a.inventoryScreen(ctx)
	case "5":
		if a.guard.Authorize(screenCtx, true) != session.DecisionAllow {
			a.notifier.Push("no tenés permisos para ver reportes", enums.SeverityWarning)
			return false, nil
		}
		a.reportsScreen(ctx)
	case "6":
		a.passwordScreen(ctx)
	case "7":
		if err := a.guard.Logout(screenCtx); err != nil {
			a.report(err)
		}
	case "0":
		return true, nil
	}
	return false, nil
}

func (a *App) passwordScreen(ctx context.Context) {
	screenCtx, _ := a.enterScreen(ctx, "password")
	oldPassword, err := a.readLine("Contraseña actual: ")
	if err != nil {
		return
	}
	newPassword, err := a.readLine("Nueva contraseña: ")
	if err != nil {
		return
	}
	if err := a.guard.ChangePassword(screenCtx, oldPassword, newPassword); err != nil {
		a.report(err)
		return
	}
	a.notifier.Push("contraseña actualizada", enums.SeveritySuccess)
}
