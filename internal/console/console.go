package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/mateusmacedo/go-fleet/internal/auth"
	"github.com/mateusmacedo/go-fleet/internal/fleet/application"
	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	pkgApp "github.com/mateusmacedo/go-fleet/pkg/application"
)

// Fleet é o conjunto de operações que os menus usam.
type Fleet interface {
	Login(ctx context.Context, username, password string, role domain.Role) (*auth.Session, error)
	Logout(ctx context.Context, session *auth.Session)

	Routes() []domain.Route
	SearchRoutes(filter application.RouteFilter) []domain.Route
	FindRoute(id string) (domain.Route, bool)
	AddRoute(ctx context.Context, r domain.Route) error
	UpdateRoute(ctx context.Context, id string, r domain.Route) error
	RemoveRoute(ctx context.Context, id string) error

	Buses() []domain.Bus
	FindBus(id string) (domain.Bus, bool)
	AddBus(ctx context.Context, b domain.Bus) error
	UpdateBus(ctx context.Context, id string, b domain.Bus) error
	RemoveBus(ctx context.Context, id string) error

	Drivers() []domain.Driver
	FindDriver(id string) (domain.Driver, bool)
	AddDriver(ctx context.Context, d domain.Driver) error
	UpdateDriver(ctx context.Context, id string, d domain.Driver) error
	UpdateDriverContact(ctx context.Context, id, contact string) error
	RemoveDriver(ctx context.Context, id string) error

	FindSchedule(id string) (domain.Schedule, bool)
	Schedules(ctx context.Context, filter application.FindSchedulesData) ([]domain.Schedule, error)
	AddSchedule(ctx context.Context, s domain.Schedule) error
	UpdateSchedule(ctx context.Context, id string, s domain.Schedule) error
	RemoveSchedule(ctx context.Context, id string) error

	RequestDayOff(ctx context.Context, request domain.DayOffRequest) error
	DayOffRequests(ctx context.Context) ([]domain.DayOffRequest, error)
}

// PasswordReader lê a senha sem eco. Nil faz a senha ser lida como linha comum.
type PasswordReader func() (string, error)

// TerminalPasswordReader usa term.ReadPassword no descritor informado.
func TerminalPasswordReader(fd int, out io.Writer) PasswordReader {
	return func() (string, error) {
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		return string(password), err
	}
}

type Option func(*Console)

func WithPasswordReader(reader PasswordReader) Option {
	return func(c *Console) {
		c.readPassword = reader
	}
}

type Console struct {
	fleet        Fleet
	in           *bufio.Reader
	out          io.Writer
	readPassword PasswordReader
	styles       styles
	logger       pkgApp.AppLogger
}

func New(fleet Fleet, in io.Reader, out io.Writer, logger pkgApp.AppLogger, opts ...Option) *Console {
	c := &Console{
		fleet:  fleet,
		in:     bufio.NewReader(in),
		out:    out,
		styles: newStyles(out),
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executa o menu principal até a opção de saída, o fim da entrada ou o
// cancelamento do contexto.
func (c *Console) Run(ctx context.Context) error {
	pkgApp.LogDebug(ctx, c.logger, "console started", nil)
	err := c.mainMenu(ctx)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	pkgApp.LogDebug(ctx, c.logger, "console finished", nil)
	return err
}

func (c *Console) mainMenu(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.title("BUS MANAGEMENT SYSTEM")
		choice, err := c.menu("Main Menu", "Admin Login", "Driver Login", "Passenger Services", "Exit")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = c.loginAs(ctx, domain.RoleAdmin, c.adminDashboard)
		case 2:
			err = c.loginAs(ctx, domain.RoleDriver, c.driverDashboard)
		case 3:
			err = c.passengerMenu(ctx)
		case 4:
			c.println("Thank you for using the Bus Management System. Goodbye!")
			return nil
		default:
			c.failure("Invalid choice. Please try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) loginAs(ctx context.Context, role domain.Role, dashboard func(context.Context, *auth.Session) error) error {
	c.heading(role.String() + " Login")
	username, err := c.prompt("Username: ")
	if err != nil {
		return err
	}
	password, err := c.password("Password: ")
	if err != nil {
		return err
	}
	if username == "" || password == "" {
		c.failure("Username and password cannot be empty.")
		return nil
	}

	session, err := c.fleet.Login(ctx, username, password, role)
	if err != nil {
		c.failure("Login failed: " + err.Error())
		return nil
	}
	c.success("Login successful. Welcome, " + session.User.Username + "!")
	defer c.fleet.Logout(ctx, session)
	return dashboard(ctx, session)
}

func (c *Console) password(label string) (string, error) {
	if c.readPassword == nil {
		return c.prompt(label)
	}
	fmt.Fprint(c.out, label)
	password, err := c.readPassword()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(password), nil
}

// report mostra o resultado de uma operação que altera dados.
func (c *Console) report(ctx context.Context, op string, err error, okMessage string) {
	if err == nil {
		c.success(okMessage)
		return
	}
	if !domain.IsRejection(err) {
		pkgApp.LogError(ctx, c.logger, "console operation failed", err, map[string]interface{}{
			"operation": op,
		})
	}
	c.failure("Error: " + err.Error())
}
