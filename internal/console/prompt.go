package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mateusmacedo/go-fleet/internal/fleet/application"
	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
)

// prompt lê uma linha já sem espaços nas pontas. io.EOF só é devolvido
// quando não sobrou nada para ler.
func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptValid repete a pergunta até check aceitar o valor.
func (c *Console) promptValid(label string, check func(string) error) (string, error) {
	for {
		value, err := c.prompt(label)
		if err != nil {
			return "", err
		}
		if err := check(value); err != nil {
			c.failure(err.Error())
			continue
		}
		return value, nil
	}
}

// promptOptional aceita vazio (manter o valor atual) ou um valor que passe em check.
func (c *Console) promptOptional(label string, check func(string) error) (string, error) {
	return c.promptValid(label, func(v string) error {
		if v == "" {
			return nil
		}
		return check(v)
	})
}

func (c *Console) menu(heading string, options ...string) (int, error) {
	c.heading(heading)
	for i, option := range options {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, option)
	}
	line, err := c.prompt("Enter your choice: ")
	if err != nil {
		return 0, err
	}
	choice, convErr := strconv.Atoi(line)
	if convErr != nil || choice < 1 || choice > len(options) {
		return 0, nil
	}
	return choice, nil
}

func (c *Console) confirm(label string) (bool, error) {
	answer, err := c.prompt(label + " (yes/no): ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "yes" || answer == "y", nil
}

func (c *Console) title(text string) {
	fmt.Fprintln(c.out, c.styles.title.Render(text))
}

func (c *Console) heading(text string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.heading.Render("=== "+text+" ==="))
}

func (c *Console) println(text string) {
	fmt.Fprintln(c.out, text)
}

func (c *Console) success(text string) {
	fmt.Fprintln(c.out, c.styles.success.Render(text))
}

func (c *Console) failure(text string) {
	fmt.Fprintln(c.out, c.styles.failure.Render(text))
}

func (c *Console) field(label string, value interface{}) {
	fmt.Fprintf(c.out, "%s %v\n", c.styles.label.Render(label+":"), value)
}

// Validações de entrada do console. Os mesmos formatos são exigidos pelo
// ScheduleEngine via application.ValidateScheduleInput.

func checkID(kind string) func(string) error {
	return func(v string) error {
		if !domain.IsValidID(v) {
			return fmt.Errorf("%s ID must be 1-20 characters without spaces or commas", kind)
		}
		return nil
	}
}

func checkText(field string) func(string) error {
	return func(v string) error {
		if v == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return application.ValidateText("", field, v)
	}
}

func checkDate(v string) error {
	if !domain.IsValidDate(v) {
		return errors.New("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func checkTime(v string) error {
	if !domain.IsValidTime(v) {
		return errors.New("invalid time format, use HH:MM (00:00-23:59)")
	}
	return nil
}

func checkPositive(field string) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive number", field)
		}
		return nil
	}
}

func checkStatus(v string) error {
	if _, ok := domain.ParseBusStatus(v); !ok {
		return errors.New("status must be Active, Maintenance or Inactive")
	}
	return nil
}

func checkContact(v string) error {
	if len(v) < domain.MinContactLength {
		return fmt.Errorf("contact info must have at least %d characters", domain.MinContactLength)
	}
	return application.ValidateText("", "Contact info", v)
}

func checkStops(v string) error {
	if strings.ContainsAny(v, ",\n\r") {
		return errors.New("key stops cannot contain commas")
	}
	return nil
}

func parseStopsInput(v string) []string {
	stops := []string{}
	for _, stop := range strings.Split(v, domain.StopSeparator) {
		if stop = strings.TrimSpace(stop); stop != "" {
			stops = append(stops, stop)
		}
	}
	return stops
}

// keep devolve current quando o valor digitado é vazio.
func keep(value, current string) string {
	if value == "" {
		return current
	}
	return value
}
