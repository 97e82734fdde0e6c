package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
	"github.com/alexisbeaulieu97/calgrid/internal/codec"
	"github.com/alexisbeaulieu97/calgrid/internal/config"
	"github.com/alexisbeaulieu97/calgrid/internal/store"
)

type clickRequest struct {
	Date string `json:"date" validate:"required,calendar_date"`
}

type resolveRequest struct {
	Token string `json:"token"`
	Date  string `json:"date" validate:"required,calendar_date"`
}

// Months renders the grids starting at :month, decorated with the stored selection
// of ?calendar when one is given.
func (handler *Handler) Months(c *fiber.Ctx) error {
	start, err := calendar.ParseMonth(c.Params("month"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	weekStart := handler.opts.WeekStart
	if raw := strings.TrimSpace(c.Query("week_start")); raw != "" {
		weekStart, err = calendar.ParseWeekday(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	count := c.QueryInt("count", handler.opts.NumberOfMonths)
	if count < 1 || count > maxMonths {
		return apiError(c, fiber.StatusBadRequest, "count must be between 1 and 12")
	}

	locale := handler.opts.Locale
	if raw := strings.TrimSpace(c.Query("locale")); raw != "" {
		if !calendar.IsSupportedLocale(raw) {
			return apiError(c, fiber.StatusBadRequest, "unsupported locale "+raw)
		}
		locale = raw
	}
	if locale == "" {
		locale = calendar.DefaultLocale
	}

	weekNumbers := c.QueryBool("week_numbers", handler.opts.ShowWeekNumbers)

	view := monthsView{
		Prev: start.Prev().String(),
		Next: start.Next().String(),
	}

	sel := calendar.EmptySelection(handler.opts.Mode)
	if name := strings.TrimSpace(c.Query("calendar")); name != "" {
		state, ok, err := handler.store.Get(c.UserContext(), name)
		if err != nil {
			return err
		}
		if ok {
			sel = handler.inMode(state.Selection)
		}
		selection := newSelectionView(sel)
		view.Calendar = name
		view.Selection = &selection
	}

	grids := handler.builder.BuildMonths(start, count, weekStart, weekNumbers)
	view.Months = make([]monthView, len(grids))
	for i, grid := range grids {
		view.Months[i] = newMonthView(grid, sel, handler.opts.Constraints, locale)
	}
	return respond(c, fiber.StatusOK, view)
}

// ListCalendars returns every stored calendar ordered by name.
func (handler *Handler) ListCalendars(c *fiber.Ctx) error {
	states, err := handler.store.List(c.UserContext())
	if err != nil {
		return err
	}
	views := make([]stateView, len(states))
	for i, state := range states {
		views[i] = newStateView(state)
	}
	return respond(c, fiber.StatusOK, views)
}

// GetCalendar returns one stored calendar.
func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	name := c.Params("name")
	var before, after calendar.Selection
	state, err := handler.store.Update(c.UserContext(), name, func(current store.State, ok bool) (store.State, error) {
		if !ok {
			current = store.State{Month: calendar.MonthOf(clicked)}
		}
		before = handler.inMode(current.Selection)
		after = calendar.ResolveClick(before, clicked, handler.opts.Constraints.IsDisabled)
		current.Selection = after
		current.UpdatedAt = handler.now().UTC()
		return current, nil
	})
	if err != nil {
		return err
	}
	handler.log.WithCalendar(name).Click(clicked, before, after)

	return respond(c, fiber.StatusOK, clickView{
		stateView: newStateView(state),
		Changed:   !before.Equal(after),
	})
}

// Resolve applies one click to a selection carried in a signed token and returns
// the next token. Nothing is stored; an empty token starts from an empty selection.
func (handler *Handler) Resolve(c *fiber.Ctx) error {
	var request resolveRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := config.ValidateStruct(&request); err != nil {
		return err
	}
	clicked, err := calendar.ParseDate(request.Date)
	if err != nil {
		return err
	}

	tok := codec.Token{
		Selection: calendar.EmptySelection(handler.opts.Mode),
		Month:     calendar.MonthOf(clicked),
	}
	if request.Token != "" {
		tok, err = handler.codec.Decode(request.Token)
		if err != nil {
			return err
		}
		tok.Selection = handler.inMode(tok.Selection)
	}

	before := tok.Selection
	tok.Selection = calendar.ResolveClick(before, clicked, handler.opts.Constraints.IsDisabled)
	handler.log.Click(clicked, before, tok.Selection)

	encoded, err := handler.codec.Encode(tok)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, resolveView{
		Selection: newSelectionView(tok.Selection),
		Token:     encoded,
		Changed:   !before.Equal(tok.Selection),
	})
}

// inMode returns sel, or an empty selection when sel was made in a mode other
// than the configured one.
func (handler *Handler) inMode(sel calendar.Selection) calendar.Selection {
	if sel.Mode() != handler.opts.Mode {
		return calendar.EmptySelection(handler.opts.Mode)
	}
	return sel
}

func (handler *Handler) now() time.Time {
	if handler.builder.Now != nil {
		return handler.builder.Now()
	}
	return time.Now()
}
