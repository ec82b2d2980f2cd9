package validate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"gridiron-data-service/internal/domain/games"
	"gridiron-data-service/internal/domain/odds"
	"gridiron-data-service/internal/domain/weather"
)

// Mode selects how batches handle invalid records.
type Mode string

const (
	// ModeDrop discards invalid records and keeps the rest of the batch.
	ModeDrop Mode = "drop"
	// ModeStrict aborts the whole batch on the first invalid record.
	ModeStrict Mode = "strict"
)

// ParseMode maps a config string onto a Mode, defaulting to drop.
func ParseMode(raw string) Mode {
	if raw == string(ModeStrict) {
		return ModeStrict
	}
	return ModeDrop
}

// Validator checks domain records against the business-rule ranges
// (realistic spreads, totals, odds, temperatures, scores, weeks).
type Validator struct {
	v *validator.Validate
}

// New constructs a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// American odds: non-zero, within +/-10000.
	_ = v.RegisterValidation("american_odds", func(fl validator.FieldLevel) bool {
		price := fl.Field().Int()
		return price != 0 && price >= -10000 && price <= 10000
	})
	v.RegisterStructValidation(gameRules, games.Game{})
	return &Validator{v: v}
}

func gameRules(sl validator.StructLevel) {
	g, ok := sl.Current().Interface().(games.Game)
	if !ok {
		return
	}
	if !g.League.Valid() {
		sl.ReportError(g.League, "League", "league", "league", "")
		return
	}
	min, max := g.League.WeekBounds()
	if g.Week < min || g.Week > max {
		sl.ReportError(g.Week, "Week", "week", "week_range", "")
	}
}

// Movement validates a single odds observation.
func (c *Validator) Movement(m odds.Movement) error {
	return c.wrap("odds movement", c.v.Struct(m))
}

// Game validates a game record, including any attached odds and weather.
func (c *Validator) Game(g games.Game) error {
	return c.wrap("game", c.v.Struct(g))
}

// Conditions validates a normalized weather record.
func (c *Validator) Conditions(w weather.Conditions) error {
	return c.wrap("weather conditions", c.v.Struct(w))
}

func (c *Validator) wrap(kind string, err error) error {
	if err == nil {
		return nil
	}
	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		fields := make([]string, 0, len(invalid))
		for _, fe := range invalid {
			fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
		}
		return &RecordError{Kind: kind, Fields: fields}
	}
	return err
}

// RecordError describes which fields of a record violated the rules.
type RecordError struct {
	Kind   string
	Fields []string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Kind, e.Fields)
}

// BatchError signals that a strict-mode batch was aborted.
type BatchError struct {
	Kind  string
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%s batch aborted at record %d: %v", e.Kind, e.Index, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// AsBatchError attempts to unwrap an error into a BatchError.
func AsBatchError(err error) (*BatchError, bool) {
	var be *BatchError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
