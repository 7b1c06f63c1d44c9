// Package cascade keeps the country/state/city selection consistent with the
// candidate lists fetched from the location directory.
//
// The Controller is a plain state machine. It never performs I/O itself:
// selecting a value returns the Request that must be fetched, and the caller
// hands the outcome back through Apply. Every request carries a per-level
// sequence number and only the most recently issued request of a level is
// ever applied, whatever order the responses arrive in.
package cascade

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

var (
	// ErrUnknownOption is returned when the chosen name is not in the candidate list.
	ErrUnknownOption = errors.New("option is not in the candidate list")
	// ErrLevelDisabled is returned when the parent level has no selection yet.
	ErrLevelDisabled = errors.New("parent selection is missing")
)

// Request describes a fetch issued by the controller.
type Request struct {
	Level   Level
	Seq     uint64
	Country string
	State   string
}

// Result is the outcome of a Request.
type Result struct {
	Request Request
	Names   []string
	Err     error
}

// Controller owns a Selection and the bookkeeping for in-flight requests.
type Controller struct {
	sel     Selection
	seq     [len(levels)]uint64
	pending [len(levels)]bool
	errs    [len(levels)]error
	log     zerolog.Logger
}

// New creates a controller with an empty selection.
func New(log zerolog.Logger) *Controller {
	return &Controller{
		log: log.With().Str("component", "cascade").Logger(),
	}
}

// Mount resets the selection and issues the countries request.
func (c *Controller) Mount() Request {
	c.sel = Selection{}
	c.invalidate(States)
	c.invalidate(Cities)
	return c.issue(Countries)
}

// SelectCountry chooses a country. The state and city selections and their
// candidate lists are cleared before the states request is returned.
// Choosing the current country again re-issues the fetch.
func (c *Controller) SelectCountry(name string) (Request, error) {
	if !slices.Contains(c.sel.Countries, name) {
		return Request{}, fmt.Errorf("country %q: %w", name, ErrUnknownOption)
	}

	c.sel.Country = name
	c.sel.State = ""
	c.sel.City = ""
	c.sel.States = nil
	c.sel.Cities = nil
	c.invalidate(Cities)

	return c.issue(States), nil
}

// SelectState chooses a state of the selected country. The city selection and
// the city list are cleared before the cities request is returned.
func (c *Controller) SelectState(name string) (Request, error) {
	if c.sel.Country == "" {
		return Request{}, fmt.Errorf("state %q: %w", name, ErrLevelDisabled)
	}
	if !slices.Contains(c.sel.States, name) {
		return Request{}, fmt.Errorf("state %q: %w", name, ErrUnknownOption)
	}

	c.sel.State = name
	c.sel.City = ""
	c.sel.Cities = nil

	return c.issue(Cities), nil
}

// SelectCity chooses a city of the selected state.
func (c *Controller) SelectCity(name string) error {
	if c.sel.State == "" {
		return fmt.Errorf("city %q: %w", name, ErrLevelDisabled)
	}
	if !slices.Contains(c.sel.Cities, name) {
		return fmt.Errorf("city %q: %w", name, ErrUnknownOption)
	}

	c.sel.City = name
	return nil
}

// Apply stores the outcome of a request. It reports false and changes nothing
// when a newer request of the same level has been issued since, or when a
// parent selection changed after the request was made.
func (c *Controller) Apply(res Result) bool {
	req := res.Request
	if req.Level < Countries || req.Level > Cities {
		return false
	}
	if req.Seq != c.seq[req.Level] || !c.pending[req.Level] {
		c.log.Debug().
			Str("level", req.Level.String()).
			Uint64("seq", req.Seq).
			Uint64("latest", c.seq[req.Level]).
			Msg("Discarding stale result")
		return false
	}

	c.pending[req.Level] = false

	if res.Err != nil {
		c.errs[req.Level] = res.Err
		c.sel.setCandidates(req.Level, nil)
		c.log.Error().
			Err(res.Err).
			Str("level", req.Level.String()).
			Str("country", req.Country).
			Str("state", req.State).
			Msg("Failed to load candidates")
		return true
	}

	c.sel.setCandidates(req.Level, slices.Clone(res.Names))
	c.log.Debug().
		Str("level", req.Level.String()).
		Int("count", len(res.Names)).
		Msg("Candidates loaded")
	return true
}

// Selection returns a copy of the current selection.
func (c *Controller) Selection() Selection {
	return c.sel.clone()
}

// Phase returns the current state machine phase.
func (c *Controller) Phase() Phase {
	return c.sel.Phase()
}

// Enabled reports whether the control for level accepts a selection.
func (c *Controller) Enabled(l Level) bool {
	switch l {
	case Countries:
		return true
	case States:
		return c.sel.Country != ""
	case Cities:
		return c.sel.State != ""
	}
	return false
}

// Pending reports whether a request for level is in flight.
func (c *Controller) Pending(l Level) bool {
	return c.pending[l]
}

// Err returns the failure of the latest completed request for level, if any.
func (c *Controller) Err(l Level) error {
	return c.errs[l]
}

// Summary is Selection().Summary() without the copy.
func (c *Controller) Summary() string {
	return c.sel.Summary()
}

func (c *Controller) issue(l Level) Request {
	c.seq[l]++
	c.pending[l] = true
	c.errs[l] = nil

	req := Request{Level: l, Seq: c.seq[l]}
	if l >= States {
		req.Country = c.sel.Country
	}
	if l >= Cities {
		req.State = c.sel.State
	}

	c.log.Debug().
		Str("level", l.String()).
		Uint64("seq", req.Seq).
		Str("country", req.Country).
		Str("state", req.State).
		Msg("Issuing request")
	return req
}

// invalidate drops whatever request of level is in flight.
func (c *Controller) invalidate(l Level) {
	c.seq[l]++
	c.pending[l] = false
	c.errs[l] = nil
}
