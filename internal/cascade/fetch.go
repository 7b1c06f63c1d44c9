package cascade

import "context"

// Directory is the read side of the location directory service.
type Directory interface {
	ListCountries(ctx context.Context) ([]string, error)
	ListStates(ctx context.Context, country string) ([]string, error)
	ListCities(ctx context.Context, country, state string) ([]string, error)
}

// Fetch performs req against dir.
func Fetch(ctx context.Context, dir Directory, req Request) Result {
	var (
		names []string
		err   error
	)
	switch req.Level {
	case Countries:
		names, err = dir.ListCountries(ctx)
	case States:
		names, err = dir.ListStates(ctx, req.Country)
	case Cities:
		names, err = dir.ListCities(ctx, req.Country, req.State)
	}
	return Result{Request: req, Names: names, Err: err}
}
