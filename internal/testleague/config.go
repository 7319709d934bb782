package testleague

// Config holds the shape of a generated league.
type Config struct {
	Seed    uint64   // Seed for every random draw
	Weeks   int      // Number of weeks of projections and games
	Teams   int      // Fantasy teams in the league, mine included
	Sources []string // Projection providers
}

// Option applies a configuration option to Config.
type Option func(*Config)

// WithSeed fixes the random seed.
func WithSeed(seed uint64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithWeeks sets how many weeks are generated.
func WithWeeks(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Weeks = n
		}
	}
}

// WithTeams sets the number of fantasy teams sharing the player pool.
func WithTeams(n int) Option {
	return func(c *Config) {
		if n > 1 {
			c.Teams = n
		}
	}
}

// WithSources sets the projection providers.
func WithSources(sources ...string) Option {
	return func(c *Config) {
		if len(sources) > 0 {
			c.Sources = sources
		}
	}
}

func defaultConfig() Config {
	return Config{
		Seed:    42,
		Weeks:   3,
		Teams:   12,
		Sources: []string{"espn", "fantasypros", "sportsdata", "yahoo"},
	}
}
