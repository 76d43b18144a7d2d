package domain

// Place categories as they appear in the catalog.
const (
	CategoryCity    = "city"
	CategoryBeach   = "beach"
	CategoryNature  = "nature"
	CategoryHistory = "history"
)

// Expected visitor-crowd behavior for a place.
type CrowdProfile struct {
	MaxDensity   float64 // peak density, 0..1
	PeakHour     int     // hour of day with the highest density, 0..23
	VisitMinutes int     // typical visit duration
}

// SignalProfile describes the intercepted transmission attached to a place.
// Intel text is keyed by locale code ("en", "sq").
type SignalProfile struct {
	FrequencyMHz float64
	Mode         string
	Encryption   int
	Intel        map[string]string
}

// Represents a single catalog entry: a named point of interest with optional
// crowd and signal metadata. The catalog is supplied wholesale at startup and
// never mutated by the core.
type Place struct {
	Name        string
	Coordinates Coordinates
	Category    string
	Crowd       *CrowdProfile
	Signal      *SignalProfile
}

// Catalog is a read-only collection of places with name lookup.
type Catalog []Place

// Find returns the place with the given name, or nil when the catalog does not
// contain it. Callers computing derived data tolerate a nil result by skipping
// the waypoint rather than failing the whole computation.
func (c Catalog) Find(name string) *Place {
	for i := range c {
		if c[i].Name == name {
			return &c[i]
		}
	}
	return nil
}
