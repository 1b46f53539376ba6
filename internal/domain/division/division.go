package division

// Division is one of the supported football leagues. The set is closed.
type Division int

const (
	EnglishPremiership Division = iota
	ScottishPremiership
	ScottishChampionship
	GermanBundesliga
	FrenchLigue1
	SpanishPrimera
	DutchEredivise
	PortugueseLiga
	SwissSuperLeague
)

var names = [...]string{
	EnglishPremiership:   "ENGLISH_PREMIERSHIP",
	ScottishPremiership:  "SCOTTISH_PREMIERSHIP",
	ScottishChampionship: "SCOTTISH_CHAMPIONSHIP",
	GermanBundesliga:     "GERMAN_BUNDESLIGA",
	FrenchLigue1:         "FRENCH_LIGUE1",
	SpanishPrimera:       "SPANISH_PRIMERA",
	DutchEredivise:       "DUTCH_EREDIVISE",
	PortugueseLiga:       "PORTUGUESE_LIGA",
	SwissSuperLeague:     "SWISS_SUPER_LEAGUE",
}

var byName = func() map[string]Division {
	out := make(map[string]Division, len(names))
	for i, name := range names {
		out[name] = Division(i)
	}
	return out
}()

// All returns every division in declaration order.
func All() []Division {
	out := make([]Division, 0, len(names))
	for i := range names {
		out = append(out, Division(i))
	}
	return out
}

// Names returns every division name in declaration order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names[:])
	return out
}

// Parse looks a division up by its exact name.
func Parse(name string) (Division, bool) {
	d, ok := byName[name]
	return d, ok
}

func (d Division) Valid() bool {
	return d >= 0 && int(d) < len(names)
}

func (d Division) String() string {
	if !d.Valid() {
		return ""
	}
	return names[d]
}
