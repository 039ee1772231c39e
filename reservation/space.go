package reservation

import (
	"encoding/json"
	"fmt"
)

// Space is one of the bookable amenities of the building.
type Space string

const (
	SpaceEventHall Space = "event-hall"
	SpacePool      Space = "pool"
	SpaceTerrace   Space = "terrace"
)

var spaceNames = map[Space]string{
	SpaceEventHall: "Event Hall",
	SpacePool:      "Pool",
	SpaceTerrace:   "Terrace",
}

// Spaces returns every bookable space in display order.
func Spaces() []Space {
	return []Space{SpaceEventHall, SpacePool, SpaceTerrace}
}

func ParseSpace(s string) (Space, error) {
	space := Space(s)
	if _, ok := spaceNames[space]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSpace, s)
	}

	return space, nil
}

func (s Space) Valid() bool {
	_, ok := spaceNames[s]
	return ok
}

func (s Space) Name() string {
	if name, ok := spaceNames[s]; ok {
		return name
	}

	return string(s)
}

func (s Space) String() string {
	return string(s)
}

func (s *Space) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSpace, err)
	}

	space, err := ParseSpace(raw)
	if err != nil {
		return err
	}

	*s = space
	return nil
}
