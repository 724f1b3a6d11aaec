// ABOUTME: Location and address views over Nello API response data
// ABOUTME: Address formatting swaps street/number order for German addresses

package nello

import (
	"fmt"
	"strings"
)

// Address is the structured postal address of a location.
type Address struct {
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Street  string `json:"street"`
	Number  string `json:"number"`
}

// Format renders the address in postal order. German addresses put the
// street before the house number; everywhere else the number comes first.
// The server sometimes fills the state field with the literal placeholder
// "state", which is dropped from the output.
func (a Address) Format() string {
	first, second := a.Number, a.Street
	switch strings.ToLower(a.Country) {
	case "deutschland", "germany":
		first, second = a.Street, a.Number
	}
	state := a.State
	if state == "state" {
		state = ""
	}
	return fmt.Sprintf("%s %s %s %s%s, %s", first, second, a.Zip, a.City, state, a.Country)
}

// Location represents one controllable lock.
type Location struct {
	LocationID string  `json:"location_id"`
	ShortID    string  `json:"short_loc_id"`
	Address    Address `json:"address"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s - %s", l.Address.Format(), l.LocationID)
}
