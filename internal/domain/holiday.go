package domain

// StateAll is the wildcard state selector: a date is a holiday if any
// state's calendar lists it.
const StateAll = "all"

type Holiday struct {
	Date       string `json:"date"`
	Name       string `json:"name"`
	State      string `json:"state,omitempty"`
	IsNational bool   `json:"is_national,omitempty"`
}

// HolidayCalendar is the org-wide calendar response, grouped by state.
// Field names are camelCase on the wire, matching the upstream API.
type HolidayCalendar struct {
	HolidaysByState map[string][]Holiday `json:"holidaysByState"`
	States          []string             `json:"states"`
}
