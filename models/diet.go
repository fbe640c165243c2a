package models

import "strings"

type DietDetail struct {
	Day     string `json:"day"`
	Meal    string `json:"meal"`
	Content string `json:"content"`
}

type DietList struct {
	DietListID  int64        `json:"dietListId"`
	ClientID    int64        `json:"clientId"`
	ClientName  string       `json:"clientName"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	StartDate   Timestamp    `json:"startDate"`
	EndDate     Timestamp    `json:"endDate"`
	Details     []DietDetail `json:"details"`
}

func (d DietList) DescriptionLabel() string {
	if d.Description == "" {
		return "No description."
	}
	return d.Description
}

// CreateDietListRequest is the POST /dietlists payload. Dates are YYYY-MM-DD.
type CreateDietListRequest struct {
	ClientID    int64        `json:"clientId" validate:"required,gt=0"`
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description"`
	StartDate   string       `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string       `json:"endDate" validate:"required,datetime=2006-01-02"`
	Details     []DietDetail `json:"details" validate:"dive"`
}

var MealTypes = []string{"Breakfast", "Mid-morning", "Lunch", "Afternoon", "Dinner", "Late snack"}

const (
	DefaultDietDay  = "Monday"
	DefaultDietMeal = "Breakfast"
	AddedDietMeal   = "Lunch"
)

// FilterDietLists keeps lists whose client name or title contains term, ignoring case.
func FilterDietLists(lists []DietList, term string) []DietList {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return lists
	}
	out := make([]DietList, 0, len(lists))
	for _, d := range lists {
		if strings.Contains(strings.ToLower(d.ClientName), term) ||
			strings.Contains(strings.ToLower(d.Title), term) {
			out = append(out, d)
		}
	}
	return out
}
