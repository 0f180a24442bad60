package usecase

import (
	"fmt"
	"strings"
	"time"

	"snowday/internal/domain/entity"
)

const noData = "No data"

// BuildPredictionPrompt assembles the request sent to the prediction model.
func BuildPredictionPrompt(school entity.School, w entity.WeatherWindow, policy string, now time.Time) string {
	alert := entity.WeatherAlert{Event: noData, Description: noData, Severity: noData, Certainty: noData, Urgency: noData}
	if w.Alert != nil {
		alert = *w.Alert
	}
	if strings.TrimSpace(policy) == "" {
		policy = "School closes when roads are unsafe for buses before the start of the school day."
	}

	var sb strings.Builder
	sb.WriteString("You are a weather man predicting whether school will be cancelled tomorrow because of snow.\n")
	sb.WriteString("Give the percentage chance of a snow day and a short, friendly explanation.\n\n")

	sb.WriteString("School and location:\n")
	fmt.Fprintf(&sb, "- Current date and time: %s\n", now.Format("Monday, January 2, 2006 3:04 PM MST"))
	fmt.Fprintf(&sb, "- School name: %s\n", school.Name)
	fmt.Fprintf(&sb, "- State: %s\n", school.State)
	fmt.Fprintf(&sb, "- Town or city: %s\n", school.City)
	fmt.Fprintf(&sb, "- County: %s\n", school.County)
	fmt.Fprintf(&sb, "- Current month: %d (of 12)\n", int(now.Month()))
	fmt.Fprintf(&sb, "- School starts at %s tomorrow\n", school.StartTime)
	fmt.Fprintf(&sb, "- Zip code: %s\n\n", school.ZipCode)

	sb.WriteString("Hourly conditions from 7 PM to 8 AM (24-hour clock):\n")
	sb.WriteString(HourlySummary(w))
	sb.WriteString("\n\n")

	sb.WriteString("Current weather alert, only relevant if it covers the school's county:\n")
	fmt.Fprintf(&sb, "- Event: %s\n", alert.Event)
	fmt.Fprintf(&sb, "- Description: %s\n", alert.Description)
	fmt.Fprintf(&sb, "- Severity: %s\n", alert.Severity)
	fmt.Fprintf(&sb, "- Certainty: %s\n", alert.Certainty)
	fmt.Fprintf(&sb, "- Urgency: %s\n\n", alert.Urgency)

	sb.WriteString("Snow day policy:\n")
	sb.WriteString(strings.TrimSpace(policy))
	sb.WriteString("\n")
	return sb.String()
}
