package adapter

import (
	"encoding/json"
	"strings"

	"eventBridge/internal/models"
)

// rawEvent is the upstream event record. Every nested block is optional.
type rawEvent struct {
	ID           string          `json:"id"`
	LegacyID     string          `json:"_id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Slug         string          `json:"slug"`
	Status       string          `json:"status"`
	MainImage    json.RawMessage `json:"mainImage"`
	Scheduling   *rawScheduling  `json:"scheduling"`
	Registration *struct {
		Type string `json:"type"`
	} `json:"registration"`
	Location *struct {
		Name string `json:"name"`
	} `json:"location"`
}

type rawScheduling struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// normalizeEvent maps an upstream record onto models.Event, filling absent
// fields with fixed defaults. It fails only when raw is not an event object.
func normalizeEvent(raw json.RawMessage) (models.Event, error) {
	var rec rawEvent
	if err := json.Unmarshal(raw, &rec); err != nil {
		return models.Event{}, err
	}

	ev := models.Event{
		ID:               rec.ID,
		Title:            rec.Title,
		Description:      rec.Description,
		Slug:             rec.Slug,
		Location:         models.DefaultLocation,
		RegistrationType: models.RegistrationRSVP,
		Status:           models.StatusScheduled,
	}

	if ev.ID == "" {
		ev.ID = rec.LegacyID
	}
	if rec.Status != "" {
		ev.Status = strings.ToUpper(rec.Status)
	}
	if rec.Scheduling != nil {
		ev.Start = rec.Scheduling.StartDate
		ev.End = rec.Scheduling.EndDate
	}
	if rec.Location != nil && rec.Location.Name != "" {
		ev.Location = rec.Location.Name
	}
	if rec.Registration != nil {
		ev.RegistrationType = registrationType(rec.Registration.Type)
	}
	if len(rec.MainImage) > 0 && string(rec.MainImage) != "null" {
		ev.MainImage = rec.MainImage
	}

	return ev, nil
}

func registrationType(s string) models.RegistrationType {
	switch models.RegistrationType(strings.ToUpper(strings.TrimSpace(s))) {
	case models.RegistrationTicketing:
		return models.RegistrationTicketing
	default:
		return models.RegistrationRSVP
	}
}
