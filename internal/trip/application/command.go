package application

import (
	"time"

	"github.com/transgare/backoffice/pkg/domain"
)

// GenerateTripsData asks for template expansion over a date window.
type GenerateTripsData struct {
	FromDate time.Time `json:"fromDate" validate:"required"`
	Days     int       `json:"days" validate:"gt=0,lte=365"`
}

type generateTripsCommand struct {
	data GenerateTripsData
}

func (c generateTripsCommand) CommandName() string {
	return "GenerateTrips"
}

func (c generateTripsCommand) Payload() GenerateTripsData {
	return c.data
}

func NewGenerateTripsCommand(data GenerateTripsData) domain.Command[GenerateTripsData] {
	return generateTripsCommand{data: data}
}

// DeleteTemplateData asks for a schedule template removal. Refused while
// future trips still depend on the template.
type DeleteTemplateData struct {
	TemplateID string `json:"templateId" validate:"required"`
}

type deleteTemplateCommand struct {
	data DeleteTemplateData
}

func (c deleteTemplateCommand) CommandName() string {
	return "DeleteScheduleTemplate"
}

func (c deleteTemplateCommand) Payload() DeleteTemplateData {
	return c.data
}

func NewDeleteTemplateCommand(data DeleteTemplateData) domain.Command[DeleteTemplateData] {
	return deleteTemplateCommand{data: data}
}
