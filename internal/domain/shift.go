package domain

import (
	"time"

	"github.com/google/uuid"
)

type Shift struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StartTime string    `json:"startTime"` // "15:04:05"
	EndTime   string    `json:"endTime"`
	Color     string    `json:"color"` // hex, e.g. "#ffcc00"
	DSPCode   string    `json:"dsp_code"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
