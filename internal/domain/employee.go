package domain

import (
	"time"

	"github.com/google/uuid"
)

type ScoreCard string

const (
	ScoreCardFantastic ScoreCard = "Fantastic"
	ScoreCardGreat     ScoreCard = "Great"
	ScoreCardFair      ScoreCard = "Fair"
	ScoreCardPoor      ScoreCard = "Poor"
	ScoreCardNewDA     ScoreCard = "New DA"
)

type Employee struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	FamilyName    string    `json:"familyName"`
	ScoreCard     ScoreCard `json:"scoreCard"`
	ExpoPushToken string    `json:"expoPushToken"`
	DSPCode       string    `json:"dsp_code"`
	CreatedAt     time.Time `json:"createdAt"`
	Version       int32     `json:"-"`
}
