package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
)

var commonFirstNames = []string{
	"Jane", "Marc", "Fatima", "Noah", "Grace", "Amir", "Sophie", "Liam",
	"Chloé", "Omar", "Emma", "Lucas", "Aisha", "Mathieu", "Priya", "Kevin",
	"Isabelle", "Jamal", "Olivia", "Étienne",
}

var commonFamilyNames = []string{
	"Doe", "Tremblay", "Benali", "Gagnon", "Okafor", "Haddad", "Roy",
	"Silva", "Dubois", "Lavoie", "Martin", "Nguyen", "Côté", "Bouchard",
	"Singh", "Morin", "Fortin", "Diallo", "Leblanc", "Pelletier",
}

func GenerateRandomFullName() (string, string) {
	return commonFirstNames[rand.Intn(len(commonFirstNames))],
		commonFamilyNames[rand.Intn(len(commonFamilyNames))]
}

var scoreCards = []domain.ScoreCard{
	domain.ScoreCardFantastic,
	domain.ScoreCardGreat,
	domain.ScoreCardFair,
	domain.ScoreCardPoor,
	domain.ScoreCardNewDA,
}

func GenerateRandomScoreCard() domain.ScoreCard {
	return scoreCards[rand.Intn(len(scoreCards))]
}

var roles = []domain.Role{
	domain.RoleDispatcher,
	domain.RoleManager,
	domain.RoleOwner,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

// GenerateUsernameFromName builds a plausible login from a person's name,
// lowercased with a few digits appended.
func GenerateUsernameFromName(name, familyName string) string {
	username := strings.ToLower(name)
	if familyName != "" {
		length := rand.Intn(len(familyName)) + 1
		username += strings.ToLower(familyName[:length])
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string, dspCode string) (*domain.User, error) {
	name, familyName := GenerateRandomFullName()
	username := GenerateUsernameFromName(name, familyName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	language := domain.LanguageEnglish
	if rand.Intn(2) == 1 {
		language = domain.LanguageFrench
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     name + " " + familyName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
		Language:     language,
		DSPCode:      dspCode,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomEmployee(dspCode string) *domain.Employee {
	name, familyName := GenerateRandomFullName()
	return &domain.Employee{
		Name:          name,
		FamilyName:    familyName,
		ScoreCard:     GenerateRandomScoreCard(),
		ExpoPushToken: fmt.Sprintf("ExponentPushToken[%s%06d]", strings.ToLower(name), rand.Intn(1000000)),
		DSPCode:       dspCode,
	}
}

var seedShifts = []struct {
	name      string
	startTime string
	endTime   string
	color     string
}{
	{"Morning", "08:00:00", "16:00:00", "#ffcc00"},
	{"Evening", "16:00:00", "23:30:00", "#3399ff"},
	{"Night", "00:00:00", "07:30:00", "#9966cc"},
	{"Weekend Sweep", "10:00:00", "18:00:00", "#66cc66"},
}

func GenerateSeedShifts(dspCode string) []*domain.Shift {
	shifts := make([]*domain.Shift, len(seedShifts))
	for i, s := range seedShifts {
		shifts[i] = &domain.Shift{
			Name:      s.name,
			StartTime: s.startTime,
			EndTime:   s.endTime,
			Color:     s.color,
			DSPCode:   dspCode,
		}
	}
	return shifts
}

var decisions = []domain.Decision{
	domain.DecisionPending,
	domain.DecisionAccepted,
	domain.DecisionRejected,
}

func GenerateRandomDecision() domain.Decision {
	return decisions[rand.Intn(len(decisions))]
}
