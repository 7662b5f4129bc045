package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/dsp-hub/workforce-manager/backend/internal/config"
	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
	"github.com/dsp-hub/workforce-manager/backend/internal/repository"
	"github.com/dsp-hub/workforce-manager/backend/internal/schedule"
	"github.com/dsp-hub/workforce-manager/backend/internal/utils"
)

const (
	employeeCount = 20
	userCount     = 5
)

// Seed fills one station with development data: shifts, drivers, staff
// accounts and a current week of availability in every decision state.
func Seed(cfg *config.Config, repo *repository.Repository) error {
	dspCode := cfg.Seed.DSPCode

	shifts := utils.GenerateSeedShifts(dspCode)
	for _, shift := range shifts {
		if err := repo.CreateShift(shift); err != nil {
			return err
		}
	}
	slog.Info("seeded shifts", "count", len(shifts), "dsp_code", dspCode)

	employees := make([]*domain.Employee, 0, employeeCount)
	for i := 0; i < employeeCount; i++ {
		employee := utils.GenerateRandomEmployee(dspCode)
		if err := repo.CreateEmployee(employee); err != nil {
			return err
		}
		employees = append(employees, employee)
	}
	slog.Info("seeded employees", "count", len(employees), "dsp_code", dspCode)

	for i := 0; i < userCount; i++ {
		user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain, dspCode)
		if err != nil {
			return err
		}
		if err := repo.CreateUser(user); err != nil {
			return err
		}
	}
	slog.Info("seeded staff accounts", "count", userCount, "dsp_code", dspCode)

	days := schedule.WeekWindow(time.Now(), 0)
	records := 0
	for _, employee := range employees {
		for _, day := range days {
			// Leave some cells unassigned so the grid shows every state.
			if rand.Intn(3) == 0 {
				continue
			}

			record := &domain.AvailabilityRecord{
				EmployeeID: employee.ID,
				ShiftID:    shifts[rand.Intn(len(shifts))].ID,
				Day:        day,
				Decision:   utils.GenerateRandomDecision(),
				DSPCode:    dspCode,
			}
			if err := repo.CreateAvailabilityRecord(record); err != nil {
				return err
			}
			records++
		}
	}
	slog.Info("seeded availability records", "count", records, "dsp_code", dspCode)

	return nil
}
