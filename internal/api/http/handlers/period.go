package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-scheduler/internal/api/dto"
	"github.com/spec-kit/shift-scheduler/internal/calendar"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util/errorutil"
)

// queryPeriod reads year and month from the query string, defaulting each to
// the current month.
func queryPeriod(c *fiber.Ctx, now time.Time) (domain.Period, error) {
	year, month := calendar.Current(now)
	var err error
	if raw := c.Query("year"); raw != "" {
		if year, err = strconv.Atoi(raw); err != nil {
			return domain.Period{}, apperrors.NewValidationError("year must be a number", map[string]any{"year": raw})
		}
	}
	if raw := c.Query("month"); raw != "" {
		if month, err = strconv.Atoi(raw); err != nil {
			return domain.Period{}, apperrors.NewValidationError("month must be a number", map[string]any{"month": raw})
		}
	}
	return domain.Period{Year: year, Month: month}, nil
}

// formPeriod reads year and month from multipart fields. Both are required.
func formPeriod(c *fiber.Ctx) (domain.Period, error) {
	year, err := strconv.Atoi(c.FormValue("year"))
	if err != nil {
		return domain.Period{}, apperrors.NewValidationError("year required", nil)
	}
	month, err := strconv.Atoi(c.FormValue("month"))
	if err != nil {
		return domain.Period{}, apperrors.NewValidationError("month required", nil)
	}
	return domain.Period{Year: year, Month: month}, nil
}

// formBool reads a form flag. Checkboxes submit "on" when ticked.
func formBool(c *fiber.Ctx, key string) bool {
	raw := strings.TrimSpace(c.FormValue(key))
	if strings.EqualFold(raw, "on") {
		return true
	}
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

func dayInfos(period domain.Period) []dto.DayInfo {
	if period.Validate() != nil {
		return nil
	}
	days := calendar.DaysInMonth(period.Year, period.Month)
	out := make([]dto.DayInfo, 0, days)
	for d := 1; d <= days; d++ {
		out = append(out, dto.DayInfo{
			Day:     d,
			Label:   calendar.DayLabel(period.Year, period.Month, d),
			Weekend: calendar.IsWeekend(period.Year, period.Month, d),
		})
	}
	return out
}
