package Controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"MaidManager/AbstractFunctions"
	"MaidManager/Models"
	"MaidManager/Notifications"
	"MaidManager/Validation"
	"MaidManager/Verification"
)

// AttendanceController handles the code-gated attendance flow plus the
// manual override path.
type AttendanceController struct {
	DB   *gorm.DB
	Flow *Verification.Flow
}

func NewAttendanceController(db *gorm.DB, flow *Verification.Flow) *AttendanceController {
	return &AttendanceController{DB: db, Flow: flow}
}

// RequestOtp issues a one-time attendance code to the maid's phone
func (a *AttendanceController) RequestOtp(ctx *fiber.Ctx) error {
	maid := ownedMaid(a.DB, ctx)
	if maid == nil {
		return nil
	}

	if err := a.Flow.Request(maid); err != nil {
		switch {
		case errors.Is(err, Verification.ErrInvalidContact):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Maid has no valid mobile number on record",
			})
		case errors.Is(err, Verification.ErrDeliveryFailure):
			return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Failed to deliver verification code",
			})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to issue verification code",
			})
		}
	}

	return ctx.JSON(fiber.Map{"message": "Verification code sent successfully"})
}

type verifyOtpRequest struct {
	Code     string `json:"code" validate:"required"`
	TaskName string `json:"task_name" validate:"required"`
}

// VerifyOtp checks the submitted code and, when valid, marks the task
// Present for today
func (a *AttendanceController) VerifyOtp(ctx *fiber.Ctx) error {
	maid := ownedMaid(a.DB, ctx)
	if maid == nil {
		return nil
	}

	var input verifyOtpRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := Validation.Struct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	record, err := a.Flow.Verify(maid, input.Code, input.TaskName)
	if err != nil {
		switch {
		case errors.Is(err, Verification.ErrNoPendingChallenge):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No verification code was requested for this maid",
			})
		case errors.Is(err, Verification.ErrInvalidOrExpiredCode):
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired verification code",
			})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to verify code",
			})
		}
	}

	go Notifications.NotifyAttendanceMarked(a.DB, maid, record)

	return ctx.JSON(fiber.Map{
		"message":    "Attendance marked successfully",
		"attendance": record,
	})
}

// MarkAttendance is the manual override: an explicit date and status bypass
// the code flow entirely, e.g. to retroactively mark an Absent day. No
// uniqueness check against existing records is made.
func (a *AttendanceController) MarkAttendance(ctx *fiber.Ctx) error {
	maid := ownedMaid(a.DB, ctx)
	if maid == nil {
		return nil
	}

	var input Models.ManualAttendanceRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := Validation.Struct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	day, err := AbstractFunctions.ParseDate(input.Date)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	record := Models.AttendanceRecord{
		MaidID:   maid.ID,
		Date:     AbstractFunctions.FormatDate(day),
		TaskName: input.TaskName,
		Status:   input.Status,
	}
	if err := a.DB.Create(&record).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record attendance"})
	}

	go Notifications.NotifyAttendanceMarked(a.DB, maid, &record)

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Attendance recorded successfully",
		"attendance": record,
	})
}

// GetAttendance lists the maid's attendance, newest first
func (a *AttendanceController) GetAttendance(ctx *fiber.Ctx) error {
	maid := ownedMaid(a.DB, ctx)
	if maid == nil {
		return nil
	}

	var records []Models.AttendanceRecord
	if err := a.DB.Where("maid_id = ?", maid.ID).Order("date DESC, id DESC").Find(&records).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load attendance"})
	}
	return ctx.JSON(records)
}
