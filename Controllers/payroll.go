package Controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"MaidManager/AbstractFunctions"
	"MaidManager/Models"
	"MaidManager/Payroll"
)

// PayrollController computes, persists and exports billing-cycle reports
type PayrollController struct {
	DB *gorm.DB
}

func NewPayrollController(db *gorm.DB) *PayrollController {
	return &PayrollController{DB: db}
}

// referenceDate reads the optional ?date=YYYY-MM-DD query, defaulting to now.
func referenceDate(ctx *fiber.Ctx) (time.Time, error) {
	raw := ctx.Query("date")
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return AbstractFunctions.ParseDate(raw)
}

func (p *PayrollController) loadSnapshot(maid *Models.Maid) ([]Models.Task, []Models.AttendanceRecord, error) {
	var tasks []Models.Task
	if err := p.DB.Where("maid_id = ?", maid.ID).Find(&tasks).Error; err != nil {
		return nil, nil, err
	}
	var attendance []Models.AttendanceRecord
	if err := p.DB.Where("maid_id = ?", maid.ID).Find(&attendance).Error; err != nil {
		return nil, nil, err
	}
	return tasks, attendance, nil
}

// GetPayroll computes the report for the cycle containing the reference date
func (p *PayrollController) GetPayroll(ctx *fiber.Ctx) error {
	maid := ownedMaid(p.DB, ctx)
	if maid == nil {
		return nil
	}

	ref, err := referenceDate(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	tasks, attendance, err := p.loadSnapshot(maid)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payroll data"})
	}

	report := Payroll.ComputeReport(tasks, attendance, ref)
	return ctx.JSON(report)
}

// ClosePayroll computes the cycle and persists it as a PayrollRecord
func (p *PayrollController) ClosePayroll(ctx *fiber.Ctx) error {
	maid := ownedMaid(p.DB, ctx)
	if maid == nil {
		return nil
	}

	ref, err := referenceDate(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	tasks, attendance, err := p.loadSnapshot(maid)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payroll data"})
	}

	report := Payroll.ComputeReport(tasks, attendance, ref)

	breakdown, err := json.Marshal(report.DeductionsBreakdown)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to close payroll cycle"})
	}

	record := Models.PayrollRecord{
		MaidID:          maid.ID,
		CycleStart:      report.BillingCycle.Start,
		CycleEnd:        report.BillingCycle.End,
		TotalSalary:     report.TotalSalary,
		TotalDeductions: report.TotalDeductions,
		PayableAmount:   report.PayableAmount,
		Breakdown:       breakdown,
	}
	if err := p.DB.Create(&record).Error; err != nil {
		log.Println("Error creating payroll record:", err.Error())
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to close payroll cycle"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Payroll cycle closed successfully",
		"record":  record,
	})
}

// PayrollHistory lists closed cycles for the maid with summary totals
func (p *PayrollController) PayrollHistory(ctx *fiber.Ctx) error {
	maid := ownedMaid(p.DB, ctx)
	if maid == nil {
		return nil
	}

	var records []Models.PayrollRecord
	if err := p.DB.Where("maid_id = ?", maid.ID).Order("created_at DESC").Find(&records).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payroll history"})
	}

	totalPaid := 0.0
	totalDeducted := 0.0
	for _, record := range records {
		totalPaid += record.PayableAmount
		totalDeducted += record.TotalDeductions
	}

	return ctx.JSON(fiber.Map{
		"records":     records,
		"total_count": len(records),
		"summary": fiber.Map{
			"total_paid":     totalPaid,
			"total_deducted": totalDeducted,
		},
	})
}

// ExportPayroll renders the current cycle as a spreadsheet download
func (p *PayrollController) ExportPayroll(ctx *fiber.Ctx) error {
	maid := ownedMaid(p.DB, ctx)
	if maid == nil {
		return nil
	}

	ref, err := referenceDate(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	tasks, attendance, err := p.loadSnapshot(maid)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payroll data"})
	}

	report := Payroll.ComputeReport(tasks, attendance, ref)

	file := excelize.NewFile()
	defer file.Close()

	sheet := "Payroll"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build report"})
	}

	file.SetCellValue(sheet, "A1", fmt.Sprintf("Payroll for %s", maid.Name))
	file.SetCellValue(sheet, "A2", fmt.Sprintf("Billing cycle %s to %s", report.BillingCycle.Start, report.BillingCycle.End))

	headers := map[string]string{
		"A4": "Task", "B4": "Price", "C4": "Frequency", "D4": "Missed Days", "E4": "Deduction",
	}
	for cell, value := range headers {
		file.SetCellValue(sheet, cell, value)
	}

	missedByTask := make(map[string]Payroll.DeductionEntry)
	for _, entry := range report.DeductionsBreakdown {
		missedByTask[entry.TaskName] = entry
	}

	row := 5
	for _, task := range tasks {
		file.SetCellValue(sheet, fmt.Sprintf("A%d", row), task.Name)
		file.SetCellValue(sheet, fmt.Sprintf("B%d", row), task.Price)
		file.SetCellValue(sheet, fmt.Sprintf("C%d", row), task.Frequency)
		if entry, ok := missedByTask[task.Name]; ok {
			file.SetCellValue(sheet, fmt.Sprintf("D%d", row), entry.MissedDays)
			file.SetCellValue(sheet, fmt.Sprintf("E%d", row), entry.DeductionAmount)
		} else {
			file.SetCellValue(sheet, fmt.Sprintf("D%d", row), 0)
			file.SetCellValue(sheet, fmt.Sprintf("E%d", row), 0.0)
		}
		row++
	}

	row++
	file.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total Salary")
	file.SetCellValue(sheet, fmt.Sprintf("B%d", row), report.TotalSalary)
	row++
	file.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total Deductions")
	file.SetCellValue(sheet, fmt.Sprintf("B%d", row), report.TotalDeductions)
	row++
	file.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Payable Amount")
	file.SetCellValue(sheet, fmt.Sprintf("B%d", row), report.PayableAmount)

	if err := os.MkdirAll("Reports", 0755); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save report"})
	}
	filename := filepath.Join("Reports", fmt.Sprintf("Payroll for %s %s.xlsx", maid.Name, report.BillingCycle.Start))
	if err := file.SaveAs(filename); err != nil {
		log.Println("Error saving payroll report:", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save report"})
	}

	return ctx.SendFile(filename, true)
}
