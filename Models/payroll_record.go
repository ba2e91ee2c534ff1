package Models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PayrollRecord is a closed billing cycle persisted for history. Breakdown
// holds the deduction entries as JSON, in the same shape the payroll report
// returns them.
type PayrollRecord struct {
	gorm.Model
	MaidID          uint           `json:"maid_id" gorm:"index;not null"`
	CycleStart      string         `json:"cycle_start"`
	CycleEnd        string         `json:"cycle_end"`
	TotalSalary     float64        `json:"total_salary"`
	TotalDeductions float64        `json:"total_deductions"`
	PayableAmount   float64        `json:"payable_amount"`
	Breakdown       datatypes.JSON `json:"breakdown"`
}
