package Controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"MaidManager/Models"
	"MaidManager/Validation"
)

// TaskController handles the recurring paid tasks on a maid record
type TaskController struct {
	DB *gorm.DB
}

func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{DB: db}
}

// AddTask appends a recurring task to the maid
func (t *TaskController) AddTask(ctx *fiber.Ctx) error {
	maid := ownedMaid(t.DB, ctx)
	if maid == nil {
		return nil
	}

	var input Models.TaskRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := Validation.Struct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	task := Models.Task{
		MaidID:    maid.ID,
		Name:      input.Name,
		Price:     input.Price,
		Frequency: input.Frequency,
	}
	if err := t.DB.Create(&task).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create task"})
	}

	var tasks []Models.Task
	t.DB.Where("maid_id = ?", maid.ID).Find(&tasks)

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Task added successfully",
		"task":    task,
		"tasks":   tasks,
	})
}

// UpdateTask changes name, price or frequency of an existing task
func (t *TaskController) UpdateTask(ctx *fiber.Ctx) error {
	maid := ownedMaid(t.DB, ctx)
	if maid == nil {
		return nil
	}

	task, ok := t.ownedTask(ctx, maid)
	if !ok {
		return nil
	}

	var input Models.TaskRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := Validation.Struct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	task.Name = input.Name
	task.Price = input.Price
	task.Frequency = input.Frequency
	if err := t.DB.Save(task).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update task"})
	}
	return ctx.JSON(task)
}

// DeleteTask removes a task from the maid
func (t *TaskController) DeleteTask(ctx *fiber.Ctx) error {
	maid := ownedMaid(t.DB, ctx)
	if maid == nil {
		return nil
	}

	task, ok := t.ownedTask(ctx, maid)
	if !ok {
		return nil
	}

	t.DB.Delete(task)
	return ctx.JSON(fiber.Map{"message": "Task deleted successfully"})
}

func (t *TaskController) ownedTask(ctx *fiber.Ctx, maid *Models.Maid) (*Models.Task, bool) {
	id, err := strconv.Atoi(ctx.Params("taskId"))
	if err != nil {
		ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
		return nil, false
	}

	var task Models.Task
	if err := t.DB.Where("maid_id = ?", maid.ID).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		} else {
			ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load task"})
		}
		return nil, false
	}
	return &task, true
}
