package Controllers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"MaidManager/Models"
	"MaidManager/Validation"
)

// MaidController handles maid CRUD endpoints
type MaidController struct {
	DB *gorm.DB
}

func NewMaidController(db *gorm.DB) *MaidController {
	return &MaidController{DB: db}
}

// ownedMaid loads the maid from the :maidId route param and enforces that it
// belongs to the calling account. Ownership mismatch reads as not-found so
// other owners' records are not leaked. Returns nil after writing the error
// response.
func ownedMaid(db *gorm.DB, ctx *fiber.Ctx) *Models.Maid {
	id, err := strconv.Atoi(ctx.Params("maidId"))
	if err != nil {
		ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid maid ID"})
		return nil
	}

	user, ok := ctx.Locals("user").(Models.User)
	if !ok {
		ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
		return nil
	}

	var maid Models.Maid
	if err := db.First(&maid, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Maid not found"})
		} else {
			ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load maid"})
		}
		return nil
	}

	if maid.UserID != user.ID {
		ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Maid not found"})
		return nil
	}
	return &maid
}

// GetMaids lists the caller's maids with their tasks
func (m *MaidController) GetMaids(ctx *fiber.Ctx) error {
	user := ctx.Locals("user").(Models.User)

	var maids []Models.Maid
	result := m.DB.Preload("Tasks").Where("user_id = ?", user.ID).Find(&maids)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve maids"})
	}
	return ctx.JSON(maids)
}

// CreateMaid adds a maid record for the caller
func (m *MaidController) CreateMaid(ctx *fiber.Ctx) error {
	var input Models.MaidRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := Validation.Struct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	user := ctx.Locals("user").(Models.User)

	var existing Models.Maid
	err := m.DB.Where("user_id = ? AND mobile_no = ?", user.ID, input.MobileNo).First(&existing).Error
	if err == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Maid with this mobile number already exists.",
		})
	}

	maid := Models.Maid{
		UserID:      user.ID,
		Name:        input.Name,
		MobileNo:    input.MobileNo,
		Address:     input.Address,
		PictureUrl:  input.PictureUrl,
		BiometricId: input.BiometricId,
	}
	if err := m.DB.Create(&maid).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create maid"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(maid)
}

// GetMaid returns one maid with tasks and attendance, newest records first
func (m *MaidController) GetMaid(ctx *fiber.Ctx) error {
	maid := ownedMaid(m.DB, ctx)
	if maid == nil {
		return nil
	}

	if err := m.DB.Preload("Tasks").
		Preload("Attendance", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC, id DESC")
		}).
		First(maid, maid.ID).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load maid"})
	}
	return ctx.JSON(maid)
}

// UpdateMaid updates contact and identity fields
func (m *MaidController) UpdateMaid(ctx *fiber.Ctx) error {
	maid := ownedMaid(m.DB, ctx)
	if maid == nil {
		return nil
	}

	var input Models.MaidRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := Validation.Struct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	m.DB.Model(maid).Updates(Models.Maid{
		Name:        input.Name,
		MobileNo:    input.MobileNo,
		Address:     input.Address,
		PictureUrl:  input.PictureUrl,
		BiometricId: input.BiometricId,
	})
	return ctx.JSON(maid)
}

// DeleteMaid removes the maid and its owned rows
func (m *MaidController) DeleteMaid(ctx *fiber.Ctx) error {
	maid := ownedMaid(m.DB, ctx)
	if maid == nil {
		return nil
	}

	m.DB.Delete(maid)
	return ctx.JSON(fiber.Map{"message": "Maid deleted successfully"})
}

// UploadPicture stores a resized profile photo for the maid
func (m *MaidController) UploadPicture(ctx *fiber.Ctx) error {
	maid := ownedMaid(m.DB, ctx)
	if maid == nil {
		return nil
	}

	fileHeader, err := ctx.FormFile("picture")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Picture file is required"})
	}

	if err := os.MkdirAll("uploads/maids", 0755); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store picture"})
	}

	tempPath := filepath.Join("uploads/maids", fmt.Sprintf("upload_%d_%s", maid.ID, fileHeader.Filename))
	if err := ctx.SaveFile(fileHeader, tempPath); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store picture"})
	}
	defer os.Remove(tempPath)

	img, err := imaging.Open(tempPath)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unsupported image format"})
	}

	resized := imaging.Resize(img, 512, 0, imaging.Lanczos)
	outputPath := filepath.Join("uploads/maids", fmt.Sprintf("maid_%d.jpg", maid.ID))
	if err := imaging.Save(resized, outputPath); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store picture"})
	}

	maid.PictureUrl = "/" + outputPath
	if err := m.DB.Save(maid).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update maid"})
	}

	return ctx.JSON(fiber.Map{
		"message":     "Picture uploaded successfully",
		"picture_url": maid.PictureUrl,
	})
}
