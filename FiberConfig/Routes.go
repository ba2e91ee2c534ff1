package FiberConfig

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
	"gorm.io/gorm"

	"MaidManager/Controllers"
	"MaidManager/Models"
	"MaidManager/Verification"
	"MaidManager/Whatsapp"
	"MaidManager/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	whatsappClient := Whatsapp.NewClient()
	flow := Verification.NewFlow(db, Verification.StrategyFromEnv(whatsappClient))

	authController := Controllers.NewAuthController(db)
	maidController := Controllers.NewMaidController(db)
	taskController := Controllers.NewTaskController(db)
	attendanceController := Controllers.NewAttendanceController(db, flow)
	payrollController := Controllers.NewPayrollController(db)

	// API group
	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Post("/logout", authController.Logout)
	auth.Get("/user", middleware.Protected(), authController.CurrentUser)

	// Device token + ops routes
	api.Post("/UpdateToken", middleware.Protected(), Models.UpdateToken)
	api.Get("/whatsapp/status", middleware.Protected(), whatsappClient.Status)

	// Maid routes
	maids := api.Group("/maids", middleware.Protected())
	maids.Get("/", maidController.GetMaids)
	maids.Post("/", maidController.CreateMaid)

	// OTP routes - place these BEFORE the ID routes to avoid conflicts
	maids.Post("/request-otp/:maidId", attendanceController.RequestOtp)
	maids.Post("/verify-otp/:maidId", attendanceController.VerifyOtp)

	maids.Get("/:maidId", maidController.GetMaid)
	maids.Put("/:maidId", maidController.UpdateMaid)
	maids.Delete("/:maidId", maidController.DeleteMaid)
	maids.Post("/:maidId/picture", maidController.UploadPicture)

	// Task routes
	maids.Post("/:maidId/tasks", taskController.AddTask)
	maids.Put("/:maidId/tasks/:taskId", taskController.UpdateTask)
	maids.Delete("/:maidId/tasks/:taskId", taskController.DeleteTask)

	// Attendance routes
	maids.Get("/:maidId/attendance", attendanceController.GetAttendance)
	maids.Post("/:maidId/attendance", attendanceController.MarkAttendance)

	// Payroll routes
	maids.Get("/:maidId/payroll", payrollController.GetPayroll)
	maids.Post("/:maidId/payroll/close", payrollController.ClosePayroll)
	maids.Get("/:maidId/payroll/history", payrollController.PayrollHistory)
	maids.Get("/:maidId/payroll/export", payrollController.ExportPayroll)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	engine := html.New("./Templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{
			"Title": "My Maid Manager API is running...",
		})
	})

	SetupRoutes(app, Models.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
