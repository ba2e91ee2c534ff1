package Controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"MaidManager/Models"
	"MaidManager/Verification"
	"MaidManager/middleware"
)

type stubSender struct {
	codes []string
	fail  bool
}

func (s *stubSender) SendCode(phone, code string) error {
	if s.fail {
		return errors.New("sidecar down")
	}
	s.codes = append(s.codes, code)
	return nil
}

// newTestApp wires the maid routes against a throwaway database and a stub
// code sender, and returns a logged-in owner account.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, Models.User, *stubSender) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Models.Migrate(db))
	Models.DB = db // middleware.Protected reads the global connection

	sender := &stubSender{}
	flow := Verification.NewFlow(db, &Verification.LocalStrategy{Sender: sender})

	authController := NewAuthController(db)
	maidController := NewMaidController(db)
	taskController := NewTaskController(db)
	attendanceController := NewAttendanceController(db, flow)
	payrollController := NewPayrollController(db)

	app := fiber.New()
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Get("/user", middleware.Protected(), authController.CurrentUser)

	maids := api.Group("/maids", middleware.Protected())
	maids.Get("/", maidController.GetMaids)
	maids.Post("/", maidController.CreateMaid)
	maids.Post("/request-otp/:maidId", attendanceController.RequestOtp)
	maids.Post("/verify-otp/:maidId", attendanceController.VerifyOtp)
	maids.Get("/:maidId", maidController.GetMaid)
	maids.Post("/:maidId/tasks", taskController.AddTask)
	maids.Put("/:maidId/tasks/:taskId", taskController.UpdateTask)
	maids.Delete("/:maidId/tasks/:taskId", taskController.DeleteTask)
	maids.Get("/:maidId/attendance", attendanceController.GetAttendance)
	maids.Post("/:maidId/attendance", attendanceController.MarkAttendance)
	maids.Get("/:maidId/payroll", payrollController.GetPayroll)
	maids.Post("/:maidId/payroll/close", payrollController.ClosePayroll)
	maids.Get("/:maidId/payroll/history", payrollController.PayrollHistory)

	user := Models.User{Name: "Owner", Email: "owner@example.com"}
	require.NoError(t, db.Create(&user).Error)

	return app, db, user, sender
}

func authCookie(t *testing.T, user Models.User) *http.Cookie {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Issuer:    strconv.Itoa(int(user.ID)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(middleware.SecretKey))
	require.NoError(t, err)
	return &http.Cookie{Name: "jwt", Value: token}
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}, cookie *http.Cookie) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func seedMaid(t *testing.T, db *gorm.DB, user Models.User) Models.Maid {
	t.Helper()
	maid := Models.Maid{UserID: user.ID, Name: "Asha", MobileNo: "201234567890", Address: "Cairo"}
	require.NoError(t, db.Create(&maid).Error)
	return maid
}
