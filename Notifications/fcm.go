package Notifications

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"MaidManager/Models"
)

var firebaseClient *messaging.Client
var ctx = context.Background()

// InitFirebase sets up the FCM client. Call once at startup; when it fails
// the app keeps running and pushes are silently skipped.
func InitFirebase() error {
	credentials := os.Getenv("FIREBASE_CREDENTIALS_FILE")
	if credentials == "" {
		credentials = "./serviceAccountKey.json"
	}
	opt := option.WithCredentialsFile(credentials)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("error initializing Firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("error getting Messaging client: %v", err)
	}

	firebaseClient = client
	log.Println("Firebase initialized successfully")
	return nil
}

// NotifyAttendanceMarked pushes a note to every device of the maid's owner
// after an attendance record is written. Failures are logged, never
// surfaced: push delivery is best-effort and must not fail the request.
func NotifyAttendanceMarked(db *gorm.DB, maid *Models.Maid, record *Models.AttendanceRecord) {
	if firebaseClient == nil {
		return
	}

	var tokens []Models.FCMToken
	if err := db.Where("user_id = ?", maid.UserID).Find(&tokens).Error; err != nil {
		log.Printf("Failed to load FCM tokens for user %d: %v", maid.UserID, err)
		return
	}

	title := "Attendance marked"
	body := fmt.Sprintf("%s: %s marked %s for %s", maid.Name, record.TaskName, record.Status, record.Date)

	for _, token := range tokens {
		message := &messaging.Message{
			Token: token.Value,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: map[string]string{
				"maid_id":   fmt.Sprintf("%d", maid.ID),
				"task_name": record.TaskName,
				"status":    record.Status,
				"date":      record.Date,
			},
		}

		if _, err := firebaseClient.Send(ctx, message); err != nil {
			log.Printf("Error sending notification to token %d: %v", token.ID, err)
		}
	}
}
