package main

import (
	"log"

	_ "github.com/go-sql-driver/mysql"

	"MaidManager/CronJobs"
	"MaidManager/FiberConfig"
	"MaidManager/Models"
	"MaidManager/Notifications"
)

func main() {
	Models.Connect()

	if err := Notifications.InitFirebase(); err != nil {
		log.Println("Push notifications disabled:", err)
	}

	sweeper := CronJobs.NewChallengeSweeper(Models.DB)
	if err := sweeper.Start(); err != nil {
		log.Println("Failed to start challenge sweeper:", err)
	}

	FiberConfig.FiberConfig()
}
