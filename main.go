package main

import (
	"log"

	"github.com/teamuphq/teamup/config"
	"github.com/teamuphq/teamup/db"
	"github.com/teamuphq/teamup/mailingservices"
	"github.com/teamuphq/teamup/server"
	"github.com/teamuphq/teamup/services"
	"github.com/teamuphq/teamup/ws"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init(conf)

	gormDB := db.GetDB(conf)
	authRepo := db.NewAuthRepo(gormDB)
	connectionRepo := db.NewConnectionRepo(gormDB)
	messageRepo := db.NewMessageRepo(gormDB)
	notificationRepo := db.NewNotificationRepo(gormDB)
	postRepo := db.NewPostRepo(gormDB)
	teamRepo := db.NewTeamRepo(gormDB)

	authService := services.NewAuthService(authRepo, mailgunClient, conf)
	connectionService := services.NewConnectionService(authRepo, connectionRepo, notificationRepo, mailgunClient, conf)
	messageService := services.NewMessageService(authRepo, messageRepo, conf)
	notificationService := services.NewNotificationService(notificationRepo, conf)
	postService := services.NewPostService(postRepo, conf)
	teamService := services.NewTeamService(teamRepo, authRepo, conf)
	mediaService := services.NewMediaService(authRepo, conf)

	hub := ws.NewHub(messageService)

	s := &server.Server{
		Mail:                mailgunClient,
		Config:              conf,
		AuthRepository:      authRepo,
		AuthService:         authService,
		ConnectionService:   connectionService,
		MessageService:      messageService,
		NotificationService: notificationService,
		PostService:         postService,
		TeamService:         teamService,
		MediaService:        mediaService,
		Hub:                 hub,
		DB:                  *gormDB,
	}

	s.Start()
}
