package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/config"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/database"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/handlers"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/jobs"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/repository"
	cron "github.com/MdAmzadAli/note-taking-app-sub003/internal/scheduler"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/services"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/logger"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	transcriptionRepo := repository.NewTranscriptionRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// WebSocket hub, shared by the transcription service and its handler
	hub := handlers.NewHub()

	// --- Services ---
	userService := services.NewUserService(userRepo, cfg.BaseURL)
	noteService := services.NewNoteService(noteRepo)
	taskService := services.NewTaskService(taskRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	habitService := services.NewHabitService(habitRepo, notificationService)
	templateService := services.NewTemplateService(templateRepo, noteRepo, taskRepo)
	reminderService := services.NewReminderService(reminderRepo)
	transcriptionService := services.NewTranscriptionService(transcriptionRepo, noteRepo, hub, cfg.TranscriptionAPI)
	feedbackService := services.NewFeedbackService(feedbackRepo, cfg.FeedbackInbox)
	activityService := services.NewActivityService(activityRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, activityService, cfg)
	noteHandler := handlers.NewNoteHandler(noteService, activityService)
	taskHandler := handlers.NewTaskHandler(taskService, activityService)
	habitHandler := handlers.NewHabitHandler(habitService, activityService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	reminderHandler := handlers.NewReminderHandler(reminderService, activityService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	transcriptionHandler := handlers.NewTranscriptionHandler(transcriptionService, activityService, cfg.UploadDir)
	transcriptionWSHandler := handlers.NewTranscriptionWSHandler(hub, cfg.JWTSecret)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public user routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")
	router.HandleFunc("/users/verify", userHandler.VerifyEmailHandler).Methods("GET")
	router.HandleFunc("/users/request-password-reset", userHandler.RequestPasswordResetHandler).Methods("POST")
	router.HandleFunc("/users/reset-password", userHandler.ResetPasswordHandler).Methods("POST")

	// Public feedback and beta signup routes
	router.HandleFunc("/feedback", feedbackHandler.SubmitFeedbackHandler).Methods("POST")
	router.HandleFunc("/beta-signup", feedbackHandler.BetaSignupHandler).Methods("POST")

	// Protected user routes
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedUserRoutes.HandleFunc("/me", userHandler.GetMeHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/me/activities", userHandler.GetRecentActivitiesHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.GetUserHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.UpdateUserHandler).Methods("PATCH")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.DeleteUserHandler).Methods("DELETE")

	// Note routes
	protectedNoteRoutes := router.PathPrefix("/notes").Subrouter()
	protectedNoteRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedNoteRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedNoteRoutes.HandleFunc("", noteHandler.CreateNoteHandler).Methods("POST")
	protectedNoteRoutes.HandleFunc("", noteHandler.GetNotesHandler).Methods("GET")
	protectedNoteRoutes.HandleFunc("/{id}", noteHandler.GetNoteHandler).Methods("GET")
	protectedNoteRoutes.HandleFunc("/{id}", noteHandler.UpdateNoteHandler).Methods("PUT")
	protectedNoteRoutes.HandleFunc("/{id}", noteHandler.DeleteNoteHandler).Methods("DELETE")
	protectedNoteRoutes.HandleFunc("/{id}/pin", noteHandler.PinNoteHandler).Methods("PATCH")

	// Task routes
	protectedTaskRoutes := router.PathPrefix("/tasks").Subrouter()
	protectedTaskRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedTaskRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedTaskRoutes.HandleFunc("", taskHandler.CreateTaskHandler).Methods("POST")
	protectedTaskRoutes.HandleFunc("", taskHandler.GetTasksHandler).Methods("GET")
	protectedTaskRoutes.HandleFunc("/{id}", taskHandler.GetTaskHandler).Methods("GET")
	protectedTaskRoutes.HandleFunc("/{id}", taskHandler.UpdateTaskHandler).Methods("PUT")
	protectedTaskRoutes.HandleFunc("/{id}", taskHandler.DeleteTaskHandler).Methods("DELETE")
	protectedTaskRoutes.HandleFunc("/{id}/complete", taskHandler.CompleteTaskHandler).Methods("PATCH")

	// Habit routes
	protectedHabitRoutes := router.PathPrefix("/habits").Subrouter()
	protectedHabitRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedHabitRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedHabitRoutes.HandleFunc("", habitHandler.CreateHabitHandler).Methods("POST")
	protectedHabitRoutes.HandleFunc("", habitHandler.GetHabitsHandler).Methods("GET")
	protectedHabitRoutes.HandleFunc("/{id}", habitHandler.GetHabitHandler).Methods("GET")
	protectedHabitRoutes.HandleFunc("/{id}", habitHandler.UpdateHabitHandler).Methods("PUT")
	protectedHabitRoutes.HandleFunc("/{id}", habitHandler.DeleteHabitHandler).Methods("DELETE")
	protectedHabitRoutes.HandleFunc("/{id}/completions", habitHandler.RecordCompletionHandler).Methods("POST")
	protectedHabitRoutes.HandleFunc("/{id}/progress", habitHandler.GetProgressHandler).Methods("GET")
	protectedHabitRoutes.HandleFunc("/{id}/streaks", habitHandler.GetStreaksHandler).Methods("GET")

	// Template routes
	protectedTemplateRoutes := router.PathPrefix("/templates").Subrouter()
	protectedTemplateRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedTemplateRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedTemplateRoutes.HandleFunc("", templateHandler.CreateTemplateHandler).Methods("POST")
	protectedTemplateRoutes.HandleFunc("", templateHandler.GetTemplatesHandler).Methods("GET")
	protectedTemplateRoutes.HandleFunc("/public", templateHandler.GetPublicTemplatesHandler).Methods("GET")
	protectedTemplateRoutes.HandleFunc("/{id}", templateHandler.GetTemplateByIDHandler).Methods("GET")
	protectedTemplateRoutes.HandleFunc("/{id}", templateHandler.DeleteTemplateHandler).Methods("DELETE")
	protectedTemplateRoutes.HandleFunc("/{id}/instantiate", templateHandler.InstantiateTemplateHandler).Methods("POST")

	// Reminder routes
	protectedReminderRoutes := router.PathPrefix("/reminders").Subrouter()
	protectedReminderRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedReminderRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedReminderRoutes.HandleFunc("", reminderHandler.CreateReminderHandler).Methods("POST")
	protectedReminderRoutes.HandleFunc("", reminderHandler.GetRemindersHandler).Methods("GET")
	protectedReminderRoutes.HandleFunc("/{id}", reminderHandler.GetReminderByIDHandler).Methods("GET")
	protectedReminderRoutes.HandleFunc("/{id}", reminderHandler.UpdateReminderHandler).Methods("PUT")
	protectedReminderRoutes.HandleFunc("/{id}", reminderHandler.DeleteReminderHandler).Methods("DELETE")

	// Notification routes
	protectedNotificationRoutes := router.PathPrefix("/notifications").Subrouter()
	protectedNotificationRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedNotificationRoutes.HandleFunc("", notificationHandler.GetNotificationsHandler).Methods("GET")
	protectedNotificationRoutes.HandleFunc("/{id}/read", notificationHandler.MarkAsReadHandler).Methods("PATCH")
	protectedNotificationRoutes.HandleFunc("/{id}", notificationHandler.DeleteNotificationHandler).Methods("DELETE")

	// Transcription routes
	protectedTranscriptionRoutes := router.PathPrefix("/transcriptions").Subrouter()
	protectedTranscriptionRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedTranscriptionRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedTranscriptionRoutes.HandleFunc("", transcriptionHandler.UploadVoiceNoteHandler).Methods("POST")
	protectedTranscriptionRoutes.HandleFunc("", transcriptionHandler.GetJobsHandler).Methods("GET")
	protectedTranscriptionRoutes.HandleFunc("/{id}", transcriptionHandler.GetJobByIDHandler).Methods("GET")
	protectedTranscriptionRoutes.HandleFunc("/{id}", transcriptionHandler.DeleteJobHandler).Methods("DELETE")
	protectedTranscriptionRoutes.HandleFunc("/{id}/save-to-note", transcriptionHandler.SaveToNoteHandler).Methods("POST")

	// WebSocket feed for transcription progress (token auth via query param)
	router.HandleFunc("/ws/transcriptions", transcriptionWSHandler.ServeWS)

	// Uploaded voice notes
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Admin routes
	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.HandleFunc("/users", userHandler.AdminGetAllUsersHandler).Methods("GET")
	adminRoutes.HandleFunc("/habits", habitHandler.AdminGetAllHabitsHandler).Methods("GET")
	adminRoutes.HandleFunc("/tasks", taskHandler.AdminGetAllTasksHandler).Methods("GET")
	adminRoutes.HandleFunc("/templates", templateHandler.AdminGetAllTemplatesHandler).Methods("GET")
	adminRoutes.HandleFunc("/feedback", feedbackHandler.AdminListFeedbackHandler).Methods("GET")
	adminRoutes.HandleFunc("/beta-signups", feedbackHandler.AdminListBetaSignupsHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Background jobs
	reminderNotifier := jobs.NewReminderNotifier(reminderService, notificationService)
	cron.StartCronJobs(notificationService, reminderNotifier)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
