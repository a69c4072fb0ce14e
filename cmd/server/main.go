package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/anuarbek-t/sociograph/internal/config"
	"github.com/anuarbek-t/sociograph/internal/database"
	"github.com/anuarbek-t/sociograph/internal/handlers"
	"github.com/anuarbek-t/sociograph/internal/jobs"
	"github.com/anuarbek-t/sociograph/internal/repository"
	cron "github.com/anuarbek-t/sociograph/internal/scheduler"
	"github.com/anuarbek-t/sociograph/internal/services"
	"github.com/anuarbek-t/sociograph/pkg/logger"
	"github.com/anuarbek-t/sociograph/pkg/middleware"
	"github.com/anuarbek-t/sociograph/pkg/paginate"
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
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("Index setup error: %v", err)
	}

	engine := paginate.NewEngine(db)

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	connRepo := repository.NewConnectionRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	removedRepo := repository.NewRemovedConnectionRepository(db)

	// --- Services ---
	validator := services.NewRelationshipValidator(userRepo, blockRepo)
	userService := services.NewUserService(userRepo, engine)
	followService := services.NewFollowService(followRepo, validator, engine)
	connService := services.NewConnectionService(connRepo, removedRepo, userRepo, validator, engine)
	blockService := services.NewBlockService(blockRepo, userRepo, engine)
	groupService := services.NewGroupService(groupRepo, validator, engine)
	suggestionService := services.NewSuggestionService(userRepo, connRepo, blockRepo, removedRepo, groupRepo, engine)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	followHandler := handlers.NewFollowHandler(followService)
	connHandler := handlers.NewConnectionHandler(connService)
	blockHandler := handlers.NewBlockHandler(blockService)
	groupHandler := handlers.NewGroupHandler(groupService)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public user routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")

	// Protected user routes
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.Use(middleware.UpdateLastActiveMiddleware(userService))
	protectedUserRoutes.HandleFunc("/me", userHandler.GetMeHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/me", userHandler.UpdateProfileHandler).Methods("PATCH")
	protectedUserRoutes.HandleFunc("/me", userHandler.DeleteUserHandler).Methods("DELETE")
	protectedUserRoutes.HandleFunc("/me/privacy", userHandler.UpdatePrivacyHandler).Methods("PUT")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.GetUserHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}/followers", followHandler.FollowersHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}/following", followHandler.FollowingHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}/follow-counts", followHandler.FollowCountsHandler).Methods("GET")

	// Follow routes
	protectedFollowRoutes := router.PathPrefix("/follows").Subrouter()
	protectedFollowRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedFollowRoutes.HandleFunc("/{id}", followHandler.FollowUserHandler).Methods("POST")
	protectedFollowRoutes.HandleFunc("/{id}", followHandler.UnfollowUserHandler).Methods("DELETE")

	// Connection routes
	protectedConnRoutes := router.PathPrefix("/connections").Subrouter()
	protectedConnRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedConnRoutes.HandleFunc("", connHandler.ConnectionsHandler).Methods("GET")
	protectedConnRoutes.HandleFunc("/requests/incoming", connHandler.PendingIncomingHandler).Methods("GET")
	protectedConnRoutes.HandleFunc("/requests/outgoing", connHandler.PendingOutgoingHandler).Methods("GET")
	protectedConnRoutes.HandleFunc("/requests/{id}/accept", connHandler.AcceptRequestHandler).Methods("POST")
	protectedConnRoutes.HandleFunc("/requests/{id}/decline", connHandler.DeclineRequestHandler).Methods("POST")
	protectedConnRoutes.HandleFunc("/requests/{id}", connHandler.CancelRequestHandler).Methods("DELETE")
	protectedConnRoutes.HandleFunc("/mutual/{id}", connHandler.MutualConnectionsHandler).Methods("GET")
	protectedConnRoutes.HandleFunc("/{id}", connHandler.SendRequestHandler).Methods("POST")
	protectedConnRoutes.HandleFunc("/{id}", connHandler.RemoveConnectionHandler).Methods("DELETE")

	// Block routes
	protectedBlockRoutes := router.PathPrefix("/blocks").Subrouter()
	protectedBlockRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedBlockRoutes.HandleFunc("", blockHandler.BlockedUsersHandler).Methods("GET")
	protectedBlockRoutes.HandleFunc("/{id}", blockHandler.BlockUserHandler).Methods("POST")
	protectedBlockRoutes.HandleFunc("/{id}", blockHandler.UnblockUserHandler).Methods("DELETE")

	// Group routes
	protectedGroupRoutes := router.PathPrefix("/groups").Subrouter()
	protectedGroupRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedGroupRoutes.HandleFunc("", groupHandler.CreateGroupHandler).Methods("POST")
	protectedGroupRoutes.HandleFunc("", groupHandler.ListGroupsHandler).Methods("GET")
	protectedGroupRoutes.HandleFunc("/{id}", groupHandler.GetGroupHandler).Methods("GET")
	protectedGroupRoutes.HandleFunc("/{id}", groupHandler.DeleteGroupHandler).Methods("DELETE")
	protectedGroupRoutes.HandleFunc("/{id}/join", groupHandler.JoinGroupHandler).Methods("POST")
	protectedGroupRoutes.HandleFunc("/{id}/leave", groupHandler.LeaveGroupHandler).Methods("POST")
	protectedGroupRoutes.HandleFunc("/{id}/pending/{userId}/approve", groupHandler.ApprovePendingHandler).Methods("POST")
	protectedGroupRoutes.HandleFunc("/{id}/pending/{userId}/reject", groupHandler.RejectPendingHandler).Methods("POST")
	protectedGroupRoutes.HandleFunc("/{id}/members/{userId}", groupHandler.RemoveMemberHandler).Methods("DELETE")
	protectedGroupRoutes.HandleFunc("/{id}/members/{userId}/promote-admin", groupHandler.PromoteAdminHandler).Methods("POST")
	protectedGroupRoutes.HandleFunc("/{id}/members/{userId}/promote-coleader", groupHandler.PromoteCoLeaderHandler).Methods("POST")
	protectedGroupRoutes.HandleFunc("/{id}/members/{userId}/demote", groupHandler.DemoteRoleHandler).Methods("POST")

	// Suggestion routes
	protectedSuggestionRoutes := router.PathPrefix("/suggestions").Subrouter()
	protectedSuggestionRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedSuggestionRoutes.HandleFunc("/people", suggestionHandler.PeopleSuggestionsHandler).Methods("GET")
	protectedSuggestionRoutes.HandleFunc("/groups", suggestionHandler.GroupSuggestionsHandler).Methods("GET")

	// Admin routes
	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.HandleFunc("/users", userHandler.AdminListUsersHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Background sweep of expired removed-connection markers
	sweeper := jobs.NewMarkerSweeper(removedRepo)
	cron.StartCronJobs(sweeper)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
