// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/pentarow/gomoku/internal/auth"
	"github.com/pentarow/gomoku/internal/cache"
	"github.com/pentarow/gomoku/internal/database"
	"github.com/pentarow/gomoku/internal/handlers"
	"github.com/pentarow/gomoku/internal/middleware"
)

func main() {
	auth.Init()
	database.ConnectDB()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	if err := cache.ConnectRedis(); err != nil {
		// The move journal is optional; matches still persist to postgres.
		logger.Warnf("redis unavailable, move journal disabled: %v", err)
	}

	srv := handlers.NewRoomServer(logger, &handlers.StoreRecorder{Logger: logger})

	mux := http.NewServeMux()

	// user endpoints
	mux.HandleFunc("/user/create", handlers.CreateUserHandler)
	mux.HandleFunc("/user/login", handlers.LoginHandler)

	// room websocket
	mux.Handle("/rooms/ws/", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.RoomWSHandler(srv),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
