package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.SetPrefix("dt/diet-tracker-go-api: ")
	log.SetFlags(0)

	// .env is optional in deployed environments where DB_URL comes from the
	// platform; only local dev relies on the file.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	h := &Handler{
		db:  getDBPool(),
		now: time.Now,
	}

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":3000"
	}
	if err := router.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
