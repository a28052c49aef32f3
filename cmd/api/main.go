package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"mangavault/internal/config"
	"mangavault/internal/database"
	"mangavault/internal/domain/account"
	"mangavault/internal/domain/gallery"
	"mangavault/internal/domain/upload"
	"mangavault/internal/identity"
	"mangavault/internal/middleware"
	jwtsvc "mangavault/internal/pkg/jwt"
	"mangavault/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(&account.Account{}, &gallery.ImageRecord{}); err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	accountRepo := account.NewRepository(db)
	accountService := account.NewService(accountRepo, j)
	accountHandler := account.NewHandler(accountService)

	var provider identity.Provider
	switch cfg.IdentitySource {
	case "remote":
		provider = identity.NewRemoteProvider(cfg.IdentityAPIBase, cfg.IdentitySecretKey, cfg.IdentityTimeout)
	default:
		provider = identity.NewLocalProvider(accountRepo)
	}

	var store storage.ObjectStore
	var localStore *storage.LocalStore
	switch cfg.StorageBackend {
	case "gcs":
		store, err = storage.NewGCSStore(context.Background(), cfg.GCSBucket)
		if err != nil {
			log.Fatal(err)
		}
	default:
		localStore = storage.NewLocalStore(cfg.UploadsDir, cfg.StaticURLBase)
		store = localStore
	}

	hub := gallery.NewHub()

	galleryRepo := gallery.NewRepository(db)
	galleryService := gallery.NewService(galleryRepo, provider, store, hub)
	galleryHandler := gallery.NewHandler(galleryService)

	uploadService := upload.NewService(galleryService, provider, store)
	uploadHandler := upload.NewHandler(uploadService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	if localStore != nil {
		r.Static(cfg.StaticURLBase, localStore.BaseDir())
	}

	r.GET("/ws/gallery", hub.ServeWS)

	v1 := r.Group("/api/v1")
	{
		account.RegisterRoutes(v1, accountHandler)
		gallery.RegisterPublicRoutes(v1, galleryHandler)

		protected := v1.Group("")
		protected.Use(middleware.Auth(j))
		{
			gallery.RegisterProtectedRoutes(protected, galleryHandler)
			upload.RegisterRoutes(protected, uploadHandler)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
