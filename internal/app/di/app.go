package di

import (
	"gorm.io/gorm"

	adminhandler "store_rating/internal/feature/admin/transport/handler"
	adminusecase "store_rating/internal/feature/admin/usecase"
	authadapters "store_rating/internal/feature/auth/adapters"
	authentity "store_rating/internal/feature/auth/domain/entity"
	authhandler "store_rating/internal/feature/auth/transport/handler"
	authusecase "store_rating/internal/feature/auth/usecase"
	ratingadapters "store_rating/internal/feature/ratings/adapters"
	ratingentity "store_rating/internal/feature/ratings/domain/entity"
	ratinghandler "store_rating/internal/feature/ratings/transport/handler"
	ratingusecase "store_rating/internal/feature/ratings/usecase"
	storeadapters "store_rating/internal/feature/stores/adapters"
	storeentity "store_rating/internal/feature/stores/domain/entity"
	storehandler "store_rating/internal/feature/stores/transport/handler"
	storeusecase "store_rating/internal/feature/stores/usecase"
)

// Models returns every persisted entity in dependency order for AutoMigrate.
func Models() []any {
	return []any{&authentity.User{}, &storeentity.Store{}, &ratingentity.Rating{}}
}

// Handlers groups the HTTP handlers of every feature.
type Handlers struct {
	Auth    *authhandler.AuthHandler
	Stores  *storehandler.StoreHandler
	Ratings *ratinghandler.RatingHandler
	Admin   *adminhandler.AdminHandler
}

// NewHandlers wires repositories, usecases and handlers on top of db.
// ratingMetrics may be nil.
func NewHandlers(db *gorm.DB, tokens authusecase.TokenIssuer, ratingMetrics ratingusecase.SubmissionRecorder) *Handlers {
	// Repository
	userRepo := authadapters.NewUserGorm(db)
	storeRepo := storeadapters.NewStoreGorm(db)
	ratingRepo := ratingadapters.NewRatingGorm(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	storeUC := storeusecase.NewStoreUsecase(storeRepo, userRepo)
	ratingUC := ratingusecase.NewRatingUsecase(ratingRepo, ratingMetrics)
	adminUC := adminusecase.NewAdminUsecase(userRepo, storeRepo, ratingRepo, authUC)

	// Handler
	return &Handlers{
		Auth:    authhandler.NewAuthHandler(authUC),
		Stores:  storehandler.NewStoreHandler(storeUC),
		Ratings: ratinghandler.NewRatingHandler(ratingUC),
		Admin:   adminhandler.NewAdminHandler(adminUC),
	}
}
