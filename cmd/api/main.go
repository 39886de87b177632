// @title           SplitTab API
// @version         1.0
// @description     Shared-expense ledger: groups, evenly split expenses, derived balances, and settlements.
// @BasePath        /api/v1
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mlarsson/splittab/docs"
	"github.com/mlarsson/splittab/internal/balance"
	"github.com/mlarsson/splittab/internal/config"
	"github.com/mlarsson/splittab/internal/database"
	"github.com/mlarsson/splittab/internal/expense"
	"github.com/mlarsson/splittab/internal/group"
	"github.com/mlarsson/splittab/internal/settlement"
	"github.com/mlarsson/splittab/internal/user"
	"github.com/mlarsson/splittab/pkg/logger"
	mw "github.com/mlarsson/splittab/pkg/middleware"
)

func main() {
	log := logger.Get()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection and schema
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}

	log.Info("connected to database")

	// Balance feature (read-side aggregation, consumed by groups too)
	balanceRepo := balance.NewRepository(db)
	balanceService := balance.NewService(balanceRepo)
	balanceHandler := balance.NewHandler(balanceService)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, balanceService)
	groupHandler := group.NewHandler(groupService)

	// Expense feature (membership checks go through the group repository)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, groupRepo)
	expenseHandler := expense.NewHandler(expenseService)

	// Settlement feature
	settlementRepo := settlement.NewRepository(db)
	settlementService := settlement.NewService(settlementRepo, groupRepo)
	settlementHandler := settlement.NewHandler(settlementService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.TestUserMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/users", userHandler.Routes())
		r.Mount("/groups", groupHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/balance", balanceHandler.Routes())
		r.Mount("/settlements", settlementHandler.Routes())
	})

	log.Infow("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalw("server failed", "error", err)
	}
}
