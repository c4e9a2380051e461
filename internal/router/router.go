package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	pinataadapter "github.com/Nisith-Naman/Health/internal/adapters/content/pinata"
	mem "github.com/Nisith-Naman/Health/internal/adapters/storage/memory"
	pg "github.com/Nisith-Naman/Health/internal/adapters/storage/postgres"
	"github.com/Nisith-Naman/Health/internal/domain/access"
	"github.com/Nisith-Naman/Health/internal/domain/audit"
	"github.com/Nisith-Naman/Health/internal/domain/records"
	"github.com/Nisith-Naman/Health/internal/domain/roles"
	"github.com/Nisith-Naman/Health/internal/domain/tokens"
	"github.com/Nisith-Naman/Health/internal/middleware"
	"github.com/Nisith-Naman/Health/internal/platform/logger"
	"github.com/Nisith-Naman/Health/internal/ports/auth"
	"github.com/Nisith-Naman/Health/internal/ports/content"

	_ "github.com/Nisith-Naman/Health/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: content store. Si es nil, usa el de dev (in-memory).
	ContentStore content.Store

	// Address que recibe administrator en el génesis. Si viene vacía,
	// se lee BOOTSTRAP_ADMIN del env.
	BootstrapAdmin string

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		tokensRepo  tokens.Repository
		recordsRepo records.Repository
		accessRepo  access.Repository
		rolesRepo   roles.Repository
		auditRepo   audit.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres open failed, falling back to memory", map[string]any{"err": err.Error()})
			}
		}
	}

	if db != nil {
		tokensRepo = pg.NewTokensRepo(db)
		recordsRepo = pg.NewRecordsRepo(db)
		accessRepo = pg.NewAccessRepo(db)
		rolesRepo = pg.NewRolesRepo(db)
		auditRepo = pg.NewAuditRepo(db)
	} else {
		tokensRepo = mem.NewTokenRepo()
		recordsRepo = mem.NewRecordsRepo()
		accessRepo = mem.NewAccessRepo()
		rolesRepo = mem.NewRolesRepo()
		auditRepo = mem.NewAuditRepo()
	}

	// Services por módulo
	auditSvc := audit.NewService(auditRepo)
	rolesSvc := roles.NewService(rolesRepo, auditSvc)
	tokensSvc := tokens.NewService(tokensRepo, rolesSvc, auditSvc)
	accessSvc := access.NewService(accessRepo, tokensSvc, auditSvc)
	recordsSvc := records.NewService(recordsRepo, tokensSvc, rolesSvc, accessSvc)

	// Génesis: un administrador inicial; los cambios posteriores solo
	// pasan por el RoleRegistry.
	bootstrapAdmin := opts.BootstrapAdmin
	if bootstrapAdmin == "" {
		bootstrapAdmin = os.Getenv("BOOTSTRAP_ADMIN")
	}
	if bootstrapAdmin != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rolesSvc.Bootstrap(ctx, bootstrapAdmin); err != nil {
			log.Error("bootstrap admin failed", map[string]any{"err": err.Error()})
		}
		cancel()
	}

	store := opts.ContentStore
	if store == nil {
		if base := os.Getenv("PINATA_BASE_URL"); base != "" {
			client := pinataadapter.NewClient(pinataadapter.Config{
				BaseURL: base,
				JWT:     os.Getenv("PINATA_JWT"),
			})
			if client.IsConfigured() {
				store = client
			}
		}
	}
	if store == nil {
		store = mem.NewContentStore()
	}

	// Rutas por módulo
	tokens.RegisterRoutes(r, tokensSvc, accessSvc)
	records.RegisterRoutes(r, recordsSvc, store)
	access.RegisterRoutes(r, accessSvc)
	roles.RegisterRoutes(r, rolesSvc)
	audit.RegisterRoutes(r, auditSvc, rolesSvc)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
