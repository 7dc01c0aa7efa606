package main

import (
	"context"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/siteworkhq/sitework/internal/api"
	"github.com/siteworkhq/sitework/internal/auth"
	"github.com/siteworkhq/sitework/internal/build"
	"github.com/siteworkhq/sitework/internal/config"
	"github.com/siteworkhq/sitework/internal/db"
	"github.com/siteworkhq/sitework/internal/share"
	"github.com/siteworkhq/sitework/internal/store"
	"github.com/siteworkhq/sitework/internal/tenant"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			sessionManager := auth.NewSessionManager(database, cfg.DB.Driver, cfg.SessionLifetime)

			ctx := context.Background()
			oidcProvider, err := auth.NewProvider(ctx, cfg)
			if err != nil {
				return err
			}

			userStore := store.NewUserStore(database)
			tenantStore := store.NewTenantStore(database)
			membershipStore := store.NewMembershipStore(database)
			projectStore := store.NewProjectStore(database)
			documentStore := store.NewDocumentStore(database)
			photoStore := store.NewPhotoStore(database)
			shareStore := share.NewStore(database)

			if cfg.DevMode() {
				log.Printf("development mode: demo identity shortcut enabled")
			}
			resolver := tenant.NewResolver(userStore, membershipStore, cfg.DevMode())

			authHandlers := auth.NewHandlers(oidcProvider, sessionManager, userStore, cfg.SuperadminEmail)
			tenantMiddleware := tenant.NewMiddleware(sessionManager, resolver)
			shareService := share.NewService(shareStore, projectStore)

			router := api.NewRouter(api.Deps{
				SessionManager:   sessionManager,
				AuthHandlers:     authHandlers,
				TenantMiddleware: tenantMiddleware,
				TenantStore:      tenantStore,
				UserStore:        userStore,
				MembershipStore:  membershipStore,
				ProjectStore:     projectStore,
				DocumentStore:    documentStore,
				PhotoStore:       photoStore,
				ShareService:     shareService,
			})

			log.Printf("sitework %s (%s@%s) listening on %s", build.Version, build.Commit, build.Branch, cfg.HTTP.Addr)
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}
