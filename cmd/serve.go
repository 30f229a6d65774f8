package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/talentpath/assist/internal/db"
	"github.com/talentpath/assist/internal/interactions"
	"github.com/talentpath/assist/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server backing the chat widget",
	Long: `Starts the assist HTTP server: the /api/chat answer endpoint, the
/ws/chat websocket transport, article lookups, and the interaction log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		engine, _, kb, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		log.Printf("loaded %d knowledge article(s) from %s", kb.Count(), cfg.KnowledgeDir)

		database, err := db.Open(filepath.Join(cfg.Server.DataDir, "assist.db"))
		if err != nil {
			return err
		}
		defer database.Close()

		allowAll, _ := cmd.Flags().GetBool("allow-all-origins")

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAll || allowAll,
		}, engine, kb, interactions.NewStore(database))

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan os.Signal, 1)
		signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-done
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Printf("shutdown: %v", err)
			}
		}()

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().Bool("allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}
