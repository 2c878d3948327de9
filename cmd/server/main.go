// Taxonomy - category management API server
package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aethra/taxonomy/internal/api"
	"github.com/aethra/taxonomy/internal/auth"
	"github.com/aethra/taxonomy/internal/config"
	"github.com/aethra/taxonomy/internal/database"
	"github.com/aethra/taxonomy/internal/store"
	"github.com/spf13/pflag"
	"gorm.io/gorm"
)

var Version = "1.0.0"

const usage = `Usage: taxonomy-server [command] [flags]
Commands:
  serve                    Start server (default)
  migrate                  Run migrations
  seed                     Insert sample business fields, social handles,
                           pricing models and display types into empty tables
  hash-password            Read a password from stdin and print its bcrypt hash
  token [--user=name]      Print an operator token signed with JWT_SECRET
  secret                   Print a random value for JWT_SECRET`

func main() {
	cfg := config.Load()
	log := cfg.Log.NewLogger()

	cmd := "serve"
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "serve":
		err = serve(cfg, log)
	case "migrate":
		err = migrate(cfg, log)
	case "seed":
		err = seed(cfg, log)
	case "hash-password":
		err = hashPassword()
	case "token":
		err = token(cfg, args)
	case "secret":
		fmt.Println(generateSecret(48))
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Error("command failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

func serve(cfg *config.Config, log *slog.Logger) error {
	log.Info("starting taxonomy server", "version", Version)

	db, err := connectDB(cfg, log)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, log); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Info("migrations complete")

	if !cfg.Auth.Enabled() {
		log.Warn("JWT_SECRET is not set; write routes are open")
	}

	router := api.SetupRouter(cfg, store.New(db), log)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.Server.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func connectDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	return database.Open(cfg.Database, log)
}

func migrate(cfg *config.Config, log *slog.Logger) error {
	db, err := connectDB(cfg, log)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, log); err != nil {
		return err
	}
	fmt.Println("Migrations complete")
	return nil
}

func seed(cfg *config.Config, log *slog.Logger) error {
	db, err := connectDB(cfg, log)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, log); err != nil {
		return err
	}
	if err := store.New(db).Seed(context.Background(), log); err != nil {
		return err
	}
	fmt.Println("Seed complete")
	return nil
}

func hashPassword() error {
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && password == "" {
		return fmt.Errorf("read password: %w", err)
	}
	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		return errors.New("password is empty")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
	return nil
}

func token(cfg *config.Config, args []string) error {
	fs := pflag.NewFlagSet("token", pflag.ContinueOnError)
	user := fs.String("user", cfg.Auth.AdminUsername, "operator name carried in the token")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !cfg.Auth.Enabled() {
		return errors.New("JWT_SECRET is not set")
	}
	tok, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessExpiry).GenerateToken(*user)
	if err != nil {
		return err
	}
	fmt.Println(tok.AccessToken)
	fmt.Fprintf(os.Stderr, "expires %s\n", tok.ExpiresAt.Format(time.RFC3339))
	return nil
}

func generateSecret(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)[:length]
}
