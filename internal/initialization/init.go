// The init package contains functions that setup required dependencies such as the SQLite database.
package initialization

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate"
	"github.com/golang-migrate/migrate/database/sqlite3"
	_ "github.com/golang-migrate/migrate/source/file"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/config"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 10

// SetupDB applies all remaining migrations, then makes sure the instance row and the default blog exist.
func SetupDB(cfg *config.Configuration, db *sql.DB, folder, dbname string) error {
	log.Info().Msg("starting migrations")
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		log.Error().Err(err).Msg("failed to create sqlite3 migration driver")
		return err
	}

	mig, err := migrate.NewWithDatabaseInstance(
		"file://"+folder,
		dbname,
		driver,
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create Migrate object")
		return err
	}

	if err = mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error().Err(err).Msg("failed to run migrations")
		return err
	}

	if err = EnsureInstance(db, cfg); err != nil {
		return err
	}
	return EnsureBlog(db, cfg)
}

// OpenDB opens a sqlite database with foreign key enforcement turned on.
func OpenDB(connString string) (*sql.DB, error) {
	if !strings.Contains(connString, "_fk=") && !strings.Contains(connString, "_foreign_keys=") {
		sep := "?"
		if strings.Contains(connString, "?") {
			sep = "&"
		}
		connString += sep + "_fk=1"
	}
	db, err := sql.Open("sqlite3", connString)
	if err != nil {
		log.Error().Err(err).Str("connection string", connString).Msg("failed to open database")
		return nil, err
	}
	return db, nil
}

func EnsureInstance(DB *sql.DB, cfg *config.Configuration) error {
	row := DB.QueryRow("SELECT EXISTS(SELECT TRUE FROM instance WHERE id = 1)")
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	log.Info().Msg("inserting server data into the database")
	pub, priv, err := utils.GenerateKeysPem(2048)
	if err != nil {
		return err
	}

	_, err = DB.Exec("INSERT INTO instance(id, name, url, public_key, private_key) VALUES (1,?,?,?,?)",
		cfg.Name, cfg.Url.String(), pub, priv)
	if err != nil {
		log.Error().Err(err).Msg("insert failed")
	}
	return err
}

// EnsureBlog creates the default blog, its first category and an administrator holding every permission, unless
// the blog already exists.
func EnsureBlog(DB *sql.DB, cfg *config.Configuration) error {
	if cfg.DefaultBlog == "" {
		return nil
	}
	var exists bool
	if err := DB.QueryRow("SELECT EXISTS(SELECT TRUE FROM blogs WHERE id = ?)", cfg.DefaultBlog).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}
	if cfg.AdminPassword == "" {
		return fmt.Errorf("admin.password must be set to create blog %q", cfg.DefaultBlog)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), BcryptCost)
	if err != nil {
		return err
	}

	log.Info().Str("blog", cfg.DefaultBlog).Str("admin", cfg.AdminUser).Msg("creating default blog")
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	blogURL := cfg.Url.JoinPath("blog", cfg.DefaultBlog).String() + "/"
	if _, err = tx.Exec(`INSERT INTO blogs(id, name, url, owner, owner_email, properties) VALUES (?,?,?,?,?,?)`,
		cfg.DefaultBlog, cfg.Name, blogURL, cfg.AdminUser, cfg.AdminEmail,
		`{"`+domain.PropCommentThrottle+`":"5","`+domain.PropAcceptedTypes+`":"image/png, image/jpeg, image/gif"}`); err != nil {
		return err
	}
	if _, err = tx.Exec("INSERT INTO categories(blog_id, name, description) VALUES (?, 'uncategorized', 'Uncategorized')",
		cfg.DefaultBlog); err != nil {
		return err
	}
	res, err := tx.Exec("INSERT INTO users(blog_id, login, name, email, password_hash) VALUES (?,?,?,?,?)",
		cfg.DefaultBlog, cfg.AdminUser, cfg.AdminUser, cfg.AdminEmail, string(hash))
	if err != nil {
		return err
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	if _, err = tx.Exec("INSERT INTO user_permissions(user_id, permission) VALUES (?, ?)", userID, domain.PermissionAll); err != nil {
		return err
	}
	err = tx.Commit()
	return err
}

// InitQueue opens the task queue database and installs backlite's schema.
func InitQueue(cfg *config.Configuration) (*backlite.Client, error) {
	d, err := OpenDB(cfg.QueueDbUrl)
	if err != nil {
		return nil, err
	}

	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              d,
		Logger:          queueLogger{},
		ReleaseAfter:    10 * time.Minute,
		NumWorkers:      4,
		CleanupInterval: time.Hour,
	})
	if err != nil {
		return nil, err
	}

	return client, client.Install()
}

// queueLogger writes backlite's messages through zerolog.
type queueLogger struct{}

func (queueLogger) Info(message string, params ...any) {
	log.Info().Fields(params).Msg(message)
}

func (queueLogger) Error(message string, params ...any) {
	log.Error().Fields(params).Msg(message)
}
