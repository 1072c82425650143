package database

import (
	"database/sql"
	"log"
	"net/url"
	"strings"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/anandamoyee/internal/models"
	"github.com/example/anandamoyee/internal/utils"
)

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) *gorm.DB {
	if err := ensureDatabase(dsn); err != nil {
		log.Fatalf("failed to ensure database: %v", err)
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	return conn
}

func migrate(conn *gorm.DB) error {
	migrations := []interface{}{
		&models.Category{},
		&models.Product{},
		&models.ProductSpecification{},
		&models.Banner{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Enquiry{},
		&models.Setting{},
		&models.AdminUser{},
	}

	for _, migration := range migrations {
		if err := conn.AutoMigrate(migration); err != nil {
			return err
		}
	}

	return nil
}

// SeedAdmin makes sure the back-office account exists with the
// configured password.
func SeedAdmin(conn *gorm.DB, username, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	var admin models.AdminUser
	err = conn.First(&admin, "username = ?", username).Error
	if err == gorm.ErrRecordNotFound {
		return conn.Create(&models.AdminUser{Username: username, PasswordHash: hash}).Error
	}
	if err != nil {
		return err
	}

	if !utils.CheckPassword(admin.PasswordHash, password) {
		return conn.Model(&admin).Update("password_hash", hash).Error
	}
	return nil
}

func ensureDatabase(dsn string) error {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	masterDSN := parsed.String()

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
