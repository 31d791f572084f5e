package main

import (
	"log"
	"os"

	"subcontrol-be/internal/model"
	"subcontrol-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Running AutoMigrate...")

	models := []interface{}{
		&model.Customer{},
		&model.Plan{},
		&model.Subscription{},
		&model.Payment{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 3. Post-Migration: keep updated_at honest for rows touched outside the app
	postMigrationSQL := []string{
		`CREATE OR REPLACE FUNCTION set_current_timestamp_updated_at() RETURNS trigger LANGUAGE plpgsql AS $$
		DECLARE _new_value TIMESTAMP WITH TIME ZONE;
		BEGIN
		  _new_value := now();
		  IF NEW.updated_at IS DISTINCT FROM _new_value THEN NEW.updated_at = _new_value; END IF;
		  RETURN NEW;
		END; $$;`,
	}
	for _, table := range []string{"customers", "plans", "subscriptions"} {
		postMigrationSQL = append(postMigrationSQL,
			`DROP TRIGGER IF EXISTS set_`+table+`_updated_at ON `+table+`;`,
			`CREATE TRIGGER set_`+table+`_updated_at BEFORE UPDATE ON `+table+` FOR EACH ROW EXECUTE FUNCTION set_current_timestamp_updated_at();`,
		)
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed.")
}
