package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the test database. Expects a MySQL instance on
// localhost:3306 with a database named 'denethor_test'; tests are
// skipped when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/denethor_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	_, err := db.Exec("DELETE FROM orders")
	if err != nil {
		t.Logf("failed to clean orders table: %v", err)
	}

	db.Close()
}

// SetupTestTables creates the orders table used by the repository tests.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		productId BIGINT NOT NULL,
		quantity BIGINT NOT NULL,
		amount BIGINT NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'CREATED',
		orderDate DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_status (status)
	)`

	_, err := db.Exec(createOrdersTable)
	if err != nil {
		t.Logf("failed to create orders table: %v", err)
	}
}
