package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		phone_number TEXT NOT NULL UNIQUE,
		referral_code TEXT NOT NULL UNIQUE,
		referred_by TEXT,
		blocked BOOLEAN NOT NULL DEFAULT false,
		deleted BOOLEAN NOT NULL DEFAULT false,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createRoleTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE roles (
		id INTEGER PRIMARY KEY,
		role TEXT NOT NULL,
		description TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE user_roles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		users_id INTEGER NOT NULL UNIQUE,
		role_id INTEGER NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (users_id, role_id)
	);`)
	mustExec(t, db, `INSERT INTO roles (id, role, description) VALUES
		(1, 'super_admin', 'Super admin'),
		(2, 'admin', 'Admin'),
		(6, 'sales_person', 'Sales person');`)
}

func createAdminProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE admin_profile (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		users_id INTEGER NOT NULL UNIQUE,
		dob DATE,
		gender INTEGER NOT NULL,
		last_login DATETIME,
		profile_image TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createSalesPersonProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE sales_person_profile (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		users_id INTEGER NOT NULL UNIQUE,
		dob DATE,
		gender INTEGER NOT NULL,
		address1 TEXT,
		address2 TEXT,
		city TEXT,
		district TEXT,
		state TEXT,
		country TEXT,
		postal_code TEXT,
		profile_image TEXT,
		designation TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTimeTrackingTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE sales_person_time_tracking (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		users_id INTEGER NOT NULL,
		date DATE NOT NULL,
		log_in_time DATETIME NOT NULL,
		log_out_time DATETIME,
		active_login_time TEXT,
		active TEXT NOT NULL
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX idx_time_tracking_open_session
		ON sales_person_time_tracking (users_id) WHERE active = 'true';`)
}

func seedUser(t *testing.T, db *gorm.DB, id int64, email, phone string, blocked, deleted bool) {
	mustExec(t, db, `INSERT INTO users (id, full_name, email, password, phone_number, referral_code, blocked, deleted, created_at, updated_at)
		VALUES (?, ?, ?, 'hash', ?, ?, ?, ?, ?, ?)`,
		id, "User "+email, email, phone, fmt.Sprintf("ref%d", id), blocked, deleted, time.Now(), time.Now())
}
