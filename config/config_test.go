package config

import (
	"os"
	"strings"
	"sync"
	"testing"
)

func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetenv(t, "PORT", "DB_DRIVER", "AUDIT_SCHEDULE")
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Port != "8080" {
		t.Errorf("Port = %q, want 8080", c.Port)
	}
	if c.DBDriver != "mysql" {
		t.Errorf("DBDriver = %q, want mysql", c.DBDriver)
	}
	if c.AuditSchedule != "@hourly" {
		t.Errorf("AuditSchedule = %q, want @hourly", c.AuditSchedule)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.IsProduction() {
		t.Error("IsProduction = false, want true")
	}
	if c.CacheTTLSeconds != 30 {
		t.Errorf("CacheTTLSeconds = %d, want 30", c.CacheTTLSeconds)
	}
}

func TestMySQLDSN_FromParts(t *testing.T) {
	dsn, err := MySQLDSN(&Config{
		MySQLUser: "app", MySQLPass: "secret", MySQLHost: "db", MySQLPort: "3307", MySQLDB: "products",
	})
	if err != nil {
		t.Fatalf("MySQLDSN: %v", err)
	}
	for _, want := range []string{"app:secret@tcp(db:3307)/products", "parseTime=true", "charset=utf8mb4"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("dsn %q missing %q", dsn, want)
		}
	}
}

func TestMySQLDSN_ForcesParseTime(t *testing.T) {
	dsn, err := MySQLDSN(&Config{MySQLDSN: "root:root@tcp(localhost:3306)/products"})
	if err != nil {
		t.Fatalf("MySQLDSN: %v", err)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("dsn %q missing parseTime=true", dsn)
	}
}

func TestMySQLDSN_Invalid(t *testing.T) {
	if _, err := MySQLDSN(&Config{MySQLDSN: "not a dsn"}); err == nil {
		t.Error("MySQLDSN(invalid): want error")
	}
}

func TestOpenDB_SQLite(t *testing.T) {
	db, err := OpenDB(&Config{DBDriver: "sqlite", SQLitePath: ":memory:", GormLog: "off"})
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("DB: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestOpenDB_UnknownDriver(t *testing.T) {
	if _, err := OpenDB(&Config{DBDriver: "oracle"}); err == nil {
		t.Error("OpenDB(oracle): want error")
	}
}

func resetAppConfig(t *testing.T) {
	t.Helper()
	reset := func() {
		AppConfig = nil
		loadErr = nil
		once = sync.Once{}
	}
	reset()
	t.Cleanup(reset)
}

func TestApp_PanicsOnBadEnv(t *testing.T) {
	resetAppConfig(t)
	t.Setenv("REDIS_DB", "not-a-number")

	first := LoadAppConfig()
	if first == nil {
		t.Fatal("LoadAppConfig: want error for REDIS_DB")
	}
	if err := LoadAppConfig(); err != first {
		t.Errorf("second LoadAppConfig = %v, want first error %v", err, first)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Error("App: expected panic")
		}
		if AppConfig != nil {
			t.Errorf("AppConfig = %+v, want nil", AppConfig)
		}
	}()
	App()
}

func TestApp_LoadsDefaults(t *testing.T) {
	resetAppConfig(t)
	unsetenv(t, "PORT", "DB_DRIVER", "REDIS_DB")
	c := App()
	if c.Port != "8080" || c.DBDriver != "mysql" {
		t.Errorf("App() = %+v, want defaults", c)
	}
	if App() != c {
		t.Error("App() should return the loaded config")
	}
}
