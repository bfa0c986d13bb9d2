package database

import (
	"errors"
	"io"
	"testing"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	cases := []struct {
		name, in, user, pass, want string
	}{
		{
			name: "url_form",
			in:   "mysql://root:pw@db:3306/news?useSSL=false&serverTimezone=UTC",
			want: "root:pw@tcp(db:3306)/news?charset=utf8mb4&loc=UTC&parseTime=true&tls=false",
		},
		{
			name: "jdbc_with_override",
			in:   "jdbc:mysql://db:3306/news?characterEncoding=utf8&useUnicode=true",
			user: "app", pass: "secret",
			want: "app:secret@tcp(db:3306)/news?charset=utf8&parseTime=true",
		},
		{
			name: "native_untouched",
			in:   "root:pw@tcp(127.0.0.1:3306)/news?parseTime=true",
			want: "root:pw@tcp(127.0.0.1:3306)/news?parseTime=true",
		},
		{name: "empty", in: "  ", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeMySQLDSN(tc.in, tc.user, tc.pass); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMaskDSN(t *testing.T) {
	if got := maskDSN("root:pw@tcp(db:3306)/news"); got != "root:****@tcp(db:3306)/news" {
		t.Fatalf("unexpected mask %q", got)
	}
	if got := maskDSN("file:news.db"); got != "file:news.db" {
		t.Fatalf("unexpected mask %q", got)
	}
}

func TestNewGormSQLite(t *testing.T) {
	db, err := NewGorm(Opts{
		Driver:       "sqlite",
		DSN:          "file:gorm_test?mode=memory&cache=shared",
		MaxIdleConns: 2,
		LogLevel:     "silent",
		LogWriter:    io.Discard,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	defer sqlDB.Close()
	if err := sqlDB.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestNewGormUnsupported(t *testing.T) {
	if _, err := NewGorm(Opts{Driver: "oracle"}); !errors.Is(err, ErrUnsupportedDriver) {
		t.Fatalf("expected ErrUnsupportedDriver, got %v", err)
	}
}
