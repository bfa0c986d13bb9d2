package repo

import (
	"strings"
	"testing"
)

func TestCategoryNameDDL(t *testing.T) {
	ddl := categoryNameDDL("mysql")
	if !strings.Contains(ddl, "COLLATE utf8mb4_bin") || !strings.Contains(ddl, "categories") {
		t.Fatalf("mysql needs a binary collation on categories.name, got %q", ddl)
	}
	for _, d := range []string{"sqlite", "postgres"} {
		if got := categoryNameDDL(d); got != "" {
			t.Fatalf("%s should keep its default collation, got %q", d, got)
		}
	}
}
