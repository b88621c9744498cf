package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"

	"github.com/murkotick/storefront-sequencer/internal/config"
)

// A tiny migration helper that applies the DDL in migrations/001_initial_schema.sql
// to the Spanner database named by SPANNER_DATABASE (typically the emulator).
//
// Usage (emulator):
//
//	export SPANNER_EMULATOR_HOST=localhost:9010
//	export SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db
//	go run ./cmd/migrate -ddl migrations/001_initial_schema.sql
func main() {
	ddlPath := flag.String("ddl", "migrations/001_initial_schema.sql", "path to the DDL file")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger := cfg.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	stmts, err := readDDLStatements(*ddlPath)
	if err != nil {
		logger.Error("read DDL", "path", *ddlPath, "error", err)
		os.Exit(1)
	}
	if len(stmts) == 0 {
		logger.Error("no DDL statements found", "path", *ddlPath)
		os.Exit(1)
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		logger.Error("database admin client", "error", err)
		os.Exit(1)
	}
	defer admin.Close()

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   cfg.SpannerDatabase,
		Statements: stmts,
	})
	if err != nil {
		logger.Error("UpdateDatabaseDdl", "error", err)
		os.Exit(1)
	}
	if err := op.Wait(ctx); err != nil {
		logger.Error("UpdateDatabaseDdl wait", "error", err)
		os.Exit(1)
	}

	logger.Info("applied DDL", "statements", len(stmts), "database", cfg.SpannerDatabase)
}

func readDDLStatements(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return splitDDL(string(b)), nil
}

// splitDDL splits on ';' and drops empty statements and "--" comment lines.
func splitDDL(sql string) []string {
	sql = strings.ReplaceAll(sql, "\r\n", "\n")

	var kept []string
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}

	parts := strings.Split(strings.Join(kept, "\n"), ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
