package e2e

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"github.com/google/uuid"
	grpcprom "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instancepb "cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"

	contracts "github.com/murkotick/storefront-sequencer/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/storefront"
	"github.com/murkotick/storefront-sequencer/internal/pkg/clock"
	"github.com/murkotick/storefront-sequencer/internal/pkg/ordernum"
	"github.com/murkotick/storefront-sequencer/internal/pkg/sequencer"
	"github.com/murkotick/storefront-sequencer/internal/platform/grpcclient"
	"github.com/murkotick/storefront-sequencer/internal/platform/memory"
	"github.com/murkotick/storefront-sequencer/internal/platform/spannerdb"
	"github.com/murkotick/storefront-sequencer/internal/transport/grpc/commerce"
	commercev1 "github.com/murkotick/storefront-sequencer/internal/transport/grpc/commercev1"
)

var (
	clk *clock.FakeClock

	// memStore is served over gRPC; remote is the client the flows run against.
	memStore   *memory.Platform
	remote     *grpcclient.Client
	remoteConn *grpc.ClientConn
	srvMetrics *grpcprom.ServerMetrics

	// Set only when SPANNER_EMULATOR_HOST is present.
	spClient *spanner.Client
	spStore  *spannerdb.Platform
	dbName   string
)

func TestMain(m *testing.M) {
	// Keep time in UTC everywhere.
	now := time.Now().UTC().Truncate(time.Second)
	clk = clock.NewFake(now)
	clk.AutoAdvance(time.Millisecond)

	memStore = memory.New(clk)
	stopGRPC := startGRPC(memStore)

	var stopSpanner func()
	if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
		stopSpanner = setupSpanner()
	}

	code := m.Run()

	stopGRPC()
	if stopSpanner != nil {
		stopSpanner()
	}
	os.Exit(code)
}

// startGRPC serves store over an in-memory listener and dials it.
func startGRPC(store *memory.Platform) func() {
	lis := bufconn.Listen(1024 * 1024)
	srvMetrics = grpcprom.NewServerMetrics()
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(srvMetrics.UnaryServerInterceptor()))
	commercev1.RegisterPlatformServer(srv, commerce.NewHandler(store, store, store))
	commercev1.RegisterHealth(srv)
	srvMetrics.InitializeMetrics(srv)
	go func() {
		_ = srv.Serve(lis)
	}()

	client, conn, err := grpcclient.Dial("passthrough:///bufnet", grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
		return lis.Dial()
	}))
	if err != nil {
		panic(fmt.Sprintf("dial bufnet: %v", err))
	}
	remote = client
	remoteConn = conn

	return func() {
		_ = conn.Close()
		srv.Stop()
	}
}

func setupSpanner() func() {
	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
	defer cancel()

	projectID := env("SPANNER_PROJECT_ID", "test-project")
	instanceID := env("SPANNER_INSTANCE_ID", "emulator-instance")
	// Use a unique database per "go test" run to avoid flakiness and id collisions.
	databaseID := fmt.Sprintf("e2e_%s", strings.ReplaceAll(uuid.New().String(), "-", "")[:24])

	parent := fmt.Sprintf("projects/%s", projectID)
	instName := fmt.Sprintf("%s/instances/%s", parent, instanceID)
	dbName = fmt.Sprintf("%s/databases/%s", instName, databaseID)

	instAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		panic(fmt.Sprintf("instance admin client: %v", err))
	}
	defer instAdmin.Close()

	dbAdmin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		panic(fmt.Sprintf("database admin client: %v", err))
	}

	ensureInstance(ctx, instAdmin, parent, instName, instanceID)

	op, err := dbAdmin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          instName,
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", databaseID),
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			panic(fmt.Sprintf("CreateDatabase: %v", err))
		}
	} else if _, err := op.Wait(ctx); err != nil {
		panic(fmt.Sprintf("CreateDatabase wait: %v", err))
	}

	ddlPath := filepath.Join("..", "..", "migrations", "001_initial_schema.sql")
	ddl, err := os.ReadFile(ddlPath)
	if err != nil {
		panic(fmt.Sprintf("read %s: %v", ddlPath, err))
	}
	ddlOp, err := dbAdmin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   dbName,
		Statements: splitDDL(string(ddl)),
	})
	if err != nil {
		panic(fmt.Sprintf("UpdateDatabaseDdl: %v", err))
	}
	if err := ddlOp.Wait(ctx); err != nil {
		panic(fmt.Sprintf("UpdateDatabaseDdl wait: %v", err))
	}

	spClient, err = spanner.NewClient(ctx, dbName)
	if err != nil {
		panic(fmt.Sprintf("spanner.NewClient: %v", err))
	}
	spStore = spannerdb.New(spClient, clk)

	return func() {
		spClient.Close()
		// Best-effort cleanup (emulator only).
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_ = dbAdmin.DropDatabase(ctx, &databasepb.DropDatabaseRequest{Database: dbName})
		_ = dbAdmin.Close()
	}
}

func ensureInstance(ctx context.Context, admin *instance.InstanceAdminClient, parent, instName, instanceID string) {
	_, err := admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: instName})
	if err == nil {
		return
	}
	if status.Code(err) != codes.NotFound {
		panic(fmt.Sprintf("GetInstance: %v", err))
	}

	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     parent,
		InstanceId: instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("%s/instanceConfigs/emulator-config", parent),
			DisplayName: "E2E Test Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			panic(fmt.Sprintf("CreateInstance: %v", err))
		}
		return
	}
	if _, err := op.Wait(ctx); err != nil {
		panic(fmt.Sprintf("CreateInstance wait: %v", err))
	}
}

func splitDDL(sql string) []string {
	sql = strings.ReplaceAll(sql, "\r\n", "\n")
	var kept []string
	for _, line := range strings.Split(sql, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "--") {
			kept = append(kept, line)
		}
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

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEmulator(t *testing.T) {
	t.Helper()
	if spClient == nil {
		t.Skip("SPANNER_EMULATOR_HOST is not set")
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newSession builds a storefront session whose sequences run against seqPlatform
// while reads and accounts go to backend. adminEmail becomes the admin account.
func newSession(backend storefront.Backend, seqPlatform contracts.Platform, adminEmail string) (*storefront.Session, *sequencer.MemoryOrphanRecorder) {
	orphans := &sequencer.MemoryOrphanRecorder{}
	seq := sequencer.New(seqPlatform, sequencer.Options{
		Logger:      discardLogger(),
		Orphans:     orphans,
		Clock:       clk,
		CallTimeout: 5 * time.Second,
	})
	svc := storefront.NewServices(backend, seq, ordernum.NewUUIDNumberer(ordernum.DefaultPrefix), storefront.Settings{
		Currency:             "USD",
		Country:              "US",
		AdminEmail:           adminEmail,
		RefreshBeforePublish: true,
	}, discardLogger())
	return storefront.NewSession(svc), orphans
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@e2e.test", prefix, uuid.New().String()[:8])
}
