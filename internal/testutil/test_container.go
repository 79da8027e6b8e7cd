//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"testing"
)

// shared is the MongoDB container of the running test binary.
var (
	shared    *MongoDBContainer
	dbCounter atomic.Int64
)

// RunWithSharedMongoDB starts one MongoDB container for the package, runs
// its tests and terminates the container. Use it from TestMain:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.RunWithSharedMongoDB(m))
//	}
func RunWithSharedMongoDB(m *testing.M) int {
	ctx := context.Background()
	container, err := SetupMongoDB(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "start shared MongoDB:", err)
		return 1
	}
	shared = container

	code := m.Run()

	if err := container.Cleanup(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "terminate shared MongoDB:", err)
	}
	return code
}

// SharedMongoURI returns the URI of the package's shared container.
func SharedMongoURI(t testing.TB) string {
	t.Helper()
	if shared == nil {
		t.Fatal("shared MongoDB container not started; call RunWithSharedMongoDB from TestMain")
	}
	return shared.URI
}

// DatabaseName returns a database name unique to t within the test binary.
// MongoDB names may not contain '/', '\', '.', ' ' or '"' and are limited
// to 63 bytes.
func DatabaseName(t testing.TB) string {
	t.Helper()
	name := strings.NewReplacer("/", "_", "\\", "_", ".", "_", " ", "_", `"`, "_", "$", "_").Replace(t.Name())
	suffix := fmt.Sprintf("_%d", dbCounter.Add(1))
	if max := 63 - len(suffix); len(name) > max {
		name = name[:max]
	}
	return name + suffix
}
