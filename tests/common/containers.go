package common

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	portalBuildOnce  sync.Once
	portalBuildError error
	portalContainer  *PortalContainer
	portalOnce       sync.Once
	portalStartErr   error
)

// PortalContainer wraps the portal under test. The portal runs with
// SENTI_API_MOCK=true so no sentiment backend is needed.
type PortalContainer struct {
	portal testcontainers.Container
	ctx    context.Context
	cancel context.CancelFunc
	url    string
}

// URL returns the base URL of the running portal container.
func (p *PortalContainer) URL() string {
	return p.url
}

// CollectLogs saves container stdout/stderr to dir/.
func (p *PortalContainer) CollectLogs(dir string) {
	if p == nil || p.portal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	os.MkdirAll(dir, 0755)

	reader, err := p.portal.Logs(ctx)
	if err != nil {
		return
	}
	defer reader.Close()

	logs, err := io.ReadAll(reader)
	if err != nil {
		return
	}
	os.WriteFile(filepath.Join(dir, "portal.log"), logs, 0644)
}

// Cleanup tears down the container.
// Uses a fresh context for teardown in case the main context expired.
func (p *PortalContainer) Cleanup() {
	if p == nil {
		return
	}

	cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cleanupCancel()

	if p.portal != nil {
		p.portal.Terminate(cleanupCtx)
	}
	if p.cancel != nil {
		p.cancel()
	}
}

// buildPortalImage builds the senti-portal:test Docker image once per test run.
func buildPortalImage() error {
	portalBuildOnce.Do(func() {
		ctx := context.Background()
		projectRoot := FindProjectRoot()

		req := testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				FromDockerfile: testcontainers.FromDockerfile{
					Context:    projectRoot,
					Dockerfile: "tests/docker/Dockerfile",
					Repo:       "senti-portal",
					Tag:        "test",
					KeepImage:  true,
				},
			},
		}

		_, portalBuildError = testcontainers.GenericContainer(ctx, req)
		if portalBuildError != nil {
			// Image may have built successfully even if container creation failed
			if strings.Contains(portalBuildError.Error(), "senti-portal:test") {
				portalBuildError = nil
			}
		}
	})
	return portalBuildError
}

// startTestEnvironment starts the portal container in mock mode and returns
// the mapped URL for browser tests.
func startTestEnvironment() (*PortalContainer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)

	portalCtr, err := testcontainers.Run(ctx, "senti-portal:test",
		testcontainers.WithExposedPorts("4351/tcp"),
		testcontainers.WithEnv(map[string]string{
			"SENTI_API_MOCK":    "true",
			"SENTI_ENV":         "dev",
			"SENTI_SERVER_HOST": "0.0.0.0",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/api/health").WithPort("4351/tcp").WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("start portal: %w", err)
	}

	mappedPort, err := portalCtr.MappedPort(ctx, "4351/tcp")
	if err != nil {
		portalCtr.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("get portal mapped port: %w", err)
	}

	host, err := portalCtr.Host(ctx)
	if err != nil {
		portalCtr.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("get portal host: %w", err)
	}

	url := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	return &PortalContainer{
		portal: portalCtr,
		ctx:    ctx,
		cancel: cancel,
		url:    url,
	}, nil
}

// StartPortal starts the test container (one per test process).
// Returns nil when SENTI_TEST_URL is set (manual mode -- tests use the existing server).
func StartPortal(t *testing.T) *PortalContainer {
	t.Helper()
	if os.Getenv("SENTI_TEST_URL") != "" {
		return nil
	}

	portalOnce.Do(func() {
		if err := buildPortalImage(); err != nil {
			portalStartErr = fmt.Errorf("build portal image: %w", err)
			return
		}
		var err error
		portalContainer, err = startTestEnvironment()
		if err != nil {
			portalStartErr = err
		}
	})

	if portalStartErr != nil {
		t.Fatalf("Failed to start test environment: %v", portalStartErr)
	}
	return portalContainer
}

// StartPortalForTestMain starts the test container for use in TestMain (no *testing.T).
// Returns (nil, nil) when SENTI_TEST_URL is set (manual mode).
func StartPortalForTestMain() (*PortalContainer, error) {
	if os.Getenv("SENTI_TEST_URL") != "" {
		return nil, nil
	}

	portalOnce.Do(func() {
		if err := buildPortalImage(); err != nil {
			portalStartErr = fmt.Errorf("build portal image: %w", err)
			return
		}
		var err error
		portalContainer, err = startTestEnvironment()
		if err != nil {
			portalStartErr = err
		}
	})

	if portalStartErr != nil {
		return nil, portalStartErr
	}
	return portalContainer, nil
}
