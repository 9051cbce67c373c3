package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevinBristol/salesforce-org-analysis/internal/component"
	"github.com/DevinBristol/salesforce-org-analysis/internal/engine"
	"github.com/DevinBristol/salesforce-org-analysis/internal/logging"
	"github.com/DevinBristol/salesforce-org-analysis/internal/mailbox"
	"github.com/DevinBristol/salesforce-org-analysis/internal/platform"
)

type fixture struct {
	worker   *Worker
	eng      *engine.Engine
	provider *platform.FakeProvider
	deployer *platform.FakeDeployer
	bundle   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	provider := platform.NewFakeProvider()
	deployer := platform.NewFakeDeployer()

	eng := engine.New(engine.Options{
		Root:     t.TempDir(),
		Provider: provider,
		Deployer: deployer,
		Logger:   logging.Nop{},
	})

	bundleDir := t.TempDir()
	classes := filepath.Join(bundleDir, "classes")
	require.NoError(t, os.MkdirAll(classes, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(classes, "OrderService.cls"),
		[]byte("public class OrderService { /* v2 */ }"), 0o644))

	return &fixture{
		worker:   New(eng, deployer, "dev", mailbox.New[Job](), logging.Nop{}),
		eng:      eng,
		provider: provider,
		deployer: deployer,
		bundle:   bundleDir,
	}
}

func TestHandleCapturesThenDeploys(t *testing.T) {
	fx := newFixture(t)
	fx.provider.Set("dev", component.ApexClass, "OrderService", platform.ComponentState{
		Content:    "public class OrderService { /* v1 */ }",
		APIVersion: "59.0",
	})

	err := fx.worker.Handle(context.Background(), Job{BundleDir: fx.bundle, MarkedAt: time.Now()})
	require.NoError(t, err)

	// A restore point exists for the environment...
	latest, err := fx.eng.GetLatestSnapshot("dev")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 1, latest.ComponentCount)

	// ...and the deploy carried the bundle's new content.
	require.Len(t, fx.deployer.Calls, 1)
	call := fx.deployer.Calls[0]
	require.Len(t, call.Bundle, 1)
	assert.Equal(t, "OrderService", call.Bundle[0].Name)
	assert.Contains(t, call.Bundle[0].Content, "v2")
}

func TestHandleDeployFailureNamesRestorePoint(t *testing.T) {
	fx := newFixture(t)
	fx.deployer.Outcome = platform.DeployOutcome{Success: false, Details: "compile error"}

	err := fx.worker.Handle(context.Background(), Job{BundleDir: fx.bundle})
	require.Error(t, err)

	latest, lerr := fx.eng.GetLatestSnapshot("dev")
	require.NoError(t, lerr)
	require.NotNil(t, latest, "snapshot survives the failed deploy")
	assert.Contains(t, err.Error(), latest.ID, "operator can roll back by the id in the error")
}

func TestHandleEmptyBundle(t *testing.T) {
	fx := newFixture(t)

	err := fx.worker.Handle(context.Background(), Job{BundleDir: t.TempDir()})
	require.Error(t, err)
	assert.Empty(t, fx.deployer.Calls)
}
