// Package sfcli binds the platform interfaces to the Salesforce sf CLI.
// Reads go through the Tooling API, writes through a metadata-format
// deploy. All output is requested as JSON and parsed with gjson.
package sfcli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/DevinBristol/salesforce-org-analysis/internal/component"
	"github.com/DevinBristol/salesforce-org-analysis/internal/config"
	"github.com/DevinBristol/salesforce-org-analysis/internal/logging"
	"github.com/DevinBristol/salesforce-org-analysis/internal/platform"
)

type Adapter struct {
	binary     string
	apiVersion string
	log        logging.Logger
}

func New(cfg config.SalesforceConfig, log logging.Logger) *Adapter {
	return &Adapter{
		binary:     cfg.Binary,
		apiVersion: cfg.APIVersion,
		log:        log,
	}
}

// contentField returns the Tooling API field holding the component body.
func contentField(typ component.Type) string {
	switch typ {
	case component.ApexPage, component.ApexComponent:
		return "Markup"
	default:
		return "Body"
	}
}

func soqlEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// Fetch queries the org for the component's current body and API version.
// A query that returns no records means the component does not exist.
func (a *Adapter) Fetch(ctx context.Context, typ component.Type, name, environment string) (*platform.ComponentState, error) {
	field := contentField(typ)
	query := fmt.Sprintf("SELECT %s, ApiVersion FROM %s WHERE Name = '%s'",
		field, typ, soqlEscape(name))

	out, err := a.run(ctx,
		"data", "query",
		"--query", query,
		"--use-tooling-api",
		"--target-org", environment,
		"--json",
	)
	if err != nil {
		return nil, fmt.Errorf("querying %s/%s: %w", typ, name, err)
	}

	records := gjson.GetBytes(out, "result.records")
	if len(records.Array()) == 0 {
		return nil, nil
	}

	rec := records.Array()[0]
	return &platform.ComponentState{
		Content:    rec.Get(field).String(),
		APIVersion: rec.Get("ApiVersion").String(),
	}, nil
}

// Deploy stages the bundle as a metadata-format project and runs a
// single deploy. The staging directory is removed on every exit path.
func (a *Adapter) Deploy(ctx context.Context, bundle []platform.BundleItem, environment string) platform.DeployOutcome {
	stage, cleanup, err := stageBundle(bundle, a.apiVersion)
	if err != nil {
		return platform.DeployOutcome{Success: false, Details: fmt.Sprintf("staging bundle: %v", err)}
	}
	defer cleanup()

	out, err := a.run(ctx,
		"project", "deploy", "start",
		"--metadata-dir", stage,
		"--target-org", environment,
		"--wait", "30",
		"--json",
	)
	if err != nil && len(out) == 0 {
		return platform.DeployOutcome{Success: false, Details: err.Error()}
	}

	res := gjson.GetBytes(out, "result")
	outcome := platform.DeployOutcome{
		Success: res.Get("success").Bool(),
		ID:      res.Get("id").String(),
		Details: res.Get("status").String(),
	}
	if !outcome.Success && outcome.Details == "" {
		outcome.Details = gjson.GetBytes(out, "message").String()
	}
	return outcome
}

// run executes the sf CLI. The CLI exits non-zero on failed operations
// but still emits JSON, so stdout is returned alongside the error.
func (a *Adapter) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, a.binary, args...)
	a.log.Debug("sfcli: %s %s", a.binary, strings.Join(args, " "))

	out, err := cmd.Output()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) && len(out) > 0 {
			return out, fmt.Errorf("sf exited non-zero: %s", gjson.GetBytes(out, "message").String())
		}
		return nil, fmt.Errorf("running sf: %w", err)
	}
	return out, nil
}
