package platform

import (
	"context"
	"fmt"
	"sync"

	"github.com/DevinBristol/salesforce-org-analysis/internal/component"
)

// In-memory implementations used by tests across packages.

// FakeProvider serves component state from a map keyed by
// "environment/Type/Name". Keys listed in FailOn return an error.
type FakeProvider struct {
	mu     sync.Mutex
	States map[string]ComponentState
	FailOn map[string]bool

	FetchCalls []string
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		States: map[string]ComponentState{},
		FailOn: map[string]bool{},
	}
}

func fakeKey(environment string, typ component.Type, name string) string {
	return environment + "/" + string(typ) + "/" + name
}

// Set registers remote state for a component.
func (p *FakeProvider) Set(environment string, typ component.Type, name string, st ComponentState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.States[fakeKey(environment, typ, name)] = st
}

func (p *FakeProvider) Fetch(_ context.Context, typ component.Type, name, environment string) (*ComponentState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := fakeKey(environment, typ, name)
	p.FetchCalls = append(p.FetchCalls, key)

	if p.FailOn[key] {
		return nil, fmt.Errorf("fake provider: fetch %s failed", key)
	}

	st, ok := p.States[key]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

// FakeDeployer records every deploy call and answers with Outcome.
type FakeDeployer struct {
	mu      sync.Mutex
	Outcome DeployOutcome

	Calls []DeployCall
}

type DeployCall struct {
	Bundle      []BundleItem
	Environment string
}

func NewFakeDeployer() *FakeDeployer {
	return &FakeDeployer{Outcome: DeployOutcome{Success: true, ID: "fake-deploy"}}
}

func (d *FakeDeployer) Deploy(_ context.Context, bundle []BundleItem, environment string) DeployOutcome {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls = append(d.Calls, DeployCall{Bundle: bundle, Environment: environment})
	return d.Outcome
}
