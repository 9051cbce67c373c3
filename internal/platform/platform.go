// Package platform abstracts the remote org's read and write surface.
// The engine only ever talks to these two interfaces; the sfcli
// subpackage binds them to the real sf CLI.
package platform

import (
	"context"

	"github.com/DevinBristol/salesforce-org-analysis/internal/component"
)

// ComponentState is the remote state of one component at fetch time.
type ComponentState struct {
	Content    string
	APIVersion string
}

// MetadataProvider reads current component state from an org.
// A nil state with a nil error means the component does not exist there.
type MetadataProvider interface {
	Fetch(ctx context.Context, typ component.Type, name, environment string) (*ComponentState, error)
}

// BundleItem is one component to push in a deploy call.
type BundleItem struct {
	Type       component.Type
	Name       string
	Content    string
	APIVersion string
}

// DeployOutcome is the result of one deploy invocation.
type DeployOutcome struct {
	Success bool
	ID      string
	Details string
}

// Deployer pushes a bundle of components to an org. Implementations
// report failure through the outcome, not through an error return: a
// rejected deploy is an expected result, not an exceptional one.
type Deployer interface {
	Deploy(ctx context.Context, bundle []BundleItem, environment string) DeployOutcome
}
